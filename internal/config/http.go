package config

// HTTPConfig controls the read-only serve mode.
type HTTPConfig struct {
	Port            string   `env:"PORT" envDefault:"4000"`
	ShutdownTimeout Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
