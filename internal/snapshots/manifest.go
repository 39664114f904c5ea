package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks archive metadata.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Retention   Retention `json:"retention"`
	Weeks       WeeksMeta `json:"weeks"`
}

// Retention records how many weeks the archive keeps; 0 keeps everything.
type Retention struct {
	Weeks int `json:"weeks"`
}

type WeeksMeta struct {
	IDs           []string  `json:"ids"`
	LastArchived  time.Time `json:"lastArchived"`
	LastArchiveID string    `json:"lastArchiveId,omitempty"`
}

func defaultManifest(retentionWeeks int, now time.Time) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: now.UTC(),
		Retention:   Retention{Weeks: retentionWeeks},
		Weeks:       WeeksMeta{IDs: []string{}},
	}
}

func readManifest(path string, retentionWeeks int, now time.Time) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retentionWeeks, now), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retentionWeeks, now), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now.UTC()
	path := manifestPath(basePath)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
