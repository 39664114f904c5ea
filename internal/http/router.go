package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	apihandlers "github.com/preston-bernstein/dread-tracker/internal/http/handlers"
	"github.com/preston-bernstein/dread-tracker/internal/http/middleware"
	"github.com/preston-bernstein/dread-tracker/internal/metrics"
)

// NewRouter registers the read-only routes and wraps them with request
// logging, panic recovery and response compression.
func NewRouter(h *apihandlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	router.HandleFunc("/summary", h.Summary).Methods(nethttp.MethodGet)
	router.HandleFunc("/leaderboard", h.Leaderboard).Methods(nethttp.MethodGet)
	router.HandleFunc("/players", h.Players).Methods(nethttp.MethodGet)
	router.HandleFunc("/weeks", h.Weeks).Methods(nethttp.MethodGet)
	router.HandleFunc("/weeks/{week}", h.WeekByID).Methods(nethttp.MethodGet)
	router.HandleFunc("/profiles/{name}", h.ProfileByName).Methods(nethttp.MethodGet)
	router.HandleFunc("/monthly", h.Monthly).Methods(nethttp.MethodGet)
	router.HandleFunc("/trends", h.Trends).Methods(nethttp.MethodGet)
	router.HandleFunc("/achievements", h.Achievements).Methods(nethttp.MethodGet)
	// mux skips Use middleware for these, so they are wrapped directly.
	mw := middleware.Middleware(logger, recorder)
	router.NotFoundHandler = mw(nethttp.HandlerFunc(h.NotFound))
	router.MethodNotAllowedHandler = mw(nethttp.HandlerFunc(h.MethodNotAllowed))
	router.Use(mw)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slogRecoveryLogger{logger: logger}),
		handlers.PrintRecoveryStack(false),
	)
	return recovery(handlers.CompressHandler(router))
}

type slogRecoveryLogger struct {
	logger *slog.Logger
}

func (l slogRecoveryLogger) Println(args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Error("recovered from panic", "panic", args)
}
