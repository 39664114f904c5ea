package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/dread-tracker/internal/app/tracker"
	"github.com/preston-bernstein/dread-tracker/internal/domain/weeks"
	"github.com/preston-bernstein/dread-tracker/internal/stats"
	"github.com/preston-bernstein/dread-tracker/internal/timeutil"
)

// Reader is the read side of a tracker served over HTTP.
type Reader interface {
	Settings() tracker.Settings
	Summary() weeks.Summary
	Leaderboard() []stats.LeaderboardEntry
	PlayerViews() []tracker.PlayerView
	ListWeeks() []string
	Week(weekID string) (weeks.Snapshot, error)
	Profile(name string) stats.PlayerProfile
	MonthlyTop() []weeks.Performer
	WeeklyTrend() []stats.WeekPoint
	Comparison() []weeks.Performer
	Achievements() []stats.Achievement
	Milestones() []stats.Milestone
}

// SummaryResponse is the live roster overview.
type SummaryResponse struct {
	Week    string        `json:"week"`
	Target  int           `json:"target"`
	Summary weeks.Summary `json:"summary"`
}

// WeeksResponse lists saved week ids, newest first.
type WeeksResponse struct {
	Weeks []string `json:"weeks"`
}

// TrendsResponse carries the chart series.
type TrendsResponse struct {
	Weekly     []stats.WeekPoint `json:"weekly"`
	Comparison []weeks.Performer `json:"comparison"`
}

// AchievementsResponse pairs achievements with alliance milestones.
type AchievementsResponse struct {
	Achievements []stats.Achievement `json:"achievements"`
	Milestones   []stats.Milestone   `json:"milestones"`
}

// Handler wires HTTP routes to a tracker.
type Handler struct {
	reader Reader
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(reader Reader, logger *slog.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Summary returns aggregate metrics for the live roster.
func (h *Handler) Summary(w nethttp.ResponseWriter, r *nethttp.Request) {
	settings := h.reader.Settings()
	writeJSON(w, nethttp.StatusOK, SummaryResponse{
		Week:    settings.CurrentWeek,
		Target:  settings.Target,
		Summary: h.reader.Summary(),
	}, h.logger)
}

// Leaderboard returns the ranked live roster.
func (h *Handler) Leaderboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.reader.Leaderboard(), h.logger)
}

// Players returns the live roster with derived kills and completion.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.reader.PlayerViews(), h.logger)
}

// Weeks lists saved week ids.
func (h *Handler) Weeks(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, WeeksResponse{Weeks: h.reader.ListWeeks()}, h.logger)
}

// WeekByID returns one saved week.
func (h *Handler) WeekByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := mux.Vars(r)["week"]
	if _, _, err := timeutil.ParseWeekID(id); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid week id (expected YYYY-Www)", h.logger)
		return
	}
	snap, err := h.reader.Week(id)
	if err != nil {
		writeDomainError(w, r, err, "week", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

// ProfileByName returns one player's history across saved weeks.
func (h *Handler) ProfileByName(w nethttp.ResponseWriter, r *nethttp.Request) {
	name := strings.TrimSpace(mux.Vars(r)["name"])
	if name == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid player name", h.logger)
		return
	}
	profile := h.reader.Profile(name)
	if profile.WeeksActive == 0 {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, profile, h.logger)
}

// Monthly returns the top performers of the current month.
func (h *Handler) Monthly(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.reader.MonthlyTop(), h.logger)
}

// Trends returns the weekly series and the live comparison.
func (h *Handler) Trends(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, TrendsResponse{
		Weekly:     h.reader.WeeklyTrend(),
		Comparison: h.reader.Comparison(),
	}, h.logger)
}

// Achievements returns achievements and milestones.
func (h *Handler) Achievements(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, AchievementsResponse{
		Achievements: h.reader.Achievements(),
		Milestones:   h.reader.Milestones(),
	}, h.logger)
}

// NotFound answers unmatched routes in the shared error shape.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers non-GET requests on known routes.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}
