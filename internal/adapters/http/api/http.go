// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/ploffs/internal/app"
	"github.com/okian/ploffs/internal/adapters/repository"
	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/odds"
	"github.com/okian/ploffs/internal/domain/seeding"
	"github.com/okian/ploffs/internal/domain/types"
	"github.com/okian/ploffs/internal/report"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StandingsDependencies
	EntrantDependencies
	OddsDependencies
}

// OddsDependencies answers probability queries.
type OddsDependencies interface {
	WinProbability(ctx context.Context, a, b string) (types.Probability, error)
	MakesSemifinals(ctx context.Context, ref string) (types.Probability, error)
	MakesFinals(ctx context.Context, ref string) (types.Probability, error)
	Meet(ctx context.Context, a, b string, round model.Round) (types.Probability, error)
	Loss(ctx context.Context, ref string) (types.Loss, error)
	Report(ctx context.Context, ref string) (*report.Report, error)
}

// Entry mirrors the read shape returned by standings queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	standingsHandler *StandingsHandler
	entrantHandler   *EntrantHandler
	oddsHandler      *OddsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		standingsHandler: NewStandingsHandler(deps, maxLimit),
		entrantHandler:   NewEntrantHandler(deps),
		oddsHandler:      NewOddsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/standings/", MetricsMiddleware(s.entrantHandler.HandleGetEntrant, "entrant"))
	mux.HandleFunc("/win", MetricsMiddleware(s.oddsHandler.HandleWin, "win"))
	mux.HandleFunc("/meet", MetricsMiddleware(s.oddsHandler.HandleMeet, "meet"))
	mux.HandleFunc("/advance/", MetricsMiddleware(s.oddsHandler.HandleAdvance, "advance"))
	mux.HandleFunc("/finals/", MetricsMiddleware(s.oddsHandler.HandleFinals, "finals"))
	mux.HandleFunc("/loss/", MetricsMiddleware(s.oddsHandler.HandleLoss, "loss"))
	mux.HandleFunc("/report/", MetricsMiddleware(s.oddsHandler.HandleReport, "report"))
	mux.HandleFunc("/report", MetricsMiddleware(s.oddsHandler.HandleReport, "report"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure translates upstream errors into a status and error code.
func writeFailure(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, odds.ErrEmptyRef),
		errors.Is(err, seeding.ErrSeedOutOfRange),
		errors.Is(err, repository.ErrInvalidLimit),
		errors.Is(err, service.ErrUnknownRound):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// isNotFound reports whether err names an entrant that does not exist in
// the current standings. Seed numbers outside 1..10 are bad requests.
func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, seeding.ErrUnknownEntrant) ||
		errors.Is(err, repository.ErrNotFound)
}
