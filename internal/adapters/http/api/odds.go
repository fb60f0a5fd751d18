// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/types"
	"github.com/okian/ploffs/internal/report"
	"github.com/okian/ploffs/pkg/logger"
)

// OddsHandler serves probability queries.
type OddsHandler struct {
	deps OddsDependencies
}

// NewOddsHandler creates a new odds handler.
func NewOddsHandler(deps OddsDependencies) *OddsHandler {
	return &OddsHandler{deps: deps}
}

type advanceResponse struct {
	Semifinals types.Probability `json:"semifinals"`
	Finals     types.Probability `json:"finals"`
}

// HandleWin handles GET /win?a=X&b=Y requests.
func (h *OddsHandler) HandleWin(w http.ResponseWriter, r *http.Request) {
	const op = "api.win"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	a, b, ok := queryPair(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	p, err := h.deps.WinProbability(r.Context(), a, b)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleMeet handles GET /meet?a=X&b=Y&round=semifinal|final requests.
func (h *OddsHandler) HandleMeet(w http.ResponseWriter, r *http.Request) {
	const op = "api.meet"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	a, b, ok := queryPair(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	round := model.Round(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("round"))))
	p, err := h.deps.Meet(r.Context(), a, b, round)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleAdvance handles GET /advance/{ref} requests.
func (h *OddsHandler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	const op = "api.advance"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ref, ok := pathRef(r, "/advance/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	semi, err := h.deps.MakesSemifinals(r.Context(), ref)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	finals, err := h.deps.MakesFinals(r.Context(), ref)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, advanceResponse{Semifinals: semi, Finals: finals})
}

// HandleFinals handles GET /finals/{ref} requests.
func (h *OddsHandler) HandleFinals(w http.ResponseWriter, r *http.Request) {
	const op = "api.finals"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ref, ok := pathRef(r, "/finals/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	p, err := h.deps.MakesFinals(r.Context(), ref)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleLoss handles GET /loss/{ref} requests.
func (h *OddsHandler) HandleLoss(w http.ResponseWriter, r *http.Request) {
	const op = "api.loss"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ref, ok := pathRef(r, "/loss/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	loss, err := h.deps.Loss(r.Context(), ref)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, loss)
}

// HandleReport handles GET /report and GET /report/{ref}. The plain path
// reports on the configured target. With ?format=text the styled terminal
// rendering is returned instead of JSON.
func (h *OddsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	var ref string
	if r.URL.Path != "/report" {
		var ok bool
		ref, ok = pathRef(r, "/report/")
		if !ok {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
	}
	rep, err := h.deps.Report(r.Context(), ref)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := rep.Render(w, report.DefaultTheme); err != nil {
			logger.Named("api").Error(r.Context(), "failed to write report",
				logger.String("op", op), logger.String("ref", ref), logger.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
