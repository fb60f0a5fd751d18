// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// EntrantDependencies defines the interface for single-entrant lookups.
type EntrantDependencies interface {
	Rank(ctx context.Context, ref string) (Entry, error)
}

// EntrantHandler handles single-entrant standings requests.
type EntrantHandler struct {
	deps EntrantDependencies
}

// NewEntrantHandler creates a new entrant handler.
func NewEntrantHandler(deps EntrantDependencies) *EntrantHandler {
	return &EntrantHandler{deps: deps}
}

// HandleGetEntrant handles GET /standings/{ref} requests, where ref is a
// name or a seed number.
func (h *EntrantHandler) HandleGetEntrant(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_entrant"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ref, ok := pathRef(r, "/standings/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entry, err := h.deps.Rank(r.Context(), ref)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
