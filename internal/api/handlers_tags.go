package api

import (
	"errors"
	"net/http"

	"github.com/JustinTDCT/CineCurator/internal/httputil"
	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/metadata"
	"github.com/JustinTDCT/CineCurator/internal/models"
	"github.com/JustinTDCT/CineCurator/internal/tagging"
)

// ──────────────────── Tag Handlers ────────────────────

type inferRequest struct {
	Item     models.SearchCandidate `json:"item"`
	Selected []string               `json:"selected"`
	// TMDBID, when set, loads the item from the provider instead.
	TMDBID int `json:"tmdb_id,omitempty"`
}

type toggleRequest struct {
	Selection tagging.Selection `json:"selection"`
	Label     string            `json:"label"`
}

type combosRequest struct {
	Selection tagging.Selection `json:"selection"`
	Combos    []string          `json:"combos"`
}

type selectionResponse struct {
	Selection tagging.Selection `json:"selection"`
	Diff      tagging.Diff      `json:"diff"`
}

func (s *Server) handleInferTags(w http.ResponseWriter, r *http.Request) {
	var req inferRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	item := req.Item
	if req.TMDBID > 0 {
		if s.deps.Provider == nil {
			httputil.WriteError(w, http.StatusServiceUnavailable, "PROVIDER_UNAVAILABLE", "metadata provider not configured")
			return
		}
		details, err := s.deps.Provider.MovieDetails(r.Context(), req.TMDBID)
		switch {
		case errors.Is(err, metadata.ErrNotFound):
			httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
			return
		case err != nil:
			logging.Ctx(r.Context()).Error().Err(err).Int("tmdb_id", req.TMDBID).Msg("load details for tags")
			httputil.WriteError(w, http.StatusBadGateway, "PROVIDER_FAILED", "failed to load movie details")
			return
		}
		item = details.Candidate()
	}
	if item.Title == "" && item.ID == 0 {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "item or tmdb_id required")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tagging.Infer(item, req.Selected, s.now().Year()))
}

func (s *Server) handleToggleTag(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.Label == "" {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "label required")
		return
	}

	next := req.Selection.Toggle(req.Label)
	httputil.WriteJSON(w, http.StatusOK, selectionResponse{Selection: next, Diff: req.Selection.Diff(next)})
}

func (s *Server) handleListCombos(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, tagging.Combos())
}

func (s *Server) handleSetCombos(w http.ResponseWriter, r *http.Request) {
	var req combosRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	next := req.Selection.SetCombos(req.Combos)
	httputil.WriteJSON(w, http.StatusOK, selectionResponse{Selection: next, Diff: req.Selection.Diff(next)})
}
