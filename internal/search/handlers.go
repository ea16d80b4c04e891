package search

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JustinTDCT/CineCurator/internal/httputil"
	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/metrics"
	"github.com/JustinTDCT/CineCurator/internal/models"
)

type Handler struct {
	svc    *Service
	recent RecentStore
}

func NewHandler(svc *Service, recent RecentStore) *Handler {
	return &Handler{svc: svc, recent: recent}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.search)
	r.Get("/recent", h.listRecent)
	r.Post("/recent", h.addRecent)
	return r
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := httputil.QueryInt(r, "page", 1)

	res, err := h.svc.Search(r.Context(), query, page)
	switch {
	case errors.Is(err, ErrQueryTooShort):
		metrics.Searches.WithLabelValues("skipped").Inc()
		httputil.WriteError(w, http.StatusBadRequest, "QUERY_TOO_SHORT", "search query is too short")
		return
	case err != nil:
		metrics.Searches.WithLabelValues("error").Inc()
		logging.Ctx(r.Context()).Error().Err(err).Msg("search failed")
		httputil.WriteError(w, http.StatusBadGateway, "SEARCH_FAILED", FailureMessage)
		return
	}
	metrics.Searches.WithLabelValues("ok").Inc()
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) listRecent(w http.ResponseWriter, r *http.Request) {
	items, err := h.recent.List(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("list recent searches")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load recent searches")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) addRecent(w http.ResponseWriter, r *http.Request) {
	var pick models.RecentPick
	if err := httputil.ReadJSON(r, &pick); err != nil || pick.ID == 0 || pick.Title == "" {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "id and title required")
		return
	}
	if err := h.recent.Add(r.Context(), pick); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("add recent search")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to save recent search")
		return
	}
	h.listRecent(w, r)
}
