package settings

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/JustinTDCT/CineCurator/internal/httputil"
	"github.com/JustinTDCT/CineCurator/internal/logging"
)

type Handler struct {
	repo Store
}

func NewHandler(repo Store) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Put("/", h.update)
	r.Delete("/{key}", h.delete)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.GetAll(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("load settings")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load settings")
		return
	}

	settingsMap := make(map[string]string, len(all))
	for _, s := range all {
		if secret[s.Key] && s.Value != "" {
			settingsMap[s.Key] = masked
			continue
		}
		settingsMap[s.Key] = s.Value
	}
	httputil.WriteJSON(w, http.StatusOK, settingsMap)
}

// update upserts every key in the body. Changes apply on the next restart.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	keys := make([]string, 0, len(req))
	for key := range req {
		if !Known[key] {
			httputil.WriteError(w, http.StatusBadRequest, "UNKNOWN_SETTING", "unknown setting: "+key)
			return
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if secret[key] && req[key] == masked {
			continue
		}
		if err := h.repo.Set(r.Context(), key, req[key]); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Str("key", key).Msg("save setting")
			httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to save setting")
			return
		}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !Known[key] {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "unknown setting")
		return
	}
	if err := h.repo.Delete(r.Context(), key); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete setting")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
