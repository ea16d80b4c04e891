package movies

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JustinTDCT/CineCurator/internal/httputil"
	"github.com/JustinTDCT/CineCurator/internal/logging"
)

// RefreshQueue schedules a background metadata refresh for one movie.
type RefreshQueue interface {
	EnqueueRefresh(movieID int64) (string, error)
}

type Handler struct {
	svc   *Service
	queue RefreshQueue
}

// NewHandler builds the movies API. queue may be nil, in which case refresh
// requests run inline.
func NewHandler(svc *Service, queue RefreshQueue) *Handler {
	return &Handler{svc: svc, queue: queue}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/categories", h.categories)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/refresh", h.refresh)
	return r
}

func movieID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := httputil.QueryInt(r, "page", 0)
	rows := httputil.QueryInt(r, "rows_per_page", DefaultRowsPerPage)

	p, err := h.svc.List(r.Context(), page, rows)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("list movies")
		httputil.WriteError(w, http.StatusInternalServerError, "LIST_FAILED", ListFailedMessage)
		return
	}
	httputil.WritePaginated(w, r, p, p.Page, p.RowsPerPage, p.Total)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, Categories)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid movie id")
		return
	}
	m, err := h.svc.Get(r.Context(), id)
	if IsNotFound(err) {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("movie_id", id).Msg("get movie")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load movie")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	h.save(w, r, req, http.StatusCreated)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid movie id")
		return
	}
	var req SaveRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	req.EditingID = &id
	h.save(w, r, req, http.StatusOK)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, req SaveRequest, status int) {
	m, err := h.svc.Save(r.Context(), req)
	switch {
	case errors.Is(err, ErrInvalidRequest):
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", ValidationMessage)
	case IsNotFound(err):
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Str("title", req.Item.Title).Msg("save movie")
		httputil.WriteError(w, http.StatusInternalServerError, "SAVE_FAILED", SaveFailedMessage)
	default:
		httputil.WriteJSON(w, status, m)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid movie id")
		return
	}
	err := h.svc.Delete(r.Context(), id)
	if IsNotFound(err) {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("movie_id", id).Msg("delete movie")
		httputil.WriteError(w, http.StatusInternalServerError, "DELETE_FAILED", DeleteFailedMessage)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid movie id")
		return
	}

	if h.queue == nil {
		m, err := h.svc.Refresh(r.Context(), id)
		if IsNotFound(err) {
			httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
			return
		}
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Int64("movie_id", id).Msg("refresh movie")
			httputil.WriteError(w, http.StatusBadGateway, "REFRESH_FAILED", "failed to refresh movie metadata")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, m)
		return
	}

	taskID, err := h.queue.EnqueueRefresh(id)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("movie_id", id).Msg("enqueue refresh")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to queue refresh")
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"task_id": taskID})
}
