package httputil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Status: "ok",
		Data:   data,
	})
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Status: "error",
		Error: &ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

func ReadJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// WritePaginated writes data with X-Total-Count and Link headers. Pages are
// zero-based.
func WritePaginated(w http.ResponseWriter, r *http.Request, data interface{}, page, perPage, total int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	lastPage := 0
	if perPage > 0 && total > 0 {
		lastPage = (total - 1) / perPage
	}
	base := r.URL.Path
	link := func(p int, rel string) string {
		return fmt.Sprintf(`<%s?page=%d&rows_per_page=%d>; rel="%s"`, base, p, perPage, rel)
	}
	links := []string{link(0, "first"), link(lastPage, "last")}
	if page < lastPage {
		links = append(links, link(page+1, "next"))
	}
	if page > 0 {
		links = append(links, link(page-1, "prev"))
	}
	w.Header().Set("Link", strings.Join(links, ", "))
	WriteJSON(w, http.StatusOK, data)
}

// QueryInt reads an integer query parameter, returning fallback when it is
// absent or not a number.
func QueryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return fallback
	}
	return n
}
