package metadata

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the external movie metadata source.
type Provider interface {
	SearchMovies(ctx context.Context, query string, page int) (*SearchPage, error)
	MovieDetails(ctx context.Context, id int) (*MovieDetails, error)
}

var (
	ErrNotConfigured = errors.New("tmdb: API key not configured")
	ErrNotFound      = errors.New("tmdb: not found")
)

// StatusError is returned when TMDB answers with a non-200 status.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: %s returned %d", e.Path, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == 404
}
