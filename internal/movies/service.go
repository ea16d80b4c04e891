package movies

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/metadata"
)

// DetailsSource is the part of the metadata provider the save flow needs.
type DetailsSource interface {
	MovieDetails(ctx context.Context, id int) (*metadata.MovieDetails, error)
}

// freshDetails is implemented by caching providers that can skip the cache.
type freshDetails interface {
	Refresh(ctx context.Context, id int) (*metadata.MovieDetails, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type Service struct {
	store   Store
	details DetailsSource
}

func NewService(store Store, details DetailsSource) *Service {
	return &Service{store: store, details: details}
}

// Save validates the form, enriches it from the provider and inserts or
// updates the record.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*Movie, error) {
	if strings.TrimSpace(req.Item.Title) == "" || validate.Struct(req) != nil || !req.Category.Valid() {
		return nil, ErrInvalidRequest
	}

	externalID := req.ExternalID
	if externalID == 0 {
		externalID = req.Item.ID
	}
	if externalID <= 0 {
		return nil, ErrInvalidRequest
	}

	details, err := s.details.MovieDetails(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("fetch details for %d: %w", externalID, err)
	}

	m := buildMovie(req, externalID, details)
	if req.EditingID != nil {
		m.ID = *req.EditingID
		if err := s.store.Update(ctx, m); err != nil {
			return nil, fmt.Errorf("update movie %d: %w", m.ID, err)
		}
		return m, nil
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	return m, nil
}

// List returns a zero-based page of the catalog. Unsupported page sizes fall
// back to the default. The page is clamped so the row offset cannot overflow.
func (s *Service) List(ctx context.Context, page, rowsPerPage int) (*Page, error) {
	if !validRowsPerPage(rowsPerPage) {
		rowsPerPage = DefaultRowsPerPage
	}
	if page < 0 {
		page = 0
	}
	if maxPage := math.MaxInt/rowsPerPage - 1; page > maxPage {
		page = maxPage
	}
	items, total, err := s.store.List(ctx, page*rowsPerPage, rowsPerPage)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total, Page: page, RowsPerPage: rowsPerPage}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Movie, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) IDs(ctx context.Context) ([]int64, error) {
	return s.store.ListIDs(ctx)
}

// Refresh re-reads the provider's detail record for a stored movie and
// updates runtime, cast, director and, when it was never set, rating.
func (s *Service) Refresh(ctx context.Context, id int64) (*Movie, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var details *metadata.MovieDetails
	if fresh, ok := s.details.(freshDetails); ok {
		details, err = fresh.Refresh(ctx, m.ExternalID)
	} else {
		details, err = s.details.MovieDetails(ctx, m.ExternalID)
	}
	if err != nil {
		return nil, fmt.Errorf("refresh details for %d: %w", m.ExternalID, err)
	}

	if details.Runtime > 0 {
		m.DurationMinutes = details.Runtime
	}
	if len(details.Credits.Cast) > 0 {
		m.Cast = castFromCredits(details.Credits.Cast)
	}
	if d := directorFromCrew(details.Credits.Crew); d != "Unknown" {
		m.Director = d
	}
	if m.Rating == 0 {
		m.Rating = details.VoteAverage
	}
	if err := s.store.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update movie %d: %w", id, err)
	}
	logging.Ctx(ctx).Info().Int64("movie_id", id).Int("external_id", m.ExternalID).Msg("movie metadata refreshed")
	return m, nil
}

func validRowsPerPage(n int) bool {
	for _, v := range RowsPerPageOptions {
		if n == v {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the movie does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
