package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/JustinTDCT/CineCurator/internal/metadata"
	"github.com/JustinTDCT/CineCurator/internal/ranking"
)

// FailureMessage is the only text shown to users when a search fails.
const FailureMessage = "Failed to search movies. Please try again."

var ErrQueryTooShort = errors.New("search: query too short")

// Result is one ranked and grouped page of provider results.
type Result struct {
	Query        string `json:"query"`
	Page         int    `json:"page"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
	CurrentYear  int    `json:"current_year"`
	ranking.ResultSet
}

type Service struct {
	provider metadata.Provider
	minLen   int
	now      func() time.Time
}

func NewService(provider metadata.Provider, minQueryLength int) *Service {
	if minQueryLength < 1 {
		minQueryLength = 1
	}
	return &Service{provider: provider, minLen: minQueryLength, now: time.Now}
}

// SetClock overrides the clock used to pick the reference year.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Accepts reports whether query is long enough to be sent to the provider.
func (s *Service) Accepts(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= s.minLen
}

// Search fetches one page from the provider and ranks it against the query.
func (s *Service) Search(ctx context.Context, query string, page int) (*Result, error) {
	query = strings.TrimSpace(query)
	if !s.Accepts(query) {
		return nil, ErrQueryTooShort
	}
	if page < 1 {
		page = 1
	}

	res, err := s.provider.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	year := s.now().Year()
	return &Result{
		Query:        query,
		Page:         res.Page,
		TotalPages:   res.TotalPages,
		TotalResults: res.TotalResults,
		CurrentYear:  year,
		ResultSet:    ranking.Group(res.Results, query, year),
	}, nil
}
