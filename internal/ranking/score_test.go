package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JustinTDCT/CineCurator/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		c        models.SearchCandidate
		query    string
		year     int
		expected float64
	}{
		{
			name:     "current year popular exact match",
			c:        models.SearchCandidate{Title: "The Matrix", ReleaseDate: "2024-01-01", Popularity: 100},
			query:    "matrix",
			year:     2024,
			expected: 0.4 + 0.3 + 0.3,
		},
		{
			name:     "no title match",
			c:        models.SearchCandidate{Title: "Inception", ReleaseDate: "2010-07-15", Popularity: 50},
			query:    "matrix",
			year:     2020,
			expected: 0.4*0.5 + 0.3*0.9,
		},
		{
			name:     "missing release date",
			c:        models.SearchCandidate{Title: "Unknown", Popularity: 10},
			query:    "unk",
			year:     2024,
			expected: 0.4*0.1 + 0.3,
		},
		{
			name:     "malformed release date",
			c:        models.SearchCandidate{Title: "Broken", ReleaseDate: "soon", Popularity: 0},
			query:    "zzz",
			year:     2024,
			expected: 0,
		},
		{
			name:     "very old title goes negative",
			c:        models.SearchCandidate{Title: "Metropolis", ReleaseDate: "1900-01-01"},
			query:    "xyz",
			year:     2024,
			expected: 0.3 * (1 - 1.24),
		},
		{
			name:     "empty query matches",
			c:        models.SearchCandidate{Title: "Anything", ReleaseDate: "2024-05-05"},
			query:    "",
			year:     2024,
			expected: 0.3 + 0.3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.c, tt.query, tt.year)
			if math.Abs(got-tt.expected) > 0.0001 {
				t.Errorf("Score() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestScore_AlwaysFinite(t *testing.T) {
	dates := []string{"", "x", "12", "abcd", "9999-99-99", "0001-01-01", "2024-13-45"}
	for _, d := range dates {
		c := models.SearchCandidate{Title: "T", ReleaseDate: d, Popularity: 1e6}
		s := Score(c, "t", 2024)
		assert.False(t, math.IsNaN(s) || math.IsInf(s, 0), "date %q gave %v", d, s)
	}
}

func TestScore_Deterministic(t *testing.T) {
	c := models.SearchCandidate{Title: "Dune: Part Two", ReleaseDate: "2024-02-27", Popularity: 321.5}
	first := Score(c, "dune", 2024)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(c, "dune", 2024))
	}
}
