package ranking

import (
	"github.com/JustinTDCT/CineCurator/internal/models"
	"github.com/JustinTDCT/CineCurator/internal/textutil"
)

const (
	PopularityWeight = 0.4
	RecencyWeight    = 0.3
	TitleMatchWeight = 0.3
)

// ScoredCandidate is a search result decorated with its relevance score.
type ScoredCandidate struct {
	models.SearchCandidate
	RelevanceScore float64 `json:"relevance_score"`
}

// Score ranks a candidate against the query. The result is only meaningful
// relative to other scores computed with the same query and year.
func Score(c models.SearchCandidate, query string, currentYear int) float64 {
	return PopularityWeight*(c.Popularity/100) +
		RecencyWeight*Recency(c, currentYear) +
		TitleMatchWeight*TitleMatch(c.Title, query)
}

// Recency is 1 for a current-year release and drops by 0.01 per year of age.
// It is not clamped, so titles older than a century go negative. An unknown
// release year counts as 0.
func Recency(c models.SearchCandidate, currentYear int) float64 {
	year, ok := c.ReleaseYear()
	if !ok {
		return 0
	}
	return 1 - float64(currentYear-year)/100
}

// TitleMatch is 1 when query occurs in title ignoring case, else 0.
func TitleMatch(title, query string) float64 {
	if textutil.ContainsFold(title, query) {
		return 1
	}
	return 0
}

// ScoreAll scores every candidate, preserving input order.
func ScoreAll(cs []models.SearchCandidate, query string, currentYear int) []ScoredCandidate {
	out := make([]ScoredCandidate, len(cs))
	for i, c := range cs {
		out[i] = ScoredCandidate{SearchCandidate: c, RelevanceScore: Score(c, query, currentYear)}
	}
	return out
}
