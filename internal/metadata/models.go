package metadata

import "github.com/JustinTDCT/CineCurator/internal/models"

// SearchPage is one page of provider search results.
type SearchPage struct {
	Page         int                      `json:"page"`
	TotalPages   int                      `json:"total_pages"`
	TotalResults int                      `json:"total_results"`
	Results      []models.SearchCandidate `json:"results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastCredit struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type CrewCredit struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

type Credits struct {
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

// MovieDetails is the detail record with credits appended.
type MovieDetails struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Genres      []Genre `json:"genres"`
	Credits     Credits `json:"credits"`
}

// Candidate flattens the details into the search-result shape so the same
// ranking and tagging code can run on it.
func (d *MovieDetails) Candidate() models.SearchCandidate {
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		ids = append(ids, g.ID)
	}
	return models.SearchCandidate{
		ID:          d.ID,
		Title:       d.Title,
		ReleaseDate: d.ReleaseDate,
		Popularity:  d.Popularity,
		VoteAverage: d.VoteAverage,
		VoteCount:   d.VoteCount,
		GenreIDs:    ids,
		Overview:    d.Overview,
		PosterPath:  d.PosterPath,
	}
}
