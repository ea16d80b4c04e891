package models

import "strconv"

// ──────────────────── Search ────────────────────

// SearchCandidate is one movie as returned by the metadata provider's search
// endpoint. It is never modified after decoding.
type SearchCandidate struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	GenreIDs    []int   `json:"genre_ids"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path,omitempty"`
}

// ReleaseYear returns the year encoded in the first four characters of
// ReleaseDate. ok is false when the date is missing or malformed.
func (c SearchCandidate) ReleaseYear() (year int, ok bool) {
	return ParseYear(c.ReleaseDate)
}

// ParseYear extracts a leading YYYY from a provider date string.
func ParseYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}

// PosterURL returns the full image URL for a provider poster path.
func PosterURL(path string) *string {
	if path == "" {
		return nil
	}
	u := "https://image.tmdb.org/t/p/w500" + path
	return &u
}

// ──────────────────── Recent searches ────────────────────

// RecentPick is the compact record kept for the "recent searches" strip.
type RecentPick struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path,omitempty"`
}

func PickFromCandidate(c SearchCandidate) RecentPick {
	return RecentPick{ID: c.ID, Title: c.Title, PosterPath: c.PosterPath}
}
