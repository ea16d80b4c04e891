package movies

import (
	"regexp"
	"strings"

	"github.com/JustinTDCT/CineCurator/internal/metadata"
)

const maxCast = 6

var nonSlugChars = regexp.MustCompile(`[^\w-]+`)

// Slugify lowercases title and collapses every run of characters outside
// [A-Za-z0-9_-] into a single hyphen.
func Slugify(title string) string {
	return nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
}

// castFromCredits keeps the first six billed actors, filling blanks.
func castFromCredits(credits []metadata.CastCredit) []CastMember {
	n := len(credits)
	if n > maxCast {
		n = maxCast
	}
	out := make([]CastMember, 0, n)
	for _, c := range credits[:n] {
		m := CastMember{Name: c.Name, Character: c.Character}
		if m.Name == "" {
			m.Name = "Unknown Actor"
		}
		if m.Character == "" {
			m.Character = "Unknown Role"
		}
		if c.ProfilePath != "" {
			p := c.ProfilePath
			m.ProfilePath = &p
		}
		out = append(out, m)
	}
	return out
}

// directorFromCrew returns the first crew member credited as Director.
func directorFromCrew(crew []metadata.CrewCredit) string {
	for _, c := range crew {
		if c.Job == "Director" {
			if c.Name == "" {
				break
			}
			return c.Name
		}
	}
	return "Unknown"
}

// buildMovie assembles the stored record from the form and the provider's
// detail response.
func buildMovie(req SaveRequest, externalID int, details *metadata.MovieDetails) *Movie {
	item := req.Item
	m := &Movie{
		Title:           item.Title,
		Slug:            Slugify(item.Title),
		Overview:        item.Overview,
		PosterPath:      item.PosterPath,
		ReleaseDate:     item.ReleaseDate,
		StreamingLink:   strings.TrimSpace(req.StreamingLink),
		ExternalID:      externalID,
		Rating:          item.VoteAverage,
		DurationMinutes: details.Runtime,
		Cast:            castFromCredits(details.Credits.Cast),
		Director:        directorFromCrew(details.Credits.Crew),
		Category:        req.Category,
		CustomTags:      append([]string{}, req.Tags...),
	}
	if m.Rating == 0 {
		m.Rating = details.VoteAverage
	}
	if id := strings.TrimSpace(req.AssetID); id != "" {
		m.AssetID = &id
	}
	return m
}
