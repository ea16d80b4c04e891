package tagging

import (
	"github.com/JustinTDCT/CineCurator/internal/models"
)

type Source string

const (
	SourceGenre           Source = "genre"
	SourceGenreDerived    Source = "genre-derived"
	SourceContentAnalysis Source = "content-analysis"
	SourceAwards          Source = "awards"
	SourceRatings         Source = "ratings"
	SourcePopularity      Source = "popularity"
	SourceYear            Source = "year"
	SourceSuggestedCombo  Source = "suggested-combo"
)

type Category string

const (
	CategoryPrimary   Category = "primary"
	CategorySecondary Category = "secondary"
	CategorySuggested Category = "suggested"
)

// Tag is one suggested label for an item. Tags carry no identity and are
// rebuilt on every call to Infer.
type Tag struct {
	Label      string   `json:"label"`
	Source     Source   `json:"source"`
	Category   Category `json:"category"`
	IsCompound bool     `json:"is_compound"`
	Selected   bool     `json:"selected"`
}

// Infer derives the tag suggestions for item given the labels the user has
// already selected. Output order is fixed: genre tags in the item's genre
// order, the statistical tags, then compound suggestions in table order.
// Labels may repeat when independent rules produce the same text.
func Infer(item models.SearchCandidate, selected []string, currentYear int) []Tag {
	sel := make(map[string]bool, len(selected))
	for _, l := range selected {
		sel[l] = true
	}

	tags := []Tag{}
	emit := func(label string, src Source, cat Category, compound bool) {
		tags = append(tags, Tag{
			Label:      label,
			Source:     src,
			Category:   cat,
			IsCompound: compound,
			Selected:   sel[label],
		})
	}

	for _, id := range item.GenreIDs {
		rule, ok := genreRules[id]
		if !ok {
			continue
		}
		for _, l := range rule.Primary {
			emit(l, SourceGenre, CategoryPrimary, false)
		}
		for _, l := range rule.Secondary {
			emit(l, SourceGenreDerived, CategorySecondary, false)
		}
	}

	year, hasYear := item.ReleaseYear()
	classic := hasYear && year < classicCutoff
	votes := item.VoteCount
	avg := item.VoteAverage

	if trueStoryPhrases.MatchString(item.Overview) &&
		(hasGenre(item, genreDrama) || hasGenre(item, genreDocumentary)) &&
		avg >= 6.5 && votes > 1000 {
		emit(LabelTrueStory, SourceContentAnalysis, CategoryPrimary, false)
	}

	if (classic && avg >= 7.5 && votes > 1000) ||
		(!classic && avg >= 7.8 && votes > 2000 && item.Popularity > 50) {
		emit(LabelOscarWinner, SourceAwards, CategoryPrimary, false)
	}
	if (classic && avg >= 7.2 && votes > 800) ||
		(!classic && avg >= 7.5 && votes > 1500) {
		emit(LabelOscarNominee, SourceAwards, CategorySecondary, false)
	}

	if avg >= 8 && votes > 1000 {
		emit(LabelMustWatch, SourceRatings, CategoryPrimary, false)
	}
	if item.Popularity > 100 && votes > 500 {
		emit(LabelTrending, SourcePopularity, CategorySecondary, false)
	}

	if hasYear {
		if year == currentYear {
			emit(LabelLatestRelease, SourceYear, CategorySecondary, false)
		}
		if year == currentYear-1 {
			emit(LabelRecent, SourceYear, CategorySuggested, false)
		}
		if classic {
			emit(LabelClassic, SourceYear, CategorySecondary, false)
		}
	}

	for _, c := range combos {
		if allSelected(sel, c.Prerequisites) {
			emit(c.Label, SourceSuggestedCombo, CategorySecondary, true)
		}
	}
	return tags
}

func hasGenre(item models.SearchCandidate, id int) bool {
	for _, g := range item.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

func allSelected(sel map[string]bool, labels []string) bool {
	for _, l := range labels {
		if !sel[l] {
			return false
		}
	}
	return true
}
