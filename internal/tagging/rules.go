package tagging

import "regexp"

// ──────────────────── Labels ────────────────────

const (
	LabelTrueStory     = "Based on True Story"
	LabelOscarWinner   = "OSCAR® Winner"
	LabelOscarNominee  = "OSCAR® Nominee"
	LabelMustWatch     = "Must Watch"
	LabelTrending      = "Trending"
	LabelLatestRelease = "Latest Release"
	LabelRecent        = "Recent"
	LabelClassic       = "Classic"
)

const (
	genreDrama       = 18
	genreDocumentary = 99

	// classicCutoff splits the award heuristics into the pre-2000 and modern
	// periods. It is also the Classic label boundary.
	classicCutoff = 2000
)

// ──────────────────── Genre table ────────────────────

type genreRule struct {
	Primary   []string
	Secondary []string
}

var genreRules = map[int]genreRule{
	28:    {Primary: []string{"Action"}, Secondary: []string{"High-Octane"}},
	12:    {Primary: []string{"Adventure"}, Secondary: []string{"Epic"}},
	16:    {Primary: []string{"Animation"}, Secondary: []string{"Family-Friendly"}},
	35:    {Primary: []string{"Comedy"}, Secondary: []string{"Feel-Good", "Adult Humor"}},
	80:    {Primary: []string{"Thriller"}, Secondary: []string{"Suspense"}},
	18:    {Primary: []string{"Drama"}, Secondary: []string{"Thought-Provoking"}},
	27:    {Primary: []string{"Horror"}, Secondary: []string{"Psychological"}},
	878:   {Primary: []string{"Sci-Fi"}, Secondary: []string{"Futuristic"}},
	10752: {Primary: []string{"War"}, Secondary: []string{"Historical"}},
	10749: {Primary: []string{"Romance"}, Secondary: []string{"Heartwarming"}},
	53:    {Primary: []string{"Mystery"}, Secondary: []string{"Plot-Twist"}},
	99:    {Primary: []string{"Documentary"}, Secondary: []string{"Educational"}},
	10402: {Primary: []string{"Musical"}, Secondary: []string{"Upbeat"}},
	37:    {Primary: []string{"Western"}, Secondary: []string{"Classic"}},
}

// ──────────────────── Compound table ────────────────────

// Combo is a compound label unlocked once every prerequisite is selected.
type Combo struct {
	Label         string   `json:"label"`
	Prerequisites []string `json:"prerequisites"`
}

var combos = []Combo{
	{"Edge of Seat", []string{"Thriller", "Suspense"}},
	{"Mind Bending", []string{"Psychological", "Plot-Twist"}},
	{"Heart Racing", []string{"Action", "High-Octane"}},
	{"Soul Stirring", []string{"Drama", "Thought-Provoking"}},
	{"Spine Chilling", []string{"Horror", "Psychological"}},
	{"Feel Good Vibes", []string{"Comedy", "Feel-Good"}},
	{"Visual Spectacle", []string{"Epic", "High-Octane"}},
	{"Time Bender", []string{"Sci-Fi", "Plot-Twist"}},
	{"Emotional Rollercoaster", []string{"Drama", "Plot-Twist"}},
	{"Family Fun", []string{"Animation", "Family-Friendly"}},
	{"Dark Comedy", []string{"Comedy", "Drama"}},
	{"Romantic Comedy", []string{"Romance", "Comedy"}},
	{"Action Comedy", []string{"Action", "Comedy"}},
	{"Psychological Thriller", []string{"Horror", "Psychological"}},
	{"Sci-Fi Action", []string{"Sci-Fi", "Action"}},
}

var comboIndex = func() map[string]bool {
	m := make(map[string]bool, len(combos))
	for _, c := range combos {
		m[c.Label] = true
	}
	return m
}()

// Combos returns a copy of the compound label table in display order.
func Combos() []Combo {
	out := make([]Combo, len(combos))
	for i, c := range combos {
		out[i] = Combo{Label: c.Label, Prerequisites: append([]string(nil), c.Prerequisites...)}
	}
	return out
}

// IsCompound reports whether label names a compound tag.
func IsCompound(label string) bool {
	return comboIndex[label]
}

// ──────────────────── Content analysis ────────────────────

var trueStoryPhrases = regexp.MustCompile(`(?i)\b(based on|true story|real events|real life|actual events|inspired by|true account)\b`)
