package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinTDCT/CineCurator/internal/models"
)

func candidates(titles ...string) []models.SearchCandidate {
	out := make([]models.SearchCandidate, len(titles))
	for i, title := range titles {
		out[i] = models.SearchCandidate{ID: i + 1, Title: title}
	}
	return out
}

func titlesOf(s []ScoredCandidate) []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Title
	}
	return out
}

func TestFranchiseKey(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Matrix", "Matrix"},
		{"Matrix Reloaded", "Matrix"},
		{"Alien: Covenant", "Alien"},
		{"Rocky 2", "Rocky"},
		{"Rocky2", "Rocky"},
		{"Spider -Man", "Spider"},
		{"Matrix\u00a0Reloaded", "Matrix"},
		{"Matrix\u2003Revolutions", "Matrix"},
		{"The Matrix", "The"},
		{"Se7en", "Se"},
		{"7even", ""},
		{"2001: A Space Odyssey", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, FranchiseKey(tt.title))
		})
	}
}

func TestGroup_MatrixExample(t *testing.T) {
	rs := Group(candidates("Matrix", "Matrix Reloaded", "Matrix Revolutions", "Inception"), "", 2024)

	require.Len(t, rs.Franchises, 1)
	g, ok := rs.Franchise("Matrix")
	require.True(t, ok)
	assert.Len(t, g.Members, 3)
	assert.Equal(t, []string{"Inception"}, titlesOf(rs.Standalone))
}

func TestGroup_NonBreakingSpaceTitles(t *testing.T) {
	rs := Group(candidates("Matrix", "Matrix\u00a0Reloaded"), "", 2024)
	g, ok := rs.Franchise("Matrix")
	assert.True(t, ok)
	assert.Len(t, g.Members, 2)
	assert.Empty(t, rs.Standalone)
}

func TestGroup_Empty(t *testing.T) {
	rs := Group(nil, "x", 2024)
	assert.Empty(t, rs.Franchises)
	assert.Empty(t, rs.Standalone)
	assert.NotNil(t, rs.Franchises)
	assert.NotNil(t, rs.Standalone)
}

func TestGroup_SingleCandidateIsStandalone(t *testing.T) {
	rs := Group(candidates("Matrix Reloaded"), "", 2024)
	assert.Empty(t, rs.Franchises)
	assert.Len(t, rs.Standalone, 1)
}

func TestGroup_DigitTitlesNeverGroup(t *testing.T) {
	rs := Group(candidates("7even", "7even 2", "Se7en"), "", 2024)
	assert.Empty(t, rs.Franchises)
	assert.Len(t, rs.Standalone, 3)
}

func TestGroup_CaseSensitivePrefix(t *testing.T) {
	rs := Group(candidates("Alien", "alien nation"), "", 2024)
	assert.Empty(t, rs.Franchises)
}

func TestGroup_NoSingleMemberGroup(t *testing.T) {
	// "Star" is a prefix of "Starship Troopers" but that title keys as
	// "Starship", so "Star" would otherwise be alone.
	rs := Group(candidates("Star", "Starship Troopers", "Heat"), "", 2024)
	for _, g := range rs.Franchises {
		assert.GreaterOrEqual(t, len(g.Members), 2, "group %q", g.Name)
	}
	assert.Equal(t, 3, rs.Len())
}

func TestGroup_FirstSeenOrder(t *testing.T) {
	rs := Group(candidates("Alien", "Rocky", "Alien: Resurrection", "Rocky II"), "", 2024)
	require.Len(t, rs.Franchises, 2)
	assert.Equal(t, "Alien", rs.Franchises[0].Name)
	assert.Equal(t, "Rocky", rs.Franchises[1].Name)
}

func TestGroup_SortedAndStable(t *testing.T) {
	cs := []models.SearchCandidate{
		{ID: 1, Title: "Heat", Popularity: 10},
		{ID: 2, Title: "Alien", Popularity: 20},
		{ID: 3, Title: "Ronin", Popularity: 10},
		{ID: 4, Title: "Alien 3", Popularity: 50},
		{ID: 5, Title: "Alien: Covenant", Popularity: 20},
		{ID: 6, Title: "Tenet", Popularity: 30},
		{ID: 7, Title: "Memento", Popularity: 10},
	}
	rs := Group(cs, "", 2024)

	g, ok := rs.Franchise("Alien")
	require.True(t, ok)
	ids := []int{}
	for _, m := range g.Members {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{4, 2, 5}, ids)

	ids = ids[:0]
	for _, m := range rs.Standalone {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{6, 1, 3, 7}, ids)
}

func TestGroup_StrictPartition(t *testing.T) {
	cs := candidates(
		"Matrix", "Matrix Reloaded", "The Matrix", "The Thing", "Star", "Starship Troopers",
		"Alien", "Alien 3", "Aliens", "Se7en", "7even", "Rocky", "Rocky II", "Heat",
	)
	rs := Group(cs, "a", 2024)

	seen := map[int]int{}
	for _, g := range rs.Franchises {
		assert.GreaterOrEqual(t, len(g.Members), 2)
		for i, m := range g.Members {
			seen[m.ID]++
			if i > 0 {
				assert.GreaterOrEqual(t, g.Members[i-1].RelevanceScore, m.RelevanceScore)
			}
		}
	}
	for _, m := range rs.Standalone {
		seen[m.ID]++
	}
	assert.Equal(t, len(cs), rs.Len())
	for _, c := range cs {
		assert.Equal(t, 1, seen[c.ID], "id %d", c.ID)
	}
}

func TestGroup_DoesNotMutateInput(t *testing.T) {
	cs := candidates("Alien 3", "Alien")
	cs[1].Popularity = 90
	before := append([]models.SearchCandidate(nil), cs...)
	Group(cs, "", 2024)
	assert.Equal(t, before, cs)
}
