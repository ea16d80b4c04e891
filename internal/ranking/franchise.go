package ranking

import (
	"regexp"
	"sort"
	"strings"

	"github.com/JustinTDCT/CineCurator/internal/models"
)

// franchiseSplit matches the shortest prefix ending at a colon, a whitespace
// character (each optionally followed by a hyphen) or a digit run. Whitespace
// includes Unicode separators such as NBSP, which TMDB titles do contain.
var franchiseSplit = regexp.MustCompile(`^(.*?)(?:[\s\p{Z}\x{FEFF}:]-?|\d+)`)

// FranchiseGroup is a cluster of results sharing a title prefix. Members are
// ordered by descending score.
type FranchiseGroup struct {
	Name    string            `json:"name"`
	Members []ScoredCandidate `json:"members"`
}

// ResultSet partitions a batch of results. Franchises keep the order in which
// each franchise name was first seen in the input.
type ResultSet struct {
	Franchises []FranchiseGroup  `json:"franchises"`
	Standalone []ScoredCandidate `json:"standalone"`
}

// Franchise returns the group with the given name.
func (rs ResultSet) Franchise(name string) (FranchiseGroup, bool) {
	for _, g := range rs.Franchises {
		if g.Name == name {
			return g, true
		}
	}
	return FranchiseGroup{}, false
}

// Len is the number of candidates in the set.
func (rs ResultSet) Len() int {
	n := len(rs.Standalone)
	for _, g := range rs.Franchises {
		n += len(g.Members)
	}
	return n
}

// FranchiseKey derives the franchise name for a title: everything before the
// first colon, whitespace or digit, trimmed. A title with none of those is its
// own key. Digits cut the key even inside a word, so "Se7en" keys as "Se" and
// "7even" keys as "" (never grouped).
func FranchiseKey(title string) string {
	m := franchiseSplit.FindStringSubmatch(title)
	if m == nil {
		return strings.TrimSpace(title)
	}
	return strings.TrimSpace(m[1])
}

// Group scores the candidates and splits them into franchise groups and
// standalone entries. A candidate is grouped only when some other candidate in
// the same batch has a title starting with its key (case-sensitive), and a
// group that would end up with a single member is dissolved.
func Group(cs []models.SearchCandidate, query string, currentYear int) ResultSet {
	scored := ScoreAll(cs, query, currentYear)
	rs := ResultSet{
		Franchises: []FranchiseGroup{},
		Standalone: []ScoredCandidate{},
	}

	keys := make([]string, len(scored))
	counts := make(map[string]int)
	for i, sc := range scored {
		key := FranchiseKey(sc.Title)
		if key == "" || !sharedByOther(scored, i, key) {
			continue
		}
		keys[i] = key
		counts[key]++
	}

	index := make(map[string]int)
	for i, sc := range scored {
		key := keys[i]
		if key == "" || counts[key] < 2 {
			rs.Standalone = append(rs.Standalone, sc)
			continue
		}
		gi, ok := index[key]
		if !ok {
			gi = len(rs.Franchises)
			index[key] = gi
			rs.Franchises = append(rs.Franchises, FranchiseGroup{Name: key})
		}
		rs.Franchises[gi].Members = append(rs.Franchises[gi].Members, sc)
	}

	for i := range rs.Franchises {
		sortByScore(rs.Franchises[i].Members)
	}
	sortByScore(rs.Standalone)
	return rs
}

func sharedByOther(scored []ScoredCandidate, self int, key string) bool {
	for j, other := range scored {
		if j != self && strings.HasPrefix(other.Title, key) {
			return true
		}
	}
	return false
}

func sortByScore(s []ScoredCandidate) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].RelevanceScore > s[j].RelevanceScore
	})
}
