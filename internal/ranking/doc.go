// Package ranking scores provider search results and clusters them into
// franchise groups.
//
// Both operations are pure: the reference year is passed in by the caller
// and the input slice is never modified.
//
//	set := ranking.Group(results, "matrix", 2024)
//	for _, g := range set.Franchises {
//		fmt.Println(g.Name, len(g.Members))
//	}
package ranking
