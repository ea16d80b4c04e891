package tagging

// Selection is the caller-owned set of chosen labels. Tags keeps insertion
// order for display; Combos is the subset of Tags that are compound labels.
// Methods never modify the receiver and always return a fresh value.
type Selection struct {
	Tags   []string `json:"tags"`
	Combos []string `json:"combos"`
}

// Diff lists the labels added and removed between two selections.
type Diff struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

func (s Selection) Has(label string) bool {
	return contains(s.Tags, label)
}

// Toggle removes label when it is selected and appends it otherwise. For a
// compound label the same change is applied to Combos, keyed on membership in
// Tags, so Combos stays a subset of Tags even for an inconsistent input.
// Prerequisites of a compound label are left alone in both directions.
func (s Selection) Toggle(label string) Selection {
	wasSelected := contains(s.Tags, label)
	next := Selection{
		Tags:   toggle(s.Tags, label),
		Combos: clone(s.Combos),
	}
	if IsCompound(label) {
		if wasSelected {
			next.Combos = remove(s.Combos, label)
		} else if !contains(s.Combos, label) {
			next.Combos = append(next.Combos, label)
		}
	}
	return next
}

// SetCombos replaces the compound subset wholesale. The plain labels already
// selected keep their order and the new compound labels follow them.
// Non-compound or repeated entries in labels are ignored.
func (s Selection) SetCombos(labels []string) Selection {
	var chosen []string
	for _, l := range labels {
		if IsCompound(l) && !contains(chosen, l) {
			chosen = append(chosen, l)
		}
	}

	var tags []string
	for _, l := range s.Tags {
		if !IsCompound(l) {
			tags = append(tags, l)
		}
	}
	tags = append(tags, chosen...)

	return Selection{Tags: nonNil(tags), Combos: nonNil(chosen)}
}

// Diff reports what changed going from s to next.
func (s Selection) Diff(next Selection) Diff {
	d := Diff{Added: []string{}, Removed: []string{}}
	for _, l := range next.Tags {
		if !contains(s.Tags, l) {
			d.Added = append(d.Added, l)
		}
	}
	for _, l := range s.Tags {
		if !contains(next.Tags, l) {
			d.Removed = append(d.Removed, l)
		}
	}
	return d
}

func toggle(list []string, label string) []string {
	out := make([]string, 0, len(list)+1)
	found := false
	for _, l := range list {
		if l == label {
			found = true
			continue
		}
		out = append(out, l)
	}
	if !found {
		out = append(out, label)
	}
	return out
}

func remove(list []string, label string) []string {
	out := make([]string, 0, len(list))
	for _, l := range list {
		if l != label {
			out = append(out, l)
		}
	}
	return out
}

func contains(list []string, label string) bool {
	for _, l := range list {
		if l == label {
			return true
		}
	}
	return false
}

func clone(list []string) []string {
	return append([]string{}, list...)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
