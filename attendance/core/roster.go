package core

// MergeRoster concatenates the given rosters and drops repeated ids.
// The first occurrence of an id wins.
func MergeRoster(rosters ...[]Person) []Person {
	seen := make(map[string]bool)
	var merged []Person
	for _, roster := range rosters {
		for _, p := range roster {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}
	return merged
}
