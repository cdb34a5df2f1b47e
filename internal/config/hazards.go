package config

import (
	"fmt"
	"strings"
)

// Hazard describes a vocabulary entry that can never be recorded for some
// filenames because an earlier entry in the same list is a substring of it.
// With Objective [60X, 160X], a file named "..._160X.tif" is labelled 60X.
type Hazard struct {
	// List is the vocabulary name: species, labeling or objective.
	List string
	// Earlier is the entry that wins.
	Earlier string
	// Later is the entry that is shadowed whenever Earlier also matches.
	Later string
}

func (h Hazard) String() string {
	return fmt.Sprintf("%s: %q precedes %q and matches every filename %q matches",
		h.List, h.Earlier, h.Later, h.Later)
}

// Hazards lists every order-dependent pair in the vocabularies. Matching
// behavior is not changed; callers surface these as warnings so the list can
// be reordered deliberately.
func (e ExtractionConfig) Hazards() []Hazard {
	var out []Hazard
	out = append(out, shadowed("species", e.Species, false)...)
	out = append(out, shadowed("labeling", e.Labeling, false)...)
	out = append(out, shadowed("objective", e.Objective, true)...)
	return out
}

func shadowed(list string, terms []string, foldCase bool) []Hazard {
	var out []Hazard
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			earlier, later := terms[i], terms[j]
			if foldCase {
				earlier, later = strings.ToLower(earlier), strings.ToLower(later)
			}
			if earlier != "" && strings.Contains(later, earlier) {
				out = append(out, Hazard{List: list, Earlier: terms[i], Later: terms[j]})
			}
		}
	}
	return out
}
