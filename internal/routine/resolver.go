// Package routine decides which exercises a session starts with and holds the
// built-in split templates and exercise catalog.
package routine

import "alcyxob/smartfit/internal/domain"

// ResolveExercises returns the exercise list a session should start with.
// A routine with its own exercises wins, verbatim. Otherwise the split
// template named by fallbackCategory is used; an unknown template or an empty
// fallback yields an empty list.
func ResolveExercises(r *domain.Routine, library Library, fallbackCategory string) []string {
	if r != nil && len(r.Exercises) > 0 {
		return append([]string(nil), r.Exercises...)
	}
	if fallbackCategory == "" {
		return []string{}
	}
	exercises, ok := library[fallbackCategory]
	if !ok {
		return []string{}
	}
	return append([]string{}, exercises...)
}
