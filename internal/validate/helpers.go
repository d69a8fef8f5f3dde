package validate

import (
	"path/filepath"
	"strings"
)

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

func joinAmbiguous(items []Ambiguity) string {
	parts := make([]string, len(items))
	for i, a := range items {
		bases := make([]string, len(a.Matches))
		for j, m := range a.Matches {
			bases[j] = filepath.Base(m)
		}
		parts[i] = a.Name + " (" + strings.Join(bases, " | ") + ")"
	}
	return strings.Join(parts, ", ")
}
