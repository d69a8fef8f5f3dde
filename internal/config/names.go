package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrNoNames is returned when a merge configuration has no names.
	ErrNoNames = errors.New("merge configuration needs at least one file name")
	// ErrDuplicateName is returned when a name appears twice, ignoring case.
	ErrDuplicateName = errors.New("duplicate file name in merge configuration")
)

// ParseNames splits a comma-separated list such as "intro, body,conclusion"
// and normalizes it with NormalizeNames.
func ParseNames(list string) ([]string, error) {
	return NormalizeNames(strings.Split(list, ","))
}

// NormalizeNames trims each name, drops empty entries and a trailing ".pdf"
// extension, and rejects an empty result or case-insensitive duplicates.
// Order is preserved.
func NormalizeNames(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if strings.EqualFold(filepath.Ext(n), ".pdf") {
			n = strings.TrimSpace(n[:len(n)-len(".pdf")])
		}
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, n)
		}
		seen[key] = true
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, ErrNoNames
	}
	return out, nil
}
