// Package validate checks that a directory holds every file named by a merge
// configuration before anything is merged.
package validate

import (
	"fmt"
)

// Finder is the subset of discovery used by validation.
type Finder interface {
	Candidates(dir, pattern, name string, exclude ...string) ([]string, error)
}

// Ambiguity records a required name that matched more than one file.
type Ambiguity struct {
	Name    string   `json:"name"`
	Matches []string `json:"matches"`
}

// Result is the outcome of validating one directory.
type Result struct {
	// Files holds one resolved path per required name, in configuration
	// order. It is nil unless every name resolved to exactly one file.
	Files []string
	// Missing lists required names with no matching file, in configuration order.
	Missing []string
	// Ambiguous lists required names with more than one matching file.
	Ambiguous []Ambiguity
}

// OK reports whether every required name resolved to exactly one file.
func (r Result) OK() bool {
	return len(r.Missing) == 0 && len(r.Ambiguous) == 0
}

// Reason describes why validation failed. It is empty when OK is true.
func (r Result) Reason() string {
	switch {
	case r.OK():
		return ""
	case len(r.Ambiguous) == 0:
		return fmt.Sprintf("missing required files: %s", joinNames(r.Missing))
	case len(r.Missing) == 0:
		return fmt.Sprintf("ambiguous required files: %s", joinAmbiguous(r.Ambiguous))
	default:
		return fmt.Sprintf("missing required files: %s; ambiguous required files: %s",
			joinNames(r.Missing), joinAmbiguous(r.Ambiguous))
	}
}

// Validate resolves each name of order inside dir among the files matching
// pattern. The check is all-or-nothing: Files is only populated when every
// name has exactly one candidate. Discovery errors are returned as-is.
func Validate(f Finder, dir, pattern string, order []string, exclude ...string) (Result, error) {
	var res Result
	files := make([]string, 0, len(order))

	for _, name := range order {
		matches, err := f.Candidates(dir, pattern, name, exclude...)
		if err != nil {
			return Result{}, fmt.Errorf("resolving %q: %w", name, err)
		}
		switch len(matches) {
		case 0:
			res.Missing = append(res.Missing, name)
		case 1:
			files = append(files, matches[0])
		default:
			res.Ambiguous = append(res.Ambiguous, Ambiguity{Name: name, Matches: matches})
		}
	}

	if res.OK() {
		res.Files = files
	}
	return res, nil
}
