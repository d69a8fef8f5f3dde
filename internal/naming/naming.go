// Package naming turns an output template such as "{directory}_{date}.pdf"
// into a concrete, file-system safe file name.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// ErrEmptyName is returned when a template expands to nothing usable.
var ErrEmptyName = errors.New("output name is empty")

// Recognized placeholders.
const (
	PlaceholderDirectory = "directory"
	PlaceholderDate      = "date"
	PlaceholderTime      = "time"
	PlaceholderDateTime  = "datetime"
)

// Go layouts for the date and time placeholders.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "150405"
	DateTimeLayout = DateLayout + "_" + TimeLayout
)

const extension = ".pdf"

var placeholderRegex = regexp.MustCompile(`\{([A-Za-z_]+)\}`)

// Context carries the per-directory inputs of a template expansion.
type Context struct {
	// Directory is the subdirectory name (a full path is reduced to its base).
	Directory string
	// Now is the timestamp used for the date and time placeholders.
	Now time.Time
}

// Values computes the substitution for every recognized placeholder.
func Values(ctx Context) map[string]string {
	return map[string]string{
		PlaceholderDirectory: baseName(ctx.Directory),
		PlaceholderDate:      ctx.Now.Format(DateLayout),
		PlaceholderTime:      ctx.Now.Format(TimeLayout),
		PlaceholderDateTime:  ctx.Now.Format(DateTimeLayout),
	}
}

// Expand substitutes recognized placeholders in template, sanitises the
// result and makes sure it ends in ".pdf". Unrecognized placeholders are
// kept literally. Substitution happens in a single pass, so values that
// themselves look like placeholders are not expanded again.
func Expand(template string, ctx Context) (string, error) {
	vals := Values(ctx)
	name := placeholderRegex.ReplaceAllStringFunc(template, func(m string) string {
		if v, ok := vals[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})

	name = replaceIllegal(name)
	stem := name
	if strings.HasSuffix(strings.ToLower(stem), extension) {
		stem = stem[:len(stem)-len(extension)]
	}
	if strings.Trim(stem, ". ") == "" {
		return "", fmt.Errorf("%w: template %q", ErrEmptyName, template)
	}

	name = Sanitize(name)
	if !strings.HasSuffix(strings.ToLower(name), extension) {
		name += extension
	}
	return name, nil
}

// Unknown returns the placeholders in template that Expand leaves untouched,
// sorted and without duplicates.
func Unknown(template string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range placeholderRegex.FindAllStringSubmatch(template, -1) {
		switch m[1] {
		case PlaceholderDirectory, PlaceholderDate, PlaceholderTime, PlaceholderDateTime:
			continue
		}
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	sort.Strings(out)
	return out
}

// Sanitize replaces characters that are not allowed in file names on common
// platforms with '_' and trims surrounding spaces and dots.
func Sanitize(name string) string {
	return strings.Trim(replaceIllegal(name), " .")
}

func replaceIllegal(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			sb.WriteRune('_')
		case strings.ContainsRune(`/\<>:"|?*`, r):
			sb.WriteRune('_')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func baseName(dir string) string {
	dir = strings.TrimRight(dir, `/\`)
	if i := strings.LastIndexAny(dir, `/\`); i >= 0 {
		return dir[i+1:]
	}
	return dir
}
