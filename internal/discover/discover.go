// Package discover locates the subdirectories of a merge root and the input
// files inside each of them, by glob pattern or by required base name.
package discover

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/natsort"

	"github.com/spf13/afero"
)

// ErrBadPattern is returned for glob patterns that cannot be matched.
var ErrBadPattern = errors.New("invalid file pattern")

// Finder performs discovery against a file system.
type Finder struct {
	fs afero.Fs
}

// NewFinder creates a Finder backed by fs.
func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// ValidatePattern checks that pattern is a well-formed glob that applies to
// the immediate contents of a directory.
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("%w: pattern is empty", ErrBadPattern)
	}
	if strings.ContainsRune(pattern, '/') || strings.ContainsRune(pattern, filepath.Separator) {
		return fmt.Errorf("%w: %q must not contain a path separator", ErrBadPattern, pattern)
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrBadPattern, pattern, err)
	}
	return nil
}

// Subdirectories returns the immediate child directories of root in natural
// order of their names.
func (f *Finder) Subdirectories(root string) ([]string, error) {
	entries, err := afero.ReadDir(f.fs, root)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", root, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	natsort.Sort(dirs)

	out := make([]string, len(dirs))
	for i, name := range dirs {
		out[i] = filepath.Join(root, name)
	}
	return out, nil
}

// Match returns the regular files directly inside dir whose base name
// matches pattern, in natural order. Base names listed in exclude are left
// out. An empty result is not an error.
func (f *Finder) Match(dir, pattern string, exclude ...string) ([]string, error) {
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Mode().IsRegular() || excluded(e.Name(), exclude) {
			continue
		}
		ok, err := path.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, pattern, err)
		}
		if ok {
			names = append(names, e.Name())
		}
	}
	natsort.Sort(names)

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}
	return files, nil
}

// Candidates returns the files matching pattern whose base name without its
// extension equals name, ignoring case. More than one candidate means the
// name is ambiguous in dir.
func (f *Finder) Candidates(dir, pattern, name string, exclude ...string) ([]string, error) {
	files, err := f.Match(dir, pattern, exclude...)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, file := range files {
		if strings.EqualFold(Stem(file), name) {
			out = append(out, file)
		}
	}
	return out, nil
}

// Stem returns the base name of p without its extension.
func Stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func excluded(name string, exclude []string) bool {
	for _, x := range exclude {
		if x != "" && strings.EqualFold(x, name) {
			return true
		}
	}
	return false
}
