package pipeline

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/validate"

	"go.uber.org/multierr"
)

// Mode selects how input files are chosen inside each subdirectory.
type Mode string

const (
	// ModePattern merges every file matching the glob pattern, naturally sorted.
	ModePattern Mode = "pattern"
	// ModeConfiguration merges exactly the files named by the root's merge
	// configuration, in configuration order, and only when all are present.
	ModeConfiguration Mode = "configuration"
)

// Status is the terminal state of one subdirectory.
type Status string

const (
	StatusMerged  Status = "merged"
	StatusReady   Status = "ready"
	StatusNoMatch Status = "skipped-no-match"
	StatusMissing Status = "skipped-missing-files"
	StatusFailed  Status = "failed"
)

// Skipped reports whether s is one of the skip states.
func (s Status) Skipped() bool {
	return s == StatusNoMatch || s == StatusMissing
}

// Options describes one orchestration run.
type Options struct {
	// Root is the directory whose immediate subdirectories are merged.
	Root string
	// Pattern is the glob selecting input files (default "*.pdf"). In
	// configuration mode it restricts the candidates for each required name.
	Pattern string
	// Template is the output filename template (default "{directory}_{date}.pdf").
	Template string
	// Mode selects pattern or configuration mode (default pattern).
	Mode Mode
	// Preview resolves everything but writes nothing.
	Preview bool
}

// DirectoryResult is the outcome for one subdirectory. It is created fresh
// for every run and never persisted.
type DirectoryResult struct {
	Dir       string               `json:"dir"`
	Name      string               `json:"name"`
	Files     []string             `json:"files,omitempty"`
	Output    string               `json:"output,omitempty"`
	Status    Status               `json:"status"`
	Missing   []string             `json:"missing,omitempty"`
	Ambiguous []validate.Ambiguity `json:"ambiguous,omitempty"`
	Pages     int                  `json:"pages,omitempty"`
	Overwrite bool                 `json:"overwrite,omitempty"`
	Error     string               `json:"error,omitempty"`
	Err       error                `json:"-"`
}

// Reason is a one-line explanation of a skip or failure.
func (r DirectoryResult) Reason() string {
	switch r.Status {
	case StatusNoMatch:
		return "no matching files"
	case StatusMissing:
		return validate.Result{Missing: r.Missing, Ambiguous: r.Ambiguous}.Reason()
	case StatusFailed:
		return r.Error
	}
	return ""
}

// Summary aggregates the results of a run in processing order.
type Summary struct {
	Root        string            `json:"root"`
	Mode        Mode              `json:"mode"`
	Pattern     string            `json:"pattern"`
	Template    string            `json:"template"`
	Order       []string          `json:"order,omitempty"`
	Preview     bool              `json:"preview"`
	Results     []DirectoryResult `json:"results"`
	Merged      int               `json:"merged"`
	Ready       int               `json:"ready"`
	Skipped     int               `json:"skipped"`
	Failed      int               `json:"failed"`
	TotalFiles  int               `json:"totalFiles"`
	Interrupted bool              `json:"interrupted,omitempty"`
}

func (s *Summary) add(r DirectoryResult) {
	s.Results = append(s.Results, r)
	switch {
	case r.Status == StatusMerged:
		s.Merged++
		s.TotalFiles += len(r.Files)
	case r.Status == StatusReady:
		s.Ready++
		s.TotalFiles += len(r.Files)
	case r.Status.Skipped():
		s.Skipped++
	case r.Status == StatusFailed:
		s.Failed++
	}
}

// Outputs returns the paths of the files created by the run.
func (s *Summary) Outputs() []string {
	var out []string
	for _, r := range s.Results {
		if r.Status == StatusMerged {
			out = append(out, r.Output)
		}
	}
	return out
}

// Filter returns the results whose status is one of statuses.
func (s *Summary) Filter(statuses ...Status) []DirectoryResult {
	var out []DirectoryResult
	for _, r := range s.Results {
		for _, st := range statuses {
			if r.Status == st {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Err combines the failures of the run into one error, or nil.
func (s *Summary) Err() error {
	var err error
	for _, r := range s.Filter(StatusFailed) {
		err = multierr.Append(err, fmt.Errorf("%s: %w", r.Name, r.Err))
	}
	return err
}

// DirectoryStats describes what pattern discovery finds below a root.
type DirectoryStats struct {
	Root             string        `json:"root"`
	Pattern          string        `json:"pattern"`
	TotalSubdirs     int           `json:"totalSubdirs"`
	SubdirsWithFiles int           `json:"subdirsWithFiles"`
	TotalFiles       int           `json:"totalFiles"`
	Subdirs          []SubdirStats `json:"subdirs"`
}

// SubdirStats describes one subdirectory.
type SubdirStats struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	FileCount int      `json:"fileCount"`
	Files     []string `json:"files,omitempty"`
}
