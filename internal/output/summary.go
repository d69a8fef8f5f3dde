// Package output renders run summaries, directory statistics and stored
// merge configurations for the terminal.
package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/pipeline"
)

const arrowPrefix = "→"

// WriteSummary writes a human-readable report of a run to w. Preview runs
// are labelled as such. With verbose set, the input files of every
// directory are listed in merge order.
func WriteSummary(w io.Writer, s *pipeline.Summary, verbose bool) error {
	ew := &errWriter{w: w}

	// --- Header ---
	if s.Preview {
		ew.printf("Preview of %s (nothing will be written)\n", s.Root)
	} else {
		ew.printf("Merge of %s\n", s.Root)
	}
	ew.printf("  Mode:     %s\n", s.Mode)
	ew.printf("  Pattern:  %s\n", s.Pattern)
	ew.printf("  Template: %s\n", s.Template)
	if len(s.Order) > 0 {
		ew.printf("  Order:    %s\n", strings.Join(s.Order, ", "))
	}

	// --- Directories ---
	if len(s.Results) > 0 {
		ew.println()
	}
	for _, r := range s.Results {
		switch r.Status {
		case pipeline.StatusMerged, pipeline.StatusReady:
			detail := fmt.Sprintf("%d files", len(r.Files))
			if r.Status == pipeline.StatusMerged {
				detail += fmt.Sprintf(", %d pages", r.Pages)
			}
			if r.Overwrite {
				detail += ", overwrites existing file"
			}
			ew.printf("  %-20s %s %s (%s)\n", r.Name, arrowPrefix, filepath.Base(r.Output), detail)
			if verbose {
				for _, f := range r.Files {
					ew.printf("      %s\n", filepath.Base(f))
				}
			}
		case pipeline.StatusFailed:
			ew.printf("  %-20s failed: %s\n", r.Name, r.Reason())
		default:
			ew.printf("  %-20s skipped: %s\n", r.Name, r.Reason())
		}
	}

	// --- Result ---
	ew.println()
	if s.Preview {
		ew.printf("Would merge %d directories (%d files), %d skipped, %d failed\n",
			s.Ready, s.TotalFiles, s.Skipped, s.Failed)
	} else {
		ew.printf("Merged %d directories (%d files), %d skipped, %d failed\n",
			s.Merged, s.TotalFiles, s.Skipped, s.Failed)
	}
	if s.Interrupted {
		ew.println("Run interrupted before all directories were processed")
	}
	return ew.err
}

// FormatSummary returns the WriteSummary output as a string.
func FormatSummary(s *pipeline.Summary, verbose bool) string {
	var sb strings.Builder
	_ = WriteSummary(&sb, s, verbose)
	return sb.String()
}

// errWriter remembers the first write error so callers can print freely.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, args...)
}
