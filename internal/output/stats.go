package output

import (
	"io"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/pipeline"
)

// WriteStats writes the directory statistics of a root to w. With verbose
// set, the matching files of every subdirectory are listed as well.
func WriteStats(w io.Writer, st *pipeline.DirectoryStats, verbose bool) error {
	ew := &errWriter{w: w}
	ew.printf("Directory statistics for %s\n", st.Root)
	ew.printf("  Pattern:                %s\n", st.Pattern)
	ew.printf("  Subdirectories:         %d\n", st.TotalSubdirs)
	ew.printf("  With matching files:    %d\n", st.SubdirsWithFiles)
	ew.printf("  Matching files:         %d\n", st.TotalFiles)
	for _, sub := range st.Subdirs {
		ew.printf("    %-20s %d\n", sub.Name, sub.FileCount)
		if verbose {
			for _, f := range sub.Files {
				ew.printf("        %s\n", f)
			}
		}
	}
	return ew.err
}
