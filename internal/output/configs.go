package output

import (
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
)

// WriteConfigurations lists stored merge configurations, one root per line.
func WriteConfigurations(w io.Writer, configs []config.MergeConfiguration) error {
	ew := &errWriter{w: w}
	if len(configs) == 0 {
		ew.println("No merge configurations saved")
		return ew.err
	}
	for _, c := range configs {
		ew.printf("%s\n  %s %s\n", c.Root, arrowPrefix, strings.Join(c.Order, ", "))
	}
	return ew.err
}

// WriteConfiguration reports the configuration just saved for root.
func WriteConfiguration(w io.Writer, root string, order []string) error {
	ew := &errWriter{w: w}
	ew.printf("Saved merge configuration for %s\n", root)
	for i, name := range order {
		ew.printf("  %d. %s\n", i+1, name)
	}
	return ew.err
}
