// Package merger concatenates the pages of several PDF documents into one
// output document using pdfcpu. Inputs are only ever opened for reading and
// the output appears only once the merge has fully succeeded.
package merger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrNoInputs is returned when Merge is called without input files.
var ErrNoInputs = errors.New("no files to merge")

func init() {
	// Keep pdfcpu from creating its own config directory under the user's
	// config dir on first use.
	model.ConfigPath = "disable"
}

// Merger appends whole documents, in order, into a new PDF.
type Merger struct {
	fs  afero.Fs
	log *zap.Logger
}

// New creates a Merger that reads and writes through fs.
func New(fs afero.Fs, log *zap.Logger) *Merger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Merger{fs: fs, log: log}
}

func configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}

// readInput loads the whole PDF at path into memory and counts its pages.
// pdfcpu only ever sees bytes.Readers, never afero file handles.
func (m *Merger) readInput(path string) ([]byte, int, error) {
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	n, err := api.PageCount(bytes.NewReader(data), configuration())
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, n, nil
}

// Merge writes the pages of inputs, in order, to dest and returns the total
// page count. The result is first written to a temporary file next to dest
// and renamed onto dest on success; on failure dest is left untouched.
func (m *Merger) Merge(inputs []string, dest string) (int, error) {
	if len(inputs) == 0 {
		return 0, ErrNoInputs
	}

	readers := make([]io.ReadSeeker, 0, len(inputs))
	pages := 0
	for _, in := range inputs {
		data, n, err := m.readInput(in)
		if err != nil {
			return 0, err
		}
		m.log.Debug("input", zap.String("file", in), zap.Int("pages", n))
		readers = append(readers, bytes.NewReader(data))
		pages += n
	}

	if err := m.writeAtomic(dest, func(w io.Writer) error {
		return api.MergeRaw(readers, w, false, configuration())
	}); err != nil {
		return 0, err
	}

	m.log.Debug("merged", zap.String("output", dest), zap.Int("inputs", len(inputs)), zap.Int("pages", pages))
	return pages, nil
}

// writeAtomic runs write against a temporary file in dest's directory and
// renames it onto dest once write and close both succeeded.
func (m *Merger) writeAtomic(dest string, write func(io.Writer) error) error {
	tmp, err := afero.TempFile(m.fs, filepath.Dir(dest), ".pdfmerge-*.tmp")
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	name := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		_ = m.fs.Remove(name)
		return fmt.Errorf("merging into %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		_ = m.fs.Remove(name)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := m.fs.Rename(name, dest); err != nil {
		_ = m.fs.Remove(name)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
