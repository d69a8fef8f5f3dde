// Package testutil provides helpers for building temporary directory trees
// of generated PDF documents and for inspecting merged output in tests.
package testutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"
	"github.com/spf13/afero"
)

// Tree is a builder for a merge root: a directory whose subdirectories hold
// the PDF files to merge.
type Tree struct {
	t    testing.TB
	fs   afero.Fs
	root string
}

// NewTree creates root on fs and returns a builder for it.
func NewTree(t testing.TB, fsys afero.Fs, root string) *Tree {
	t.Helper()
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("creating root %s: %v", root, err)
	}
	return &Tree{t: t, fs: fsys, root: root}
}

// NewMemTree creates a tree on an in-memory file system rooted at /root.
func NewMemTree(t testing.TB) *Tree {
	t.Helper()
	return NewTree(t, afero.NewMemMapFs(), "/root")
}

// NewDiskTree creates a tree in a temporary directory on the real disk.
func NewDiskTree(t testing.TB) *Tree {
	t.Helper()
	return NewTree(t, afero.NewOsFs(), filepath.Join(t.TempDir(), "root"))
}

// Fs returns the file system the tree lives on.
func (tr *Tree) Fs() afero.Fs {
	return tr.fs
}

// Root returns the root directory.
func (tr *Tree) Root() string {
	return tr.root
}

// Dir creates the subdirectory name under the root and returns its path.
func (tr *Tree) Dir(name string) string {
	tr.t.Helper()
	dir := filepath.Join(tr.root, name)
	if err := tr.fs.MkdirAll(dir, 0o755); err != nil {
		tr.t.Fatalf("creating %s: %v", dir, err)
	}
	return dir
}

// AddPDF writes a PDF named file into subdirectory dir with one page per
// entry of pages, each page showing that text. Returns the file path.
func (tr *Tree) AddPDF(dir, file string, pages ...string) string {
	tr.t.Helper()
	if len(pages) == 0 {
		pages = []string{strings.TrimSuffix(file, filepath.Ext(file))}
	}
	return tr.AddFile(dir, file, BuildPDF(tr.t, pages...))
}

// AddFile writes raw data to file inside subdirectory dir. Returns the path.
func (tr *Tree) AddFile(dir, file string, data []byte) string {
	tr.t.Helper()
	path := filepath.Join(tr.Dir(dir), file)
	if err := afero.WriteFile(tr.fs, path, data, 0o644); err != nil {
		tr.t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// BuildPDF renders a document with one page per text.
func BuildPDF(t testing.TB, pages ...string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	for _, text := range pages {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 24)
		doc.Cell(120, 20, text)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("rendering pdf: %v", err)
	}
	return buf.Bytes()
}

// PageTexts returns the plain text of every page of the PDF at path.
func PageTexts(t testing.TB, fsys afero.Fs, path string) []string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}

	texts := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range p.Fonts() {
			f := p.Font(name)
			fonts[name] = &f
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			t.Fatalf("reading page %d of %s: %v", i, path, err)
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return texts
}

// Checksum returns the hex SHA-256 of the file at path.
func Checksum(t testing.TB, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Snapshot returns the checksum of every regular file below root, keyed by
// path. Two equal snapshots mean nothing was created, changed or deleted.
func Snapshot(t testing.TB, fsys afero.Fs, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			out[path] = Checksum(t, fsys, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return out
}

// Files lists the base names of regular files in dir, sorted.
func Files(t testing.TB, fsys afero.Fs, dir string) []string {
	t.Helper()
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Mode().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
