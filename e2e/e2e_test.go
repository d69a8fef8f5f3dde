// Package e2e contains end-to-end tests that exercise the full merge
// pipeline against real (temporary) directory trees on disk.
//
// Each test creates a purpose-built tree of generated PDFs, runs the full
// pipeline and asserts on the files written and the merged page order. This
// tests all layers together:
// discover → validate → naming → merger → pipeline → output.
package e2e

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/merger"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/output"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/pipeline"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/testutil"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var day = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// runPipeline executes a full run against the tree on disk.
func runPipeline(t *testing.T, tree *testutil.Tree, store *config.Store, opts pipeline.Options) *pipeline.Summary {
	t.Helper()
	log := zaptest.NewLogger(t)
	r := pipeline.NewRunner(tree.Fs(), merger.New(tree.Fs(), log),
		pipeline.WithLogger(log),
		pipeline.WithConfigs(store),
		pipeline.WithClock(func() time.Time { return day }),
	)
	opts.Root = tree.Root()
	summary, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	return summary
}

func newStore(t *testing.T) *config.Store {
	t.Helper()
	return config.NewStore(afero.NewOsFs(), filepath.Join(t.TempDir(), "configurations.yml"))
}

func TestE2E_PatternMode_NaturalOrder(t *testing.T) {
	tree := testutil.NewDiskTree(t)
	for _, n := range []int{10, 2, 1, 20, 3} {
		name := fmt.Sprintf("file%d.pdf", n)
		tree.AddPDF("Reports", name, fmt.Sprintf("PAGE-%d", n))
	}

	summary := runPipeline(t, tree, newStore(t), pipeline.Options{})
	require.Equal(t, 1, summary.Merged)

	out := filepath.Join(tree.Root(), "Reports", "Reports_2024-01-15.pdf")
	texts := testutil.PageTexts(t, tree.Fs(), out)
	require.Len(t, texts, 5)
	for i, n := range []int{1, 2, 3, 10, 20} {
		require.Contains(t, texts[i], fmt.Sprintf("PAGE-%d", n))
	}
}

func TestE2E_ConfigurationMode_MixedTree(t *testing.T) {
	tree := testutil.NewDiskTree(t)
	tree.AddPDF("case1", "Intro.PDF", "INTRO-1")
	tree.AddPDF("case1", "body.pdf", "BODY-1")
	tree.AddPDF("case1", "conclusion.pdf", "END-1")
	tree.AddFile("case1", "intro.md", []byte("# notes"))
	tree.AddPDF("case2", "intro.pdf")
	tree.AddPDF("case2", "conclusion.pdf")
	tree.AddPDF("case10", "conclusion.pdf", "END-10")
	tree.AddPDF("case10", "intro.pdf", "INTRO-10")
	tree.AddPDF("case10", "body.pdf", "BODY-10")

	store := newStore(t)
	_, err := store.Set(tree.Root(), []string{"conclusion", "intro", "body"})
	require.NoError(t, err)

	summary := runPipeline(t, tree, store, pipeline.Options{
		Mode:     pipeline.ModeConfiguration,
		Template: "{directory}_combined",
		Pattern:  "*.[pP][dD][fF]",
	})
	require.Equal(t, 2, summary.Merged)
	require.Equal(t, 1, summary.Skipped)
	require.Equal(t, []string{"case1", "case2", "case10"}, []string{
		summary.Results[0].Name, summary.Results[1].Name, summary.Results[2].Name,
	})
	require.Equal(t, []string{"body"}, summary.Results[1].Missing)

	for _, n := range []string{"1", "10"} {
		out := filepath.Join(tree.Root(), "case"+n, "case"+n+"_combined.pdf")
		texts := testutil.PageTexts(t, tree.Fs(), out)
		require.Len(t, texts, 3)
		require.Contains(t, texts[0], "END-"+n)
		require.Contains(t, texts[1], "INTRO-"+n)
		require.Contains(t, texts[2], "BODY-"+n)
	}
	require.Equal(t, []string{"conclusion.pdf", "intro.pdf"}, testutil.Files(t, tree.Fs(), filepath.Join(tree.Root(), "case2")))

	report := output.FormatSummary(summary, false)
	require.Contains(t, report, "skipped: missing required files: body")
}

func TestE2E_PreviewMatchesRun(t *testing.T) {
	tree := testutil.NewDiskTree(t)
	tree.AddPDF("a", "x.pdf")
	tree.AddPDF("a", "y.pdf")
	tree.AddFile("b", "readme.txt", []byte("x"))
	tree.AddPDF("c", "z.pdf")
	before := testutil.Snapshot(t, tree.Fs(), tree.Root())

	store := newStore(t)
	preview := runPipeline(t, tree, store, pipeline.Options{Preview: true})
	require.Equal(t, before, testutil.Snapshot(t, tree.Fs(), tree.Root()))

	run := runPipeline(t, tree, store, pipeline.Options{})
	require.Equal(t, preview.Ready, run.Merged)
	require.Equal(t, preview.Skipped, run.Skipped)
	for i := range run.Results {
		require.Equal(t, preview.Results[i].Files, run.Results[i].Files)
	}

	after := testutil.Snapshot(t, tree.Fs(), tree.Root())
	for path, sum := range before {
		require.Equal(t, sum, after[path], "input %s changed", path)
	}
	require.Len(t, after, len(before)+run.Merged)
}

func TestE2E_RerunExcludesPreviousOutput(t *testing.T) {
	tree := testutil.NewDiskTree(t)
	tree.AddPDF("a", "x.pdf", "X")

	store := newStore(t)
	first := runPipeline(t, tree, store, pipeline.Options{})
	require.Equal(t, 1, first.Merged)

	second := runPipeline(t, tree, store, pipeline.Options{})
	require.True(t, second.Results[0].Overwrite)
	require.Len(t, second.Results[0].Files, 1)

	texts := testutil.PageTexts(t, tree.Fs(), second.Results[0].Output)
	require.Len(t, texts, 1)
}

func TestE2E_NoTempFilesLeft(t *testing.T) {
	tree := testutil.NewDiskTree(t)
	tree.AddPDF("good", "x.pdf")
	tree.AddFile("bad", "x.pdf", []byte("%PDF-1.4 truncated"))

	summary := runPipeline(t, tree, newStore(t), pipeline.Options{})
	require.Equal(t, 1, summary.Merged)
	require.Equal(t, 1, summary.Failed)
	require.Error(t, summary.Err())

	for _, dir := range []string{"good", "bad"} {
		for _, f := range testutil.Files(t, tree.Fs(), filepath.Join(tree.Root(), dir)) {
			require.False(t, strings.HasSuffix(f, ".tmp"), f)
		}
	}
}
