package gui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/pipeline"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/testutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newController(t *testing.T) (*Controller, *testutil.Tree) {
	t.Helper()
	tree := testutil.NewMemTree(t)
	store := config.NewStore(tree.Fs(), "/cfg/configurations.yml")
	return NewController(tree.Fs(), store, zaptest.NewLogger(t)), tree
}

func defaultForm(root string) Form {
	return Form{Root: root, Pattern: config.DefaultPattern, Template: "{directory}.pdf"}
}

func TestController_PreviewThenMerge(t *testing.T) {
	ctrl, tree := newController(t)
	tree.AddPDF("a", "1.pdf")
	tree.AddPDF("a", "2.pdf")
	tree.AddPDF("b", "1.pdf")

	var mu sync.Mutex
	var lines []string
	var progress [][2]int
	ev := Events{
		Log: func(l string) {
			mu.Lock()
			defer mu.Unlock()
			lines = append(lines, l)
		},
		Progress: func(done, total int) { progress = append(progress, [2]int{done, total}) },
	}

	preview, err := ctrl.Run(context.Background(), defaultForm(tree.Root()), true, ev)
	require.NoError(t, err)
	require.Equal(t, 2, preview.Ready)
	require.Equal(t, []string{"1.pdf", "2.pdf"}, testutil.Files(t, tree.Fs(), filepath.Join(tree.Root(), "a")))
	require.Equal(t, [][2]int{{1, 2}, {2, 2}}, progress)
	require.Contains(t, lines, "Found 2 subdirectories to process")
	require.Equal(t, "Preview complete", ResultTitle(preview))
	require.Contains(t, ResultMessage(preview), "2 directories would be merged (3 files)")

	summary, err := ctrl.Run(context.Background(), defaultForm(tree.Root()), false, Events{})
	require.NoError(t, err)
	require.Equal(t, 2, summary.Merged)
	require.Equal(t, "Merge complete", ResultTitle(summary))
	require.Contains(t, Report(summary), "a.pdf (2 files")
	require.Contains(t, testutil.Files(t, tree.Fs(), filepath.Join(tree.Root(), "a")), "a.pdf")
	require.False(t, ctrl.Running())
}

func TestController_RequiresDirectory(t *testing.T) {
	ctrl, _ := newController(t)

	_, err := ctrl.Run(context.Background(), Form{}, true, Events{})
	require.ErrorIs(t, err, ErrNoDirectory)
	_, err = ctrl.Check(Form{Root: "  "})
	require.ErrorIs(t, err, ErrNoDirectory)
	_, err = ctrl.SaveConfiguration("", "a")
	require.ErrorIs(t, err, ErrNoDirectory)
	_, err = ctrl.Configuration("")
	require.ErrorIs(t, err, ErrNoDirectory)
}

func TestController_Busy(t *testing.T) {
	ctrl, tree := newController(t)
	tree.AddPDF("a", "1.pdf")

	var nested error
	ev := Events{Log: func(string) {
		if nested == nil {
			_, nested = ctrl.Run(context.Background(), defaultForm(tree.Root()), true, Events{})
		}
	}}
	_, err := ctrl.Run(context.Background(), defaultForm(tree.Root()), true, ev)
	require.NoError(t, err)
	require.ErrorIs(t, nested, ErrBusy)
}

func TestController_ConfigurationRoundTrip(t *testing.T) {
	ctrl, tree := newController(t)
	tree.AddPDF("doc", "intro.pdf", "INTRO")
	tree.AddPDF("doc", "body.pdf", "BODY")

	f := defaultForm(tree.Root())
	f.ConfigMode = true

	_, err := ctrl.Check(f)
	require.ErrorIs(t, err, pipeline.ErrConfigurationRequired)

	order, err := ctrl.SaveConfiguration(tree.Root(), "body, intro")
	require.NoError(t, err)
	require.Equal(t, []string{"body", "intro"}, order)

	text, err := ctrl.Configuration(tree.Root() + "/")
	require.NoError(t, err)
	require.Equal(t, "body, intro", text)

	msg, err := ctrl.ConfirmMessage(f)
	require.NoError(t, err)
	require.Contains(t, msg, "Configuration order: body, intro")

	summary, err := ctrl.Run(context.Background(), f, false, Events{})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Merged)

	texts := testutil.PageTexts(t, tree.Fs(), filepath.Join(tree.Root(), "doc", "doc.pdf"))
	require.Len(t, texts, 2)
	require.Contains(t, texts[0], "BODY")
}

func TestController_SaveConfigurationRejectsEmpty(t *testing.T) {
	ctrl, tree := newController(t)
	_, err := ctrl.SaveConfiguration(tree.Root(), " , ")
	require.ErrorIs(t, err, config.ErrNoNames)
}

func TestController_CheckWarnsUnknownPlaceholder(t *testing.T) {
	ctrl, tree := newController(t)
	f := defaultForm(tree.Root())
	f.Template = "{directory}_{version}"

	warnings, err := ctrl.Check(f)
	require.NoError(t, err)
	require.Equal(t, []string{"Unknown placeholder {version} is kept as is"}, warnings)
}

func TestController_ConfirmMessagePatternMode(t *testing.T) {
	ctrl, tree := newController(t)
	tree.AddPDF("a", "1.pdf")
	tree.AddPDF("b", "1.pdf")
	tree.AddPDF("b", "2.pdf")

	msg, err := ctrl.ConfirmMessage(defaultForm(tree.Root()))
	require.NoError(t, err)
	require.Contains(t, msg, "Merge the files of 2 subdirectories")
	require.Contains(t, msg, "3 files match *.pdf in 2 subdirectories.")
}

func TestResultTitle(t *testing.T) {
	require.Equal(t, "Run interrupted", ResultTitle(&pipeline.Summary{Interrupted: true}))
	require.Equal(t, "Merge finished with errors", ResultTitle(&pipeline.Summary{Failed: 1}))
}
