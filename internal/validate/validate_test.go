package validate

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/discover"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func finderWith(t *testing.T, files ...string) *discover.Finder {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(f), 0o755))
		require.NoError(t, afero.WriteFile(fs, f, []byte("x"), 0o644))
	}
	return discover.NewFinder(fs)
}

func TestValidate_AllPresentFollowsConfigurationOrder(t *testing.T) {
	f := finderWith(t, "/d/intro.pdf", "/d/body.pdf", "/d/conclusion.pdf")

	res, err := Validate(f, "/d", "*.pdf", []string{"conclusion", "intro", "body"})
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, []string{"/d/conclusion.pdf", "/d/intro.pdf", "/d/body.pdf"}, res.Files)
	require.Empty(t, res.Reason())
}

func TestValidate_AllOrNothing(t *testing.T) {
	f := finderWith(t, "/d/A.pdf", "/d/C.pdf")

	res, err := Validate(f, "/d", "*.pdf", []string{"A", "B", "C"})
	require.NoError(t, err)
	require.False(t, res.OK())
	require.Nil(t, res.Files)
	require.Equal(t, []string{"B"}, res.Missing)
	require.Empty(t, res.Ambiguous)
	require.Equal(t, "missing required files: B", res.Reason())
}

func TestValidate_CaseInsensitive(t *testing.T) {
	f := finderWith(t, "/d/INTRO.pdf", "/d/Body.PDF", "/d/conclusion.pdf")

	res, err := Validate(f, "/d", "*", []string{"intro", "body", "conclusion"})
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, []string{"/d/INTRO.pdf", "/d/Body.PDF", "/d/conclusion.pdf"}, res.Files)
}

func TestValidate_SiblingNonPDFDoesNotCount(t *testing.T) {
	f := finderWith(t, "/d/intro.md", "/d/intro.pdf", "/d/body.md")

	res, err := Validate(f, "/d", "*.pdf", []string{"intro", "body"})
	require.NoError(t, err)
	require.Equal(t, []string{"body"}, res.Missing)
}

func TestValidate_AmbiguousIsReportedSeparately(t *testing.T) {
	f := finderWith(t, "/d/intro.pdf", "/d/INTRO.pdf", "/d/body.pdf")

	res, err := Validate(f, "/d", "*.pdf", []string{"intro", "body", "end"})
	require.NoError(t, err)
	require.False(t, res.OK())
	require.Nil(t, res.Files)
	require.Equal(t, []string{"end"}, res.Missing)
	require.Len(t, res.Ambiguous, 1)
	require.Equal(t, "intro", res.Ambiguous[0].Name)
	require.ElementsMatch(t, []string{"/d/intro.pdf", "/d/INTRO.pdf"}, res.Ambiguous[0].Matches)
	require.Contains(t, res.Reason(), "missing required files: end")
	require.Contains(t, res.Reason(), "ambiguous required files: intro")
}

func TestValidate_ExcludesOutputName(t *testing.T) {
	f := finderWith(t, "/d/summary.pdf")

	res, err := Validate(f, "/d", "*.pdf", []string{"summary"}, "summary.pdf")
	require.NoError(t, err)
	require.Equal(t, []string{"summary"}, res.Missing)
}

type failingFinder struct{}

func (failingFinder) Candidates(string, string, string, ...string) ([]string, error) {
	return nil, errors.New("disk on fire")
}

func TestValidate_DiscoveryError(t *testing.T) {
	_, err := Validate(failingFinder{}, "/d", "*.pdf", []string{"a"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `resolving "a"`)
}
