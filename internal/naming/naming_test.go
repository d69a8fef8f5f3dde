package naming

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		dir      string
		want     string
	}{
		{"default template", "{directory}_{date}.pdf", "Reports", "Reports_2024-01-15.pdf"},
		{"full path directory", "{directory}_{date}.pdf", "/data/root/Reports", "Reports_2024-01-15.pdf"},
		{"time", "{directory}_{time}.pdf", "R", "R_143022.pdf"},
		{"datetime", "{directory}_combined_{datetime}.pdf", "Reports", "Reports_combined_2024-01-15_143022.pdf"},
		{"extension appended", "merged_{directory}", "Reports", "merged_Reports.pdf"},
		{"extension case kept", "{directory}.PDF", "Reports", "Reports.PDF"},
		{"unknown placeholder passes through", "{directory}_{author}.pdf", "Reports", "Reports_{author}.pdf"},
		{"no placeholders", "merged.pdf", "Reports", "merged.pdf"},
		{"separator sanitised", "{directory}/sub.pdf", "Reports", "Reports_sub.pdf"},
		{"illegal characters sanitised", `a<b>c:d"e|f?g*h.pdf`, "x", "a_b_c_d_e_f_g_h.pdf"},
		{"value not re-expanded", "{directory}.pdf", "{date}", "{date}.pdf"},
		{"trailing dots trimmed", "{directory}..", "Reports", "Reports.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.template, Context{Directory: tt.dir, Now: fixedNow})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_Deterministic(t *testing.T) {
	ctx := Context{Directory: "Reports", Now: fixedNow}
	a, err := Expand("{directory}_{datetime}", ctx)
	require.NoError(t, err)
	b, err := Expand("{directory}_{datetime}", ctx)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestExpand_Empty(t *testing.T) {
	for _, tmpl := range []string{"", "   ", "..", ".pdf", "{directory}"} {
		t.Run(tmpl, func(t *testing.T) {
			_, err := Expand(tmpl, Context{Directory: "", Now: fixedNow})
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrEmptyName))
		})
	}
}

func TestUnknown(t *testing.T) {
	require.Empty(t, Unknown("{directory}_{date}_{time}_{datetime}.pdf"))
	require.Equal(t, []string{"Date", "author"}, Unknown("{author}_{Date}_{author}.pdf"))
}

func TestSanitize(t *testing.T) {
	require.Equal(t, "a_b", Sanitize("a\tb"))
	require.Equal(t, "report", Sanitize("  report. "))
	require.Equal(t, "x_y", Sanitize(`x\y`))
}

func TestValues(t *testing.T) {
	vals := Values(Context{Directory: "Reports/", Now: fixedNow})
	require.Equal(t, "Reports", vals[PlaceholderDirectory])
	require.Equal(t, "2024-01-15", vals[PlaceholderDate])
	require.Equal(t, "143022", vals[PlaceholderTime])
	require.Equal(t, "2024-01-15_143022", vals[PlaceholderDateTime])
}
