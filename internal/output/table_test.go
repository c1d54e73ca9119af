package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
)

func TestVisualLen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "hello", 5},
		{"empty", "", 0},
		{"bold", "\x1b[1mhello\x1b[0m", 5},
		{"multiple sequences", "\x1b[1m\x1b[34mblue bold\x1b[0m", 9},
		{"wide runes", "日本", 4},
		{"bar glyphs", "███░░", 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, visualLen(tc.input))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "hi        ", pad("hi", 10))
	assert.Equal(t, "hello", pad("hello", 5))
	assert.Equal(t, "toolong", pad("toolong", 3), "no truncation")
	assert.Equal(t, "日本 ", pad("日本", 5))
}

func TestTable_Render(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Category", "Time")
	tbl.AddRow("development", "5h 30m")
	tbl.AddRow("meetings", "1h")

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "Category     Time", lines[0])
	assert.Equal(t, "───────────  ──────", lines[1])
	assert.Equal(t, "development  5h 30m", lines[2])
	assert.Equal(t, "meetings     1h", lines[3])
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, out, tbl.String())
}

func TestTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, NewTable().Render())
}

func TestTable_MissingAndExtraValues(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("A", "B")
	tbl.AddRow("only")
	tbl.AddRow("x", "y", "dropped")

	out := tbl.Render()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "only\n")
}

func TestTable_MaxCellWidth(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Task")
	tbl.SetMaxCellWidth(8)
	tbl.AddRow("refactor the session store")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "refac...", lines[2])
}

func TestTable_Fprint(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Col1")
	tbl.AddRow("Val1")

	var sb strings.Builder
	require.NoError(t, tbl.Fprint(&sb))
	assert.Equal(t, tbl.Render(), sb.String())
}

func TestSetNoColor_Restores(t *testing.T) {
	SetNoColor(true)
	assert.True(t, IsNoColor())
	assert.NotContains(t, StyleHeader.Render("test"), "\x1b[")

	SetNoColor(false)
	assert.False(t, IsNoColor())
	assert.Equal(t, ColorPrimary, StyleHeader.GetForeground())
}

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "████████░░ 80/100 Good", ScoreBar(80, 10))
	assert.Equal(t, "░░░░░░░░░░ 0/100 Low", ScoreBar(-5, 10))
	assert.Equal(t, "██████████ 100/100 Excellent", ScoreBar(140, 10))
	assert.Equal(t, 20, strings.Count(ScoreBar(50, 0), "█")+strings.Count(ScoreBar(50, 0), "░"))
}

func TestRatingStyle(t *testing.T) {
	SetNoColor(false)
	assert.Equal(t, ColorSuccess, RatingStyle(analyzer.RatingExcellent).GetForeground())
	assert.Equal(t, ColorWarning, RatingStyle(analyzer.RatingFair).GetForeground())
	assert.Equal(t, ColorError, RatingStyle(analyzer.RatingLow).GetForeground())
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "─", TrendArrow(0, true))
	assert.Equal(t, "▲ +2.5", TrendArrow(2.5, true))
	assert.Equal(t, "▼ -1.0", TrendArrow(-1, false))
	assert.Equal(t, "▲ +7", TrendArrowInt(7, true))
	assert.Equal(t, "▲ +1h 30m", TrendArrowDuration(5400, true))
	assert.Equal(t, "▼ -45m", TrendArrowDuration(-2700, true))
}

func TestSection(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	out := Section("Today", 5)

	assert.Equal(t, "\n Today\n ─────", out)
}

func TestRenderMarkdown(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	out, err := RenderMarkdown("# Daily Report\n\nTracked three sessions today.\n", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Tracked three sessions today.")
	assert.True(t, strings.HasSuffix(out, "\n"))

	out, err = RenderMarkdown("  \n", 80)
	require.NoError(t, err)
	assert.Empty(t, out)
}
