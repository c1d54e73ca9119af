package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// doc builds the shared layout of the markdown and text formats. The two
// formats carry the same content; only the markup differs.
type doc struct {
	markdown bool
	sb       strings.Builder
}

func newDoc(format Format) *doc {
	return &doc{markdown: format == Markdown}
}

func (d *doc) line(s string) {
	d.sb.WriteString(s)
	d.sb.WriteByte('\n')
}

func (d *doc) blank() {
	d.sb.WriteByte('\n')
}

func (d *doc) heading(level int, title string) {
	if d.markdown {
		d.line(strings.Repeat("#", level) + " " + title)
	} else {
		rule := "="
		if level > 1 {
			rule = "-"
		}
		d.line(title)
		d.line(strings.Repeat(rule, runewidth.StringWidth(title)))
	}
	d.blank()
}

func (d *doc) field(label, value string) {
	if d.markdown {
		d.line("**" + label + ":** " + value)
		return
	}
	d.line(label + ": " + value)
}

func (d *doc) bullet(s string) {
	d.line("- " + s)
}

func (d *doc) strong(s string) string {
	if d.markdown {
		return "**" + escapeMarkdown(s) + "**"
	}
	return s
}

// text escapes s for markdown output.
func (d *doc) text(s string) string {
	if d.markdown {
		return escapeMarkdown(s)
	}
	return s
}

func (d *doc) table(headers []string, rows [][]string) {
	if d.markdown {
		headers = escapeCells(headers)
		escaped := make([][]string, len(rows))
		for i, row := range rows {
			escaped[i] = escapeCells(row)
		}
		rows = escaped
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	render := func(cells []string) string {
		padded := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		if d.markdown {
			return "| " + strings.Join(padded, " | ") + " |"
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ")
	}

	d.line(render(headers))
	if d.markdown {
		seps := make([]string, len(widths))
		for i, w := range widths {
			seps[i] = strings.Repeat("-", max(w, 3))
		}
		d.line("| " + strings.Join(seps, " | ") + " |")
	}
	for _, row := range rows {
		d.line(render(row))
	}
	d.blank()
}

func (d *doc) block(lines []string) {
	if d.markdown {
		d.line("```")
	}
	for _, l := range lines {
		d.line(l)
	}
	if d.markdown {
		d.line("```")
	}
	d.blank()
}

// String returns the document with exactly one trailing newline.
func (d *doc) String() string {
	return strings.TrimRight(d.sb.String(), "\n") + "\n"
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"|", `\|`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = escapeMarkdown(c)
	}
	return out
}
