// Package output renders analysis results for terminals, scripts, and
// machine consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

// Mode selects the rendering format.
type Mode string

const (
	// ModeAuto picks text on a terminal and markdown otherwise.
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes formatted output to a destination.
type Renderer struct {
	out  io.Writer
	errW io.Writer
	mode Mode
}

// NewRenderer creates a renderer for the given writers and mode.
func NewRenderer(out, errW io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		mode = ModeAuto
	}
	return &Renderer{out: out, errW: errW, mode: mode}
}

// EffectiveMode resolves ModeAuto against the output destination.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the destination writer, for encoders that need it directly.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Printf writes formatted text to the destination.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Println writes a line to the destination.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Header writes a section header in the effective mode's style.
func (r *Renderer) Header(text string) {
	switch r.EffectiveMode() {
	case ModeMarkdown:
		fmt.Fprintf(r.out, "## %s\n\n", text)
	default:
		fmt.Fprintf(r.out, "%s\n", text)
	}
}

// KeyValue writes a labeled value line.
func (r *Renderer) KeyValue(key, value string) {
	switch r.EffectiveMode() {
	case ModeMarkdown:
		fmt.Fprintf(r.out, "- **%s**: %s\n", key, value)
	default:
		fmt.Fprintf(r.out, "%s: %s\n", key, value)
	}
}

// Table renders a table with the given header and rows, using a markdown
// table when the effective mode is markdown.
func (r *Renderer) Table(header []string, rows [][]string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	tw.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		tw.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeMarkdown {
		tw.RenderMarkdown()
		return
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
}

// JSON encodes v as indented JSON to the destination.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
