// Package output renders command results either as styled terminal text or
// as JSON, optionally filtered through a jq expression.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Options select the output mode.
type Options struct {
	JSON bool
	// JQ filters JSON output. Setting it implies JSON.
	JQ string
	// Width wraps rendered markdown. Zero means 80.
	Width int
}

// Printer writes command output.
type Printer struct {
	w    io.Writer
	opts Options
}

// New returns a Printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	if opts.JQ != "" {
		opts.JSON = true
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	return &Printer{w: w, opts: opts}
}

// Writer exposes the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// JSONMode reports whether results are emitted as JSON.
func (p *Printer) JSONMode() bool {
	return p.opts.JSON
}

// Emit writes v as JSON in JSON mode, otherwise calls text.
func (p *Printer) Emit(ctx context.Context, v any, text func() error) error {
	if p.opts.JSON {
		return p.JSON(ctx, v)
	}
	return text()
}

// JSON writes v as indented JSON, or the results of the jq filter applied to it.
func (p *Printer) JSON(ctx context.Context, v any) error {
	if p.opts.JQ == "" {
		return writeJSON(p.w, v)
	}

	results, err := Filter(ctx, p.opts.JQ, v)
	if err != nil {
		return err
	}
	for _, r := range results {
		if s, ok := r.(string); ok {
			if _, err := fmt.Fprintln(p.w, s); err != nil {
				return err
			}
			continue
		}
		if err := writeJSON(p.w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.w, args...)
}

// Heading prints a section title.
func (p *Printer) Heading(title string) {
	fmt.Fprintln(p.w, headingStyle.Render(title))
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.w, warningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Table prints rows under headers. Nothing is printed for zero rows.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(p.w, t.String())
}

// Markdown renders md for the terminal. Rendering failures fall back to the
// raw markdown.
func (p *Printer) Markdown(md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(p.opts.Width),
	)
	if err != nil {
		_, werr := fmt.Fprintln(p.w, md)
		return werr
	}
	out, err := r.Render(md)
	if err != nil {
		out = md
	}
	_, err = fmt.Fprintln(p.w, strings.TrimRight(out, "\n"))
	return err
}
