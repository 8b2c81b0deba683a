package errors

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

// Printer renders errors for a terminal.
type Printer struct {
	// Color enables ANSI escapes.
	Color bool

	// Width is the column detail text wraps at. Zero means 72.
	Width int
}

// stderrPrinter is used by Format and PrintError.
var stderrPrinter = Printer{Color: true}

// DisableColors turns off ANSI escapes in Format and PrintError.
func DisableColors() { stderrPrinter.Color = false }

// EnableColors turns ANSI escapes back on.
func EnableColors() { stderrPrinter.Color = true }

// Format renders e with the package printer.
func (e *CompostError) Format() string {
	return stderrPrinter.Format(e)
}

// FormatCompact renders e on a single line with no escapes:
//
//	C201 bridge: Unknown hydration ID (h42)
func (e *CompostError) FormatCompact() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteByte(' ')
	}
	if e.Category != "" {
		b.WriteString(string(e.Category))
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	return b.String()
}

// Format renders e as a block:
//
//	error[C002] binding: Handler not found
//	  <button on-click="nope"> at button
//	  cause: handler not found: nope
//	  hint: Define a method or handler with this name ...
func (p Printer) Format(e *CompostError) string {
	var b strings.Builder

	b.WriteString(p.paint(ansiRed+ansiBold, "error"))
	if e.Code != "" {
		b.WriteString(p.paint(ansiBold, "["+e.Code+"]"))
	}
	if e.Category != "" {
		b.WriteString(" " + string(e.Category))
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	b.WriteByte('\n')

	p.field(&b, "", e.Detail)
	if e.Wrapped != nil {
		p.field(&b, p.paint(ansiGray, "cause: "), e.Wrapped.Error())
	}
	p.field(&b, p.paint(ansiCyan, "hint: "), e.Suggestion)

	return b.String()
}

// field writes an indented, wrapped entry. Continuation lines line up
// under the first line's text.
func (p Printer) field(b *strings.Builder, label, text string) {
	if text == "" {
		return
	}
	width := p.Width
	if width <= 0 {
		width = 72
	}
	for i, line := range wrapText(text, width) {
		b.WriteString("  ")
		if i == 0 {
			b.WriteString(label)
		} else if label != "" {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func (p Printer) paint(code, text string) string {
	if !p.Color {
		return text
	}
	return code + text + ansiReset
}

// wrapText splits text into lines no longer than width, breaking on spaces.
// A single word longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// Fprint writes err to w: CompostErrors as a formatted block, anything else
// as a one-line error.
func Fprint(w io.Writer, err error) {
	if ce, ok := err.(*CompostError); ok {
		fmt.Fprint(w, ce.Format())
		return
	}
	fmt.Fprintf(w, "%s: %s\n", stderrPrinter.paint(ansiRed+ansiBold, "error"), err)
}

// PrintError writes err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
