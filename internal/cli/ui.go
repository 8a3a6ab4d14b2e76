package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/vpctree/pkg/tree"
)

// fieldSep separates the fields of a resource line.
const fieldSep = " : "

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Styles shared by the status printer, the tree colorizer and the pager.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// =============================================================================
// Status Lines
// =============================================================================

// status writes short human-readable progress lines, one per call:
//
//	✓ Rendered vpc-0a1b2c3d
//	  → vpc.txt
//	  14 lines · 3ms · fresh
type status struct {
	w io.Writer
}

func (s status) line(icon, msg string) {
	fmt.Fprintln(s.w, icon+" "+msg)
}

func (s status) success(format string, args ...any) {
	s.line(styleOK.Render("✓"), fmt.Sprintf(format, args...))
}

func (s status) warn(format string, args ...any) {
	s.line(StyleWarning.Render("!"), StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (s status) info(format string, args ...any) {
	s.line(styleMuted.Render("›"), fmt.Sprintf(format, args...))
}

// detail is an indented secondary line.
func (s status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (s status) file(path string) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// stats summarizes one pipeline run.
func (s status) stats(lines int, elapsed time.Duration, cached bool) {
	fields := []string{StyleDim.Render(fmt.Sprintf("%d lines", lines))}
	if elapsed > 0 {
		fields = append(fields, StyleDim.Render(elapsed.Round(time.Millisecond).String()))
	}
	if cached {
		fields = append(fields, styleOK.Render("cached"))
	} else {
		fields = append(fields, styleMuted.Render("fresh"))
	}
	fmt.Fprintln(s.w, "  "+strings.Join(fields, StyleDim.Render(" · ")))
}

// =============================================================================
// Tree Output
// =============================================================================

// styleTreeLine colors a rendered line: the connector prefix is dimmed,
// section headings are highlighted and the resource id is emphasized.
func styleTreeLine(line string) string {
	prefix, content := tree.SplitPrefix(line)
	var b strings.Builder
	b.WriteString(StyleDim.Render(prefix))
	if strings.HasSuffix(content, ":") {
		b.WriteString(StyleTitle.Render(content))
		return b.String()
	}
	id, rest, found := strings.Cut(content, fieldSep)
	b.WriteString(StyleHighlight.Render(id))
	if found {
		b.WriteString(StyleDim.Render(fieldSep) + StyleValue.Render(rest))
	}
	return b.String()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printTree writes lines to w, colorized when styled is set.
func printTree(w io.Writer, lines []string, styled bool) error {
	if styled {
		colored := make([]string, len(lines))
		for i, line := range lines {
			colored[i] = styleTreeLine(line)
		}
		lines = colored
	}
	return tree.Fprint(w, lines)
}
