package highlight

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode controls ANSI colour output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a colour mode, accepting an empty string as auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(s)) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (must be auto, always, or never)", s)
}

// UseColor decides whether to emit colour on w. In auto mode colour is used
// only for terminals, and never when NO_COLOR is set.
func UseColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderOptions configures RenderANSI.
type RenderOptions struct {
	Palette    Palette
	Background bool            // Paint the palette background behind tokens
	Profile    termenv.Profile // Colour profile; the zero value is true colour
}

// RenderANSI writes spans to w as ANSI-styled text. Whitespace is written
// unstyled (or background-only) line by line so layout is preserved.
func RenderANSI(w io.Writer, spans []Span, opts RenderOptions) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(opts.Profile)

	base := r.NewStyle()
	if opts.Background && opts.Palette.Background != "" {
		base = base.Background(lipgloss.Color(opts.Palette.Background))
	}

	styles := make(map[string]lipgloss.Style)
	styleFor := func(color string) lipgloss.Style {
		if s, ok := styles[color]; ok {
			return s
		}
		s := base.Foreground(lipgloss.Color(color))
		styles[color] = s
		return s
	}

	var sb strings.Builder
	for _, span := range spans {
		switch span.Category {
		case CategoryWhitespace, CategoryPlain:
			writeLines(&sb, span.Text, func(line string) string {
				if !opts.Background || line == "" {
					return line
				}
				return styleFor(span.Color).Render(line)
			})
		default:
			st := styleFor(span.Color)
			writeLines(&sb, span.Text, func(line string) string { return st.Render(line) })
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeLines styles each line separately; lipgloss pads multi-line blocks.
func writeLines(sb *strings.Builder, text string, style func(string) string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if line != "" {
			sb.WriteString(style(line))
		}
	}
}

// DetectProfile returns the environment's colour profile, upgrading to true
// colour when the environment reports none (colour was forced on).
func DetectProfile() termenv.Profile {
	p := termenv.EnvColorProfile()
	if p == termenv.Ascii {
		return termenv.TrueColor
	}
	return p
}

// RenderPlain writes the span texts without styling.
func RenderPlain(w io.Writer, spans []Span) error {
	_, err := io.WriteString(w, Text(spans))
	return err
}

// RenderHTML writes spans as a <pre> block with inline colours.
func RenderHTML(w io.Writer, spans []Span, palette Palette) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<pre style="background-color: %s; color: %s; font-family: monospace; white-space: pre; margin: 0">`,
		html.EscapeString(palette.Background), html.EscapeString(palette.Text))
	for _, span := range spans {
		text := html.EscapeString(span.Text)
		switch span.Category {
		case CategoryWhitespace, CategoryPlain:
			sb.WriteString(text)
		default:
			fmt.Fprintf(&sb, `<span style="color: %s">%s</span>`, html.EscapeString(span.Color), text)
		}
	}
	sb.WriteString("</pre>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
