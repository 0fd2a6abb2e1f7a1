package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"mercator-hq/tagviz/pkg/cli"
	"mercator-hq/tagviz/pkg/highlight"
)

var palettesFlags struct {
	format string
	color  string
}

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List the available colour palettes",
	Long: `List the built-in palettes and those defined under highlight.palettes in
the configuration, with a swatch of every colour slot.

Examples:
  tagviz palettes
  tagviz palettes --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPalettes(current, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(palettesCmd)

	palettesCmd.Flags().StringVar(&palettesFlags.format, "format", "text", "output format: text, json, yaml")
	palettesCmd.Flags().StringVar(&palettesFlags.color, "color", "", "colour output: auto, always, never")
}

func runPalettes(a *app, w io.Writer) error {
	format, err := cli.ParseOutputFormat(palettesFlags.format)
	if err != nil {
		return err
	}

	names := a.cfg.Highlight.PaletteNames()
	palettes := make([]highlight.Palette, 0, len(names))
	for _, name := range names {
		p, err := a.cfg.Highlight.ResolvePalette(name)
		if err != nil {
			return err
		}
		palettes = append(palettes, p)
	}

	if format != cli.FormatText {
		return cli.NewFormatter(format).FormatTo(w, palettes)
	}

	colorFlag := palettesFlags.color
	if colorFlag == "" {
		colorFlag = a.cfg.Highlight.Color
	}
	mode, err := highlight.ParseColorMode(colorFlag)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, swatches(palettes, a.cfg.Highlight.Palette, highlight.UseColor(mode, w)))
	return err
}

// swatches renders one block per palette: its name, then a line per slot.
func swatches(palettes []highlight.Palette, selected string, color bool) string {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(highlight.DetectProfile())

	title := r.NewStyle().Bold(true)
	var sb strings.Builder
	for i, p := range palettes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		name := p.Name
		if name == selected {
			name += " (selected)"
		}
		if color {
			name = title.Render(name)
		}
		sb.WriteString(name)
		sb.WriteByte('\n')

		for _, slot := range highlight.Slots() {
			hex := p.Color(slot)
			swatch := "    "
			if color {
				swatch = r.NewStyle().Background(lipgloss.Color(hex)).Render(swatch)
			}
			fmt.Fprintf(&sb, "  %s %-12s %s\n", swatch, slot, hex)
		}
	}
	return sb.String()
}
