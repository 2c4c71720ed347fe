// Package theme holds the terminal palette. Colors echo a chess board: the
// brand tone is the dark square, the highlight the light square.
package theme

import "github.com/charmbracelet/lipgloss"

type palette struct {
	border    lipgloss.TerminalColor
	body      lipgloss.TerminalColor
	accent    lipgloss.TerminalColor
	brand     lipgloss.TerminalColor
	highlight lipgloss.TerminalColor
	error     lipgloss.TerminalColor
}

// Theme exposes ready-made styles; pages never touch raw colors.
type Theme struct {
	colors palette

	base          lipgloss.Style
	textBody      lipgloss.Style
	textAccent    lipgloss.Style
	textBrand     lipgloss.Style
	textHighlight lipgloss.Style
	textError     lipgloss.Style
	panelError    lipgloss.Style
}

// BasicTheme builds the default theme for the given renderer. A non-nil
// highlight overrides the light-square tone.
func BasicTheme(renderer *lipgloss.Renderer, highlight *string) Theme {
	colors := palette{
		border:    lipgloss.AdaptiveColor{Dark: "#3A3A36", Light: "#D4D4D0"},
		body:      lipgloss.AdaptiveColor{Dark: "#A8A89E", Light: "#6B6B62"},
		accent:    lipgloss.AdaptiveColor{Dark: "#F5F5F0", Light: "#1C1C18"},
		brand:     lipgloss.Color("#B58863"),
		highlight: lipgloss.Color("#F0D9B5"),
		error:     lipgloss.Color("#D64545"),
	}
	if highlight != nil {
		colors.highlight = lipgloss.Color(*highlight)
	}

	base := renderer.NewStyle().Foreground(colors.body)
	return Theme{
		colors:        colors,
		base:          base,
		textBody:      base.Foreground(colors.body),
		textAccent:    base.Foreground(colors.accent),
		textBrand:     base.Foreground(colors.brand),
		textHighlight: base.Foreground(colors.highlight),
		textError:     base.Foreground(colors.error),
		panelError:    base.Background(colors.error).Foreground(colors.accent),
	}
}

func (t Theme) Base() lipgloss.Style          { return t.base }
func (t Theme) TextBody() lipgloss.Style      { return t.textBody }
func (t Theme) TextAccent() lipgloss.Style    { return t.textAccent }
func (t Theme) TextBrand() lipgloss.Style     { return t.textBrand }
func (t Theme) TextHighlight() lipgloss.Style { return t.textHighlight }
func (t Theme) TextError() lipgloss.Style     { return t.textError }
func (t Theme) PanelError() lipgloss.Style    { return t.panelError }

func (t Theme) Border() lipgloss.TerminalColor { return t.colors.border }
