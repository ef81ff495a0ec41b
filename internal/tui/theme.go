package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// palette is one Catppuccin flavour.
// https://catppuccin.com/palette
type palette struct {
	Pink, Mauve, Red, Peach, Yellow, Green lipgloss.Color
	Teal, Sky, Sapphire, Blue, Lavender    lipgloss.Color

	Text, Subtext0, Overlay1, Surface2, Surface1, Surface0, Base lipgloss.Color
}

// Mocha
var darkPalette = palette{
	Pink: "#f5c2e7", Mauve: "#cba6f7", Red: "#f38ba8", Peach: "#fab387",
	Yellow: "#f9e2af", Green: "#a6e3a1", Teal: "#94e2d5", Sky: "#89dceb",
	Sapphire: "#74c7ec", Blue: "#89b4fa", Lavender: "#b4befe",

	Text: "#cdd6f4", Subtext0: "#a6adc8", Overlay1: "#7f849c",
	Surface2: "#585b70", Surface1: "#45475a", Surface0: "#313244", Base: "#1e1e2e",
}

// Latte
var lightPalette = palette{
	Pink: "#ea76cb", Mauve: "#8839ef", Red: "#d20f39", Peach: "#fe640b",
	Yellow: "#df8e1d", Green: "#40a02b", Teal: "#179299", Sky: "#04a5e5",
	Sapphire: "#209fb5", Blue: "#1e66f5", Lavender: "#7287fd",

	Text: "#4c4f69", Subtext0: "#6c6f85", Overlay1: "#8c8fa1",
	Surface2: "#acb0be", Surface1: "#bcc0cc", Surface0: "#ccd0da", Base: "#eff1f5",
}

const (
	themeDark  = "dark"
	themeLight = "light"
)

// styles are rebuilt whenever the theme changes.
type styles struct {
	name string
	p    palette

	title    lipgloss.Style
	status   lipgloss.Style
	errText  lipgloss.Style
	okText   lipgloss.Style
	help     lipgloss.Style
	helpKey  lipgloss.Style
	label    lipgloss.Style
	pane     lipgloss.Style
	paneOn   lipgloss.Style
	row      lipgloss.Style
	rowOn    lipgloss.Style
	emph     lipgloss.Style
	chip     lipgloss.Style
	chipOn   lipgloss.Style
	pulse    lipgloss.Style
	field    lipgloss.Style
	fieldOn  lipgloss.Style
	scroll   lipgloss.Style
	axis     lipgloss.Style
	legend   lipgloss.Style
	section  lipgloss.Style
	toggleOn lipgloss.Style
}

func newStyles(theme string) styles {
	p := darkPalette
	if theme == themeLight {
		p = lightPalette
	} else {
		theme = themeDark
	}
	s := styles{name: theme, p: p}
	s.title = lipgloss.NewStyle().Foreground(p.Pink).Bold(true)
	s.status = lipgloss.NewStyle().Foreground(p.Subtext0)
	s.errText = lipgloss.NewStyle().Foreground(p.Red)
	s.okText = lipgloss.NewStyle().Foreground(p.Green)
	s.help = lipgloss.NewStyle().Foreground(p.Overlay1)
	s.helpKey = lipgloss.NewStyle().Foreground(p.Lavender).Bold(true)
	s.label = lipgloss.NewStyle().Foreground(p.Subtext0)
	s.pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface2).
		Padding(0, 1)
	s.paneOn = s.pane.BorderForeground(p.Lavender)
	s.row = lipgloss.NewStyle().Foreground(p.Text)
	s.rowOn = lipgloss.NewStyle().Foreground(p.Base).Background(p.Lavender)
	s.emph = lipgloss.NewStyle().Foreground(p.Peach).Bold(true)
	s.chip = lipgloss.NewStyle().Foreground(p.Base).Background(p.Teal).Padding(0, 1)
	s.chipOn = s.chip.Background(p.Pink)
	s.pulse = lipgloss.NewStyle().Foreground(p.Green).Bold(true)
	s.field = lipgloss.NewStyle().Foreground(p.Text)
	s.fieldOn = lipgloss.NewStyle().Foreground(p.Lavender).Bold(true)
	s.scroll = lipgloss.NewStyle().Foreground(p.Overlay1)
	s.axis = lipgloss.NewStyle().Foreground(p.Surface2)
	s.legend = lipgloss.NewStyle().Foreground(p.Subtext0)
	s.section = lipgloss.NewStyle().Foreground(p.Mauve).Bold(true)
	s.toggleOn = lipgloss.NewStyle().Foreground(p.Green).Bold(true)
	return s
}

// seriesColors cycles through accents for chart lines.
func (s styles) seriesColors() []lipgloss.Color {
	return []lipgloss.Color{s.p.Blue, s.p.Peach, s.p.Green, s.p.Mauve, s.p.Yellow, s.p.Teal, s.p.Red, s.p.Sapphire, s.p.Pink}
}

func (s styles) tableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.p.Surface2).
		BorderBottom(true).
		Foreground(s.p.Mauve).
		Bold(true)
	ts.Cell = ts.Cell.Foreground(s.p.Text)
	ts.Selected = ts.Selected.Foreground(s.p.Text).Bold(false)
	return ts
}
