package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	colorGreenConstant  = lipgloss.Color("2")
	colorRedConstant    = lipgloss.Color("1")
	colorYellowConstant = lipgloss.Color("3")
	colorBlueConstant   = lipgloss.Color("4")
	colorGrayConstant   = lipgloss.Color("8")
)

// Styles holds the lipgloss styles bound to one output stream. Text rendered for a
// stream that is not a color terminal is returned unchanged.
type Styles struct {
	plain   bool
	Command lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style
	Heading lipgloss.Style
	Step    lipgloss.Style
	Link    lipgloss.Style
}

// NewStyles detects the color capabilities of output and builds matching styles.
func NewStyles(output io.Writer) Styles {
	renderer := lipgloss.NewRenderer(output)
	return Styles{
		plain:   renderer.ColorProfile() == termenv.Ascii,
		Command: renderer.NewStyle().Foreground(colorGrayConstant),
		Success: renderer.NewStyle().Foreground(colorGreenConstant),
		Failure: renderer.NewStyle().Foreground(colorRedConstant),
		Warning: renderer.NewStyle().Foreground(colorYellowConstant),
		Heading: renderer.NewStyle().Bold(true),
		Step:    renderer.NewStyle().Foreground(colorBlueConstant).Bold(true),
		Link:    renderer.NewStyle().Foreground(colorBlueConstant).Underline(true),
	}
}

// PlainStyles returns styles that never emit escape sequences.
func PlainStyles() Styles {
	return Styles{plain: true}
}

// Render applies style to text unless the output is plain.
func (styles Styles) Render(style lipgloss.Style, text string) string {
	if styles.plain {
		return text
	}
	return style.Render(text)
}
