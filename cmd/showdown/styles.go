package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/showdown/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	redCardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	blackCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// renderCards colors hearts and diamonds red. With glyphs set each card is
// drawn as its Unicode playing card character.
func renderCards(cards []poker.Card, glyphs bool) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		text := c.String()
		if glyphs {
			text = string(c.Glyph())
		}
		style := blackCardStyle
		if c.Suit == poker.Hearts || c.Suit == poker.Diamonds {
			style = redCardStyle
		}
		parts[i] = style.Render(text)
	}
	return strings.Join(parts, " ")
}
