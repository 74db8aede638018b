package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// CreateDialogStyle creates a floating dialog box. An empty borderColor
// uses the accent color.
func CreateDialogStyle(p Palette, width int, borderColor string) lipgloss.Style {
	if borderColor == "" {
		borderColor = p.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Background(lipgloss.Color(p.DialogBg)).
		Foreground(lipgloss.Color(p.Text)).
		Padding(1, 2).
		Width(width)
}

// CreatePromptStyle creates a style for prompt text in dialogs and inputs
func CreatePromptStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Warning)).
		Bold(true)
}

// CreateDialogButtonStyle creates a style for dialog buttons
func CreateDialogButtonStyle(p Palette, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(0, 2).
		Margin(0, 1).
		Border(lipgloss.RoundedBorder())

	if selected {
		return style.
			Foreground(lipgloss.Color(p.DialogBg)).
			Background(lipgloss.Color(p.Warning)).
			BorderForeground(lipgloss.Color(p.Warning))
	}

	return style.
		Foreground(lipgloss.Color(p.Secondary)).
		BorderForeground(lipgloss.Color(p.Secondary))
}
