package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// CreatePanelStyle creates the frame around the list and preview panes
func CreatePanelStyle(p Palette, width, height int, focused bool) lipgloss.Style {
	border, color := BorderStyleUnified, p.InactiveFrame
	if focused {
		border, color = BorderStyleFocused, p.Accent
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Border(border).
		BorderForeground(lipgloss.Color(color)).
		Foreground(lipgloss.Color(p.Text))
}

// CreateHeaderStyle creates the style of the top line
func CreateHeaderStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Accent)).
		MarginLeft(1)
}

// CreateFooterStyle creates the style of the key hints line
func CreateFooterStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Muted)).
		MarginLeft(1)
}

// CreateInfoTextStyle creates a plain text style
func CreateInfoTextStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Text))
}

// CreateSecondaryTextStyle creates a dimmed text style
func CreateSecondaryTextStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Muted)).
		Italic(true)
}

// CreateCursorStyle highlights the row under the cursor
func CreateCursorStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.CursorFg)).
		Background(lipgloss.Color(p.CursorBg)).
		Bold(true)
}

// CreateDirectoryStyle styles directory names
func CreateDirectoryStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Accent)).
		Bold(true)
}

// CreateMarkedStyle styles the selection marker
func CreateMarkedStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Marked)).
		Bold(true)
}

// CreateLoadingStyle creates a consistent loading state style
func CreateLoadingStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning))
}

// CreateErrorStyle creates a consistent error style
func CreateErrorStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error))
}
