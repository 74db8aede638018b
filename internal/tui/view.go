package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/HaiFongPan/kupo/internal/nav"
	tuiconfig "github.com/HaiFongPan/kupo/internal/tui/config"
	"github.com/HaiFongPan/kupo/internal/tui/theme"
	"github.com/HaiFongPan/kupo/internal/utils"
)

// View implements the bubbletea.Model interface
func (m *FileBrowserModel) View() string {
	if m.quitting {
		return ""
	}

	listWidth, previewWidth, paneHeight := m.layout()
	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderList(listWidth, paneHeight),
		m.renderPreview(previewWidth, paneHeight),
	)

	footer := theme.CreateFooterStyle(m.palette).Render(m.help.ShortHelpView(m.keyMap.ShortHelp()))
	baseView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		panes,
		m.renderInfoBar(),
		m.renderInputLine(),
		" "+m.status.RenderMessage(m.palette),
		footer,
	)

	if m.confirmDelete {
		return m.renderFloatingDialog(m.renderDeleteConfirmation())
	}
	if m.showHelp {
		return m.renderFloatingDialog(m.renderHelpDialog())
	}
	return baseView
}

// renderHeader shows the backend, the directory and its totals
func (m *FileBrowserModel) renderHeader() string {
	dir := m.state.Dir
	if dir == "" {
		dir = m.startDir
	}
	left := fmt.Sprintf("kupo · %s · %s", m.exec.Store().Name(), dir)
	if m.state.Loading {
		left += " " + m.spinner.View()
	}

	entries := m.state.Entries()
	right := fmt.Sprintf("%d items · %s", len(entries), utils.FormatSize(nav.TotalSize(entries)))
	if n := m.state.Selection.Len(); n > 0 {
		right = fmt.Sprintf("%d selected · %s", n, right)
	}

	style := theme.CreateHeaderStyle(m.palette)
	gap := max(1, m.windowWidth-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return style.Render(left + strings.Repeat(" ", gap) + right)
}

// renderList renders the visible slice of the listing
func (m *FileBrowserModel) renderList(width, height int) string {
	panel := theme.CreatePanelStyle(m.palette, width, height, m.state.Focus == nav.PaneList)

	visible := m.state.Visible()
	if len(visible) == 0 {
		msg := "Empty directory"
		switch {
		case m.state.Dir == "" && m.state.Loading:
			msg = m.spinner.View() + " Loading..."
		case m.state.Filter.Active():
			msg = "No matches"
		}
		empty := theme.CreateSecondaryTextStyle(m.palette).
			Width(width).
			Height(height).
			Align(lipgloss.Center).
			AlignVertical(lipgloss.Center)
		return panel.Render(empty.Render(msg))
	}

	end := min(len(visible), m.listOffset+height)
	rows := make([]string, 0, end-m.listOffset)
	for i := m.listOffset; i < end; i++ {
		rows = append(rows, m.renderRow(visible[i], width, i == m.state.Index))
	}
	return panel.Render(strings.Join(rows, "\n"))
}

// renderRow renders one entry as marker, sort index, name and size
func (m *FileBrowserModel) renderRow(e nav.Entry, width int, cursor bool) string {
	marker := "  "
	if m.state.Selection.Contains(e.Path) {
		marker = "● "
	}
	index := fmt.Sprintf("%*d ", tuiconfig.IndexColumnWidth-1, e.SortIndex)

	name := e.Name
	size := utils.FormatSize(e.Size)
	if e.IsDir() {
		name += "/"
		size = ""
	}
	nameWidth := max(1, width-tuiconfig.MarkerColumnWidth-tuiconfig.IndexColumnWidth-tuiconfig.SizeColumnWidth)
	name = ansi.Truncate(name, nameWidth, "…")

	nameCell := lipgloss.NewStyle().Width(nameWidth)
	sizeCell := lipgloss.NewStyle().Width(tuiconfig.SizeColumnWidth).Align(lipgloss.Right)

	if cursor {
		line := marker + index + nameCell.Render(name) + sizeCell.Render(size)
		return theme.CreateCursorStyle(m.palette).Width(width).Render(line)
	}

	muted := theme.CreateSecondaryTextStyle(m.palette).UnsetItalic()
	switch {
	case e.Hidden():
		nameCell = nameCell.Inherit(muted).Faint(true)
	case e.IsDir():
		nameCell = nameCell.Inherit(theme.CreateDirectoryStyle(m.palette))
	default:
		contentType, _ := utils.DetectContentType(e.Path, nil)
		nameCell = nameCell.Foreground(lipgloss.Color(m.palette.GetFileColor(utils.GetFileCategory(contentType))))
	}

	return theme.CreateMarkedStyle(m.palette).Render(marker) +
		muted.Render(index) +
		nameCell.Render(name) +
		muted.Inherit(sizeCell).Render(size)
}

// renderPreview renders the preview pane with a title line
func (m *FileBrowserModel) renderPreview(width, height int) string {
	panel := theme.CreatePanelStyle(m.palette, width, height, m.state.Focus == nav.PanePreview)
	p := m.state.Preview

	title := theme.CreateSecondaryTextStyle(m.palette).Render(ansi.Truncate(baseName(p.Path), width, "…"))
	if last := p.MaxOffset(); last > 0 {
		title += theme.CreateSecondaryTextStyle(m.palette).Render(fmt.Sprintf("  %d/%d", p.Offset+1, last+1))
	}

	var body string
	switch {
	case p.Path == "":
		body = theme.CreateSecondaryTextStyle(m.palette).Render("Nothing to preview")
	case p.Lines == nil && p.Err == nil:
		body = theme.CreateLoadingStyle(m.palette).Render(m.spinner.View() + " Loading preview...")
	default:
		body = m.previewViewport.View()
	}

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// renderInfoBar describes the highlighted entry
func (m *FileBrowserModel) renderInfoBar() string {
	e, ok := m.state.Highlighted()
	if !ok {
		return ""
	}

	parts := []string{theme.CreateInfoTextStyle(m.palette).Render(e.Name), e.Mode.String()}
	if !e.IsDir() {
		parts = append(parts, utils.FormatSize(e.Size))
	}
	if !e.ModTime.IsZero() {
		parts = append(parts, utils.FormatModTime(e.ModTime), "("+utils.FormatAge(e.ModTime)+")")
	}
	return theme.CreateFooterStyle(m.palette).Render(strings.Join(parts, "  "))
}

// renderInputLine shows the filter or the command bar with its reference
func (m *FileBrowserModel) renderInputLine() string {
	secondary := theme.CreateSecondaryTextStyle(m.palette)
	counter := func() string {
		return secondary.Render(fmt.Sprintf("  (%d/%d)", len(m.state.Visible()), len(m.state.Entries())))
	}

	switch {
	case m.state.CommandBar.Active:
		line := " " + m.commandInput.View()
		if spec, ok := nav.LookupCommand(m.state.CommandBar.Input); ok {
			line += secondary.Render(fmt.Sprintf("   %s · %s", spec.Syntax, spec.Description))
		}
		return line
	case m.filtering:
		return " " + m.filterInput.View() + counter()
	case m.state.Filter.Active():
		prompt := theme.CreatePromptStyle(m.palette).Render("/ ")
		return " " + prompt + m.state.Filter.Pattern + counter()
	}
	return ""
}

// renderFloatingDialog centers a dialog in the window
func (m *FileBrowserModel) renderFloatingDialog(dialog string) string {
	return lipgloss.Place(
		m.windowWidth,
		m.windowHeight,
		lipgloss.Center,
		lipgloss.Center,
		dialog,
		lipgloss.WithWhitespaceChars(" "),
	)
}

// renderDeleteConfirmation renders the delete confirmation dialog
func (m *FileBrowserModel) renderDeleteConfirmation() string {
	paths := m.state.Selection.Paths()

	var b strings.Builder
	fmt.Fprintf(&b, "Delete %d item(s)?\n\n", len(paths))
	for i, p := range paths {
		if i == tuiconfig.DeleteListLimit {
			fmt.Fprintf(&b, "... and %d more\n", len(paths)-i)
			break
		}
		b.WriteString(ansi.Truncate(p, tuiconfig.DialogDefaultWidth-6, "…"))
		b.WriteString("\n")
	}
	b.WriteString("\nThis action cannot be undone!\n\n")

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Top,
		theme.CreateDialogButtonStyle(m.palette, false).Render("y  Yes"),
		theme.CreateDialogButtonStyle(m.palette, true).Render("n  No"),
	)
	b.WriteString(buttons)

	return theme.CreateDialogStyle(m.palette, tuiconfig.DialogDefaultWidth, m.palette.Error).Render(b.String())
}

// renderHelpDialog renders the help dialog using bubbles components
func (m *FileBrowserModel) renderHelpDialog() string {
	title := theme.CreateHeaderStyle(m.palette).UnsetMarginLeft().Render("kupo · help")
	instructions := theme.CreateSecondaryTextStyle(m.palette).
		MarginTop(1).
		Render("Press ? or esc to close help • Use ↑↓ to scroll")

	content := lipgloss.JoinVertical(lipgloss.Left, title, m.helpViewport.View(), instructions)
	width := min(tuiconfig.DialogLargeWidth, max(20, m.windowWidth-10))
	return theme.CreateDialogStyle(m.palette, width, m.palette.Warning).Render(content)
}
