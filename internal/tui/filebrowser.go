package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/kupo/internal/config"
	"github.com/HaiFongPan/kupo/internal/executor"
	"github.com/HaiFongPan/kupo/internal/nav"
	tuiconfig "github.com/HaiFongPan/kupo/internal/tui/config"
	"github.com/HaiFongPan/kupo/internal/tui/messaging"
	"github.com/HaiFongPan/kupo/internal/tui/theme"
	"github.com/HaiFongPan/kupo/internal/utils"
	"github.com/HaiFongPan/kupo/internal/watch"
)

// Options configures a file browser
type Options struct {
	Config   *config.Config
	Executor *executor.Executor
	// Watcher enables auto refresh of the current directory; may be nil
	Watcher   *watch.Watcher
	StartDir  string
	Highlight string
	Home      string
}

// FileBrowserModel represents the file browser TUI model. All navigation
// state lives in a nav.State; the model only owns widgets and dialogs.
type FileBrowserModel struct {
	state    nav.State
	exec     *executor.Executor
	config   *config.Config
	watcher  *watch.Watcher
	ctx      context.Context
	startDir string
	startSel string

	keyMap          KeyMap
	help            help.Model
	spinner         spinner.Model
	helpViewport    viewport.Model
	previewViewport viewport.Model
	filterInput     textinput.Model
	commandInput    textinput.Model
	status          messaging.StatusManager

	dark          bool
	palette       theme.Palette
	filtering     bool
	confirmDelete bool
	showHelp      bool
	quitting      bool
	listOffset    int
	statusSeq     int
	windowWidth   int
	windowHeight  int
}

// Message types for tea.Cmd communication
type effectResultMsg struct {
	input nav.Input
}

type dirChangedMsg struct {
	dir string
}

type clipboardMsg struct {
	path string
	err  error
}

type clearStatusMsg struct {
	id int
}

// NewFileBrowserModel creates a new file browser model
func NewFileBrowserModel(opts Options) *FileBrowserModel {
	cfg := opts.Config

	s := spinner.New()
	s.Spinner = spinner.Dot

	h := help.New()
	h.ShowAll = false

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "filter (glob or substring)"
	fi.CharLimit = 256

	ci := textinput.New()
	ci.Prompt = ": "
	ci.Placeholder = "cd PATH, touch PATH, mkdir PATH, q"
	ci.CharLimit = 1024

	m := &FileBrowserModel{
		state:           nav.New(opts.Home, cfg.UI.ShowHidden),
		exec:            opts.Executor,
		config:          cfg,
		watcher:         opts.Watcher,
		ctx:             context.Background(),
		startDir:        opts.StartDir,
		startSel:        opts.Highlight,
		keyMap:          DefaultKeyMap(),
		help:            h,
		spinner:         s,
		helpViewport:    viewport.New(tuiconfig.HelpViewportWidth, tuiconfig.HelpViewportHeight),
		previewViewport: viewport.New(0, 0),
		filterInput:     fi,
		commandInput:    ci,
		status:          messaging.NewStatusManager(),
	}
	m.setDark(cfg.UI.Dark)
	m.resize(tuiconfig.DefaultWindowWidth, tuiconfig.DefaultWindowHeight)
	return m
}

// State returns the current navigation state
func (m *FileBrowserModel) State() nav.State {
	return m.state
}

// Dark reports whether the dark palette is active
func (m *FileBrowserModel) Dark() bool {
	return m.dark
}

// Init implements the bubbletea.Model interface
func (m *FileBrowserModel) Init() tea.Cmd {
	return tea.Batch(
		m.apply(nav.EnterDirectory{Path: m.startDir, Highlight: m.startSel}),
		m.spinner.Tick,
		m.waitForChange(),
	)
}

// Update implements the bubbletea.Model interface
func (m *FileBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch {
		case m.confirmDelete:
			return m, m.handleDeleteConfirmation(msg)
		case m.showHelp:
			return m, m.handleHelp(msg)
		case m.filtering:
			return m, m.handleFilterInput(msg)
		case m.state.CommandBar.Active:
			return m, m.handleCommandInput(msg)
		}
		return m, m.handleNavigation(msg)

	case tea.WindowSizeMsg:
		return m, m.resize(msg.Width, msg.Height)

	case effectResultMsg:
		return m, m.apply(msg.input)

	case dirChangedMsg:
		cmds := []tea.Cmd{m.waitForChange()}
		if msg.dir == m.state.Dir && !m.state.Loading {
			logrus.WithField("directory", msg.dir).Debug("Directory changed on disk, refreshing")
			cmds = append(cmds, m.apply(nav.Refresh{}))
		}
		return m, tea.Batch(cmds...)

	case clipboardMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("copy failed: %v", msg.err), messaging.MessageError)
		}
		return m, m.setStatus("copied "+msg.path, messaging.MessageSuccess)

	case clearStatusMsg:
		m.status.ClearIfCurrent(msg.id)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// apply feeds inputs to the navigation state and schedules the resulting
// effects. Intermediate preview loads are dropped; only the preview of
// the final highlight is read.
func (m *FileBrowserModel) apply(inputs ...nav.Input) tea.Cmd {
	var effects []nav.Effect
	var preview *nav.LoadPreview
	for _, in := range inputs {
		var out []nav.Effect
		m.state, out = m.state.Apply(in)
		for _, eff := range out {
			if lp, ok := eff.(nav.LoadPreview); ok {
				preview = &lp
				continue
			}
			effects = append(effects, eff)
		}
	}
	if preview != nil && preview.Path == m.state.Preview.Path {
		effects = append(effects, *preview)
	}

	cmds := m.runEffects(effects)
	cmds = append(cmds, m.syncStatus())
	m.syncWatch()
	m.syncPreview()
	m.adjustListOffset()
	return tea.Batch(cmds...)
}

// runEffects turns effects into commands that execute off the update loop
func (m *FileBrowserModel) runEffects(effects []nav.Effect) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		if _, ok := eff.(nav.Quit); ok {
			m.quitting = true
			cmds = append(cmds, tea.Quit)
			continue
		}
		ctx, exec := m.ctx, m.exec
		cmds = append(cmds, func() tea.Msg {
			return effectResultMsg{input: exec.Execute(ctx, eff)}
		})
	}
	return cmds
}

// syncStatus copies a new navigation status into the status line
func (m *FileBrowserModel) syncStatus() tea.Cmd {
	if m.state.StatusSeq() == m.statusSeq {
		return nil
	}
	m.statusSeq = m.state.StatusSeq()

	st := m.state.Status
	if st.Err != nil {
		logrus.WithFields(logrus.Fields{"error": st.Err, "kind": nav.KindOf(st.Err)}).Warn("Operation failed")
	}
	return m.setStatus(st.Text, messaging.FromLevel(st.Level))
}

func (m *FileBrowserModel) setStatus(text string, msgType messaging.MessageType) tea.Cmd {
	id := m.status.SetMessage(text, msgType)
	if msgType == messaging.MessageError {
		return nil
	}
	return tea.Tick(tuiconfig.StatusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// syncWatch moves the watcher to the current directory
func (m *FileBrowserModel) syncWatch() {
	if m.watcher == nil || m.state.Dir == "" || m.watcher.Dir() == m.state.Dir {
		return
	}
	if err := m.watcher.Switch(m.state.Dir); err != nil {
		logrus.WithFields(logrus.Fields{"directory": m.state.Dir, "error": err}).Warn("Auto refresh unavailable")
	}
}

func (m *FileBrowserModel) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return dirChangedMsg{dir: change.Dir}
	}
}

// syncPreview loads the preview lines into the viewport
func (m *FileBrowserModel) syncPreview() {
	p := m.state.Preview
	switch {
	case p.Err != nil:
		m.previewViewport.SetContent(theme.CreateErrorStyle(m.palette).Render(p.Err.Error()))
	default:
		m.previewViewport.SetContent(strings.Join(p.Lines, "\n"))
	}
	m.previewViewport.SetYOffset(p.Offset)
}

// resize recomputes pane sizes for a new window size
func (m *FileBrowserModel) resize(width, height int) tea.Cmd {
	m.windowWidth = width
	m.windowHeight = height

	_, previewWidth, paneHeight := m.layout()
	m.previewViewport.Width = previewWidth
	m.previewViewport.Height = max(1, paneHeight-1)
	if m.exec != nil && m.exec.Preview() != nil {
		m.exec.Preview().SetImageWidth(previewWidth)
	}

	m.helpViewport.Width = min(tuiconfig.HelpViewportWidth, max(10, width-10))
	m.helpViewport.Height = min(tuiconfig.HelpViewportHeight, max(3, height-10))
	m.help.Width = width

	return m.apply(nav.Resize{PreviewHeight: m.previewViewport.Height})
}

// layout returns the inner width of both panes and their common height
func (m *FileBrowserModel) layout() (listWidth, previewWidth, paneHeight int) {
	paneHeight = max(1, m.windowHeight-tuiconfig.ChromeHeight)

	pct := m.config.UI.PreviewWidth
	if pct <= 0 {
		pct = tuiconfig.DefaultPreviewPct
	}
	inner := max(2*tuiconfig.MinPanelWidth, m.windowWidth-2*tuiconfig.PanelBorderWidth)
	previewWidth = max(tuiconfig.MinPanelWidth, inner*pct/100)
	listWidth = max(tuiconfig.MinPanelWidth, inner-previewWidth)
	return listWidth, previewWidth, paneHeight
}

// adjustListOffset keeps the cursor inside the visible rows
func (m *FileBrowserModel) adjustListOffset() {
	_, _, height := m.layout()
	index := m.state.Index
	if index < m.listOffset {
		m.listOffset = index
	} else if index >= m.listOffset+height {
		m.listOffset = index - height + 1
	}
	m.listOffset = max(0, min(m.listOffset, len(m.state.Visible())-height))
}

func (m *FileBrowserModel) setDark(dark bool) {
	m.dark = dark
	m.palette = theme.PaletteFor(dark)

	m.spinner.Style = theme.CreateLoadingStyle(m.palette)
	m.filterInput.PromptStyle = theme.CreatePromptStyle(m.palette)
	m.commandInput.PromptStyle = theme.CreatePromptStyle(m.palette)
	m.helpViewport.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Text))
	m.syncPreview()
}

// handleNavigation handles keys while no input or dialog is open
func (m *FileBrowserModel) handleNavigation(msg tea.KeyMsg) tea.Cmd {
	inPreview := m.state.Focus == nav.PanePreview
	_, _, page := m.layout()

	switch {
	case key.Matches(msg, m.keyMap.Up):
		if inPreview {
			return m.apply(nav.PreviewScroll{Delta: -1})
		}
		return m.apply(nav.MovePrevious{})

	case key.Matches(msg, m.keyMap.Down):
		if inPreview {
			return m.apply(nav.PreviewScroll{Delta: 1})
		}
		return m.apply(nav.MoveNext{})

	case key.Matches(msg, m.keyMap.PageUp):
		if inPreview {
			return m.apply(nav.PreviewScroll{Delta: -m.state.Preview.Viewport})
		}
		return m.apply(repeat(nav.MovePrevious{}, page)...)

	case key.Matches(msg, m.keyMap.PageDown):
		if inPreview {
			return m.apply(nav.PreviewScroll{Delta: m.state.Preview.Viewport})
		}
		return m.apply(repeat(nav.MoveNext{}, page)...)

	case key.Matches(msg, m.keyMap.Home):
		if inPreview {
			return m.apply(nav.PreviewTop{})
		}
		return m.apply(nav.GoToFirst{})

	case key.Matches(msg, m.keyMap.End):
		if inPreview {
			return m.apply(nav.PreviewBottom{})
		}
		return m.apply(nav.GoToLast{})

	case key.Matches(msg, m.keyMap.Parent):
		return m.apply(nav.GoToParent{})

	case key.Matches(msg, m.keyMap.Enter):
		return m.apply(nav.GoToHighlighted{})

	case key.Matches(msg, m.keyMap.Jump):
		n := int(msg.String()[0] - '0')
		if n == 0 {
			n = 10
		}
		return m.apply(nav.JumpToSortIndex{N: n})

	case key.Matches(msg, m.keyMap.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.state.Filter.Pattern)
		m.filterInput.CursorEnd()
		return m.filterInput.Focus()

	case key.Matches(msg, m.keyMap.Toggle):
		return m.apply(nav.ToggleSelection{})

	case key.Matches(msg, m.keyMap.Delete):
		if m.state.Selection.Empty() || !m.config.UI.ConfirmDelete {
			return m.apply(nav.DeleteSelected{})
		}
		m.confirmDelete = true
		return nil

	case key.Matches(msg, m.keyMap.Command):
		m.commandInput.Reset()
		return tea.Batch(m.apply(nav.OpenCommandBar{}), m.commandInput.Focus())

	case key.Matches(msg, m.keyMap.Pane):
		return m.apply(nav.SwitchPane{})

	case key.Matches(msg, m.keyMap.Hidden):
		return m.apply(nav.ToggleHidden{})

	case key.Matches(msg, m.keyMap.Refresh):
		return m.apply(nav.Refresh{})

	case key.Matches(msg, m.keyMap.Copy):
		return m.copyHighlighted()

	case key.Matches(msg, m.keyMap.Theme):
		m.setDark(!m.dark)
		return m.setStatus("theme: "+m.palette.Name, messaging.MessageInfo)

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		m.setupHelpViewport()
	}

	return nil
}

// handleFilterInput applies the filter live while it is typed
func (m *FileBrowserModel) handleFilterInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		m.filtering = false
		m.filterInput.Blur()
		return nil
	case msg.Type == tea.KeyEsc:
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.Reset()
		return m.apply(nav.ClearFilter{})
	case msg.Type == tea.KeyUp:
		return m.apply(nav.MovePrevious{})
	case msg.Type == tea.KeyDown:
		return m.apply(nav.MoveNext{})
	}

	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if value := m.filterInput.Value(); value != before {
		return tea.Batch(cmd, m.apply(nav.ApplyFilter{Pattern: value}))
	}
	return cmd
}

// handleCommandInput mirrors the command input into the command bar
func (m *FileBrowserModel) handleCommandInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		m.commandInput.Blur()
		line := m.state.CommandBar.Input
		logrus.WithField("command", line).Info("Running command")
		return m.apply(nav.SubmitCommand{})
	case msg.Type == tea.KeyEsc:
		m.commandInput.Blur()
		return m.apply(nav.CancelCommand{})
	}

	before := m.commandInput.Value()
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	if value := m.commandInput.Value(); value != before {
		return tea.Batch(cmd, m.apply(nav.CommandInput{Value: value}))
	}
	return cmd
}

// handleDeleteConfirmation handles delete confirmation dialog
func (m *FileBrowserModel) handleDeleteConfirmation(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Confirm):
		m.confirmDelete = false
		return m.apply(nav.DeleteSelected{})

	case key.Matches(msg, m.keyMap.Cancel):
		m.confirmDelete = false
		return m.setStatus("delete cancelled", messaging.MessageInfo)
	}
	return nil
}

func (m *FileBrowserModel) handleHelp(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keyMap.Help) || msg.Type == tea.KeyEsc {
		m.showHelp = false
		return nil
	}
	var cmd tea.Cmd
	m.helpViewport, cmd = m.helpViewport.Update(msg)
	return cmd
}

func (m *FileBrowserModel) copyHighlighted() tea.Cmd {
	e, ok := m.state.Highlighted()
	if !ok {
		return nil
	}
	path := e.Path
	return func() tea.Msg {
		return clipboardMsg{path: path, err: utils.CopyToClipboard(path)}
	}
}

// setupHelpViewport fills the help viewport with key bindings and the
// command reference
func (m *FileBrowserModel) setupHelpViewport() {
	h := m.help
	h.Width = m.helpViewport.Width

	var b strings.Builder
	b.WriteString(h.FullHelpView(m.keyMap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(theme.CreateHeaderStyle(m.palette).UnsetMarginLeft().Render("Commands"))
	b.WriteString("\n")
	for _, spec := range nav.Commands {
		fmt.Fprintf(&b, "  %-12s %s\n", spec.Syntax, spec.Description)
	}
	m.helpViewport.SetContent(b.String())
	m.helpViewport.GotoTop()
}

func repeat(in nav.Input, n int) []nav.Input {
	inputs := make([]nav.Input, max(1, n))
	for i := range inputs {
		inputs[i] = in
	}
	return inputs
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
