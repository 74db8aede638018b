package nav

import (
	"fmt"
	"path/filepath"
)

// Pane identifies which pane has keyboard focus
type Pane int

const (
	PaneList Pane = iota
	PanePreview
)

// StatusLevel grades a status line message
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// Status is the last message produced by an operation
type Status struct {
	Text  string
	Level StatusLevel
	Err   error
}

// CommandBar is the state of the ":" prompt
type CommandBar struct {
	Active bool
	Input  string
}

// State is the complete navigation state of one browser. It is a value:
// Apply never modifies the receiver and never performs I/O.
type State struct {
	Dir        string
	Home       string
	Index      int
	ShowHidden bool
	Focus      Pane
	Filter     Filter
	Selection  Selection
	Preview    Preview
	CommandBar CommandBar
	Status     Status
	Loading    bool

	raw       []Entry // everything read from Dir
	entries   []Entry // raw sorted, dot files dropped unless ShowHidden
	visible   []Entry // entries narrowed by Filter
	pending   string  // directory requested by the last ReadDir
	statusSeq int
}

// New creates an empty state. home expands "~" in command paths.
func New(home string, showHidden bool) State {
	return State{
		Home:       home,
		ShowHidden: showHidden,
		Preview:    Preview{Viewport: 20},
	}
}

// Entries returns the full sorted listing of the current directory
func (s State) Entries() []Entry {
	return s.entries
}

// Visible returns the listing after the filter is applied
func (s State) Visible() []Entry {
	return s.visible
}

// Highlighted returns the entry under the cursor
func (s State) Highlighted() (Entry, bool) {
	if s.Index < 0 || s.Index >= len(s.visible) {
		return Entry{}, false
	}
	return s.visible[s.Index], true
}

// StatusSeq increases every time Status is replaced
func (s State) StatusSeq() int {
	return s.statusSeq
}

// Apply processes one input and returns the next state together with the
// effects an executor must perform.
func (s State) Apply(in Input) (State, []Effect) {
	next, effects := s.apply(in)
	return next.syncPreview(effects)
}

func (s State) apply(in Input) (State, []Effect) {
	next, effects := s.dispatch(in)

	// only a cursor move that lands elsewhere drops the pre-filter highlight
	switch in.(type) {
	case MoveNext, MovePrevious, GoToFirst, GoToLast, JumpToSortIndex:
		if next.Filter.Active() && next.Index != s.Index {
			next.Filter.moved = true
		}
	}
	return next, effects
}

func (s State) dispatch(in Input) (State, []Effect) {
	switch in := in.(type) {
	case EnterDirectory:
		return s.requestDir(filepath.Clean(in.Path), in.Highlight)

	case MoveNext:
		if s.Index < len(s.visible)-1 {
			s.Index++
		}
	case MovePrevious:
		if s.Index > 0 {
			s.Index--
		}
	case GoToFirst:
		s.Index = 0
	case GoToLast:
		s.Index = lastIndex(s.visible)

	case GoToParent:
		if s.Dir == "" {
			return s, nil
		}
		parent := filepath.Dir(s.Dir)
		if parent == s.Dir {
			return s, nil
		}
		return s.requestDir(parent, s.Dir)

	case GoToHighlighted:
		if e, ok := s.Highlighted(); ok && e.IsDir() {
			return s.requestDir(e.Path, "")
		}

	case JumpToSortIndex:
		if in.N < 1 || in.N > len(s.entries) {
			return s, nil
		}
		for i, e := range s.visible {
			if e.SortIndex == in.N {
				s.Index = i
				break
			}
		}

	case ToggleSelection:
		if e, ok := s.Highlighted(); ok {
			s.Selection = s.Selection.Toggle(e.Path)
		}

	case DeleteSelected:
		if s.Selection.Empty() {
			return s.setStatus("nothing selected", StatusWarning, nil), nil
		}
		paths := s.Selection.Paths()
		s = s.setStatus(fmt.Sprintf("deleting %d item(s)", len(paths)), StatusInfo, nil)
		return s, []Effect{DeletePaths{Paths: paths}}

	case ApplyFilter:
		return s.applyFilter(in.Pattern), nil
	case ClearFilter:
		return s.clearFilter(), nil

	case PreviewTop:
		s.Preview = s.Preview.Top()
	case PreviewBottom:
		s.Preview = s.Preview.Bottom()
	case PreviewScroll:
		s.Preview = s.Preview.Scroll(in.Delta)

	case OpenCommandBar:
		s.CommandBar = CommandBar{Active: true}
	case CommandInput:
		if s.CommandBar.Active {
			s.CommandBar.Input = in.Value
		}
	case CancelCommand:
		s.CommandBar = CommandBar{}
	case SubmitCommand:
		return s.submit()

	case Refresh:
		if s.Dir == "" {
			return s, nil
		}
		return s.requestDir(s.Dir, s.highlightedPath())

	case ToggleHidden:
		s.ShowHidden = !s.ShowHidden
		return s.rebuild(s.highlightedPath()), nil

	case SwitchPane:
		if s.Focus == PaneList {
			s.Focus = PanePreview
		} else {
			s.Focus = PaneList
		}

	case Resize:
		if in.PreviewHeight < 0 {
			in.PreviewHeight = 0
		}
		s.Preview.Viewport = in.PreviewHeight
		s.Preview = s.Preview.Scroll(0)

	case DirLoaded:
		return s.dirLoaded(in)
	case EntryCreated:
		return s.entryCreated(in)
	case BatchDeleted:
		return s.batchDeleted(in), nil
	case PreviewLoaded:
		if in.Path != s.Preview.Path {
			return s, nil
		}
		s.Preview.Lines = in.Lines
		s.Preview.Err = in.Err
		s.Preview = s.Preview.Scroll(0)
	}
	return s, nil
}

func (s State) requestDir(path, highlight string) (State, []Effect) {
	s.pending = path
	s.Loading = true
	return s, []Effect{ReadDir{Path: path, Highlight: highlight}}
}

func (s State) dirLoaded(in DirLoaded) (State, []Effect) {
	if in.Path != s.pending && !(s.pending == "" && in.Path == s.Dir) {
		return s, nil
	}
	s.pending = ""
	s.Loading = false

	if in.Err != nil {
		return s.setStatus("", StatusError, Classify(in.Err, in.Path)), nil
	}

	keep := in.Highlight
	if in.Path != s.Dir {
		s.Dir = in.Path
		s.Filter = Filter{}
		s.Index = 0
	} else if keep == "" {
		keep = s.highlightedPath()
	}

	s.raw = append([]Entry(nil), in.Entries...)
	s = s.rebuild(keep)

	// a refresh keeps the scroll position but re-reads the content
	var effects []Effect
	if e, ok := s.Highlighted(); ok && e.Path == s.Preview.Path {
		effects = append(effects, LoadPreview{Path: e.Path, Kind: e.Kind})
	}
	return s, effects
}

func (s State) entryCreated(in EntryCreated) (State, []Effect) {
	if in.Err != nil {
		return s.setStatus("", StatusError, Classify(in.Err, in.Path)), nil
	}
	s = s.setStatus(fmt.Sprintf("created %s %s", in.Kind, in.Path), StatusSuccess, nil)

	// the new entry must be visible to take the highlight
	name := filepath.Base(in.Path)
	if s.Filter.Active() && !Matcher(s.Filter.Pattern)(name) {
		s.Filter = Filter{}
	}
	if !s.ShowHidden && (Entry{Name: name}).Hidden() {
		s.ShowHidden = true
	}
	return s.requestDir(filepath.Dir(in.Path), in.Path)
}

func (s State) batchDeleted(in BatchDeleted) State {
	s.Selection = s.Selection.Remove(in.Deleted...)

	gone := make(map[string]struct{}, len(in.Deleted))
	for _, p := range in.Deleted {
		gone[p] = struct{}{}
	}
	keep := s.highlightedPath()
	raw := make([]Entry, 0, len(s.raw))
	for _, e := range s.raw {
		if _, ok := gone[e.Path]; !ok {
			raw = append(raw, e)
		}
	}
	s.raw = raw
	s = s.rebuild(keep)

	if err := BatchError(in.Failures); err != nil {
		return s.setStatus("", StatusError, err)
	}
	return s.setStatus(fmt.Sprintf("deleted %d item(s)", len(in.Deleted)), StatusSuccess, nil)
}

func (s State) submit() (State, []Effect) {
	line := s.CommandBar.Input
	s.CommandBar = CommandBar{}

	cmd, err := ParseCommand(line)
	if err != nil {
		return s.setStatus("", StatusError, err), nil
	}

	switch c := cmd.(type) {
	case CmdChangeDir:
		return s.requestDir(ResolvePath(s.Dir, s.Home, c.Path), "")
	case CmdTouch:
		return s, []Effect{CreateEntry{Path: ResolvePath(s.Dir, s.Home, c.Path), Kind: KindFile}}
	case CmdMakeDir:
		return s, []Effect{CreateEntry{Path: ResolvePath(s.Dir, s.Home, c.Path), Kind: KindDir}}
	case CmdQuit:
		return s, []Effect{Quit{}}
	case CmdUnknown:
		return s.setStatus("", StatusError, NewError(UnknownCommand, c.Name, nil)), nil
	}
	return s, nil
}

func (s State) applyFilter(pattern string) State {
	if pattern == "" {
		return s.clearFilter()
	}
	keep := s.highlightedPath()
	if !s.Filter.Active() {
		s.Filter.restore = keep
	}
	s.Filter.Pattern = pattern
	s.visible = filterEntries(s.entries, pattern)
	s.Index = s.indexFor(keep)
	return s
}

// clearFilter returns to the full listing. The highlight goes back to the
// entry highlighted before filtering unless the cursor was moved since.
func (s State) clearFilter() State {
	keep := s.Filter.restore
	if s.Filter.moved || keep == "" {
		if path := s.highlightedPath(); path != "" {
			keep = path
		}
	}
	s.Filter = Filter{}
	s.visible = s.entries
	s.Index = 0
	if i := indexOfPath(s.visible, keep); i >= 0 {
		s.Index = i
	}
	return s
}

// rebuild recomputes the sorted and filtered listings from raw, keeping
// the highlight on keep when it is still visible
func (s State) rebuild(keep string) State {
	shown := s.raw
	if !s.ShowHidden {
		shown = withoutHidden(shown)
	}
	s.entries = SortEntries(shown)
	s.visible = filterEntries(s.entries, s.Filter.Pattern)
	s.Index = s.indexFor(keep)
	return s
}

func (s State) indexFor(path string) int {
	if i := indexOfPath(s.visible, path); i >= 0 {
		return i
	}
	return clamp(s.Index, 0, lastIndex(s.visible))
}

func (s State) highlightedPath() string {
	if e, ok := s.Highlighted(); ok {
		return e.Path
	}
	return ""
}

func (s State) setStatus(text string, level StatusLevel, err error) State {
	if text == "" && err != nil {
		text = err.Error()
	}
	s.Status = Status{Text: text, Level: level, Err: err}
	s.statusSeq++
	return s
}

// syncPreview resets the preview when the highlight moved to another path
func (s State) syncPreview(effects []Effect) (State, []Effect) {
	e, ok := s.Highlighted()
	if !ok {
		if s.Preview.Path != "" {
			s.Preview = Preview{Viewport: s.Preview.Viewport}
		}
		return s, effects
	}
	if e.Path == s.Preview.Path {
		return s, effects
	}
	s.Preview = Preview{Path: e.Path, Viewport: s.Preview.Viewport}
	return s, append(effects, LoadPreview{Path: e.Path, Kind: e.Kind})
}

func lastIndex(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	return len(entries) - 1
}
