package nav

// Input is an event fed to State.Apply
type Input interface {
	input()
}

// Key and command inputs
type (
	// EnterDirectory reads Path; Highlight optionally names the entry to
	// place the cursor on once it is loaded
	EnterDirectory struct {
		Path      string
		Highlight string
	}
	MoveNext        struct{}
	MovePrevious    struct{}
	GoToParent      struct{}
	GoToHighlighted struct{}
	GoToFirst       struct{}
	GoToLast        struct{}
	// JumpToSortIndex highlights the entry whose SortIndex is N
	JumpToSortIndex struct{ N int }
	ToggleSelection struct{}
	DeleteSelected  struct{}
	ApplyFilter     struct{ Pattern string }
	ClearFilter     struct{}
	PreviewTop      struct{}
	PreviewBottom   struct{}
	PreviewScroll   struct{ Delta int }
	OpenCommandBar  struct{}
	// CommandInput replaces the command bar buffer
	CommandInput  struct{ Value string }
	SubmitCommand struct{}
	CancelCommand struct{}
	Refresh       struct{}
	ToggleHidden  struct{}
	SwitchPane    struct{}
	// Resize sets the number of preview lines visible at once
	Resize struct{ PreviewHeight int }
)

// Results of effects, fed back by the executor
type (
	DirLoaded struct {
		Path      string
		Entries   []Entry
		Highlight string
		Err       error
	}
	EntryCreated struct {
		Path string
		Kind Kind
		Err  error
	}
	BatchDeleted struct {
		Deleted  []string
		Failures []Failure
	}
	PreviewLoaded struct {
		Path  string
		Lines []string
		Err   error
	}
)

func (EnterDirectory) input()  {}
func (MoveNext) input()        {}
func (MovePrevious) input()    {}
func (GoToParent) input()      {}
func (GoToHighlighted) input() {}
func (GoToFirst) input()       {}
func (GoToLast) input()        {}
func (JumpToSortIndex) input() {}
func (ToggleSelection) input() {}
func (DeleteSelected) input()  {}
func (ApplyFilter) input()     {}
func (ClearFilter) input()     {}
func (PreviewTop) input()      {}
func (PreviewBottom) input()   {}
func (PreviewScroll) input()   {}
func (OpenCommandBar) input()  {}
func (CommandInput) input()    {}
func (SubmitCommand) input()   {}
func (CancelCommand) input()   {}
func (Refresh) input()         {}
func (ToggleHidden) input()    {}
func (SwitchPane) input()      {}
func (Resize) input()          {}
func (DirLoaded) input()       {}
func (EntryCreated) input()    {}
func (BatchDeleted) input()    {}
func (PreviewLoaded) input()   {}

// Effect describes I/O for the executor to perform
type Effect interface {
	effect()
}

type (
	// ReadDir reads Path and answers with DirLoaded
	ReadDir struct {
		Path      string
		Highlight string
	}
	// CreateEntry creates a file or directory and answers with EntryCreated
	CreateEntry struct {
		Path string
		Kind Kind
	}
	// DeletePaths removes every path and answers with BatchDeleted
	DeletePaths struct{ Paths []string }
	// LoadPreview reads preview content and answers with PreviewLoaded
	LoadPreview struct {
		Path string
		Kind Kind
	}
	// Quit ends the event loop
	Quit struct{}
)

func (ReadDir) effect()     {}
func (CreateEntry) effect() {}
func (DeletePaths) effect() {}
func (LoadPreview) effect() {}
func (Quit) effect()        {}
