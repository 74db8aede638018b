package nav

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Command is a parsed command bar line. The set of implementations is closed.
type Command interface {
	command()
}

// CmdChangeDir enters Path
type CmdChangeDir struct{ Path string }

// CmdTouch creates an empty file at Path
type CmdTouch struct{ Path string }

// CmdMakeDir creates a directory at Path
type CmdMakeDir struct{ Path string }

// CmdQuit asks the event loop to exit
type CmdQuit struct{}

// CmdUnknown carries a command name nothing recognises
type CmdUnknown struct{ Name string }

func (CmdChangeDir) command() {}
func (CmdTouch) command()     {}
func (CmdMakeDir) command()   {}
func (CmdQuit) command()      {}
func (CmdUnknown) command()   {}

// CommandSpec documents one command for the help dialog and command reference
type CommandSpec struct {
	Name        string
	Syntax      string
	Description string
}

// Commands lists the commands the command bar understands
var Commands = []CommandSpec{
	{Name: "cd", Syntax: "cd PATH", Description: "Go to the directory at PATH."},
	{Name: "touch", Syntax: "touch PATH", Description: "Create an empty file at PATH."},
	{Name: "mkdir", Syntax: "mkdir PATH", Description: "Create a directory at PATH."},
	{Name: "quit", Syntax: "quit, q", Description: "Quit kupo."},
}

// LookupCommand returns the reference entry for the command named at the
// start of line, if any
func LookupCommand(line string) (CommandSpec, bool) {
	name, _ := splitCommand(line)
	if name == "q" {
		name = "quit"
	}
	for _, spec := range Commands {
		if spec.Name == name {
			return spec, true
		}
	}
	return CommandSpec{}, false
}

// ParseCommand parses a command bar line of the form "COMMAND [ARG]".
// ARG is the remainder of the line with surrounding whitespace trimmed,
// so names containing spaces need no quoting. An empty line yields a nil
// command and no error.
func ParseCommand(line string) (Command, error) {
	name, arg := splitCommand(line)
	if name == "" {
		return nil, nil
	}

	switch name {
	case "cd":
		if arg == "" {
			return nil, NewError(InvalidArgument, "cd: missing PATH", nil)
		}
		return CmdChangeDir{Path: arg}, nil
	case "touch":
		if arg == "" {
			return nil, NewError(InvalidArgument, "touch: missing PATH", nil)
		}
		return CmdTouch{Path: arg}, nil
	case "mkdir":
		if arg == "" {
			return nil, NewError(InvalidArgument, "mkdir: missing PATH", nil)
		}
		return CmdMakeDir{Path: arg}, nil
	case "q", "quit":
		return CmdQuit{}, nil
	default:
		return CmdUnknown{Name: name}, nil
	}
}

func splitCommand(line string) (name, arg string) {
	line = strings.TrimSpace(line)
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx:])
}

// ResolvePath turns a command argument into a clean absolute path. "~" and
// "~/..." expand to home, relative paths are joined onto dir.
func ResolvePath(dir, home, arg string) string {
	switch {
	case arg == "~":
		arg = home
	case strings.HasPrefix(arg, "~/"):
		arg = filepath.Join(home, arg[2:])
	}
	if !filepath.IsAbs(arg) {
		arg = filepath.Join(dir, arg)
	}
	return filepath.Clean(arg)
}
