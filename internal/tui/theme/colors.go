package theme

// Palette is the set of colors a theme draws with
type Palette struct {
	Name          string
	Text          string // primary text
	Muted         string // secondary text, hidden files
	Accent        string // borders of the focused pane, headers
	Secondary     string // directory names, prompts
	Success       string
	Warning       string
	Error         string
	CursorFg      string
	CursorBg      string
	Marked        string // selected entries
	DialogBg      string
	InactiveFrame string // border of the unfocused pane
}

// Terminal-compatible palettes. Dark keeps the ANSI-like colors the
// browser has always used; Light darkens them for pale backgrounds.
var (
	Dark = Palette{
		Name:          "dark",
		Text:          "#FFFFFF",
		Muted:         "#808080",
		Accent:        "#5C7CFA",
		Secondary:     "#51CF66",
		Success:       "#51CF66",
		Warning:       "#FFD43B",
		Error:         "#FF6B6B",
		CursorFg:      "#FFFFFF",
		CursorBg:      "#4A90E2",
		Marked:        "#FFD43B",
		DialogBg:      "#1A1A1A",
		InactiveFrame: "#444444",
	}

	Light = Palette{
		Name:          "light",
		Text:          "#1A1A1A",
		Muted:         "#6C6C6C",
		Accent:        "#364FC7",
		Secondary:     "#2B8A3E",
		Success:       "#2B8A3E",
		Warning:       "#B35C00",
		Error:         "#C92A2A",
		CursorFg:      "#FFFFFF",
		CursorBg:      "#364FC7",
		Marked:        "#B35C00",
		DialogBg:      "#F1F3F5",
		InactiveFrame: "#CED4DA",
	}
)

// PaletteFor returns Dark or Light
func PaletteFor(dark bool) Palette {
	if dark {
		return Dark
	}
	return Light
}

// File type colors
const (
	ColorFileImage    = "#74C0FC"
	ColorFileDocument = "#51CF66"
	ColorFileArchive  = "#FCC419"
	ColorFileVideo    = "#FF8787"
	ColorFileAudio    = "#DA77F2"
	ColorFileText     = "#74C0FC"
	ColorFileCode     = "#B197FC"
	ColorFileData     = "#66D9E8"
)

// GetFileColor returns the color for a file category, falling back to the
// palette's text color
func (p Palette) GetFileColor(category string) string {
	switch category {
	case "image":
		return ColorFileImage
	case "document":
		return ColorFileDocument
	case "archive":
		return ColorFileArchive
	case "video":
		return ColorFileVideo
	case "audio":
		return ColorFileAudio
	case "text":
		return ColorFileText
	case "code":
		return ColorFileCode
	case "data":
		return ColorFileData
	default:
		return p.Text
	}
}

// Message levels, in the same order as messaging.MessageType
const (
	levelInfo = iota
	levelSuccess
	levelWarning
	levelError
)

// GetMessageColor returns the color for a message level
func (p Palette) GetMessageColor(level int) string {
	switch level {
	case levelError:
		return p.Error
	case levelSuccess:
		return p.Success
	case levelWarning:
		return p.Warning
	default:
		return p.Secondary
	}
}

// GetMessageIcon returns the icon for a message level
func GetMessageIcon(level int) string {
	switch level {
	case levelError:
		return "✗"
	case levelSuccess:
		return "✓"
	case levelWarning:
		return "!"
	default:
		return "i"
	}
}
