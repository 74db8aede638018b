package config

import "time"

// Layout constants
const (
	// Lines taken by everything but the two panes: header, info bar,
	// input line, status line, footer and the pane borders
	ChromeHeight = 7

	// Panel layout
	MinPanelWidth       = 20
	DefaultPreviewPct   = 40
	PanelBorderWidth    = 2
	DefaultWindowWidth  = 80
	DefaultWindowHeight = 24

	// List columns
	MarkerColumnWidth = 2
	IndexColumnWidth  = 4
	SizeColumnWidth   = 10

	// Dialog dimensions
	DialogDefaultWidth = 50
	DialogLargeWidth   = 70
	DeleteListLimit    = 5

	// Help viewport
	HelpViewportWidth  = 60
	HelpViewportHeight = 18
)

// StatusTTL is how long non-error status messages stay visible
const StatusTTL = 4 * time.Second
