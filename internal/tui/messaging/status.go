package messaging

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/kupo/internal/nav"
	"github.com/HaiFongPan/kupo/internal/tui/theme"
)

// MessageType represents different message types for status display
type MessageType int

// Message type constants
const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// FromLevel converts a navigation status level
func FromLevel(level nav.StatusLevel) MessageType {
	switch level {
	case nav.StatusSuccess:
		return MessageSuccess
	case nav.StatusWarning:
		return MessageWarning
	case nav.StatusError:
		return MessageError
	default:
		return MessageInfo
	}
}

// StatusManager manages status messages and their display
type StatusManager interface {
	SetMessage(message string, msgType MessageType) int
	ClearMessage()
	// ClearIfCurrent clears the message only if id is still the latest one
	ClearIfCurrent(id int)
	GetMessage() (string, MessageType, bool)
	RenderMessage(p theme.Palette) string
	HasMessage() bool
	SetAt() time.Time
}

// StatusManagerImpl implements the StatusManager interface
type StatusManagerImpl struct {
	statusMessage string
	messageType   MessageType
	messageTimer  time.Time
	messageID     int
}

// NewStatusManager creates a new status manager instance
func NewStatusManager() StatusManager {
	return &StatusManagerImpl{
		statusMessage: "",
		messageType:   MessageInfo,
	}
}

// SetMessage sets a status message with type and returns its id
func (sm *StatusManagerImpl) SetMessage(message string, msgType MessageType) int {
	sm.statusMessage = message
	sm.messageType = msgType
	sm.messageTimer = time.Now()
	sm.messageID++

	logrus.Debugf("StatusManager: setMessage called with message='%s', type=%d", message, msgType)
	return sm.messageID
}

// ClearMessage clears the status message
func (sm *StatusManagerImpl) ClearMessage() {
	sm.statusMessage = ""
	logrus.Debugf("StatusManager: message cleared")
}

// ClearIfCurrent implements StatusManager
func (sm *StatusManagerImpl) ClearIfCurrent(id int) {
	if id == sm.messageID {
		sm.ClearMessage()
	}
}

// GetMessage returns the current message, type, and whether a message exists
func (sm *StatusManagerImpl) GetMessage() (string, MessageType, bool) {
	hasMessage := sm.statusMessage != ""
	return sm.statusMessage, sm.messageType, hasMessage
}

// HasMessage returns whether there is currently a status message
func (sm *StatusManagerImpl) HasMessage() bool {
	return sm.statusMessage != ""
}

// SetAt returns when the current message was set
func (sm *StatusManagerImpl) SetAt() time.Time {
	return sm.messageTimer
}

// RenderMessage renders the current status message with appropriate styling
func (sm *StatusManagerImpl) RenderMessage(p theme.Palette) string {
	if !sm.HasMessage() {
		return ""
	}

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.GetMessageColor(int(sm.messageType)))).
		Bold(true)

	return messageStyle.Render(fmt.Sprintf("%s %s", theme.GetMessageIcon(int(sm.messageType)), sm.statusMessage))
}
