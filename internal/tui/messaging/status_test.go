package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/HaiFongPan/kupo/internal/nav"
	"github.com/HaiFongPan/kupo/internal/tui/theme"
)

func TestStatusManager_ClearIfCurrent(t *testing.T) {
	sm := NewStatusManager()
	assert.False(t, sm.HasMessage())
	assert.Empty(t, sm.RenderMessage(theme.Dark))

	first := sm.SetMessage("copied /a", MessageSuccess)
	second := sm.SetMessage("deleting 2 item(s)", MessageInfo)
	assert.NotEqual(t, first, second)

	sm.ClearIfCurrent(first)
	msg, msgType, ok := sm.GetMessage()
	assert.True(t, ok, "an expired id must not clear a newer message")
	assert.Equal(t, "deleting 2 item(s)", msg)
	assert.Equal(t, MessageInfo, msgType)

	sm.ClearIfCurrent(second)
	assert.False(t, sm.HasMessage())
}

func TestStatusManager_RenderAndSetAt(t *testing.T) {
	sm := NewStatusManager()
	before := time.Now()

	sm.SetMessage("not found: /x", MessageError)

	assert.False(t, sm.SetAt().Before(before))
	assert.Contains(t, sm.RenderMessage(theme.Light), "✗ not found: /x")

	sm.ClearMessage()
	assert.Empty(t, sm.RenderMessage(theme.Light))
}

func TestFromLevel(t *testing.T) {
	assert.Equal(t, MessageInfo, FromLevel(nav.StatusInfo))
	assert.Equal(t, MessageSuccess, FromLevel(nav.StatusSuccess))
	assert.Equal(t, MessageWarning, FromLevel(nav.StatusWarning))
	assert.Equal(t, MessageError, FromLevel(nav.StatusError))
}
