package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectContentType(t *testing.T) {
	ct, err := DetectContentType("photo.PNG", nil)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	ct, err = DetectContentType("main.go", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "text/"), ct)

	ct, err = DetectContentType("noext", strings.NewReader("%PDF-1.7 rest of file"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	ct, err = DetectContentType("noext", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", ct)
}

func TestLooksBinary(t *testing.T) {
	assert.False(t, LooksBinary([]byte("plain text\nwith lines")))
	assert.False(t, LooksBinary(nil))
	assert.True(t, LooksBinary([]byte{0x89, 'P', 'N', 'G', 0x00, 0x01}))
	assert.True(t, LooksBinary([]byte{'a', 0xff, 0xfe, 'b'}))

	// "é" is two bytes, the sample ends after the first one
	cut := []byte("caf\xc3")
	assert.False(t, LooksBinary(cut))
}

func TestGetFileCategory(t *testing.T) {
	assert.Equal(t, "image", GetFileCategory("image/png"))
	assert.Equal(t, "code", GetFileCategory("text/x-go"))
	assert.Equal(t, "text", GetFileCategory("text/plain; charset=utf-8"))
	assert.Equal(t, "data", GetFileCategory("application/json"))
	assert.Equal(t, "archive", GetFileCategory("application/zip"))
	assert.Equal(t, "other", GetFileCategory("application/octet-stream"))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "0 B", FormatSize(-5))
	assert.Equal(t, "1.0 KiB", FormatSize(1024))
	assert.Equal(t, "1.5 MiB", FormatSize(1536*1024))
}

func TestFormatModTime(t *testing.T) {
	assert.Equal(t, "-", FormatModTime(time.Time{}))
	assert.Equal(t, "2024-03-09 14:05", FormatModTime(time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)))
	assert.Contains(t, FormatAge(time.Now().Add(-3*time.Hour)), "hours ago")
}

func TestCopyToClipboard(t *testing.T) {
	var got string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		got = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	err := CopyToClipboard("/tmp/x")
	if err != nil {
		// headless machines have no clipboard utility at all
		t.Skipf("clipboard unavailable: %v", err)
	}
	assert.Equal(t, "/tmp/x", got)

	clipboardWrite = func(string) error { return errors.New("boom") }
	assert.ErrorContains(t, CopyToClipboard("x"), "boom")
}
