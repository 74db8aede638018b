package utils

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// clipboardWrite is swapped out in tests
var clipboardWrite = clipboard.WriteAll

// CopyToClipboard puts content on the system clipboard
func CopyToClipboard(content string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available (install xclip, xsel or wl-clipboard)")
	}
	if err := clipboardWrite(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
