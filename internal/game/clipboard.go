package game

import "github.com/atotto/clipboard"

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func setClipboardText(text string) error {
	if text == "" {
		text = " "
	}
	return writeClipboard(text)
}
