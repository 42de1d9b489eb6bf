package modal

import "github.com/atotto/clipboard"

// Clipboard is the destination of the Copy action.
type Clipboard interface {
	WriteAll(text string) error
	// Unsupported reports that no clipboard is reachable on this system.
	Unsupported() bool
}

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

// WriteAll places text on the system clipboard.
func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Unsupported reports whether no clipboard utility was found at startup.
func (SystemClipboard) Unsupported() bool { return clipboard.Unsupported }
