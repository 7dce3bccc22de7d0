// Package clipboard places rendered trees on the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier copies rendered text to the system clipboard.
type Copier interface {
	Copy(renderedText string) error
}

// SystemClipboard implements Copier using github.com/atotto/clipboard.
type SystemClipboard struct{}

// NewSystemClipboard constructs the platform clipboard implementation.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// Copy writes the rendered text to the system clipboard.
func (systemClipboard *SystemClipboard) Copy(renderedText string) error {
	if copyError := clipboard.WriteAll(renderedText); copyError != nil {
		return fmt.Errorf("copying rendered tree to clipboard: %w", copyError)
	}
	return nil
}

var _ Copier = (*SystemClipboard)(nil)
