// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboard wraps every failure to reach the OS clipboard.
var ErrClipboard = errors.New("clipboard unavailable")

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrClipboard)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}

// Copy writes text through w, mapping any failure to ErrClipboard.
func Copy(w Writer, text string) error {
	if err := w.WriteAll(text); err != nil {
		if errors.Is(err, ErrClipboard) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}
