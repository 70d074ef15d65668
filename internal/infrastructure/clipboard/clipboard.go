package clipboard

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("clipboard is not available on this system")

type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// System writes to the host clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows API, whichever the platform provides).
type System struct{}

func NewSystem() System {
	return System{}
}

func (System) WriteText(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}

	done := make(chan error, 1)
	go func() {
		done <- clipboard.WriteAll(text)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Func adapts a plain function to a Writer.
type Func func(ctx context.Context, text string) error

func (f Func) WriteText(ctx context.Context, text string) error {
	return f(ctx, text)
}
