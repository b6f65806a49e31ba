package reminder

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/praxable/praxable-cli/internal/logger"
)

// WriterNotifier prints notifications to a writer, typically the terminal
// running `praxable remind`.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier returns a notifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(_ context.Context, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.w, "%s: %s\n", title, body)
	return err
}

// Fallback tries each notifier in order until one succeeds.
type Fallback []Notifier

func (f Fallback) Notify(ctx context.Context, title, body string) error {
	var lastErr error
	for _, n := range f {
		if err := n.Notify(ctx, title, body); err != nil {
			logger.Debug("Notifier failed, trying next", "error", err)
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		return fmt.Errorf("no notifier configured")
	}
	return lastErr
}
