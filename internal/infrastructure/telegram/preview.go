package telegram

import (
	"context"
	"fmt"
	"io"
	"os"

	"alphahunter/internal/ports"
)

// Preview writes messages to the operator stream instead of Telegram. It is
// the delivery mechanism for preview-only mode and for missing credentials,
// and the fallback when a real send fails.
type Preview struct {
	out io.Writer
}

var _ ports.Notifier = (*Preview)(nil)

// NewPreview writes to out, defaulting to stdout.
func NewPreview(out io.Writer) *Preview {
	if out == nil {
		out = os.Stdout
	}
	return &Preview{out: out}
}

// Send prints the message with a preview marker. It never fails delivery;
// a write error is only reported, not treated as a lost alert.
func (p *Preview) Send(_ context.Context, text string) error {
	if _, err := fmt.Fprintf(p.out, "[preview] %s\n", text); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}
