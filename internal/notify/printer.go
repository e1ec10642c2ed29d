package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Printer writes one human readable line per notification:
//
//	[INFO] END_OF_SPEECH
//	[INFO] PARTIAL: hello wor
//	[INFO] FINAL: hello world
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Notify(_ context.Context, n Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.w, Format(n))
	return err
}

func Format(n Notification) string {
	switch n.Kind {
	case KindFinal:
		return "[INFO] FINAL: " + n.Text
	case KindPartial:
		return "[INFO] PARTIAL: " + n.Text
	default:
		return "[INFO] " + n.Text
	}
}
