package transcription

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/eleven-am/soda-stream/internal/engine"
)

const DefaultInboxSize = 64

type response struct {
	buf []byte
	n   int
}

// Inbox carries responses from engine callback threads to a single
// consumer goroutine. Push blocks while the buffer is full. Responses that
// arrive after Close are dropped.
type Inbox struct {
	ch  chan response
	log *slog.Logger

	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

func NewInbox(size int, logger *slog.Logger) *Inbox {
	if size <= 0 {
		size = DefaultInboxSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{ch: make(chan response, size), log: logger}
}

func (i *Inbox) Callback() engine.Callback {
	return func(buf []byte, n int) {
		i.Push(buf, n)
	}
}

// Push copies at most the first n bytes of buf, since the engine may reuse
// it once the callback returns. n itself is passed on unchanged so the
// decoder can reject a length outside the buffer.
func (i *Inbox) Push(buf []byte, n int) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.closed {
		i.dropped.Add(1)
		i.log.Warn("response after inbox closed, dropping", "length", n)
		return false
	}
	i.ch <- response{buf: append([]byte(nil), buf[:min(max(n, 0), len(buf))]...), n: n}
	return true
}

// Run hands every response to handle, in arrival order, until the inbox is
// closed and drained.
func (i *Inbox) Run(handle func(buf []byte, n int)) {
	for r := range i.ch {
		handle(r.buf, r.n)
	}
}

func (i *Inbox) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return
	}
	i.closed = true
	close(i.ch)
}

func (i *Inbox) Dropped() int64 {
	return i.dropped.Load()
}
