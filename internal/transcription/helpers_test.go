package transcription

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/eleven-am/soda-stream/internal/notify"
	"github.com/eleven-am/soda-stream/internal/transcription/sodapb"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingSink struct {
	mu    sync.Mutex
	items []notify.Notification
}

func (s *recordingSink) Notify(_ context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
	return nil
}

func (s *recordingSink) all() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func finalResponse(text ...string) []byte {
	return (&sodapb.SodaResponse{
		SodaType:          sodapb.MessageRecognition,
		RecognitionResult: &sodapb.SodaRecognitionResult{Hypothesis: text, ResultType: sodapb.ResultFinal},
	}).Marshal()
}

func partialResponse(text ...string) []byte {
	return (&sodapb.SodaResponse{
		SodaType:          sodapb.MessageRecognition,
		RecognitionResult: &sodapb.SodaRecognitionResult{Hypothesis: text, ResultType: sodapb.ResultPartial},
	}).Marshal()
}

func endpointResponse(t sodapb.EndpointType) []byte {
	return (&sodapb.SodaResponse{
		SodaType:      sodapb.MessageEndpoint,
		EndpointEvent: &sodapb.SodaEndpointEvent{EndpointType: &t},
	}).Marshal()
}

// chunkReader returns the configured read sizes in order, then zero-length
// reads.
type chunkReader struct {
	sizes []int
	reads int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.reads >= len(r.sizes) {
		r.reads++
		return 0, nil
	}
	n := min(r.sizes[r.reads], len(p))
	for i := range p[:n] {
		p[i] = byte(r.reads)
	}
	r.reads++
	return n, nil
}
