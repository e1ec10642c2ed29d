package transcription

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/eleven-am/soda-stream/internal/notify"
)

func newTestDispatcher(sink notify.Sink, dedup bool) *Dispatcher {
	return NewDispatcher(DispatcherConfig{
		SessionID:                 "session-1",
		Sink:                      sink,
		SuppressDuplicatePartials: dedup,
		Logger:                    discardLogger(),
	})
}

func TestDispatcher_FinalCarriesTopHypothesis(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDispatcher(sink, false)
	dec := NewDecoder(ProtoCodec{})

	buf := finalResponse("hello world")
	ev, err := dec.Decode(buf, len(buf))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	d.Dispatch(context.Background(), ev)

	got := sink.all()
	if len(got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(got))
	}
	if got[0].Kind != notify.KindFinal || got[0].Text != "hello world" {
		t.Errorf("notification = %+v, want final 'hello world'", got[0])
	}
	if got[0].SessionID != "session-1" {
		t.Errorf("SessionID = %q", got[0].SessionID)
	}
}

func TestDispatcher_Endpoints(t *testing.T) {
	tests := []struct {
		name     string
		endpoint EndpointType
		want     int
	}{
		{"unknown is filtered", EndpointUnknown, 0},
		{"absent is filtered", "", 0},
		{"end of speech", EndpointEndOfSpeech, 1},
		{"start of speech", EndpointStartOfSpeech, 1},
		{"engine defined", EndpointType("7"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			d := newTestDispatcher(sink, false)
			d.Dispatch(context.Background(), Event{Type: MessageEndpoint, Endpoint: tt.endpoint})

			got := sink.all()
			if len(got) != tt.want {
				t.Fatalf("notifications = %d, want %d", len(got), tt.want)
			}
			if tt.want == 1 && (got[0].Kind != notify.KindEndpoint || got[0].Text != string(tt.endpoint)) {
				t.Errorf("notification = %+v", got[0])
			}
		})
	}
}

func TestDispatcher_EmptyHypotheses(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDispatcher(sink, false)

	d.Dispatch(context.Background(), Event{Type: MessageRecognition, Endpoint: EndpointUnknown, Result: &RecognitionResult{ResultType: ResultFinal}})
	d.Dispatch(context.Background(), Event{Type: MessageRecognition, Endpoint: EndpointUnknown, Result: &RecognitionResult{ResultType: ResultPartial, Hypotheses: []string{}}})
	d.Dispatch(context.Background(), Event{Type: MessageRecognition, Endpoint: EndpointUnknown})

	if got := sink.all(); len(got) != 0 {
		t.Errorf("notifications = %+v, want none", got)
	}
	if d.Stats().Ignored != 3 {
		t.Errorf("Ignored = %d, want 3", d.Stats().Ignored)
	}
}

func TestDispatcher_PartialsAreNotTerminal(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDispatcher(sink, false)
	ctx := context.Background()

	for _, text := range []string{"hel", "hello", "hello", "hello wor"} {
		d.Dispatch(ctx, Event{Type: MessageRecognition, Result: &RecognitionResult{ResultType: ResultPartial, Hypotheses: []string{text}}})
	}
	d.Dispatch(ctx, Event{Type: MessageRecognition, Result: &RecognitionResult{ResultType: ResultFinal, Hypotheses: []string{"hello world"}}})

	got := sink.all()
	if len(got) != 5 {
		t.Fatalf("notifications = %d, want 5", len(got))
	}
	for _, n := range got[:4] {
		if n.Kind != notify.KindPartial {
			t.Errorf("kind = %v, want partial", n.Kind)
		}
	}
	if got[4].Kind != notify.KindFinal {
		t.Errorf("last kind = %v, want final", got[4].Kind)
	}

	stats := d.Stats()
	if stats.Partials != 4 || stats.Finals != 1 || stats.LastResult != ResultFinal {
		t.Errorf("stats = %+v", stats)
	}
}

func TestDispatcher_SuppressDuplicatePartials(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDispatcher(sink, true)
	ctx := context.Background()

	partial := func(text string) Event {
		return Event{Type: MessageRecognition, Result: &RecognitionResult{ResultType: ResultPartial, Hypotheses: []string{text}}}
	}
	d.Dispatch(ctx, partial("hello"))
	d.Dispatch(ctx, partial("hello"))
	d.Dispatch(ctx, partial("hello world"))
	d.Dispatch(ctx, Event{Type: MessageRecognition, Result: &RecognitionResult{ResultType: ResultFinal, Hypotheses: []string{"hello world"}}})
	d.Dispatch(ctx, partial("hello world"))

	if got := len(sink.all()); got != 4 {
		t.Errorf("notifications = %d, want 4", got)
	}
	if d.Stats().Suppressed != 1 {
		t.Errorf("Suppressed = %d, want 1", d.Stats().Suppressed)
	}
}

func TestDispatcher_UnknownTypesProduceNothing(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDispatcher(sink, false)
	ctx := context.Background()

	d.Dispatch(ctx, Event{Type: MessageType(42), Endpoint: EndpointUnknown})
	d.Dispatch(ctx, Event{Type: MessageAudioLevel, Endpoint: EndpointUnknown, AudioLevel: &AudioLevel{RMS: 0.1}})
	d.Dispatch(ctx, Event{Type: MessageLangID, Endpoint: EndpointUnknown, Language: &LanguageEvent{Language: "en-US"}})
	d.Dispatch(ctx, Event{Type: MessageRecognition, Result: &RecognitionResult{ResultType: ResultPrefetch, Hypotheses: []string{"x"}}})

	if got := sink.all(); len(got) != 0 {
		t.Errorf("notifications = %+v, want none", got)
	}
}

func TestDispatcher_SinkErrorsAreCounted(t *testing.T) {
	failing := notify.SinkFunc(func(context.Context, notify.Notification) error {
		return errors.New("down")
	})
	d := newTestDispatcher(failing, false)

	d.Dispatch(context.Background(), Event{Type: MessageEndpoint, Endpoint: EndpointEndOfSpeech})
	if d.Stats().SinkErrors != 1 {
		t.Errorf("SinkErrors = %d, want 1", d.Stats().SinkErrors)
	}
}

func TestDispatcher_ConcurrentAccess(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDispatcher(sink, true)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(ctx, Event{Type: MessageRecognition, Result: &RecognitionResult{ResultType: ResultFinal, Hypotheses: []string{"x"}}})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = d.Stats()
			}
		}()
	}
	wg.Wait()

	if d.Stats().Finals != 400 {
		t.Errorf("Finals = %d, want 400", d.Stats().Finals)
	}
}
