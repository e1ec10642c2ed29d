package transcription

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/soda-stream/internal/notify"
)

type DispatcherConfig struct {
	SessionID string
	Sink      notify.Sink
	// SuppressDuplicatePartials drops a partial identical to the one before
	// it in the same utterance.
	SuppressDuplicatePartials bool
	Logger                    *slog.Logger
}

type DispatchStats struct {
	Endpoints  int64      `json:"endpoints"`
	Partials   int64      `json:"partials"`
	Finals     int64      `json:"finals"`
	Suppressed int64      `json:"suppressed"`
	Ignored    int64      `json:"ignored"`
	SinkErrors int64      `json:"sink_errors"`
	LastResult ResultType `json:"-"`
	LastText   string     `json:"last_text,omitempty"`
}

// Dispatcher routes decoded events to a notification sink. Its state is
// shared between the engine callback path and readers such as the status
// handler, so every access goes through mu.
type Dispatcher struct {
	sessionID string
	sink      notify.Sink
	dedup     bool
	log       *slog.Logger
	now       func() time.Time

	mu          sync.Mutex
	stats       DispatchStats
	lastPartial string
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sessionID: cfg.SessionID,
		sink:      cfg.Sink,
		dedup:     cfg.SuppressDuplicatePartials,
		log:       logger,
		now:       time.Now,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	for _, n := range d.route(ev) {
		if d.sink == nil {
			continue
		}
		if err := d.sink.Notify(ctx, n); err != nil {
			d.log.Warn("notification sink failed", "kind", n.Kind.String(), "error", err)
			d.mu.Lock()
			d.stats.SinkErrors++
			d.mu.Unlock()
		}
	}
}

func (d *Dispatcher) route(ev Event) []notify.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []notify.Notification
	if ev.Endpoint != "" && ev.Endpoint != EndpointUnknown {
		d.stats.Endpoints++
		out = append(out, d.notification(notify.KindEndpoint, string(ev.Endpoint)))
	}

	switch ev.Type {
	case MessageRecognition:
		if n, ok := d.routeResult(ev.Result); ok {
			out = append(out, n)
		}
	case MessageAudioLevel:
		if ev.AudioLevel != nil {
			d.log.Debug("audio level", "rms", ev.AudioLevel.RMS, "level", ev.AudioLevel.Level)
		}
	case MessageLangID:
		if ev.Language != nil {
			d.log.Debug("language identified", "language", ev.Language.Language, "confidence", ev.Language.Confidence)
		}
	}
	return out
}

func (d *Dispatcher) routeResult(r *RecognitionResult) (notify.Notification, bool) {
	text, ok := r.Top()
	if !ok {
		d.stats.Ignored++
		d.log.Debug("recognition result without hypotheses")
		return notify.Notification{}, false
	}

	switch r.ResultType {
	case ResultFinal:
		d.stats.Finals++
		d.stats.LastResult = ResultFinal
		d.stats.LastText = text
		d.lastPartial = ""
		return d.notification(notify.KindFinal, text), true
	case ResultPartial:
		if d.dedup && d.stats.LastResult == ResultPartial && text == d.lastPartial {
			d.stats.Suppressed++
			return notify.Notification{}, false
		}
		d.stats.Partials++
		d.stats.LastResult = ResultPartial
		d.stats.LastText = text
		d.lastPartial = text
		return d.notification(notify.KindPartial, text), true
	default:
		d.stats.Ignored++
		return notify.Notification{}, false
	}
}

func (d *Dispatcher) notification(kind notify.Kind, text string) notify.Notification {
	return notify.Notification{
		SessionID: d.sessionID,
		Kind:      kind,
		Text:      text,
		At:        d.now(),
	}
}

func (d *Dispatcher) Stats() DispatchStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}
