package transcription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eleven-am/soda-stream/internal/audio"
	"github.com/eleven-am/soda-stream/internal/engine"
	"github.com/eleven-am/soda-stream/internal/notify"
	"github.com/google/uuid"
)

type Options struct {
	Session   SessionConfig
	ChunkSize int
	InboxSize int
	// InputSampleRate is the rate of the source audio. When it differs from
	// Session.SampleRate the audio is resampled before submission.
	InputSampleRate           int
	SuppressDuplicatePartials bool
	// Handler replaces the default decode and dispatch of responses.
	Handler func(buf []byte, n int)
}

type Status struct {
	SessionID    string        `json:"session_id"`
	Engine       string        `json:"engine"`
	State        string        `json:"state"`
	Chunks       int64         `json:"chunks"`
	Bytes        int64         `json:"bytes"`
	DecodeErrors int64         `json:"decode_errors"`
	Dropped      int64         `json:"dropped_responses"`
	LastResult   string        `json:"last_result"`
	Dispatch     DispatchStats `json:"dispatch"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Recognizer wires one session end to end: the engine callback feeds the
// inbox, the inbox goroutine decodes and dispatches, and Run feeds audio.
type Recognizer struct {
	id         string
	session    *Session
	inbox      *Inbox
	decoder    *Decoder
	dispatcher *Dispatcher
	handler    func(buf []byte, n int)
	opts       Options
	log        *slog.Logger
	createdAt  time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	drained chan struct{}

	mu         sync.Mutex
	running    bool
	feedCancel context.CancelFunc
	feedDone   chan struct{}

	shutdownOnce sync.Once
	shutdownErr  error

	decodeErrors atomic.Int64
}

func New(eng engine.Engine, codec Codec, sink notify.Sink, opts Options, logger *slog.Logger) (*Recognizer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if codec == nil {
		codec = ProtoCodec{}
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.InputSampleRate <= 0 {
		opts.InputSampleRate = opts.Session.SampleRate
	}
	if opts.InputSampleRate != opts.Session.SampleRate && opts.Session.ChannelCount != 1 {
		return nil, fmt.Errorf("%w: resampling supports mono input only", ErrConfig)
	}

	config, err := BuildConfig(codec, opts.Session)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	log := logger.With("session_id", id)
	ctx, cancel := context.WithCancel(context.Background())

	r := &Recognizer{
		id:      id,
		inbox:   NewInbox(opts.InboxSize, log),
		decoder: NewDecoder(codec),
		dispatcher: NewDispatcher(DispatcherConfig{
			SessionID:                 id,
			Sink:                      sink,
			SuppressDuplicatePartials: opts.SuppressDuplicatePartials,
			Logger:                    log,
		}),
		handler:   opts.Handler,
		opts:      opts,
		log:       log,
		createdAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		drained:   make(chan struct{}),
	}

	go func() {
		defer close(r.drained)
		r.inbox.Run(r.handleResponse)
	}()

	session, err := NewSession(eng, config, r.inbox.Callback(), log)
	if err != nil {
		r.inbox.Close()
		<-r.drained
		cancel()
		return nil, err
	}
	r.session = session
	return r, nil
}

func (r *Recognizer) ID() string {
	return r.id
}

func (r *Recognizer) handleResponse(buf []byte, n int) {
	if r.handler != nil {
		r.handler(buf, n)
		return
	}

	ev, err := r.decoder.Decode(buf, n)
	if err != nil {
		r.decodeErrors.Add(1)
		r.log.Warn("dropping response", "length", n, "error", err)
		return
	}
	r.dispatcher.Dispatch(r.ctx, ev)
}

// Run starts the session, feeds src until it ends or ctx is cancelled, then
// destroys the session and waits for pending responses to be dispatched.
// Cancellation is not an error.
func (r *Recognizer) Run(ctx context.Context, src io.Reader) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("%w: recognizer already running", ErrSequence)
	}
	r.running = true
	ctx, cancel := context.WithCancel(ctx)
	r.feedCancel = cancel
	r.feedDone = make(chan struct{})
	done := r.feedDone
	r.mu.Unlock()
	defer close(done)
	defer cancel()

	if err := r.session.Start(); err != nil {
		return errors.Join(err, r.shutdown())
	}

	var sink AudioSink = r.session
	if r.opts.InputSampleRate != r.opts.Session.SampleRate {
		sink = &resamplingSink{next: r.session, r: audio.NewResampler(r.opts.InputSampleRate, r.opts.Session.SampleRate)}
	}

	r.log.Info("feeding audio", "chunk_size", r.opts.ChunkSize, "input_rate", r.opts.InputSampleRate)
	stats, err := Feed(ctx, sink, src, r.opts.ChunkSize)
	if errors.Is(err, context.Canceled) {
		r.log.Info("audio feed cancelled", "chunks", stats.Chunks, "bytes", stats.Bytes)
		err = nil
	} else if err != nil {
		r.log.Error("audio feed failed", "chunks", stats.Chunks, "bytes", stats.Bytes, "error", err)
	} else {
		r.log.Info("audio input ended", "chunks", stats.Chunks, "bytes", stats.Bytes)
	}

	return errors.Join(err, r.shutdown())
}

// Stop cancels a running feed, waits for it to leave the engine or for ctx
// to expire, and destroys the session.
func (r *Recognizer) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.feedCancel, r.feedDone
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
			r.log.Warn("audio feed still blocked on input, destroying session")
		}
	}
	return r.shutdown()
}

func (r *Recognizer) shutdown() error {
	r.shutdownOnce.Do(func() {
		r.shutdownErr = r.session.Destroy()
		r.inbox.Close()
		<-r.drained
		r.cancel()
	})
	return r.shutdownErr
}

func (r *Recognizer) Status() Status {
	chunks, bytes := r.session.Submitted()
	stats := r.dispatcher.Stats()
	return Status{
		SessionID:    r.id,
		Engine:       r.session.Engine(),
		State:        r.session.State().String(),
		Chunks:       chunks,
		Bytes:        bytes,
		DecodeErrors: r.decodeErrors.Load(),
		Dropped:      r.inbox.Dropped(),
		LastResult:   stats.LastResult.String(),
		Dispatch:     stats,
		CreatedAt:    r.createdAt,
	}
}

type resamplingSink struct {
	next AudioSink
	r    *audio.Resampler
}

func (s *resamplingSink) AddAudio(chunk []byte) error {
	out := s.r.Process(chunk)
	if len(out) == 0 {
		return nil
	}
	return s.next.AddAudio(out)
}
