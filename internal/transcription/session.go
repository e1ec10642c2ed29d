package transcription

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/eleven-am/soda-stream/internal/engine"
)

type State int

const (
	StateCreated State = iota
	StateStarted
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarted:
		return "started"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Session owns one engine handle through created, started and destroyed.
// The lock is held across engine calls, so Destroy cannot overlap an
// AddAudio and no audio is submitted after Destroy.
type Session struct {
	engine string
	log    *slog.Logger

	mu     sync.Mutex
	inst   engine.Instance
	state  State
	chunks int64
	bytes  int64
}

// NewSession creates the engine handle bound to config and cb.
func NewSession(eng engine.Engine, config []byte, cb engine.Callback, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	inst, err := eng.Create(config, cb)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateFailed, eng.Name(), err)
	}
	if inst == nil {
		return nil, fmt.Errorf("%w: %s returned no handle", ErrCreateFailed, eng.Name())
	}

	logger.Info("engine session created", "engine", eng.Name(), "config_bytes", len(config))
	return &Session{
		engine: eng.Name(),
		log:    logger,
		inst:   inst,
		state:  StateCreated,
	}, nil
}

func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCreated {
		return fmt.Errorf("%w: start in state %s", ErrSequence, s.state)
	}
	if err := s.inst.Start(); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	s.state = StateStarted
	s.log.Info("engine session started")
	return nil
}

// AddAudio submits one chunk. Results arrive later through the callback.
// The engine must not retain chunk after the call returns.
func (s *Session) AddAudio(chunk []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateStarted {
		return fmt.Errorf("%w: add audio in state %s", ErrSequence, s.state)
	}
	if len(chunk) == 0 {
		return nil
	}
	if err := s.inst.AddAudio(chunk); err != nil {
		return fmt.Errorf("add audio: %w", err)
	}
	s.chunks++
	s.bytes += int64(len(chunk))
	return nil
}

// Destroy releases the engine handle. Only the first call reaches the
// engine; later calls are no-ops.
func (s *Session) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDestroyed {
		s.log.Debug("engine session already destroyed")
		return nil
	}
	s.state = StateDestroyed
	err := s.inst.Destroy()
	s.log.Info("engine session destroyed", "chunks", s.chunks, "bytes", s.bytes)
	if err != nil {
		return fmt.Errorf("destroy engine: %w", err)
	}
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Engine() string {
	return s.engine
}

// Submitted reports the chunks and bytes accepted so far.
func (s *Session) Submitted() (chunks, bytes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks, s.bytes
}
