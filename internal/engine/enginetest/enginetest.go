// Package enginetest provides an in-memory engine that records every call
// crossing the engine boundary.
package enginetest

import (
	"sync"

	"github.com/eleven-am/soda-stream/internal/engine"
)

type Engine struct {
	// NilHandle makes Create report no instance, like a native engine
	// returning a null handle.
	NilHandle bool
	CreateErr error
	// OnAudio, when set, runs inside AddAudio with the instance so tests can
	// emit responses the way an engine would.
	OnAudio func(inst *Instance, chunk []byte)

	mu        sync.Mutex
	instances []*Instance
}

func (e *Engine) Name() string {
	return "test"
}

func (e *Engine) Create(config []byte, cb engine.Callback) (engine.Instance, error) {
	if e.CreateErr != nil {
		return nil, e.CreateErr
	}
	if e.NilHandle {
		return nil, nil
	}

	inst := &Instance{config: append([]byte(nil), config...), cb: cb, onAudio: e.OnAudio}
	e.mu.Lock()
	e.instances = append(e.instances, inst)
	e.mu.Unlock()
	return inst, nil
}

// Last returns the most recently created instance.
func (e *Engine) Last() *Instance {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.instances) == 0 {
		return nil
	}
	return e.instances[len(e.instances)-1]
}

type Instance struct {
	config  []byte
	cb      engine.Callback
	onAudio func(inst *Instance, chunk []byte)

	mu        sync.Mutex
	started   int
	destroyed int
	chunks    [][]byte
}

func (i *Instance) Start() error {
	i.mu.Lock()
	i.started++
	i.mu.Unlock()
	return nil
}

func (i *Instance) AddAudio(chunk []byte) error {
	i.mu.Lock()
	i.chunks = append(i.chunks, append([]byte(nil), chunk...))
	i.mu.Unlock()
	if i.onAudio != nil {
		i.onAudio(i, chunk)
	}
	return nil
}

func (i *Instance) Destroy() error {
	i.mu.Lock()
	i.destroyed++
	i.mu.Unlock()
	return nil
}

// Emit delivers a response through the registered callback.
func (i *Instance) Emit(buf []byte) {
	i.EmitN(buf, len(buf))
}

// EmitN delivers buf with a logical length n, which may be shorter than buf.
func (i *Instance) EmitN(buf []byte, n int) {
	if i.cb != nil {
		i.cb(buf, n)
	}
}

func (i *Instance) Config() []byte {
	return i.config
}

func (i *Instance) Chunks() [][]byte {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([][]byte, len(i.chunks))
	copy(out, i.chunks)
	return out
}

func (i *Instance) Started() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.started
}

func (i *Instance) Destroyed() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.destroyed
}
