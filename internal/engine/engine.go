// Package engine defines the boundary to the speech recognition engine.
// The engine accepts a serialized configuration and raw audio, and reports
// serialized responses through a callback it invokes on its own threads.
package engine

import "errors"

// Callback receives one serialized response. Only the first n bytes of buf
// belong to the message. It may run concurrently with AddAudio.
type Callback func(buf []byte, n int)

// Engine creates engine instances bound to a configuration and callback.
type Engine interface {
	Name() string
	// Create returns a nil Instance when the engine could not allocate a
	// handle.
	Create(config []byte, cb Callback) (Instance, error)
}

// Instance is one engine handle. Destroy must be called at most once.
type Instance interface {
	Start() error
	AddAudio(chunk []byte) error
	Destroy() error
}

var ErrUnavailable = errors.New("engine not available in this build")
