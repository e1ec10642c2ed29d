//go:build !soda

package native

import "github.com/eleven-am/soda-stream/internal/engine"

type Engine struct{}

// New reports engine.ErrUnavailable unless the binary was built with the
// soda tag.
func New() (*Engine, error) {
	return nil, engine.ErrUnavailable
}

func (e *Engine) Name() string {
	return "native"
}

func (e *Engine) Create([]byte, engine.Callback) (engine.Instance, error) {
	return nil, engine.ErrUnavailable
}
