//go:build !soda

package bootstrap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/eleven-am/soda-stream/internal/engine"
)

func TestProvideEngine_NativeUnavailable(t *testing.T) {
	t.Setenv("SODA_ENGINE", EngineNative)
	t.Chdir(t.TempDir())
	cfg := LoadConfig()

	_, err := ProvideEngine(cfg, newLogger(&bytes.Buffer{}, cfg))
	if !errors.Is(err, engine.ErrUnavailable) {
		t.Fatalf("ProvideEngine(native) error = %v, want ErrUnavailable", err)
	}
}
