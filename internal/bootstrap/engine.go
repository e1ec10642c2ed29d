package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/eleven-am/soda-stream/internal/engine"
	"github.com/eleven-am/soda-stream/internal/engine/bridge"
	"github.com/eleven-am/soda-stream/internal/engine/native"
)

// ProvideEngine selects the engine named by SODA_ENGINE. The native engine
// is only available in binaries built with the soda tag; libsoda.so is then
// resolved by the system loader, so LD_LIBRARY_PATH controls where it is
// found at run time.
func ProvideEngine(cfg *Config, logger *slog.Logger) (engine.Engine, error) {
	switch cfg.Engine {
	case EngineNative:
		eng, err := native.New()
		if err != nil {
			return nil, fmt.Errorf("native engine: %w", err)
		}
		return eng, nil
	case EngineBridge:
		eng, err := bridge.New(bridge.Config{
			URL:              cfg.BridgeURL,
			HandshakeTimeout: cfg.BridgeTimeout,
			CreateTimeout:    cfg.BridgeTimeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return eng, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}
