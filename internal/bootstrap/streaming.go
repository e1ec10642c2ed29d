package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/eleven-am/soda-stream/internal/engine"
	"github.com/eleven-am/soda-stream/internal/notify"
	"github.com/eleven-am/soda-stream/internal/transcription"
	"go.uber.org/fx"
)

// ProvideRecognizer creates the engine session. The session is destroyed
// on stop even if streaming never started.
func ProvideRecognizer(lc fx.Lifecycle, cfg *Config, eng engine.Engine, sink notify.Sink, logger *slog.Logger) (*transcription.Recognizer, error) {
	r, err := transcription.New(eng, transcription.ProtoCodec{}, sink, cfg.RecognizerOptions(), logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return r.Stop(ctx)
		},
	})
	logger.Info("recognizer ready", "session_id", r.ID(), "engine", eng.Name())
	return r, nil
}

// AudioSource opens the raw PCM stream to recognize.
type AudioSource func() (io.ReadCloser, error)

func ProvideAudioSource(cfg *Config) AudioSource {
	return func() (io.ReadCloser, error) {
		return openSource(cfg.AudioSource)
	}
}

// openSource returns stdin for "-" and otherwise opens the named file.
func openSource(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio source: %w", err)
	}
	return f, nil
}

// StartStreaming feeds the audio source once the app has started and shuts
// the app down when the source ends. Stopping the app cancels the feed and
// destroys the session.
func StartStreaming(lc fx.Lifecycle, sd fx.Shutdowner, cfg *Config, r *transcription.Recognizer, open AudioSource, logger *slog.Logger) {
	var src io.ReadCloser
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var err error
			src, err = open()
			if err != nil {
				return err
			}

			go func() {
				exitCode := 0
				if err := r.Run(ctx, src); err != nil {
					logger.Error("recognition failed", "error", err)
					exitCode = 1
				}
				if err := sd.Shutdown(fx.ExitCode(exitCode)); err != nil {
					logger.Warn("shutdown request failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			// Closing the source unblocks a pending read on files and pipes.
			if src != nil {
				src.Close()
			}
			stopCtx, done := context.WithTimeout(stopCtx, cfg.ShutdownTimeout)
			defer done()

			err := r.Stop(stopCtx)
			status := r.Status()
			logger.Info("recognition stopped",
				"chunks", status.Chunks,
				"bytes", status.Bytes,
				"finals", status.Dispatch.Finals,
				"decode_errors", status.DecodeErrors,
			)
			return err
		},
	})
}

var StreamingModule = fx.Options(
	fx.Provide(
		ProvideEngine,
		ProvideSink,
		ProvideAudioSource,
		ProvideRecognizer,
	),
	fx.Invoke(StartStreaming),
)
