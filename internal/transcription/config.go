package transcription

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultChannelCount   = 1
	DefaultSampleRate     = 16000
	DefaultAPIKey         = "dummy_api_key"
	DefaultModelDirectory = "./SODAModels/"
)

type RecognitionMode string

const (
	RecognitionModeDefault RecognitionMode = ""
	RecognitionModeIME     RecognitionMode = "ime"
	RecognitionModeCaption RecognitionMode = "caption"
)

// SessionConfig is bound to a session at creation and never changes. The
// sample rate and channel count must describe the audio actually fed.
type SessionConfig struct {
	ChannelCount    int
	SampleRate      int
	APIKey          string
	ModelDirectory  string
	RecognitionMode RecognitionMode
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		ChannelCount:   DefaultChannelCount,
		SampleRate:     DefaultSampleRate,
		APIKey:         DefaultAPIKey,
		ModelDirectory: DefaultModelDirectory,
	}
}

func (c SessionConfig) Validate() error {
	if c.ChannelCount < 1 || c.ChannelCount > math.MaxInt32 {
		return fmt.Errorf("%w: channel count %d", ErrConfig, c.ChannelCount)
	}
	if c.SampleRate <= 0 || c.SampleRate > math.MaxInt32 {
		return fmt.Errorf("%w: sample rate %d", ErrConfig, c.SampleRate)
	}
	switch RecognitionMode(strings.ToLower(string(c.RecognitionMode))) {
	case RecognitionModeDefault, RecognitionModeIME, RecognitionModeCaption:
	default:
		return fmt.Errorf("%w: recognition mode %q", ErrConfig, c.RecognitionMode)
	}
	return nil
}

// BuildConfig validates cfg and serializes it for the engine. The result is
// opaque to the rest of the client.
func BuildConfig(codec Codec, cfg SessionConfig) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := codec.EncodeConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return b, nil
}
