package transcription

import (
	"strings"

	"github.com/eleven-am/soda-stream/internal/transcription/sodapb"
)

// Codec converts between client types and the engine's wire schema.
type Codec interface {
	EncodeConfig(cfg SessionConfig) ([]byte, error)
	DecodeResponse(data []byte) (Event, error)
}

// ProtoCodec speaks the protobuf schema of the native engine.
type ProtoCodec struct{}

func (ProtoCodec) EncodeConfig(cfg SessionConfig) ([]byte, error) {
	msg := sodapb.ExtendedSodaConfigMsg{
		ChannelCount:          int32(cfg.ChannelCount),
		SampleRate:            int32(cfg.SampleRate),
		APIKey:                cfg.APIKey,
		LanguagePackDirectory: cfg.ModelDirectory,
	}
	switch RecognitionMode(strings.ToLower(string(cfg.RecognitionMode))) {
	case RecognitionModeIME:
		msg.RecognitionMode = sodapb.RecognitionModeIME
	case RecognitionModeCaption:
		msg.RecognitionMode = sodapb.RecognitionModeCaption
	}
	return msg.Marshal(), nil
}

func (ProtoCodec) DecodeResponse(data []byte) (Event, error) {
	var resp sodapb.SodaResponse
	if err := resp.Unmarshal(data); err != nil {
		return Event{}, err
	}

	ev := Event{Type: MessageType(resp.SodaType)}
	if resp.EndpointEvent != nil {
		ev.Endpoint = EndpointType(resp.EndpointEvent.GetEndpointType().String())
	}
	if r := resp.RecognitionResult; r != nil {
		ev.Result = &RecognitionResult{
			ResultType: ResultType(r.ResultType),
			Hypotheses: r.Hypothesis,
		}
	}
	if a := resp.AudioLevelInfo; a != nil {
		ev.AudioLevel = &AudioLevel{RMS: a.RMS, Level: a.AudioLevel}
	}
	if l := resp.LangIDEvent; l != nil {
		ev.Language = &LanguageEvent{Language: l.Language, Confidence: l.ConfidenceLevel}
	}
	return ev, nil
}
