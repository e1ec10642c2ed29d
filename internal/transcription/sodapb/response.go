package sodapb

import "google.golang.org/protobuf/encoding/protowire"

const (
	fieldResponseType        protowire.Number = 1
	fieldResponseRecognition protowire.Number = 2
	fieldResponseEndpoint    protowire.Number = 3
	fieldResponseAudioLevel  protowire.Number = 4
	fieldResponseLangID      protowire.Number = 5

	fieldRecognitionHypothesis protowire.Number = 1
	fieldRecognitionResultType protowire.Number = 2

	fieldEndpointType protowire.Number = 1

	fieldAudioLevelRMS   protowire.Number = 1
	fieldAudioLevelLevel protowire.Number = 2

	fieldLangIDLanguage   protowire.Number = 1
	fieldLangIDConfidence protowire.Number = 2
)

// SodaResponse is one message delivered through the engine callback. The
// endpoint event and the recognition result are independent and may both
// be present.
type SodaResponse struct {
	SodaType          MessageType
	RecognitionResult *SodaRecognitionResult
	EndpointEvent     *SodaEndpointEvent
	AudioLevelInfo    *SodaAudioLevelInfo
	LangIDEvent       *SodaLangIDEvent
}

type SodaRecognitionResult struct {
	Hypothesis []string
	ResultType ResultType
}

type SodaEndpointEvent struct {
	EndpointType *EndpointType
}

type SodaAudioLevelInfo struct {
	RMS        float32
	AudioLevel float32
}

type SodaLangIDEvent struct {
	Language        string
	ConfidenceLevel int32
}

func (e *SodaEndpointEvent) GetEndpointType() EndpointType {
	if e == nil || e.EndpointType == nil {
		return EndpointUnknown
	}
	return *e.EndpointType
}

func (r *SodaRecognitionResult) GetHypothesis() []string {
	if r == nil {
		return nil
	}
	return r.Hypothesis
}

func (r *SodaRecognitionResult) GetResultType() ResultType {
	if r == nil {
		return ResultUnknown
	}
	return r.ResultType
}

func (m *SodaResponse) Marshal() []byte {
	var b []byte
	if m.SodaType != MessageUnknown {
		b = appendInt32(b, fieldResponseType, int32(m.SodaType))
	}
	if r := m.RecognitionResult; r != nil {
		var sub []byte
		for _, h := range r.Hypothesis {
			sub = appendString(sub, fieldRecognitionHypothesis, h)
		}
		if r.ResultType != ResultUnknown {
			sub = appendInt32(sub, fieldRecognitionResultType, int32(r.ResultType))
		}
		b = appendMessage(b, fieldResponseRecognition, sub)
	}
	if e := m.EndpointEvent; e != nil {
		var sub []byte
		if e.EndpointType != nil {
			sub = appendInt32(sub, fieldEndpointType, int32(*e.EndpointType))
		}
		b = appendMessage(b, fieldResponseEndpoint, sub)
	}
	if a := m.AudioLevelInfo; a != nil {
		var sub []byte
		sub = appendFloat(sub, fieldAudioLevelRMS, a.RMS)
		sub = appendFloat(sub, fieldAudioLevelLevel, a.AudioLevel)
		b = appendMessage(b, fieldResponseAudioLevel, sub)
	}
	if l := m.LangIDEvent; l != nil {
		var sub []byte
		if l.Language != "" {
			sub = appendString(sub, fieldLangIDLanguage, l.Language)
		}
		sub = appendInt32(sub, fieldLangIDConfidence, l.ConfidenceLevel)
		b = appendMessage(b, fieldResponseLangID, sub)
	}
	return b
}

func (m *SodaResponse) Unmarshal(b []byte) error {
	*m = SodaResponse{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldResponseType:
			v, n, err := consumeInt32(typ, b)
			if n > 0 {
				m.SodaType = MessageType(v)
			}
			return n, err
		case fieldResponseRecognition:
			v, n, err := consumeBytes(typ, b)
			if err != nil || n == 0 {
				return n, err
			}
			if m.RecognitionResult == nil {
				m.RecognitionResult = &SodaRecognitionResult{}
			}
			return n, m.RecognitionResult.unmarshal(v)
		case fieldResponseEndpoint:
			v, n, err := consumeBytes(typ, b)
			if err != nil || n == 0 {
				return n, err
			}
			if m.EndpointEvent == nil {
				m.EndpointEvent = &SodaEndpointEvent{}
			}
			return n, m.EndpointEvent.unmarshal(v)
		case fieldResponseAudioLevel:
			v, n, err := consumeBytes(typ, b)
			if err != nil || n == 0 {
				return n, err
			}
			if m.AudioLevelInfo == nil {
				m.AudioLevelInfo = &SodaAudioLevelInfo{}
			}
			return n, m.AudioLevelInfo.unmarshal(v)
		case fieldResponseLangID:
			v, n, err := consumeBytes(typ, b)
			if err != nil || n == 0 {
				return n, err
			}
			if m.LangIDEvent == nil {
				m.LangIDEvent = &SodaLangIDEvent{}
			}
			return n, m.LangIDEvent.unmarshal(v)
		}
		return 0, nil
	})
}

// Sub-message decoders merge into the receiver, matching protobuf semantics
// for a message field that appears more than once.

func (r *SodaRecognitionResult) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldRecognitionHypothesis:
			v, n, err := consumeBytes(typ, b)
			if n > 0 && err == nil {
				r.Hypothesis = append(r.Hypothesis, string(v))
			}
			return n, err
		case fieldRecognitionResultType:
			v, n, err := consumeInt32(typ, b)
			if n > 0 {
				r.ResultType = ResultType(v)
			}
			return n, err
		}
		return 0, nil
	})
}

func (e *SodaEndpointEvent) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != fieldEndpointType {
			return 0, nil
		}
		v, n, err := consumeInt32(typ, b)
		if n > 0 && err == nil {
			t := EndpointType(v)
			e.EndpointType = &t
		}
		return n, err
	})
}

func (a *SodaAudioLevelInfo) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldAudioLevelRMS:
			v, n, err := consumeFloat(typ, b)
			if n > 0 {
				a.RMS = v
			}
			return n, err
		case fieldAudioLevelLevel:
			v, n, err := consumeFloat(typ, b)
			if n > 0 {
				a.AudioLevel = v
			}
			return n, err
		}
		return 0, nil
	})
}

func (l *SodaLangIDEvent) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldLangIDLanguage:
			v, n, err := consumeBytes(typ, b)
			if n > 0 {
				l.Language = string(v)
			}
			return n, err
		case fieldLangIDConfidence:
			v, n, err := consumeInt32(typ, b)
			if n > 0 {
				l.ConfidenceLevel = v
			}
			return n, err
		}
		return 0, nil
	})
}
