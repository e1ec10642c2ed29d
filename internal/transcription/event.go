package transcription

import "strconv"

type MessageType int

const (
	MessageUnknown MessageType = iota
	MessageRecognition
	MessageStop
	MessageShutdown
	MessageStart
	MessageEndpoint
	MessageAudioLevel
	MessageLangID
)

var messageTypeNames = [...]string{
	MessageUnknown:     "UNKNOWN",
	MessageRecognition: "RECOGNITION",
	MessageStop:        "STOP",
	MessageShutdown:    "SHUTDOWN",
	MessageStart:       "START",
	MessageEndpoint:    "ENDPOINT",
	MessageAudioLevel:  "AUDIO_LEVEL",
	MessageLangID:      "LANGID",
}

func (t MessageType) String() string {
	if t >= 0 && int(t) < len(messageTypeNames) {
		return messageTypeNames[t]
	}
	return strconv.Itoa(int(t))
}

type ResultType int

const (
	ResultUnknown ResultType = iota
	ResultPartial
	ResultFinal
	ResultPrefetch
)

var resultTypeNames = [...]string{
	ResultUnknown:  "UNKNOWN",
	ResultPartial:  "PARTIAL",
	ResultFinal:    "FINAL",
	ResultPrefetch: "PREFETCH",
}

func (t ResultType) String() string {
	if t >= 0 && int(t) < len(resultTypeNames) {
		return resultTypeNames[t]
	}
	return strconv.Itoa(int(t))
}

// EndpointType is the engine's name for an utterance boundary. The set is
// engine defined; only EndpointUnknown has meaning to the client.
type EndpointType string

const (
	EndpointUnknown        EndpointType = "UNKNOWN"
	EndpointStartOfSpeech  EndpointType = "START_OF_SPEECH"
	EndpointEndOfSpeech    EndpointType = "END_OF_SPEECH"
	EndpointEndOfAudio     EndpointType = "END_OF_AUDIO"
	EndpointEndOfUtterance EndpointType = "END_OF_UTTERANCE"
)

type RecognitionResult struct {
	ResultType ResultType
	Hypotheses []string
}

// Top returns the first hypothesis, or false when there is none.
func (r *RecognitionResult) Top() (string, bool) {
	if r == nil || len(r.Hypotheses) == 0 {
		return "", false
	}
	return r.Hypotheses[0], true
}

type AudioLevel struct {
	RMS   float32
	Level float32
}

type LanguageEvent struct {
	Language   string
	Confidence int32
}

// Event is one decoded response. Endpoint and Result are independent: a
// single response may carry both.
type Event struct {
	Type       MessageType
	Endpoint   EndpointType
	Result     *RecognitionResult
	AudioLevel *AudioLevel
	Language   *LanguageEvent
}
