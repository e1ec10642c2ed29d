package sodapb

import "strconv"

type MessageType int32

const (
	MessageUnknown     MessageType = 0
	MessageRecognition MessageType = 1
	MessageStop        MessageType = 2
	MessageShutdown    MessageType = 3
	MessageStart       MessageType = 4
	MessageEndpoint    MessageType = 5
	MessageAudioLevel  MessageType = 6
	MessageLangID      MessageType = 7
)

var messageTypeNames = map[MessageType]string{
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
	return enumName(messageTypeNames, t)
}

type ResultType int32

const (
	ResultUnknown  ResultType = 0
	ResultPartial  ResultType = 1
	ResultFinal    ResultType = 2
	ResultPrefetch ResultType = 3
)

var resultTypeNames = map[ResultType]string{
	ResultUnknown:  "UNKNOWN",
	ResultPartial:  "PARTIAL",
	ResultFinal:    "FINAL",
	ResultPrefetch: "PREFETCH",
}

func (t ResultType) String() string {
	return enumName(resultTypeNames, t)
}

// EndpointType numbering puts UNKNOWN last; it is also the value reported
// when a response carries no endpoint_type at all.
type EndpointType int32

const (
	EndpointStartOfSpeech  EndpointType = 0
	EndpointEndOfSpeech    EndpointType = 1
	EndpointEndOfAudio     EndpointType = 2
	EndpointEndOfUtterance EndpointType = 3
	EndpointUnknown        EndpointType = 4
)

var endpointTypeNames = map[EndpointType]string{
	EndpointStartOfSpeech:  "START_OF_SPEECH",
	EndpointEndOfSpeech:    "END_OF_SPEECH",
	EndpointEndOfAudio:     "END_OF_AUDIO",
	EndpointEndOfUtterance: "END_OF_UTTERANCE",
	EndpointUnknown:        "UNKNOWN",
}

func (t EndpointType) String() string {
	return enumName(endpointTypeNames, t)
}

type RecognitionMode int32

const (
	RecognitionModeUnspecified RecognitionMode = 0
	RecognitionModeIME         RecognitionMode = 1
	RecognitionModeCaption     RecognitionMode = 2
)

var recognitionModeNames = map[RecognitionMode]string{
	RecognitionModeUnspecified: "UNSPECIFIED",
	RecognitionModeIME:         "IME",
	RecognitionModeCaption:     "CAPTION",
}

func (m RecognitionMode) String() string {
	return enumName(recognitionModeNames, m)
}

func enumName[T ~int32](names map[T]string, v T) string {
	if name, ok := names[v]; ok {
		return name
	}
	return strconv.Itoa(int(v))
}
