package sodapb

import "google.golang.org/protobuf/encoding/protowire"

const (
	fieldConfigChannelCount          protowire.Number = 1
	fieldConfigSampleRate            protowire.Number = 2
	fieldConfigMaxBufferBytes        protowire.Number = 3
	fieldConfigFileLocation          protowire.Number = 4
	fieldConfigAPIKey                protowire.Number = 5
	fieldConfigLanguagePackDirectory protowire.Number = 6
	fieldConfigRecognitionMode       protowire.Number = 7
)

// ExtendedSodaConfigMsg is the configuration handed to the engine at
// creation. Channel count and sample rate are always written; the other
// fields only when set.
type ExtendedSodaConfigMsg struct {
	ChannelCount          int32
	SampleRate            int32
	MaxBufferBytes        int32
	ConfigFileLocation    string
	APIKey                string
	LanguagePackDirectory string
	RecognitionMode       RecognitionMode
}

func (m *ExtendedSodaConfigMsg) Marshal() []byte {
	var b []byte
	b = appendInt32(b, fieldConfigChannelCount, m.ChannelCount)
	b = appendInt32(b, fieldConfigSampleRate, m.SampleRate)
	if m.MaxBufferBytes != 0 {
		b = appendInt32(b, fieldConfigMaxBufferBytes, m.MaxBufferBytes)
	}
	if m.ConfigFileLocation != "" {
		b = appendString(b, fieldConfigFileLocation, m.ConfigFileLocation)
	}
	if m.APIKey != "" {
		b = appendString(b, fieldConfigAPIKey, m.APIKey)
	}
	if m.LanguagePackDirectory != "" {
		b = appendString(b, fieldConfigLanguagePackDirectory, m.LanguagePackDirectory)
	}
	if m.RecognitionMode != RecognitionModeUnspecified {
		b = appendInt32(b, fieldConfigRecognitionMode, int32(m.RecognitionMode))
	}
	return b
}

func (m *ExtendedSodaConfigMsg) Unmarshal(b []byte) error {
	*m = ExtendedSodaConfigMsg{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldConfigChannelCount:
			v, n, err := consumeInt32(typ, b)
			if n > 0 {
				m.ChannelCount = v
			}
			return n, err
		case fieldConfigSampleRate:
			v, n, err := consumeInt32(typ, b)
			if n > 0 {
				m.SampleRate = v
			}
			return n, err
		case fieldConfigMaxBufferBytes:
			v, n, err := consumeInt32(typ, b)
			if n > 0 {
				m.MaxBufferBytes = v
			}
			return n, err
		case fieldConfigFileLocation:
			v, n, err := consumeBytes(typ, b)
			if n > 0 {
				m.ConfigFileLocation = string(v)
			}
			return n, err
		case fieldConfigAPIKey:
			v, n, err := consumeBytes(typ, b)
			if n > 0 {
				m.APIKey = string(v)
			}
			return n, err
		case fieldConfigLanguagePackDirectory:
			v, n, err := consumeBytes(typ, b)
			if n > 0 {
				m.LanguagePackDirectory = string(v)
			}
			return n, err
		case fieldConfigRecognitionMode:
			v, n, err := consumeInt32(typ, b)
			if n > 0 {
				m.RecognitionMode = RecognitionMode(v)
			}
			return n, err
		}
		return 0, nil
	})
}
