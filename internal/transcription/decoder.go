package transcription

import "fmt"

// Decoder turns a raw response buffer into an Event. It is pure and safe
// for concurrent use.
type Decoder struct {
	codec Codec
}

func NewDecoder(codec Codec) *Decoder {
	if codec == nil {
		codec = ProtoCodec{}
	}
	return &Decoder{codec: codec}
}

// Decode reads exactly the first n bytes of buf; the engine may hand over a
// larger buffer than the message it holds.
func (d *Decoder) Decode(buf []byte, n int) (Event, error) {
	if n < 0 || n > len(buf) {
		return Event{}, fmt.Errorf("%w: length %d outside buffer of %d bytes", ErrMalformed, n, len(buf))
	}

	ev, err := d.codec.DecodeResponse(buf[:n:n])
	if err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if ev.Endpoint == "" {
		ev.Endpoint = EndpointUnknown
	}
	if ev.Type != MessageRecognition {
		ev.Result = nil
	}
	return ev, nil
}
