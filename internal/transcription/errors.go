package transcription

import "errors"

var (
	// ErrConfig reports configuration values the engine cannot accept.
	ErrConfig = errors.New("invalid session config")
	// ErrCreateFailed reports that the engine returned no usable handle.
	ErrCreateFailed = errors.New("engine create failed")
	// ErrSequence reports a session operation called out of lifecycle order.
	ErrSequence = errors.New("session operation out of sequence")
	// ErrMalformed reports a response buffer that could not be decoded.
	ErrMalformed = errors.New("malformed response")
)
