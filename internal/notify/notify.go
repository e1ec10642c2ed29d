package notify

import (
	"context"
	"time"
)

type Kind string

const (
	KindEndpoint Kind = "endpoint"
	KindPartial  Kind = "partial"
	KindFinal    Kind = "final"
)

func (k Kind) String() string {
	return string(k)
}

// Notification is the user-visible outcome of one recognition event. For
// endpoint notifications Text holds the endpoint type name.
type Notification struct {
	SessionID string    `json:"session_id"`
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	At        time.Time `json:"at"`
}

type Sink interface {
	Notify(ctx context.Context, n Notification) error
}

type SinkFunc func(ctx context.Context, n Notification) error

func (f SinkFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}
