package transports

import (
	"context"

	eventlogv1 "github.com/doublemarked/unload-test/api/eventlog/v1"
)

// Event is one entry of the server's event log. Both transports decode into
// the generated message.
type Event = eventlogv1.Event

// SendRequest describes an event to append. The server assigns the timestamp.
type SendRequest struct {
	Source   string
	Type     string
	Instance string
}

// EventsTransport abstracts the transport used by the CLI (gRPC/HTTP).
type EventsTransport interface {
	List(ctx context.Context, filter string) ([]*Event, error)
	Send(ctx context.Context, req SendRequest) ([]*Event, error)
	Clear(ctx context.Context) error
	// Watch calls onUpdate with the full log on connect and after every
	// change until ctx is done or onUpdate fails.
	Watch(ctx context.Context, onUpdate func([]*Event) error) error
}
