// Package transports provides pluggable transport implementations for the CLI.
package transports

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	eventlogv1 "github.com/doublemarked/unload-test/api/eventlog/v1"
)

// GrpcTransport implements EventsTransport over gRPC.
type GrpcTransport struct {
	dial func(ctx context.Context) (*grpc.ClientConn, error)
}

// NewGrpcTransport constructs a new GrpcTransport using the provided dialer.
func NewGrpcTransport(dial func(ctx context.Context) (*grpc.ClientConn, error)) *GrpcTransport {
	return &GrpcTransport{dial: dial}
}

func (t *GrpcTransport) withClient(ctx context.Context, fn func(cli eventlogv1.EventLogClient) error) error {
	conn, err := t.dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return fn(eventlogv1.NewEventLogClient(conn))
}

// List reads the log via gRPC.
func (t *GrpcTransport) List(ctx context.Context, filter string) ([]*Event, error) {
	var out []*Event
	err := t.withClient(ctx, func(cli eventlogv1.EventLogClient) error {
		resp, err := cli.List(ctx, &eventlogv1.ListRequest{Filter: filter})
		if err != nil {
			return err
		}
		out = resp.GetEvents()
		return nil
	})
	return out, err
}

// Send appends an event via gRPC.
func (t *GrpcTransport) Send(ctx context.Context, req SendRequest) ([]*Event, error) {
	var out []*Event
	err := t.withClient(ctx, func(cli eventlogv1.EventLogClient) error {
		resp, err := cli.Append(ctx, &eventlogv1.AppendRequest{Source: req.Source, Type: req.Type, Instance: req.Instance})
		if err != nil {
			return err
		}
		out = resp.GetEvents()
		return nil
	})
	return out, err
}

// Clear empties the log via gRPC.
func (t *GrpcTransport) Clear(ctx context.Context) error {
	return t.withClient(ctx, func(cli eventlogv1.EventLogClient) error {
		_, err := cli.Clear(ctx, &eventlogv1.ClearRequest{})
		return err
	})
}

// Watch streams log snapshots from the Watch RPC.
func (t *GrpcTransport) Watch(ctx context.Context, onUpdate func([]*Event) error) error {
	return t.withClient(ctx, func(cli eventlogv1.EventLogClient) error {
		stream, err := cli.Watch(ctx, &eventlogv1.WatchRequest{})
		if err != nil {
			return err
		}
		for {
			m, err := stream.Recv()
			if err != nil {
				if err == io.EOF || errors.Is(err, context.Canceled) || status.Code(err) == codes.Canceled {
					return nil
				}
				return err
			}
			if cbErr := onUpdate(m.GetEvents()); cbErr != nil {
				return cbErr
			}
		}
	})
}
