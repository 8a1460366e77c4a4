package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	eventlogv1 "github.com/doublemarked/unload-test/api/eventlog/v1"
	"github.com/doublemarked/unload-test/internal/eventlog"
	"github.com/doublemarked/unload-test/internal/runtime"
	logpkg "github.com/doublemarked/unload-test/pkg/log"
)

type eventLogSvc struct {
	eventlogv1.UnimplementedEventLogServer
	rt     *runtime.Runtime
	logger logpkg.Logger
	// done ends Watch streams when the server shuts down.
	done context.Context
}

func (s *eventLogSvc) List(ctx context.Context, req *eventlogv1.ListRequest) (*eventlogv1.EventsResponse, error) {
	events, err := s.rt.Events().ReadFiltered(ctx, req.GetFilter())
	if err != nil {
		return nil, toStatus(err)
	}
	return toResponse(events), nil
}

func (s *eventLogSvc) Append(ctx context.Context, req *eventlogv1.AppendRequest) (*eventlogv1.EventsResponse, error) {
	events, err := s.rt.Events().Append(ctx, eventlog.Event{
		Source:   req.GetSource(),
		Type:     req.GetType(),
		Instance: req.GetInstance(),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toResponse(events), nil
}

func (s *eventLogSvc) Clear(ctx context.Context, _ *eventlogv1.ClearRequest) (*eventlogv1.EventsResponse, error) {
	events, err := s.rt.Events().Clear(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return toResponse(events), nil
}

func (s *eventLogSvc) Watch(_ *eventlogv1.WatchRequest, stream eventlogv1.EventLog_WatchServer) error {
	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()
	defer context.AfterFunc(s.done, cancel)()

	err := s.rt.Events().Watch(ctx, s.rt.Config().WatchInterval, func(events []eventlog.Event) error {
		return stream.Send(toResponse(events))
	})
	if ctx.Err() != nil {
		return nil
	}
	s.logger.Warn("watch ended", logpkg.Err(err))
	return toStatus(err)
}

func toResponse(events []eventlog.Event) *eventlogv1.EventsResponse {
	out := make([]*eventlogv1.Event, len(events))
	for i, e := range events {
		out[i] = &eventlogv1.Event{Source: e.Source, Type: e.Type, Instance: e.Instance, Timestamp: e.Timestamp}
	}
	return &eventlogv1.EventsResponse{Events: out}
}

func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, eventlog.ErrInvalidFilter):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, eventlog.ErrConflictExhausted):
		return status.Error(codes.Aborted, "failed to push event")
	case errors.Is(err, eventlog.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
