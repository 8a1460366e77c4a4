package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/doublemarked/unload-test/internal/eventlog"
	"github.com/doublemarked/unload-test/internal/runtime"
	logpkg "github.com/doublemarked/unload-test/pkg/log"
)

// maxBodyBytes bounds POST /events bodies.
const maxBodyBytes = 64 << 10

// EventsController serves the /events resource.
type EventsController struct {
	rt       *runtime.Runtime
	logger   logpkg.Logger
	validate *validator.Validate
}

// NewEventsController creates a new events controller.
func NewEventsController(rt *runtime.Runtime, logger logpkg.Logger) *EventsController {
	return &EventsController{rt: rt, logger: logger, validate: validator.New()}
}

// RegisterRoutes registers:
// - GET, POST, DELETE /events
// - GET /events/stream (Server-Sent Events)
func (c *EventsController) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", c.handleList)
		r.Post("/", c.handleAppend)
		r.Delete("/", c.handleClear)
		r.Get("/stream", c.handleStream)
	})
}

// handleList returns the log, newest first. An optional ?filter= CEL
// expression narrows the result.
func (c *EventsController) handleList(w http.ResponseWriter, r *http.Request) {
	events, err := c.rt.Events().ReadFiltered(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		c.writeErr(w, r, err)
		return
	}
	writeJSON(w, events)
}

// handleAppend prepends one event. The body is decoded as JSON whatever the
// Content-Type, since navigator.sendBeacon posts text/plain.
func (c *EventsController) handleAppend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeText(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	var req appendReq
	if err := json.Unmarshal(body, &req); err != nil {
		writeText(w, http.StatusBadRequest, "invalid event body")
		return
	}
	if err := c.validate.Struct(req); err != nil {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("invalid event: %v", err))
		return
	}
	events, err := c.rt.Events().Append(r.Context(), eventlog.Event{
		Source:   req.Source,
		Type:     req.Type,
		Instance: req.Instance,
	})
	if err != nil {
		c.writeErr(w, r, err)
		return
	}
	writeJSON(w, events)
}

// handleClear empties the log.
func (c *EventsController) handleClear(w http.ResponseWriter, r *http.Request) {
	if _, err := c.rt.Events().Clear(r.Context()); err != nil {
		c.writeErr(w, r, err)
		return
	}
	writeText(w, http.StatusOK, "ok")
}

// handleStream sends the full log as an SSE data event on connect and after
// every change, until the client goes away.
func (c *EventsController) handleStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	sink := sseSink{w: w}
	_ = sink.Flush()

	err := c.rt.Events().Watch(r.Context(), c.rt.Config().WatchInterval, func(events []eventlog.Event) error {
		if err := sink.Send(events); err != nil {
			return err
		}
		return sink.Flush()
	})
	if err != nil && r.Context().Err() == nil {
		c.logger.Warn("event stream ended", logpkg.Err(err))
	}
}

func (c *EventsController) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, eventlog.ErrInvalidFilter):
		writeText(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, eventlog.ErrConflictExhausted):
		c.logger.Warn("failed to push event",
			logpkg.Str(logpkg.RequestIDKey, middleware.GetReqID(r.Context())), logpkg.Err(err))
		writeText(w, http.StatusInternalServerError, "failed to push event")
	case errors.Is(err, eventlog.ErrStoreUnavailable):
		c.logger.Error("store unavailable",
			logpkg.Str(logpkg.RequestIDKey, middleware.GetReqID(r.Context())), logpkg.Err(err))
		writeText(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		c.logger.Error("request failed", logpkg.Err(err))
		writeText(w, http.StatusInternalServerError, "internal error")
	}
}
