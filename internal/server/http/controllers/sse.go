package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/doublemarked/unload-test/internal/eventlog"
)

// sseSink writes event log snapshots as Server-Sent Events.
type sseSink struct {
	w http.ResponseWriter
}

// Send writes one "data: <json array>" event.
func (s sseSink) Send(events []eventlog.Event) error {
	b, err := json.Marshal(events)
	if err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("\n\n")); err != nil {
		return err
	}
	return nil
}

// Flush flushes the HTTP response writer if it supports flushing.
func (s sseSink) Flush() error {
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
