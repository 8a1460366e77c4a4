package transports

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
)

// HTTPTransport implements EventsTransport against the /events HTTP API.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport returns a transport for the server at baseURL
// (e.g. http://127.0.0.1:8080). A nil client selects http.DefaultClient.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, strings.TrimSpace(e.Body))
}

func (t *HTTPTransport) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	return resp, nil
}

var eventUnmarshal = protojson.UnmarshalOptions{DiscardUnknown: true}

// decodeEvents parses the JSON array the server returns for the log.
func decodeEvents(data []byte) ([]*Event, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	events := make([]*Event, 0, len(raw))
	for i, r := range raw {
		ev := &Event{}
		if err := eventUnmarshal.Unmarshal(r, ev); err != nil {
			return nil, fmt.Errorf("decode event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeList(resp *http.Response) ([]*Event, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return decodeEvents(data)
}

// List fetches GET /events.
func (t *HTTPTransport) List(ctx context.Context, filter string) ([]*Event, error) {
	path := "/events"
	if filter != "" {
		path += "?filter=" + url.QueryEscape(filter)
	}
	resp, err := t.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

// Send posts an event. Beacon events go out as text/plain, the way
// navigator.sendBeacon sends them.
func (t *HTTPTransport) Send(ctx context.Context, req SendRequest) ([]*Event, error) {
	b, err := json.Marshal(map[string]string{"source": req.Source, "type": req.Type, "instance": req.Instance})
	if err != nil {
		return nil, err
	}
	contentType := "application/json"
	if req.Type == "beacon" {
		contentType = "text/plain;charset=UTF-8"
	}
	resp, err := t.do(ctx, http.MethodPost, "/events", contentType, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

// Clear issues DELETE /events.
func (t *HTTPTransport) Clear(ctx context.Context) error {
	resp, err := t.do(ctx, http.MethodDelete, "/events", "", nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Watch reads the /events/stream Server-Sent Events feed.
func (t *HTTPTransport) Watch(ctx context.Context, onUpdate func([]*Event) error) error {
	resp, err := t.do(ctx, http.MethodGet, "/events/stream", "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		events, err := decodeEvents([]byte(data))
		if err != nil {
			return fmt.Errorf("decode stream event: %w", err)
		}
		if err := onUpdate(events); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, context.Canceled) && ctx.Err() == nil {
		return err
	}
	return nil
}
