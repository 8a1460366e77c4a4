package eventlog

import (
	"encoding/json"
	"time"
)

// TimestampLayout renders instants the way JavaScript's toISOString does:
// UTC, millisecond precision, Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Event is one reported lifecycle event. Timestamp is assigned by the server.
type Event struct {
	Source    string `json:"source"`
	Type      string `json:"type"`
	Instance  string `json:"instance"`
	Timestamp string `json:"timestamp"`
}

// Time parses Timestamp. ok is false when it is not an RFC 3339 instant.
func (e Event) Time() (t time.Time, ok bool) {
	t, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// decodeEvents parses a stored value. Absent and null values are the empty log.
func decodeEvents(b []byte) ([]Event, error) {
	if len(b) == 0 {
		return []Event{}, nil
	}
	var events []Event
	if err := json.Unmarshal(b, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

func encodeEvents(events []Event) ([]byte, error) {
	if events == nil {
		events = []Event{}
	}
	return json.Marshal(events)
}
