package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

// sessionFile is the on-disk JSON shape read by import and written by export.
type sessionFile struct {
	Sessions []sessionRecord `json:"sessions"`
}

// sessionRecord keeps times as text so that timestamps without a zone offset
// can be read in the configured location.
type sessionRecord struct {
	ID              string `json:"id"`
	Task            string `json:"task"`
	Category        string `json:"category"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationSeconds int64  `json:"duration_seconds"`
}

// zonelessLayouts are tried after RFC 3339 for timestamps with no offset.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp reads an RFC 3339 timestamp, or a zoneless one in loc. It
// returns the zero time when s matches no layout.
func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// readSessions decodes a session file. Records are returned as found: a
// missing ID gets a fresh UUID and an unreadable time stays zero, so the
// record is kept but skipped by reports.
func readSessions(r io.Reader, loc *time.Location) ([]session.Session, error) {
	var f sessionFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding sessions: %w", err)
	}

	sessions := make([]session.Session, 0, len(f.Sessions))
	for _, rec := range f.Sessions {
		s := session.Session{
			ID:              rec.ID,
			Task:            rec.Task,
			Category:        rec.Category,
			DurationSeconds: rec.DurationSeconds,
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		var ok bool
		if s.StartTime, ok = parseTimestamp(rec.StartTime, loc); !ok {
			logger.Warn("unreadable start time", "id", s.ID, "value", rec.StartTime)
		}
		if s.EndTime, ok = parseTimestamp(rec.EndTime, loc); !ok {
			logger.Warn("unreadable end time", "id", s.ID, "value", rec.EndTime)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// writeSessions encodes sessions as a session file with RFC 3339 times.
func writeSessions(w io.Writer, sessions []session.Session) error {
	f := sessionFile{Sessions: make([]sessionRecord, len(sessions))}
	for i, s := range sessions {
		f.Sessions[i] = sessionRecord{
			ID:              s.ID,
			Task:            s.Task,
			Category:        s.Category,
			StartTime:       formatTimestamp(s.StartTime),
			EndTime:         formatTimestamp(s.EndTime),
			DurationSeconds: s.DurationSeconds,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
