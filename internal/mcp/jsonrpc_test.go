package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/store"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *store.DB) {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := analyzer.DefaultConfig()
	cfg.Location = time.UTC
	engine, err := analyzer.NewEngine(cfg)
	require.NoError(t, err)

	s := NewServer(db, engine, WithClock(func() time.Time { return testNow }), WithVersion("1.2.3"))
	return s, db
}

// exchange feeds lines to the server and returns one decoded response per
// response line.
func exchange(t *testing.T, s *Server, lines ...string) []map[string]any {
	t.Helper()
	var out bytes.Buffer
	err := s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, err)

	var responses []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		responses = append(responses, m)
	}
	return responses
}

func TestRun_Initialize(t *testing.T) {
	s, _ := newTestServer(t)

	resp := exchange(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)

	require.Len(t, resp, 1)
	result := resp[0]["result"].(map[string]any)
	assert.Equal(t, protocolVersion, result["protocolVersion"])
	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "tasktimer", info["name"])
	assert.Equal(t, "1.2.3", info["version"])
	assert.EqualValues(t, 1, resp[0]["id"])
}

func TestRun_ToolsList(t *testing.T) {
	s, _ := newTestServer(t)

	resp := exchange(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	require.Len(t, resp, 1)
	tools := resp[0]["result"].(map[string]any)["tools"].([]any)
	var names []string
	for _, tool := range tools {
		entry := tool.(map[string]any)
		names = append(names, entry["name"].(string))
		assert.NotEmpty(t, entry["inputSchema"])
	}
	assert.Equal(t, []string{"get_insights", "get_daily_report", "get_weekly_report", "get_timer_status"}, names)
}

func TestRun_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	resp := exchange(t, s,
		`{not json`,
		`{"jsonrpc":"2.0","id":3,"method":"nonexistent/method"}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{}}`,
	)

	require.Len(t, resp, 3)
	codes := make([]float64, len(resp))
	for i, r := range resp {
		codes[i] = r["error"].(map[string]any)["code"].(float64)
	}
	assert.Equal(t, []float64{codeParseError, codeMethodNotFound, codeInvalidParams}, codes)
}

func TestRun_NotificationGetsNoResponse(t *testing.T) {
	s, _ := newTestServer(t)

	resp := exchange(t, s,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":5,"method":"initialize"}`,
	)

	require.Len(t, resp, 1)
	assert.EqualValues(t, 5, resp[0]["id"])
}

func TestRun_UnknownToolIsToolError(t *testing.T) {
	s, _ := newTestServer(t)

	resp := exchange(t, s, `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"get_weather"}}`)

	require.Len(t, resp, 1)
	result := resp[0]["result"].(map[string]any)
	assert.Equal(t, true, result["isError"])
	assert.Nil(t, resp[0]["error"])
}

func TestRun_ContextCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, pr, io.Discard) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_EOFClean(t *testing.T) {
	s, _ := newTestServer(t)

	var out bytes.Buffer
	err := s.Run(context.Background(), strings.NewReader(""), &out)

	assert.NoError(t, err)
	assert.Empty(t, out.String())
}
