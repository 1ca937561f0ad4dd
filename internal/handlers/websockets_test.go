package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	h := &Handler{}

	tests := []struct {
		name  string
		query string
		want  time.Duration
	}{
		{name: "no params uses default", query: "", want: defaultInterval},
		{name: "interval duration", query: "interval=2s", want: 2 * time.Second},
		{name: "interval zero falls back", query: "interval=0s", want: defaultInterval},
		{name: "interval over max falls back", query: "interval=30s", want: defaultInterval},
		{name: "interval garbage falls back", query: "interval=soon", want: defaultInterval},
		{name: "interval_ms value", query: "interval_ms=500", want: 500 * time.Millisecond},
		{name: "interval_ms zero falls back", query: "interval_ms=0", want: defaultInterval},
		{name: "interval_ms over max falls back", query: "interval_ms=20000", want: defaultInterval},
		{name: "interval wins over interval_ms", query: "interval=3s&interval_ms=500", want: 3 * time.Second},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/ws?"+tt.query, nil)

			if got := h.parseInterval(c); got != tt.want {
				t.Fatalf("parseInterval(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

// feedEnvelope mirrors the wire shape of the task feed messages; Data stays
// raw so tests can decode it per message type.
type feedEnvelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialFeed(t *testing.T, srv *httptest.Server, query string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	return dialer.Dial(u.String(), header)
}

func bearerHeader(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func TestWebSocket_TaskFeed_InitialAndPeriodic(t *testing.T) {
	auth := &mockAuth{parseRes: service.Claims{UserID: "u-1", Username: "alice"}}
	tasks := &mockTasks{listRes: []service.TaskView{
		{ID: "t-1", Title: "buy milk", Status: "TO_DO"},
	}}
	router := newTestRouter(&service.Service{Authorization: auth, Tasks: tasks})

	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := dialFeed(t, srv, "interval_ms=20", bearerHeader("good-token"))
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if auth.lastParseToken != "good-token" {
		t.Fatalf("expected token to reach the parser, got %q", auth.lastParseToken)
	}

	// Initial snapshot arrives without waiting for a tick.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first feedEnvelope
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if first.Type != "tasks" {
		t.Fatalf("expected type \"tasks\", got %q", first.Type)
	}
	var got []service.TaskView
	if err := json.Unmarshal(first.Data, &got); err != nil {
		t.Fatalf("decode snapshot data: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t-1" || got[0].Title != "buy milk" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	// A second snapshot follows on the ticker.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var second feedEnvelope
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read periodic snapshot: %v", err)
	}
	if second.Type != "tasks" {
		t.Fatalf("expected type \"tasks\", got %q", second.Type)
	}
	if tasks.listCalls < 2 {
		t.Fatalf("expected at least 2 list calls, got %d", tasks.listCalls)
	}
}

func TestWebSocket_RejectsMissingToken(t *testing.T) {
	auth := &mockAuth{}
	router := newTestRouter(&service.Service{Authorization: auth, Tasks: &mockTasks{}})

	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, resp, err := dialFeed(t, srv, "", nil)
	if err == nil {
		_ = conn.Close()
		t.Fatalf("expected handshake to fail without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}

func TestWebSocket_ListErrorSendsErrorEnvelopeAndCloses(t *testing.T) {
	auth := &mockAuth{parseRes: service.Claims{UserID: "u-1", Username: "alice"}}
	tasks := &mockTasks{listErr: errors.New("db unavailable")}
	router := newTestRouter(&service.Service{Authorization: auth, Tasks: tasks})

	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := dialFeed(t, srv, "interval_ms=20", bearerHeader("good-token"))
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()

	// The failed initial snapshot turns into an error envelope.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env feedEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error envelope: %v", err)
	}
	if env.Type != "error" {
		t.Fatalf("expected type \"error\", got %q", env.Type)
	}
	if env.Error != errListTasks {
		t.Fatalf("expected error %q, got %q", errListTasks, env.Error)
	}

	// After the error the server closes; the next read must fail.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&env); err == nil {
		t.Fatalf("expected connection to be closed after the error envelope")
	}
}
