package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fdurupinar/bioagents/internal/logging"
	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	state domain.SessionState
}

func (f fakeSession) ID() string                 { return "sess-1" }
func (f fakeSession) State() domain.SessionState { return f.state }
func (f fakeSession) UtteranceCount() int64      { return 3 }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func get(t *testing.T, handler http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var body map[string]any
	if rr.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	}
	return rr, body
}

func TestGetHealth(t *testing.T) {
	tests := []struct {
		name       string
		server     *Server
		wantCode   int
		wantStatus string
	}{
		{"No Dependencies", &Server{}, http.StatusOK, "ok"},
		{"Listening", &Server{Session: fakeSession{domain.StateListening}}, http.StatusOK, "ok"},
		{"Terminated", &Server{Session: fakeSession{domain.StateTerminated}}, http.StatusServiceUnavailable, "unavailable"},
		{"Cache Down", &Server{
			Session: fakeSession{domain.StateListening},
			Cache:   fakePinger{errors.New("dial tcp: connection refused")},
		}, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := get(t, NewHandler(tt.server), "/health")
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantStatus, body["status"])
		})
	}
}

func TestGetHealth_ReportsSession(t *testing.T) {
	_, body := get(t, NewHandler(&Server{Session: fakeSession{domain.StateListening}}), "/health")

	assert.Equal(t, "sess-1", body["session_id"])
	assert.Equal(t, "listening", body["state"])
	assert.Equal(t, 3.0, body["utterances"])
}

func TestGetInfo(t *testing.T) {
	rr, body := get(t, NewHandler(&Server{}), "/info")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "bsb", body["app"])
	assert.NotEmpty(t, body["version"])
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "bsb_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	rr, _ := get(t, NewHandler(&Server{Gatherer: reg}), "/metrics")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "bsb_test_total 1")
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, addr, NewHandler(&Server{}), logging.NewNop())
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/info")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
