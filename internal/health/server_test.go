package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(Config{ServiceName: "tennis-tips", Version: "test"})
}

func decodeStatus(t *testing.T, rr *httptest.ResponseRecorder) probeStatus {
	t.Helper()
	var body probeStatus
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()
	rr := httptest.NewRecorder()
	s.handleHealth(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeStatus(t, rr)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "tennis-tips", body.Service)
	assert.Equal(t, "test", body.Version)
}

func TestHandleReadyBeforeSetReady(t *testing.T) {
	s := newTestServer()
	rr := httptest.NewRecorder()
	s.handleReady(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	body := decodeStatus(t, rr)
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "not_ready", body.Checks["service"])
}

func TestHandleReadyRunsRegisteredChecks(t *testing.T) {
	s := newTestServer()
	s.SetReady(true)
	s.RegisterCheck("scheduler", func(context.Context) error { return nil })

	rr := httptest.NewRecorder()
	s.handleReady(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeStatus(t, rr)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Checks["service"])
	assert.Equal(t, "ok", body.Checks["scheduler"])
}

func TestHandleReadyFailingCheck(t *testing.T) {
	s := newTestServer()
	s.SetReady(true)
	s.RegisterCheck("database", func(context.Context) error {
		return errors.New("connection refused")
	})

	rr := httptest.NewRecorder()
	s.handleReady(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	body := decodeStatus(t, rr)
	assert.Equal(t, "not_ready", body.Status)
	assert.Contains(t, body.Checks["database"], "connection refused")
}
