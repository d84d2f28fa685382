package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
)

func TestHTTPEmitter_Emit(t *testing.T) {
	t.Parallel()

	var got ports.AuditEvent
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL, WithHeader("Authorization", "Bearer hook-secret"))
	err := e.Emit(context.Background(), ports.AuditEvent{
		Event:   "auth.exchange",
		UserID:  "42",
		Method:  "api_key",
		IP:      "203.0.113.9",
		Success: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Bearer hook-secret", gotAuth)
	require.Equal(t, "auth.exchange", got.Event)
	require.Equal(t, "42", got.UserID)
	require.True(t, got.Success)
}

func TestHTTPEmitter_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL)
	err := e.Emit(context.Background(), ports.AuditEvent{Event: "user.delete"})
	require.Error(t, err)
}

func TestNoopEmitter(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewNoopEmitter().Emit(context.Background(), ports.AuditEvent{Event: "anything"}))
}
