package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zap.NewNop())
}

func TestDoAttachesBearerFromContext(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	})

	ctx := WithToken(context.Background(), "tok-123")
	_, err := client.Do(ctx, http.MethodGet, "/x", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDoWithoutTokenSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	_, err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedRunsHookAndReturnsSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	hookRan := false
	client.SetUnauthorizedHook(func(ctx context.Context) {
		hookRan = true
		assert.Equal(t, "stale", TokenFromContext(ctx))
	})

	ctx := WithToken(context.Background(), "stale")
	_, err := client.Do(ctx, http.MethodGet, "/x", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, hookRan, "the 401 hook must clear the session")
}

func TestErrorResponsesBecomeAPIErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"abn already verified"}`))
	})

	_, err := client.Do(context.Background(), http.MethodPost, "/x", nil, map[string]string{"a": "b"})
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "abn already verified", apiErr.Message)
	assert.False(t, apiErr.NotSupported())
}

func TestNotSupported(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: http.StatusNotFound}).NotSupported())
	assert.True(t, (&APIError{StatusCode: http.StatusMethodNotAllowed}).NotSupported())
	assert.False(t, (&APIError{StatusCode: http.StatusBadRequest}).NotSupported())
	assert.False(t, (&APIError{StatusCode: http.StatusInternalServerError}).NotSupported())
}

func TestDoJSONToleratesNonObjectBodies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"updated"`))
	})

	out, err := client.DoJSON(context.Background(), http.MethodPut, "/x", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGetInto(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("page"))
		w.Write([]byte(`{"id":"c1"}`))
	})

	var out struct {
		ID string `json:"id"`
	}
	err := client.GetInto(context.Background(), "/x", map[string]string{"page": "7"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "c1", out.ID)
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"m"}`, "m"},
		{"error", `{"error":"e"}`, "e"},
		{"msg", `{"msg":"short"}`, "short"},
		{"nested under data", `{"data":{"message":"nested"}}`, "nested"},
		{"message wins over error", `{"message":"m","error":"e"}`, "m"},
		{"empty body", ``, "request failed"},
		{"not json", `<html>`, "request failed"},
		{"no known keys", `{"status":500}`, "request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body)))
		})
	}
}
