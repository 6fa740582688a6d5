package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
)

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close() //nolint:errcheck // test helper
	return json.NewDecoder(r.Body).Decode(dst)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL, Token: "test-token"})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"total":0}`))
	}))

	_, err := c.ListUploads(context.Background(), ListUploadsParams{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestClient_NoTokenOmitsHeader(t *testing.T) {
	var sawHeader bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	c.SetToken("")

	require.NoError(t, c.Health(context.Background()))
	assert.False(t, sawHeader)
}

func TestClient_Unauthorized_ClearsTokenAndFiresHookOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	var fired atomic.Int32
	c, err := New(Options{
		BaseURL:       srv.URL,
		Token:         "stale-token",
		OnAuthExpired: func() { fired.Add(1) },
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.GetUpload(ctx, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthExpired(err))
	assert.Empty(t, c.Token())
	assert.Equal(t, int32(1), fired.Load())

	// Second 401 does not fire the hook again
	_, err = c.GetUpload(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, int32(1), fired.Load())
}

func TestClient_SetToken_RearmsExpiryHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	var fired atomic.Int32
	c, err := New(Options{
		BaseURL:       srv.URL,
		Token:         "stale-token",
		OnAuthExpired: func() { fired.Add(1) },
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = c.GetUpload(ctx, 1)
	require.Equal(t, int32(1), fired.Load())

	c.SetToken("fresh-token")
	_, _ = c.GetUpload(ctx, 1)
	assert.Equal(t, int32(2), fired.Load())
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	err = c.Health(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
}

func TestClient_DecodesErrorEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"Upload with ID 9 not found"}`))
	}))

	_, err := c.GetUpload(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Upload with ID 9 not found")
}

func TestClient_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"conflict", http.StatusConflict, apperrors.IsConflict},
		{"validation", http.StatusBadRequest, apperrors.IsValidation},
		{"internal", http.StatusInternalServerError, apperrors.IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := c.GetUpload(context.Background(), 1)
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestClient_RejectUpload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/uploads/7/reject", r.URL.Path)

		var body map[string]string
		require.NoError(t, decodeBody(r, &body))
		assert.Equal(t, "needs a re-edit", body["feedback"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"status":"Rejected","feedback":"needs a re-edit"}`))
	}))

	upload, err := c.RejectUpload(context.Background(), 7, "needs a re-edit")
	require.NoError(t, err)
	assert.Equal(t, model.UploadStatusRejected, upload.Status)
	require.NotNil(t, upload.Feedback)
	assert.Equal(t, "needs a re-edit", *upload.Feedback)
}

func TestClient_ListUploads_QueryParams(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "20", q.Get("offset"))
		assert.Equal(t, "launch", q.Get("q"))
		assert.Equal(t, "Pending", q.Get("status"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"title":"Launch"}],"total":1}`))
	}))

	page, err := c.ListUploads(context.Background(), ListUploadsParams{
		Limit:  10,
		Offset: 20,
		Q:      "launch",
		Status: "Pending",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Launch", page.Data[0].Title)
}
