package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gamelist/pkg/errors"
)

func TestNoAuth(t *testing.T) {
	auth := &NoAuth{}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	assert.Empty(t, req.Header)
}

func TestHeaderAuth(t *testing.T) {
	auth := &HeaderAuth{Header: "x-api-key"}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	assert.Equal(t, "test-api-key", req.Header.Get("x-api-key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "api_key"}

	reqURL, _ := url.Parse("https://example.com/v2/games?title=Loom")
	req := &http.Request{URL: reqURL, Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	query := req.URL.Query()
	assert.Equal(t, "test-api-key", query.Get("api_key"))
	assert.Equal(t, "Loom", query.Get("title"), "existing params are preserved")

	// nil URL must not panic
	assert.NotPanics(t, func() {
		auth.Apply(&http.Request{Header: make(http.Header)}, "test-api-key")
	})
}

func TestClientAppliesAuthOnlyWithKey(t *testing.T) {
	var seen url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := context.Background()

	c := New(&QueryAuth{Param: "api_key"}, WithAPIKey("secret"))
	resp, err := c.Get(ctx, srv.URL+"/games")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "secret", seen.Get("api_key"))

	resp, err = c.GetRaw(ctx, srv.URL+"/cover.jpg")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Empty(t, seen.Get("api_key"), "raw fetches carry no key")

	bare := New(&QueryAuth{Param: "api_key"})
	resp, err = bare.Get(ctx, srv.URL+"/games")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.False(t, seen.Has("api_key"))
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		unavailable bool
	}{
		{name: "ok", status: http.StatusOK, body: `{"n": 3}`},
		{name: "created counts as success", status: http.StatusCreated, body: `{"n": 3}`},
		{name: "server error", status: http.StatusServiceUnavailable, body: "down", wantErr: true, unavailable: true},
		{name: "unauthorized", status: http.StatusUnauthorized, body: "", wantErr: true, unavailable: true},
		{name: "rate limited", status: http.StatusTooManyRequests, body: "slow down", wantErr: true, unavailable: true},
		{name: "bad json", status: http.StatusOK, body: `{"n":`, wantErr: true, unavailable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rec.WriteHeader(tt.status)
			_, _ = rec.WriteString(tt.body)

			var out struct {
				N int `json:"n"`
			}
			err := DecodeResponse(rec.Result(), "lookup_title", "Loom", &out)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, 3, out.N)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.unavailable, errors.IsCatalogUnavailable(err))

			var ce *errors.CatalogError
			if tt.status != http.StatusOK && errors.As(err, &ce) {
				assert.Equal(t, tt.status, ce.StatusCode)
				assert.Equal(t, "Loom", ce.Query)
			}
		})
	}
}
