package network_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/network"
	"go.trai.ch/stamp/internal/core/domain"
)

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		switch r.URL.RequestURI() {
		case "/app.js?v=2":
			w.Header().Set("Content-Type", "text/javascript")
			_, _ = w.Write([]byte("console.log(1)"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	f, err := network.NewFetcher(srv.URL, nil)
	require.NoError(t, err)

	req := domain.NewRequest(http.MethodGet, "/app.js?v=2")
	req.Header.Set("X-Test", "yes")
	req.Header.Set("Connection", "close")

	resp, err := f.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "console.log(1)", string(resp.Body))
	assert.Equal(t, "text/javascript", resp.Header.Get("Content-Type"))

	req = domain.NewRequest(http.MethodGet, "/missing")
	req.Header.Set("X-Test", "yes")
	resp, err = f.Fetch(context.Background(), req)
	require.NoError(t, err, "error statuses are responses")
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.False(t, resp.OK())
}

func TestFetcher_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	origin := srv.URL
	srv.Close()

	f, err := network.NewFetcher(origin, nil)
	require.NoError(t, err)

	resp, err := f.Fetch(context.Background(), domain.NewRequest(http.MethodGet, "/"))
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, domain.ErrNetworkFailed.Error())
}

func TestNewFetcher_RejectsRelativeOrigin(t *testing.T) {
	for _, origin := range []string{"", "example.com", "/path"} {
		_, err := network.NewFetcher(origin, nil)
		assert.Error(t, err, origin)
	}
}
