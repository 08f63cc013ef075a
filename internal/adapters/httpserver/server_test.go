package httpserver_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/httpserver"
)

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := httpserver.Listen("127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- httpserver.Serve(ctx, ln, httpserver.NewPreviewFS(buildFS(), "", ""))
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/version.json")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.JSONEq(t, `{"version":"1.0.0-abc1234"}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListen_InvalidAddress(t *testing.T) {
	_, err := httpserver.Listen("not-an-address")
	assert.ErrorContains(t, err, "failed to listen")
}
