package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/navtree/internal/config"
)

func TestServe_FetchesAndShutsDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pages":{"a":{"key":"a","name":"A","level":0,"link":"a.html"}},"rootLevelKeys":["a"]}`))
	}))
	defer upstream.Close()

	cfg := config.Config{
		ContentsURL: upstream.URL,
		HTTPTimeout: time.Second,
		MaxRetries:  2,
		RetryDelay:  10 * time.Millisecond,
		MaxDepth:    256,
		StatsWindow: time.Hour,
		CORSOrigins: []string{"*"},
	}
	a := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		return a.Fetcher().Content() != nil
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/active?path=/a.html")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"page_key":"a"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_BadPort(t *testing.T) {
	a := New(config.Config{Port: "-1", ContentsURL: "http://127.0.0.1:1"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, a.Run(context.Background()))
}
