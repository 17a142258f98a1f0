package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/atinylittleshell/ghosttext/internal/server"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	cfg, err := server.LoadConfigFrom(map[string]string{"GHOSTTEXTD_ADDR": freeAddr(t)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zaptest.NewLogger(t)) }()

	url := fmt.Sprintf("http://%s/healthz", cfg.Addr)
	assert.Eventually(t, func() bool {
		resp, err := http.Get(url)
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
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ListenError(t *testing.T) {
	cfg, err := server.LoadConfigFrom(map[string]string{"GHOSTTEXTD_ADDR": "256.0.0.1:99999"})
	require.NoError(t, err)

	err = run(context.Background(), cfg, zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestInitializeLogger(t *testing.T) {
	logger, err := initializeLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = initializeLogger("chatty")
	require.Error(t, err)
}
