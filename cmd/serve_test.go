package main

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunServerReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	done := make(chan struct{})
	var (
		code   int
		runErr error
	)
	go func() {
		defer close(done)
		code, runErr = runServer(srv, make(chan os.Signal), time.Second, discardLogger())
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not return after the listener failed")
	}
	require.Error(t, runErr)
	assert.Equal(t, 1, code)
}

func TestRunServerStopsOnSignal(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM

	code, err := runServer(srv, quit, time.Second, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 128+int(syscall.SIGTERM), code)
}
