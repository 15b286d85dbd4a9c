package millionaire

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ShutdownBeforeRun(t *testing.T) {
	srv := NewServer("0", http.NotFoundHandler(), time.Second, time.Second)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.ErrorIs(t, srv.Run(), http.ErrServerClosed)
}

func TestServer_ShutdownStopsRun(t *testing.T) {
	srv := NewServer("0", http.NotFoundHandler(), time.Second, time.Second)

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	// Shutdown may land before or after ListenAndServe starts; both end Run.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}
