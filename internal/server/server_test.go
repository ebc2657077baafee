package server_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crossroads/internal/server"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("serves until context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		addrCh := make(chan net.Addr, 1)
		hookCalled := make(chan struct{}, 1)

		done := make(chan error, 1)
		go func() {
			done <- server.Run(ctx,
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte("ok"))
				}),
				server.WithAddress("127.0.0.1:0"),
				server.WithReady(func(a net.Addr) { addrCh <- a }),
				server.WithShutdownHook(func(context.Context) error {
					hookCalled <- struct{}{}
					return nil
				}),
			)
		}()

		addr := <-addrCh
		resp, err := http.Get("http://" + addr.String() + "/")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, resp.Body.Close())
		require.NoError(t, err)
		require.Equal(t, "ok", string(body))

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
		require.Len(t, hookCalled, 1)
	})

	t.Run("returns hook errors", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		hookErr := errors.New("close failed")
		err := server.Run(ctx, http.NotFoundHandler(),
			server.WithAddress("127.0.0.1:0"),
			server.WithShutdownTimeout(time.Second),
			server.WithShutdownHook(func(context.Context) error { return hookErr }),
		)
		require.ErrorIs(t, err, hookErr)
	})

	t.Run("fails on bad address", func(t *testing.T) {
		t.Parallel()

		err := server.Run(context.Background(), http.NotFoundHandler(), server.WithAddress("bad-address"))
		require.Error(t, err)
	})
}
