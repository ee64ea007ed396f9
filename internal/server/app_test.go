package server

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omkar-28/authd/internal/logging"
	"github.com/omkar-28/authd/internal/server/config"
	"github.com/omkar-28/authd/internal/server/mail"
	"github.com/omkar-28/authd/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type closeTracker struct {
	*repomanager.MemoryRepositoryManager
	closed atomic.Bool
}

func (c *closeTracker) Close(ctx context.Context) error {
	c.closed.Store(true)
	return c.MemoryRepositoryManager.Close(ctx)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func TestApp_ServesAndClosesStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = freeAddr(t)
	cfg.DatabaseDSN = "memory://"

	store := &closeTracker{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
	app := newApp(cfg, nopLogger{}, store, mail.NewLogNotifier(nopLogger{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Post("http://"+cfg.EndpointAddrHTTP+"/api/auth/logout", "application/json", nil)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
	assert.True(t, store.closed.Load())
}

func TestNewNotifier(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	n, err := newNotifier(cfg, nopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &mail.LogNotifier{}, n)

	cfg.SMTPHost = "smtp.example.com"
	n, err = newNotifier(cfg, nopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &mail.SMTPNotifier{}, n)
}

func TestNewApp_RejectsUnknownStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = "redis://localhost"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}
