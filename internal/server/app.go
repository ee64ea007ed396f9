// Package server wires the auth server together: it connects the user store,
// builds the services, serves the JSON API (and optionally the gRPC health
// service) and tears everything down on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/omkar-28/authd/internal/logging"
	"github.com/omkar-28/authd/internal/server/auth"
	"github.com/omkar-28/authd/internal/server/config"
	"github.com/omkar-28/authd/internal/server/mail"
	"github.com/omkar-28/authd/internal/server/repositories/repomanager"
	"github.com/omkar-28/authd/internal/server/rest"
	"github.com/omkar-28/authd/internal/server/services"

	gs "github.com/omkar-28/authd/internal/server/grpc"
)

const (
	connectTimeout = 15 * time.Second
	closeTimeout   = 5 * time.Second
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       repomanager.RepositoryManager
	sessions    *auth.SessionIssuer
	userService *services.UserService
}

// NewApp connects the store described by c and builds the services on top of
// it. The caller owns the returned App and must Run it to release the store.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	notifier, err := newNotifier(c, logger)
	if err != nil {
		return nil, fmt.Errorf("mail init error: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	store, err := repomanager.NewRepositoryManager(connectCtx, c.DatabaseDSN, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(c, logger, store, notifier), nil
}

func newApp(c *config.Config, logger logging.Logger, store repomanager.RepositoryManager, notifier mail.Notifier) *App {
	sessions := auth.NewSessionIssuer(c.SecretKey, c.SessionValidityDuration, c.IsProduction())
	us := services.NewUserService(store.Users(), notifier, sessions, c, logger.With("module", "user_service"))

	return &App{config: c, logger: logger, store: store, sessions: sessions, userService: us}
}

// newNotifier picks SMTP delivery when a relay is configured and logs emails
// otherwise. Validate keeps the log notifier out of production.
func newNotifier(c *config.Config, logger logging.Logger) (mail.Notifier, error) {
	if c.SMTPHost == "" {
		return mail.NewLogNotifier(logger.With("module", "mail")), nil
	}
	return mail.NewSMTPNotifier(c.SMTPHost, c.SMTPPort, c.SMTPUsername, c.SMTPPassword, c.MailFrom)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := rest.NewAuthHandler(app.userService, app.sessions, app.logger)
	router := rest.NewRouter(h, app.sessions, app.logger)
	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.store, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails, then
// closes the store.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "mode", app.config.Mode)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.shutdown()
}

func (app *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := app.store.Close(ctx); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")

	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
