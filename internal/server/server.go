package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	auth "github.com/goliatone/go-auth-service"
	"github.com/goliatone/go-auth-service/activitymap"
	"github.com/goliatone/go-auth-service/internal/config"
	"github.com/goliatone/go-auth-service/internal/logging"
	"github.com/goliatone/go-auth-service/middleware/jwtware"
)

const shutdownTimeout = 10 * time.Second

// App bundles the fiber app with the resources it owns
type App struct {
	Fiber  *fiber.App
	Auther *auth.Auther
	cfg    *config.Config
	logger auth.Logger
	close  func() error
}

// Option customizes how New wires the app, used by tests
type Option func(*options)

type options struct {
	hasher *auth.BcryptHasher
	now    func() time.Time
}

// WithHasher replaces the default bcrypt hasher
func WithHasher(h *auth.BcryptHasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// WithClock replaces the token clock
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New builds the directory, seeds the bootstrap admin and mounts the
// routes. It fails when the signing key is unusable. Each component gets
// its own named logger from loggers.
func New(ctx context.Context, cfg *config.Config, loggers logging.Provider, opts ...Option) (*App, error) {
	logger := loggers.GetLogger("authd")

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.hasher == nil {
		o.hasher = auth.NewBcryptHasher()
	}

	tokenOpts := []auth.TokenServiceOption{
		auth.WithIssuer(cfg.GetIssuer()),
		auth.WithTokenLogger(loggers.GetLogger("auth:tokens")),
	}
	if o.now != nil {
		tokenOpts = append(tokenOpts, auth.WithClock(o.now))
	}

	tokens, err := auth.NewTokenService([]byte(cfg.GetSigningKey()), tokenOpts...)
	if err != nil {
		return nil, err
	}

	dir, closeDir, err := auth.NewDirectory(ctx, cfg.Directory)
	if err != nil {
		return nil, err
	}

	admin, err := auth.SeedAdmin(ctx, dir, o.hasher, cfg.Seed())
	if err != nil {
		closeDir()
		return nil, err
	}
	logger.Info("seeded admin", "id", admin.ID, "email", admin.Email)

	auther := auth.NewAuthenticator(dir, o.hasher, tokens).
		WithLogger(loggers.GetLogger("auth:authz")).
		WithActivitySink(activitymap.NewLogSink(
			loggers.GetLogger("auth:activity"),
			activitymap.WithDefaultChannel("authd"),
			activitymap.WithDefaultObjectType("account"),
			activitymap.WithActorFallback("anonymous"),
		))

	httpLogger := loggers.GetLogger("auth:http")
	listenerLogger := loggers.GetLogger("auth:listener")

	app := fiber.New(fiber.Config{
		AppName:               "authd",
		DisableStartupMessage: true,
		ErrorHandler:          auth.HTTPErrorHandler(httpLogger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	auth.RegisterAuthRoutes(app,
		auth.WithAuther(auther),
		auth.WithControllerLogger(httpLogger),
		auth.WithGateConfig(cfg),
		auth.WithDebug(cfg.Debug),
		auth.WithValidationListeners(func(c *fiber.Ctx, claims jwtware.AuthClaims) error {
			listenerLogger.Debug("token accepted", "path", c.Path(), "subject", claims.Subject(), "role", claims.Role())
			return nil
		}),
	)

	return &App{
		Fiber:  app,
		Auther: auther,
		cfg:    cfg,
		logger: logger,
		close:  closeDir,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", a.cfg.Addr)
		errCh <- a.Fiber.Listen(a.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		a.Close()
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.Fiber.ShutdownWithContext(shutdownCtx)
	if cerr := a.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

// Close releases the directory
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	closeFn := a.close
	a.close = nil
	return closeFn()
}
