package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thansetan/kalender/config"
	"github.com/thansetan/kalender/kalender"
	"github.com/thansetan/kalender/middleware"
	"github.com/thansetan/kalender/web"
)

const shutdownTimeout = 15 * time.Second

func (a *app) cmdServe(args []string) int {
	fs := a.newFlagSet("serve")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(a.stdout, &slog.HandlerOptions{
		AddSource: true,
	}))

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return exitError
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	handler, err := NewHandler(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build handler", "error", err)
		return exitError
	}

	srv := new(http.Server)
	srv.Handler = handler
	srv.Addr = fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	srv.ReadHeaderTimeout = 10 * time.Second

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info(fmt.Sprintf("server listening at %s", srv.Addr), "version", a.version)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http error listening", "error", err.Error())
			return exitError
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down server", "error", err.Error())
		return exitError
	}
	return exitOK
}

// NewHandler wires the service, templates, rate limiter and router. The
// template watcher and the rate limiter cleanup stop with ctx.
func NewHandler(ctx context.Context, cfg config.Config, logger *slog.Logger) (http.Handler, error) {
	svc, err := kalender.NewService(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	tmpl, err := kalender.LoadTemplates(cfg.TemplatesDir, web.Templates())
	if err != nil {
		return nil, err
	}
	if cfg.TemplatesDir != "" {
		go func() {
			if err := tmpl.Watch(ctx, cfg.TemplatesDir, logger); err != nil {
				logger.Error("template watcher stopped", "error", err)
			}
		}()
	}

	var rl *middleware.RateLimit
	if cfg.RateLimit > 0 {
		rl = middleware.NewRateLimit(ctx, cfg.RateLimit, time.Minute, 5*time.Minute, middleware.ClientIP)
	}

	return kalender.NewRouter(svc, kalender.RouterOptions{
		Logger:      logger,
		Templates:   tmpl,
		Static:      web.Static(),
		RateLimit:   rl,
		DefaultYear: cfg.DefaultYear,
	}), nil
}
