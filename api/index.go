package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/thansetan/kalender/cli"
	"github.com/thansetan/kalender/config"
	"github.com/thansetan/kalender/helper"
)

var (
	once       sync.Once
	handler    http.Handler
	handlerErr error
	logger     = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
)

// HandlerKalender serves the whole site from a single serverless function.
// The router is built on the first request and reused afterwards.
func HandlerKalender(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		var cfg config.Config
		cfg, handlerErr = config.Load()
		if handlerErr != nil {
			return
		}
		// No template watching in a function; the rate limiter is per
		// instance.
		cfg.TemplatesDir = ""
		handler, handlerErr = cli.NewHandler(context.Background(), cfg, logger)
	})
	if handlerErr != nil {
		logger.ErrorContext(r.Context(), "failed to build handler", "error", handlerErr)
		helper.OurFault(w)
		return
	}
	handler.ServeHTTP(w, r)
}
