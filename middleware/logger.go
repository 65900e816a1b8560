package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const RequestIDHeader = "X-Request-Id"

type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger}
}

type wrappedResponseWriter struct {
	http.ResponseWriter
	code int
}

func (wrw *wrappedResponseWriter) WriteHeader(code int) {
	wrw.code = code
	wrw.ResponseWriter.WriteHeader(code)
}

func (wrw *wrappedResponseWriter) Write(b []byte) (int, error) {
	if wrw.code == 0 {
		wrw.code = http.StatusOK
	}
	return wrw.ResponseWriter.Write(b)
}

func (l *Logger) Handle(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthcheck" {
			next.ServeHTTP(w, r)
			return
		}
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = gonanoid.Must()
		}
		w.Header().Set(RequestIDHeader, requestID)

		wrw := &wrappedResponseWriter{
			ResponseWriter: w,
		}
		t0 := time.Now()
		next.ServeHTTP(wrw, r)

		level := slog.LevelInfo
		if wrw.code >= 500 {
			level = slog.LevelError
		} else if wrw.code >= 400 {
			level = slog.LevelWarn
		}
		l.logger.Log(r.Context(), level, fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto),
			"request_id", requestID, "remote_addr", r.RemoteAddr, "code", wrw.code, "took", time.Since(t0))
	}
}
