package kalender

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/thansetan/kalender/middleware"
)

type RouterOptions struct {
	Logger    *slog.Logger
	Templates Renderer
	Static    fs.FS
	// RateLimit guards /api when set.
	RateLimit   *middleware.RateLimit
	DefaultYear int
}

func NewRouter(svc *Service, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	controller := NewController(svc, opts.Templates, logger)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(controller.FourOFour)
	r.MethodNotAllowedHandler = http.HandlerFunc(controller.FourOFour)

	r.Path("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, fmt.Sprintf("/%d", opts.DefaultYear), http.StatusTemporaryRedirect)
	}).Methods(http.MethodGet)
	r.Path("/healthcheck").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	api := r.PathPrefix("/api").Subrouter()
	if opts.RateLimit != nil {
		api.Use(func(next http.Handler) http.Handler {
			return opts.RateLimit.Handle(next)
		})
	}
	api.Path("/{year:[0-9]+}").HandlerFunc(controller.GetYearJSON).Methods(http.MethodGet)
	api.Path("/{year:[0-9]+}/{month:[0-9]+}").HandlerFunc(controller.GetMonthJSON).Methods(http.MethodGet)
	api.Path("/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}").HandlerFunc(controller.GetDayJSON).Methods(http.MethodGet)

	r.Path("/{year:[0-9]+}.ics").HandlerFunc(controller.GetICal).Methods(http.MethodGet)
	r.Path("/{year:[0-9]+}").HandlerFunc(controller.GetYear).Methods(http.MethodGet)
	r.Path("/{year:[0-9]+}/{month:[0-9]+}").HandlerFunc(controller.GetMonth).Methods(http.MethodGet)

	if opts.Static != nil {
		fileServer := http.FileServer(http.FS(opts.Static))
		r.PathPrefix("/").Handler(http.StripPrefix("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := fs.Stat(opts.Static, r.URL.Path); r.URL.Path == "" || err != nil {
				controller.FourOFour(w, r)
				return
			}
			fileServer.ServeHTTP(w, r)
		})))
	}

	return middleware.NewLogger(logger).Handle(r)
}
