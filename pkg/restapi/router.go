package restapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lodthe/docker-tags/internal/metrics"
	"github.com/lodthe/docker-tags/internal/tagstable"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type RouterOpts struct {
	Logger   zerolog.Logger
	Entities EntityStorage
	Tables   TableMounter
	Options  tagstable.Options

	// UpstreamRegistryURL enables the registry proxy when set.
	UpstreamRegistryURL string

	Timeout time.Duration
}

func NewRouter(opts RouterOpts) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(metricsMiddleware)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(middleware.Timeout(opts.Timeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	var proxy *registryProxy
	if opts.UpstreamRegistryURL != "" {
		var err error
		proxy, err = newRegistryProxy(opts.Logger, opts.UpstreamRegistryURL)
		if err != nil {
			return nil, errors.Wrap(err, "registry proxy cannot be created")
		}
	}

	r.Route("/api", func(r chi.Router) {
		newTagsHandler(opts.Logger, opts.Entities, opts.Tables, opts.Options).handle(r)
		if proxy != nil {
			proxy.handle(r)
		}
	})

	return r, nil
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		rctx := chi.RouteContext(r.Context())
		routePattern := strings.Join(rctx.RoutePatterns, "")

		status := fmt.Sprintf("%d %s", ww.Status(), http.StatusText(ww.Status()))
		metrics.RestAPI.NewRequest(r.Method, routePattern, status, time.Since(start))
	})
}
