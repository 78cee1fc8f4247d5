package restapi

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const proxyRegistryPrefix = "/proxy/registry"

type registryProxy struct {
	proxy *httputil.ReverseProxy
}

func newRegistryProxy(logger zerolog.Logger, upstream string) (*registryProxy, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, errors.Wrap(err, "invalid upstream registry url")
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, errors.Errorf("upstream registry url %q must be absolute", upstream)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.Host = target.Host

			// The route prefix is mounted under /api, strip everything up to the registry path.
			path := pr.In.URL.Path
			if idx := strings.Index(path, proxyRegistryPrefix); idx >= 0 {
				path = path[idx+len(proxyRegistryPrefix):]
			}
			pr.Out.URL.Path = strings.TrimSuffix(target.Path, "/") + path
			pr.Out.URL.RawPath = ""

			// Credentials of the catalog UI are never forwarded upstream.
			pr.Out.Header.Del("Authorization")
			pr.Out.Header.Del("Cookie")
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error().Err(err).Str("path", r.URL.Path).Msg("registry proxy request failed")
			writeError(w, "registry is unavailable", http.StatusBadGateway)
		},
	}

	return &registryProxy{proxy: proxy}, nil
}

func (p *registryProxy) handle(r chi.Router) {
	r.Get(proxyRegistryPrefix+"/*", p.proxy.ServeHTTP)
	r.Head(proxyRegistryPrefix+"/*", p.proxy.ServeHTTP)
}
