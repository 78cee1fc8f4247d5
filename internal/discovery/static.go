package discovery

import (
	"context"
	"net"
	"strings"
)

// DefaultBaseURL points at the registry proxy served by this service.
const DefaultBaseURL = "http://localhost:9000/api/proxy"

// ProxyBaseURL returns the base address of the registry proxy served on the
// given listening address. Wildcard and empty hosts are reached via localhost.
func ProxyBaseURL(listenAddress string) string {
	host, port, err := net.SplitHostPort(listenAddress)
	if err != nil || port == "" {
		return DefaultBaseURL
	}

	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}

	return "http://" + net.JoinHostPort(host, port) + "/api/proxy"
}

// Static always resolves to the configured base address.
type Static struct {
	BaseURL string
}

func NewStatic(baseURL string) *Static {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Static{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Static) Discover(_ context.Context) (string, error) {
	return s.BaseURL, nil
}
