package dockerhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDiscoverer string

func (d staticDiscoverer) Discover(_ context.Context) (string, error) {
	return string(d), nil
}

type failingDiscoverer struct{}

func (failingDiscoverer) Discover(_ context.Context) (string, error) {
	return "", errors.New("no proxy")
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(zlog.Logger, staticDiscoverer(srv.URL+"/api/proxy/"), NewHTTPFetcher(100, srv.Client()))
}

func TestTagsPath(t *testing.T) {
	assert.Equal(t, "/registry/v2/namespaces/foo/repositories/bar/tags", TagsPath("foo", "bar"))
	assert.Equal(t, "/registry/v2/namespaces/foo/repositories/a%20b/tags", TagsPath("foo", "a b"))
}

func TestClient_ListTags(t *testing.T) {
	var gotPath, gotQuery string
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery

		_, _ = w.Write([]byte(`{
			"count": 12,
			"next": "https://hub.docker.com/v2/namespaces/foo/repositories/bar/tags?page=3&page_size=5",
			"results": [{
				"id": 42,
				"name": "V1.0.0",
				"tag_status": "active",
				"last_updater_username": "alice",
				"digest": "sha256:aaa",
				"images": [
					{"architecture": "amd64", "os": "linux", "digest": "sha256:bbb", "size": 100, "status": "active"},
					{"architecture": "arm64", "os": "linux", "digest": "sha256:ccc", "size": 90, "status": "inactive"}
				]
			}]
		}`))
	})

	page, err := cli.ListTags(context.Background(), "foo", "bar", 2, 5)
	require.NoError(t, err)

	assert.Equal(t, "/api/proxy/registry/v2/namespaces/foo/repositories/bar/tags", gotPath)
	assert.Equal(t, "page=2&page_size=5", gotQuery)

	assert.Equal(t, 12, page.Count)
	require.NotNil(t, page.Next)
	assert.Nil(t, page.Previous)
	require.Len(t, page.Results, 1)

	tag := page.Results[0]
	assert.Equal(t, 42, tag.ID)
	assert.Equal(t, "V1.0.0", tag.Name)
	assert.Equal(t, "alice", tag.LastUpdaterUsername)
	require.Len(t, tag.Images, 2)
	assert.Equal(t, "arm64", tag.Images[1].Architecture)
	assert.Equal(t, ImageStatusInactive, tag.Images[1].Status)
}

func TestClient_ListTags_NotFound(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "httperror 404: object not found", "errinfo": {"namespace": "ns", "repository": "rp"}}`))
	})

	_, err := cli.ListTags(context.Background(), "ns", "rp", 1, 5)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "ns", notFound.Namespace)
	assert.Equal(t, "rp", notFound.Repository)
	assert.Contains(t, err.Error(), "ns")
	assert.Contains(t, err.Error(), "rp")
}

func TestClient_ListTags_TransportErrors(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{
			name:       "server error",
			status:     http.StatusBadGateway,
			body:       `{"message": "bad gateway"}`,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "malformed json",
			status:     http.StatusOK,
			body:       `{"count": `,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `not json`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := cli.ListTags(context.Background(), "foo", "bar", 1, 5)

			var transport *TransportError
			require.True(t, errors.As(err, &transport))
			assert.Equal(t, tc.wantStatus, transport.StatusCode)
			assert.NotNil(t, transport.Unwrap())
		})
	}
}

func TestClient_ListTags_DiscoveryFailure(t *testing.T) {
	cli := NewClient(zlog.Logger, failingDiscoverer{}, NewHTTPFetcher(100))

	_, err := cli.ListTags(context.Background(), "foo", "bar", 1, 5)

	var transport *TransportError
	require.True(t, errors.As(err, &transport))
	assert.Zero(t, transport.StatusCode)
	assert.Contains(t, err.Error(), "no proxy")
}

func TestClient_ListTags_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cli := NewClient(zlog.Logger, staticDiscoverer(srv.URL), NewHTTPFetcher(100))

	_, err := cli.ListTags(context.Background(), "foo", "bar", 1, 5)

	var transport *TransportError
	assert.True(t, errors.As(err, &transport))
}

func TestClient_ListTags_InvalidPagination(t *testing.T) {
	calls := 0
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := cli.ListTags(context.Background(), "foo", "bar", 0, 5)
	assert.True(t, errors.Is(err, ErrInvalidPagination))

	_, err = cli.ListTags(context.Background(), "foo", "bar", 1, 0)
	assert.True(t, errors.Is(err, ErrInvalidPagination))

	assert.Zero(t, calls)
}

func TestClient_ListTags_NoCaching(t *testing.T) {
	calls := 0
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"count": 0, "results": []}`))
	})

	for i := 0; i < 3; i++ {
		_, err := cli.ListTags(context.Background(), "foo", "bar", 1, 5)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, calls)
}

func TestClient_ListTags_NotFoundWithoutDetails(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "null errinfo", body: `{"errinfo": null}`},
		{name: "empty errinfo", body: `{"message": "object not found", "errinfo": {}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			page, err := cli.ListTags(context.Background(), "foo", "bar", 1, 5)
			assert.Nil(t, page)

			var notFound *NotFoundError
			require.True(t, errors.As(err, &notFound))
			assert.Equal(t, "foo", notFound.Namespace)
			assert.Equal(t, "bar", notFound.Repository)
		})
	}
}
