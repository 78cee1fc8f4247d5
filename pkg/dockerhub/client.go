package dockerhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lodthe/docker-tags/internal/metrics"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const DockerHubURL = "https://hub.docker.com"

// Discoverer resolves the base address the registry API is reachable at.
type Discoverer interface {
	Discover(ctx context.Context) (string, error)
}

// Fetcher issues a single GET request.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*http.Response, error)
}

// Client lists repository tags through the registry proxy.
type Client struct {
	logger    zerolog.Logger
	discovery Discoverer
	fetcher   Fetcher
}

func NewClient(logger zerolog.Logger, discovery Discoverer, fetcher Fetcher) *Client {
	return &Client{
		logger:    logger,
		discovery: discovery,
		fetcher:   fetcher,
	}
}

// TagsPath returns the proxied path of the tag list of the repository.
func TagsPath(organization, repository string) string {
	return fmt.Sprintf("/registry/v2/namespaces/%s/repositories/%s/tags",
		url.PathEscape(organization), url.PathEscape(repository))
}

// ListTags fetches a single page of tags. Page numbers start at 1.
//
// It returns *NotFoundError if the registry doesn't know the namespace or
// the repository, and *TransportError for any other failure.
func (c *Client) ListTags(ctx context.Context, organization, repository string, page, pageSize int) (*Page, error) {
	if page < 1 || pageSize < 1 {
		return nil, errors.Wrapf(ErrInvalidPagination, "page %d, page size %d", page, pageSize)
	}

	startedAt := time.Now()

	result, err := c.listTags(ctx, organization, repository, page, pageSize)
	metrics.Registry.NewRequest(outcome(err), time.Since(startedAt))

	return result, err
}

func (c *Client) listTags(ctx context.Context, organization, repository string, page, pageSize int) (*Page, error) {
	base, err := c.discovery.Discover(ctx)
	if err != nil {
		return nil, &TransportError{Cause: errors.Wrap(err, "discovery failed")}
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	target := strings.TrimSuffix(base, "/") + TagsPath(organization, repository) + "?" + query.Encode()

	resp, err := c.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, &TransportError{Cause: errors.Wrap(err, "request failed")}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: errors.Wrap(err, "body read failed"), StatusCode: resp.StatusCode}
	}

	notFound, decodeErr := decodeNotFound(body, organization, repository)
	if notFound != nil {
		return nil, notFound
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{
			Cause:      errors.Errorf("unexpected status %s", resp.Status),
			StatusCode: resp.StatusCode,
		}
	}

	response := new(Page)
	if decodeErr == nil {
		decodeErr = json.Unmarshal(body, response)
	}
	if decodeErr != nil {
		c.logger.Error().Err(decodeErr).Str("url", target).Str("body", string(body)).Msg("failed to decode tag page")
		return nil, &TransportError{Cause: errors.Wrap(decodeErr, "unmarshal failed"), StatusCode: resp.StatusCode}
	}

	c.logger.Debug().
		Str("organization", organization).
		Str("repository", repository).
		Int("page", page).
		Int("count", response.Count).
		Int("results", len(response.Results)).
		Msg("tag page has been fetched")

	return response, nil
}

// decodeNotFound reports a NotFoundError when the body has an errinfo key,
// whatever its value. Names the registry omits are taken from the request.
func decodeNotFound(body []byte, organization, repository string) (*NotFoundError, error) {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(body, &fields)
	if err != nil {
		return nil, err
	}

	raw, found := fields["errinfo"]
	if !found {
		return nil, nil
	}

	info := new(errInfo)
	_ = json.Unmarshal(raw, info)

	notFound := &NotFoundError{Namespace: info.Namespace, Repository: info.Repository}
	if notFound.Namespace == "" {
		notFound.Namespace = organization
	}
	if notFound.Repository == "" {
		notFound.Repository = repository
	}

	return notFound, nil
}

func outcome(err error) string {
	var notFound *NotFoundError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &notFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeTransportError
	}
}
