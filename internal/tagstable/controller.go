// Package tagstable drives a paginated table of the Docker Hub tags of a catalog entity.
package tagstable

import (
	"context"
	"fmt"

	"github.com/lodthe/docker-tags/internal/annotation"
	"github.com/lodthe/docker-tags/pkg/dockerhub"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type State int

const (
	StateUnavailable State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnavailable:
		return "unavailable"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Error names exposed in ErrorInfo.Name.
const (
	ErrorNameNotFound            = "NotFoundError"
	ErrorNameTransport           = "TransportError"
	ErrorNameMissingAnnotation   = "MissingAnnotationError"
	ErrorNameMalformedAnnotation = "MalformedAnnotationError"
	ErrorNameInvalidPagination   = "InvalidPaginationError"
	ErrorNameUnknown             = "Error"
)

type ErrorInfo struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// TagLister is the registry API the table reads from.
type TagLister interface {
	ListTags(ctx context.Context, organization, repository string, page, pageSize int) (*dockerhub.Page, error)
}

// Query is a page request raised by the table. Page is zero-based.
type Query struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type QueryResult struct {
	Data       []dockerhub.Tag `json:"data"`
	Page       int             `json:"page"`
	TotalCount int             `json:"total_count"`
}

func emptyResult() QueryResult {
	return QueryResult{Data: []dockerhub.Tag{}}
}

// Controller owns the state of one mounted table.
// It is not safe for concurrent use: page requests must be issued sequentially.
type Controller struct {
	id          string
	logger      zerolog.Logger
	annotations map[string]string
	api         TagLister
	opts        Options
	columns     []ColumnDef

	state     State
	count     int
	err       *ErrorInfo
	lastQuery Query
}

func New(logger zerolog.Logger, annotations map[string]string, api TagLister, opts Options) *Controller {
	opts = opts.WithDefaults()
	id := uuid.New().String()

	c := &Controller{
		id:          id,
		logger:      logger.With().Str("table_id", id).Logger(),
		annotations: annotations,
		api:         api,
		opts:        opts,
		columns:     BuildColumns(opts.Columns),
		state:       StateReady,
		lastQuery:   Query{Page: opts.InitialPage, PageSize: opts.PageSize},
	}
	if !annotation.IsAvailable(annotation.Value(annotations)) {
		c.state = StateUnavailable
	}

	return c
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Options() Options {
	return c.opts
}

func (c *Controller) Columns() []ColumnDef {
	return c.columns
}

// Count is the total count of the last successful page.
func (c *Controller) Count() int {
	return c.count
}

// Err returns the error of the last failed request, or nil.
func (c *Controller) Err() *ErrorInfo {
	return c.err
}

// InitialQuery is the first page request of a freshly mounted table.
func (c *Controller) InitialQuery() Query {
	return Query{Page: c.opts.InitialPage, PageSize: c.opts.PageSize}
}

// Heading returns the table title, with the total count if enabled.
func (c *Controller) Heading() string {
	if c.opts.ShowCountInHeading != nil && *c.opts.ShowCountInHeading {
		return fmt.Sprintf("%s (%d)", c.opts.Heading, c.count)
	}

	return c.opts.Heading
}

// Query fetches the requested page. Failures never escape: they move the
// table to StateError and produce an empty result with page 0.
func (c *Controller) Query(ctx context.Context, q Query) QueryResult {
	c.lastQuery = q

	if c.state == StateUnavailable {
		return emptyResult()
	}

	id, err := annotation.FromAnnotations(c.annotations)
	if err != nil {
		c.fail(err)
		return emptyResult()
	}

	page, err := c.api.ListTags(ctx, id.Organization, id.Repository, q.Page+1, q.PageSize)
	if err != nil {
		c.fail(err)
		return emptyResult()
	}

	c.state = StateReady
	c.err = nil
	c.count = page.Count

	data := page.Results
	if data == nil {
		data = []dockerhub.Tag{}
	}

	return QueryResult{
		Data:       data,
		Page:       q.Page,
		TotalCount: page.Count,
	}
}

func (c *Controller) fail(err error) {
	c.state = StateError
	c.err = &ErrorInfo{
		Message: err.Error(),
		Name:    errorName(err),
	}

	c.logger.Warn().Err(err).Str("name", c.err.Name).Msg("tag page request failed")
}

func errorName(err error) string {
	var notFound *dockerhub.NotFoundError
	var transport *dockerhub.TransportError

	switch {
	case errors.As(err, &notFound):
		return ErrorNameNotFound
	case errors.As(err, &transport):
		return ErrorNameTransport
	case errors.Is(err, annotation.ErrMalformedAnnotation):
		return ErrorNameMalformedAnnotation
	case errors.Is(err, annotation.ErrMissingAnnotation):
		return ErrorNameMissingAnnotation
	case errors.Is(err, dockerhub.ErrInvalidPagination):
		return ErrorNameInvalidPagination
	default:
		return ErrorNameUnknown
	}
}
