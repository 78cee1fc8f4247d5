// Package plugin registers the docker tags API and its table extension.
package plugin

import (
	"sort"

	"github.com/lodthe/docker-tags/internal/tagstable"
	"github.com/lodthe/docker-tags/pkg/dockerhub"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	ID    = "docker.tags"
	APIID = "plugin.docker.api"

	ExtensionTagsTable          = "DockerTagsTable"
	ExtensionRepositoriesWidget = "DockerRepositoriesWidget"
)

var ErrUnknownExtension = errors.New("unknown extension")

type Deps struct {
	Logger    zerolog.Logger
	Discovery dockerhub.Discoverer
	Fetcher   dockerhub.Fetcher
}

// Extension mounts a table for an entity.
type Extension func(logger zerolog.Logger, annotations map[string]string, api tagstable.TagLister, opts tagstable.Options) *tagstable.Controller

type Plugin struct {
	logger     zerolog.Logger
	api        tagstable.TagLister
	extensions map[string]Extension
}

func New(deps Deps) *Plugin {
	return newPlugin(deps.Logger, dockerhub.NewClient(deps.Logger, deps.Discovery, deps.Fetcher))
}

func newPlugin(logger zerolog.Logger, api tagstable.TagLister) *Plugin {
	// Both names expose the same table.
	table := Extension(tagstable.New)

	return &Plugin{
		logger: logger.With().Str("plugin", ID).Logger(),
		api:    api,
		extensions: map[string]Extension{
			ExtensionTagsTable:          table,
			ExtensionRepositoriesWidget: table,
		},
	}
}

// API returns the single registry service of the plugin.
func (p *Plugin) API() tagstable.TagLister {
	return p.api
}

// Extensions returns the sorted names of the registered extensions.
func (p *Plugin) Extensions() []string {
	names := make([]string, 0, len(p.extensions))
	for name := range p.extensions {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Mount creates a table controller of the named extension.
func (p *Plugin) Mount(name string, annotations map[string]string, opts tagstable.Options) (*tagstable.Controller, error) {
	ext, found := p.extensions[name]
	if !found {
		return nil, errors.Wrapf(ErrUnknownExtension, "%q", name)
	}

	return ext(p.logger.With().Str("extension", name).Logger(), annotations, p.api, opts), nil
}
