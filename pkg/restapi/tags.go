package restapi

import (
	"net/http"
	"strconv"

	"github.com/lodthe/docker-tags/internal/catalog"
	"github.com/lodthe/docker-tags/internal/metrics"
	"github.com/lodthe/docker-tags/internal/plugin"
	"github.com/lodthe/docker-tags/internal/tagstable"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type tagsHandler struct {
	logger   zerolog.Logger
	entities EntityStorage
	tables   TableMounter
	options  tagstable.Options
}

func newTagsHandler(logger zerolog.Logger, entities EntityStorage, tables TableMounter, options tagstable.Options) *tagsHandler {
	return &tagsHandler{
		logger:   logger,
		entities: entities,
		tables:   tables,
		options:  options.WithDefaults(),
	}
}

func (h *tagsHandler) handle(r chi.Router) {
	r.Get("/plugins", h.getPlugin)
	r.Get("/entities/{kind}/{namespace}/{name}/docker-tags", h.getTags)
}

type PluginOutput struct {
	ID         string   `json:"id"`
	API        string   `json:"api"`
	Extensions []string `json:"extensions"`
}

func (h *tagsHandler) getPlugin(w http.ResponseWriter, _ *http.Request) {
	writeResult(w, PluginOutput{
		ID:         plugin.ID,
		API:        plugin.APIID,
		Extensions: h.tables.Extensions(),
	})
}

type GetTagsOutput struct {
	Entity    string         `json:"entity"`
	Extension string         `json:"extension"`
	View      tagstable.View `json:"view"`
}

func (h *tagsHandler) getTags(w http.ResponseWriter, r *http.Request) {
	ref := catalog.Ref{
		Kind:      chi.URLParam(r, "kind"),
		Namespace: chi.URLParam(r, "namespace"),
		Name:      chi.URLParam(r, "name"),
	}

	entity, err := h.entities.Find(ref)
	if errors.Is(err, catalog.ErrEntityNotFound) {
		writeError(w, "entity not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("entity", ref.String()).Msg("failed to find an entity")
		writeError(w, "internal error", http.StatusInternalServerError)

		return
	}

	extension := r.URL.Query().Get("extension")
	if extension == "" {
		extension = plugin.ExtensionTagsTable
	}

	table, err := h.tables.Mount(extension, entity.Metadata.Annotations, h.options)
	if errors.Is(err, plugin.ErrUnknownExtension) {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("extension", extension).Msg("failed to mount a table")
		writeError(w, "internal error", http.StatusInternalServerError)

		return
	}

	query, err := parseQuery(r, table.InitialQuery())
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := table.Render(r.Context(), query)
	metrics.RestAPI.TableRendered(extension, view.State)

	writeResult(w, GetTagsOutput{
		Entity:    entity.Ref().String(),
		Extension: extension,
		View:      view,
	})
}

// parseQuery reads the zero-based page and the page size, falling back to def.
func parseQuery(r *http.Request, def tagstable.Query) (tagstable.Query, error) {
	q := def
	values := r.URL.Query()

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return q, ErrInvalidPage
		}
		q.Page = page
	}

	if raw := values.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return q, ErrInvalidPageSize
		}
		q.PageSize = size
	}

	return q, nil
}
