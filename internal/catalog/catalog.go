// Package catalog is a read-only, file backed store of catalog entities.
package catalog

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrEntityNotFound = errors.New("entity not found")

type Catalog struct {
	entities []Entity
	byRef    map[Ref]int
}

// New indexes the given entities, filling in the default namespace.
func New(entities []Entity) (*Catalog, error) {
	c := &Catalog{
		byRef: make(map[Ref]int, len(entities)),
	}

	for _, e := range entities {
		if e.Metadata.Name == "" {
			return nil, errors.Errorf("entity of kind %q has no name", e.Kind)
		}
		if e.Kind == "" {
			return nil, errors.Errorf("entity %q has no kind", e.Metadata.Name)
		}
		if e.Metadata.Namespace == "" {
			e.Metadata.Namespace = DefaultNamespace
		}

		ref := e.Ref()
		if _, exists := c.byRef[ref]; exists {
			return nil, errors.Errorf("duplicate entity %s", ref)
		}

		c.byRef[ref] = len(c.entities)
		c.entities = append(c.entities, e)
	}

	return c, nil
}

// Load reads a multi-document YAML file of entities.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open catalog")
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) (*Catalog, error) {
	var entities []Entity

	dec := yaml.NewDecoder(r)
	for {
		var e Entity
		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode catalog entity")
		}

		// Empty documents are produced by trailing separators.
		if e.Kind == "" && e.Metadata.Name == "" {
			continue
		}

		entities = append(entities, e)
	}

	return New(entities)
}

// Find looks an entity up. Kinds are compared case-insensitively.
func (c *Catalog) Find(ref Ref) (*Entity, error) {
	ref.Kind = strings.ToLower(ref.Kind)

	idx, found := c.byRef[ref]
	if !found {
		return nil, errors.Wrapf(ErrEntityNotFound, "%s", ref)
	}

	e := c.entities[idx]

	return &e, nil
}

// All returns entities in file order.
func (c *Catalog) All() []Entity {
	out := make([]Entity, len(c.entities))
	copy(out, c.entities)

	return out
}
