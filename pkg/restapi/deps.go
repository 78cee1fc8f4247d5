package restapi

import (
	"github.com/lodthe/docker-tags/internal/catalog"
	"github.com/lodthe/docker-tags/internal/tagstable"
)

type EntityStorage interface {
	Find(ref catalog.Ref) (*catalog.Entity, error)
}

type TableMounter interface {
	Extensions() []string
	Mount(name string, annotations map[string]string, opts tagstable.Options) (*tagstable.Controller, error)
}
