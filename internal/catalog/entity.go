package catalog

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultKind      = "component"
	DefaultNamespace = "default"
)

var ErrInvalidRef = errors.New("invalid entity reference")

type Entity struct {
	APIVersion string   `yaml:"apiVersion" json:"apiVersion"`
	Kind       string   `yaml:"kind" json:"kind"`
	Metadata   Metadata `yaml:"metadata" json:"metadata"`
}

type Metadata struct {
	Name        string            `yaml:"name" json:"name"`
	Namespace   string            `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Title       string            `yaml:"title,omitempty" json:"title,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// Ref is a reference to an entity in the form kind:namespace/name.
type Ref struct {
	Kind      string
	Namespace string
	Name      string
}

func (r Ref) String() string {
	return r.Kind + ":" + r.Namespace + "/" + r.Name
}

func (e *Entity) Ref() Ref {
	return Ref{
		Kind:      strings.ToLower(e.Kind),
		Namespace: e.Metadata.Namespace,
		Name:      e.Metadata.Name,
	}
}

// ParseRef accepts "kind:namespace/name", "kind:name", "namespace/name" and "name".
func ParseRef(s string) (Ref, error) {
	ref := Ref{Kind: DefaultKind, Namespace: DefaultNamespace}

	rest := strings.TrimSpace(s)
	if kind, tail, found := strings.Cut(rest, ":"); found {
		ref.Kind = strings.ToLower(kind)
		rest = tail
	}
	if namespace, name, found := strings.Cut(rest, "/"); found {
		ref.Namespace = namespace
		rest = name
	}
	ref.Name = rest

	if ref.Kind == "" || ref.Namespace == "" || ref.Name == "" || strings.Contains(ref.Name, "/") {
		return Ref{}, errors.Wrapf(ErrInvalidRef, "%q", s)
	}

	return ref, nil
}
