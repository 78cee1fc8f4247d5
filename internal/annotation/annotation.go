// Package annotation derives registry repositories from catalog entity annotations.
package annotation

import (
	"strings"

	"github.com/pkg/errors"
)

// Key is the annotation naming the Docker Hub repository of an entity.
const Key = "docker.com/repository"

var (
	ErrMissingAnnotation   = errors.Errorf("missing annotation %s", Key)
	ErrMalformedAnnotation = errors.New("annotation must have the form <organization>/<repository>")
)

type RepositoryIdentifier struct {
	Organization string `json:"organization"`
	Repository   string `json:"repository"`
}

func (id RepositoryIdentifier) String() string {
	return id.Organization + "/" + id.Repository
}

// Value returns the trimmed annotation value, or an empty string.
func Value(annotations map[string]string) string {
	return strings.TrimSpace(annotations[Key])
}

// IsAvailable reports whether the value can be passed to Parse.
func IsAvailable(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Parse splits "<organization>/<repository>" into its segments.
// Values without exactly one slash or with an empty segment are rejected.
func Parse(value string) (RepositoryIdentifier, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return RepositoryIdentifier{}, ErrMissingAnnotation
	}

	segments := strings.Split(value, "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return RepositoryIdentifier{}, errors.Wrapf(ErrMalformedAnnotation, "got %q", value)
	}

	return RepositoryIdentifier{
		Organization: segments[0],
		Repository:   segments[1],
	}, nil
}

// FromAnnotations parses the repository annotation of an entity's annotation map.
func FromAnnotations(annotations map[string]string) (RepositoryIdentifier, error) {
	return Parse(Value(annotations))
}
