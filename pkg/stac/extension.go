package stac

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrExtensionNotDeclared is returned when an extension view is requested
// for an object that does not declare the extension's schema URI and the
// caller did not ask for it to be added.
var ErrExtensionNotDeclared = errors.New("extension not declared on object")

// Extendable is any catalog object that carries a stac_extensions list.
// Item and Collection implement it.
type Extendable interface {
	HasExtension(uri string) bool
	AddExtension(uri string)
}

// EnsureExtension checks that obj declares the extension identified by
// uri, adding the declaration when addIfMissing is set. Adding is
// idempotent: the URI appears at most once regardless of how many views
// are created over the same object.
func EnsureExtension(obj Extendable, uri string, addIfMissing bool) error {
	if obj.HasExtension(uri) {
		return nil
	}
	if !addIfMissing {
		return errors.Wrapf(ErrExtensionNotDeclared, "schema %s", uri)
	}
	obj.AddExtension(uri)
	return nil
}

// Registry maps extension names to their schema URIs. It replaces
// ambient, import-time registration with an explicit object the catalog
// driver owns, so registration order and contents are deterministic.
type Registry struct {
	uris map[string]string
}

// NewRegistry returns an empty extension registry.
func NewRegistry() *Registry {
	return &Registry{uris: make(map[string]string)}
}

// Register binds name to a schema URI. Registering the same pair twice
// is a no-op; re-registering a name under a different URI overwrites,
// matching last-writer-wins config semantics.
func (r *Registry) Register(name, uri string) {
	r.uris[name] = uri
}

// SchemaURI returns the registered URI for name.
func (r *Registry) SchemaURI(name string) (string, bool) {
	uri, ok := r.uris[name]
	return uri, ok
}

// Names returns the registered extension names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.uris))
	for name := range r.uris {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
