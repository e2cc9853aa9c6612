package stac

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

const testURI = "https://stac-extensions.github.io/nomad/v1.0.0/schema.json"

func TestEnsureExtensionIdempotent(t *testing.T) {
	item := NewItem("obs-001", nil, nil, time.Unix(0, 0).UTC())

	for i := 0; i < 3; i++ {
		if err := EnsureExtension(item, testURI, true); err != nil {
			t.Fatalf("EnsureExtension: %v", err)
		}
	}
	if got := item.Extensions(); len(got) != 1 || got[0] != testURI {
		t.Errorf("Extensions() = %v, want exactly one %s", got, testURI)
	}
}

func TestEnsureExtensionNotDeclared(t *testing.T) {
	item := NewItem("obs-001", nil, nil, time.Unix(0, 0).UTC())

	err := EnsureExtension(item, testURI, false)
	if !errors.Is(err, ErrExtensionNotDeclared) {
		t.Fatalf("EnsureExtension = %v, want ErrExtensionNotDeclared", err)
	}
	if len(item.Extensions()) != 0 {
		t.Errorf("failed EnsureExtension still declared the extension: %v", item.Extensions())
	}
}

func TestRegistryRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register("nomad", testURI)
	r.Register("nomad", testURI)
	r.Register("eo", EOSchemaURI)

	uri, ok := r.SchemaURI("nomad")
	if !ok || uri != testURI {
		t.Errorf("SchemaURI(nomad) = %q, %v", uri, ok)
	}
	if got, want := r.Names(), []string{"eo", "nomad"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
