package stac

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestGetPropertyAbsent(t *testing.T) {
	bag := make(PropertyBag)

	got, err := GetProperty[string](bag, "nomad:band")
	if err != nil {
		t.Fatalf("GetProperty on absent key: %v", err)
	}
	if got != nil {
		t.Errorf("GetProperty on absent key = %v, want nil", *got)
	}
}

func TestGetPropertyTypeMismatch(t *testing.T) {
	// A string stored where the accessor declares a list.
	bag := PropertyBag{"nomad:target": "Ganymede"}

	_, err := GetProperty[[]string](bag, "nomad:target")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("GetProperty = %v, want ErrTypeMismatch", err)
	}
}

func TestGetPropertyDecodedShapes(t *testing.T) {
	// Values round-tripped through JSON arrive as []any and float64;
	// values stored by setters keep their native types. Both shapes
	// must decode the same way.
	tests := []struct {
		name string
		bag  PropertyBag
	}{
		{"native", PropertyBag{"nomad:target": []string{"Ganymede", "Jupiter"}}},
		{"decoded", PropertyBag{"nomad:target": []any{"Ganymede", "Jupiter"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetProperty[[]string](tt.bag, "nomad:target")
			if err != nil {
				t.Fatalf("GetProperty: %v", err)
			}
			want := []string{"Ganymede", "Jupiter"}
			if got == nil || !reflect.DeepEqual(*got, want) {
				t.Errorf("GetProperty = %v, want %v", got, want)
			}
		})
	}
}

func TestGetRequired(t *testing.T) {
	v := "lno"

	got, err := GetRequired(&v, "item-1", "nomad:band")
	if err != nil {
		t.Fatalf("GetRequired with value: %v", err)
	}
	if got != "lno" {
		t.Errorf("GetRequired = %q, want %q", got, "lno")
	}

	_, err = GetRequired[string](nil, "item-1", "nomad:band")
	if !errors.Is(err, ErrRequiredFieldMissing) {
		t.Fatalf("GetRequired(nil) = %v, want ErrRequiredFieldMissing", err)
	}
}

func TestGetRequiredErrorNamesOwnerAndKey(t *testing.T) {
	_, err := GetRequired[string](nil, "item-1", "nomad:band")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"item-1", "nomad:band"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestSetPropertyPopIfNone(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"empty list", []string{}},
		{"nil slice", []string(nil)},
		{"empty any list", []any{}},
		{"nil pointer", (*string)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := PropertyBag{"nomad:target": []string{"Mars"}}
			SetProperty(bag, "nomad:target", tt.value)
			if _, ok := bag["nomad:target"]; ok {
				t.Errorf("key survived SetProperty(%v); bag = %v", tt.value, bag)
			}
		})
	}
}

func TestSetPropertyRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"scalar", "lno"},
		{"empty string", ""},
		{"number", 42.5},
		{"list", []string{"Ganymede", "Jupiter"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := make(PropertyBag)
			SetProperty(bag, "k", tt.value)
			got, ok := bag["k"]
			if !ok {
				t.Fatalf("SetProperty(%v) removed the key", tt.value)
			}
			if !reflect.DeepEqual(got, tt.value) {
				t.Errorf("bag[k] = %v, want %v", got, tt.value)
			}
		})
	}
}

func TestSetPropertyIdempotent(t *testing.T) {
	bag := make(PropertyBag)
	SetProperty(bag, "nomad:target", []string{"Mars"})
	once := PropertyBag{}
	for k, v := range bag {
		once[k] = v
	}

	SetProperty(bag, "nomad:target", []string{"Mars"})
	if !reflect.DeepEqual(bag, once) {
		t.Errorf("second SetProperty changed the bag: %v != %v", bag, once)
	}

	SetProperty(bag, "nomad:target", nil)
	SetProperty(bag, "nomad:target", nil)
	if len(bag) != 0 {
		t.Errorf("repeated clearing left keys behind: %v", bag)
	}
}
