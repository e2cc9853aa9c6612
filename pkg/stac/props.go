// Typed get/set primitives over the loosely typed property mapping.
package stac

import (
	"encoding/json"
	"reflect"

	"github.com/pkg/errors"
)

// Property access errors. Accessors wrap these with the offending key
// and owner; use errors.Is to classify.
var (
	ErrTypeMismatch         = errors.New("property type mismatch")
	ErrRequiredFieldMissing = errors.New("required property missing")
)

// PropertyBag holds the JSON properties of an Item or Asset. Values are
// anything encoding/json can produce: strings, float64 numbers, bools,
// []any, map[string]any, or typed values stored by accessors before
// serialization.
type PropertyBag map[string]any

// GetProperty looks up key in the bag and decodes it as T. An absent key
// (or an explicit nil, which a well-behaved writer never stores) yields
// (nil, nil) so callers can distinguish "not set" from a zero value.
// A present value that cannot be decoded as T yields ErrTypeMismatch.
func GetProperty[T any](bag PropertyBag, key string) (*T, error) {
	raw, ok := bag[key]
	if !ok || raw == nil {
		return nil, nil
	}

	// Fast path for values stored by our own setters.
	if v, ok := raw.(T); ok {
		return &v, nil
	}

	// Values read back from serialized JSON arrive as float64, []any,
	// map[string]any. Re-encode and decode into the declared type so
	// both shapes satisfy the same contract.
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrTypeMismatch, "property %q holds unencodable %T", key, raw)
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, errors.Wrapf(ErrTypeMismatch, "property %q holds %T, not %T", key, raw, v)
	}
	return &v, nil
}

// GetRequired passes through the result of a prior GetProperty lookup,
// turning absence into ErrRequiredFieldMissing. The owner string names
// the item or asset for diagnostics. Splitting lookup from the
// requirement check lets required and optional accessors share one
// lookup path.
func GetRequired[T any](v *T, owner, key string) (T, error) {
	if v == nil {
		var zero T
		return zero, errors.Wrapf(ErrRequiredFieldMissing, "%s has no %q", owner, key)
	}
	return *v, nil
}

// SetProperty stores value at key, overwriting any prior value. A nil
// value or an empty sequence removes the key entirely, so the bag never
// holds a null or an empty list after a write. Calling twice with the
// same value leaves the bag in the same state as calling once.
func SetProperty(bag PropertyBag, key string, value any) {
	if isAbsent(value) {
		delete(bag, key)
		return
	}
	bag[key] = value
}

// isAbsent reports whether value represents "no value" under the
// pop-if-none rule: nil, a nil pointer or interface, or a sequence/map
// of length zero. An empty string is a value, not an absence.
func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil() || isAbsent(rv.Elem().Interface())
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}
