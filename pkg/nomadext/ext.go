// Package nomadext implements the NOMAD instrument extension: typed
// accessors for the nomad:* property keys on STAC items and assets.
//
// Accessors follow the property codec's contract. Reading an absent
// optional field yields the absence value (nil) without error; reading
// an absent required field fails with stac.ErrRequiredFieldMissing;
// writing nil or an empty list removes the key, so serialized records
// never hold explicit nulls.
package nomadext

import (
	"github.com/pkg/errors"

	"github.com/s-boomi/nomad-stac-converter/pkg/stac"
)

// Extension is a per-object view binding one property bag to the field
// table. It holds no state beyond the bag reference and the owner id
// used in diagnostics.
type Extension struct {
	props stac.PropertyBag
	owner string
}

// Ext wraps item with the extension, ensuring the schema URI is declared
// on it when addIfMissing is set. Re-wrapping an already wrapped item
// never duplicates the declaration.
func Ext(item *stac.Item, addIfMissing bool) (*Extension, error) {
	if err := stac.EnsureExtension(item, SchemaURI, addIfMissing); err != nil {
		return nil, err
	}
	return &Extension{props: item.Properties, owner: item.ID}, nil
}

// AssetExt wraps an asset of owner with the extension. The declaration
// lives on the owning item; the accessors operate on the asset's own
// extra-field bag.
func AssetExt(owner *stac.Item, asset *stac.Asset, addIfMissing bool) (*Extension, error) {
	if err := stac.EnsureExtension(owner, SchemaURI, addIfMissing); err != nil {
		return nil, err
	}
	return &Extension{props: asset.ExtraFields, owner: owner.ID}, nil
}

// Apply sets every extension field at once. Nil arguments clear the
// corresponding keys.
func (e *Extension) Apply(targets []string, band, localTime *string, targetClass *TargetClass) {
	e.SetTargets(targets)
	e.SetBand(band)
	e.SetLocalTime(localTime)
	e.SetTargetClass(targetClass)
}

// Targets returns the observed target bodies, or nil when the field is
// absent. Absence is not converted to an empty list: "field not
// applicable" and "applicable but empty" stay distinguishable to
// callers, even though the setter collapses both to absence on write.
func (e *Extension) Targets() ([]string, error) {
	v, err := stac.GetProperty[[]string](e.props, TargetsProp)
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// SetTargets stores the target list; nil or empty removes the key.
func (e *Extension) SetTargets(targets []string) {
	stac.SetProperty(e.props, TargetsProp, targets)
}

// Band returns the instrument band identifier. The field is required
// for a valid record, so an absent key fails with
// stac.ErrRequiredFieldMissing naming the owner and the key.
func (e *Extension) Band() (string, error) {
	v, err := stac.GetProperty[string](e.props, BandProp)
	if err != nil {
		return "", err
	}
	return stac.GetRequired(v, e.owner, BandProp)
}

// SetBand stores the band identifier. A nil band clears the key;
// subsequent Band calls then fail until it is set again.
func (e *Extension) SetBand(band *string) {
	stac.SetProperty(e.props, BandProp, deref(band))
}

// LocalTime returns the lexicographically sortable local time string
// (for Mars, MarsYear:Sol:LocalTime), or nil when absent.
func (e *Extension) LocalTime() (*string, error) {
	return stac.GetProperty[string](e.props, LocalTimeProp)
}

// SetLocalTime stores the local time string; nil removes the key.
func (e *Extension) SetLocalTime(localTime *string) {
	stac.SetProperty(e.props, LocalTimeProp, deref(localTime))
}

// TargetClass returns the class of the observed body, or nil when absent.
func (e *Extension) TargetClass() (*TargetClass, error) {
	return stac.GetProperty[TargetClass](e.props, TargetClassProp)
}

// SetTargetClass stores the target class; nil removes the key.
func (e *Extension) SetTargetClass(tc *TargetClass) {
	if tc == nil {
		stac.SetProperty(e.props, TargetClassProp, nil)
		return
	}
	stac.SetProperty(e.props, TargetClassProp, *tc)
}

// Validate walks the field table and checks the bag against it:
// required fields must be present and every present field must hold a
// value of its declared shape. It reports the first violation.
func (e *Extension) Validate() error {
	for _, spec := range Fields {
		if err := e.checkField(spec); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extension) checkField(spec FieldSpec) error {
	switch {
	case spec.Cardinality == CardinalityList:
		v, err := stac.GetProperty[[]string](e.props, spec.Name)
		if err != nil {
			return err
		}
		if spec.Required {
			if _, err := stac.GetRequired(v, e.owner, spec.Name); err != nil {
				return err
			}
		}
	case spec.ValueType == ValueTypeTargetClass:
		v, err := stac.GetProperty[TargetClass](e.props, spec.Name)
		if err != nil {
			return err
		}
		if v != nil && !v.IsValid() {
			return errors.Wrapf(stac.ErrTypeMismatch, "%s: %q is not a target class", spec.Name, *v)
		}
		if spec.Required {
			if _, err := stac.GetRequired(v, e.owner, spec.Name); err != nil {
				return err
			}
		}
	default:
		v, err := stac.GetProperty[string](e.props, spec.Name)
		if err != nil {
			return err
		}
		if spec.Required {
			if _, err := stac.GetRequired(v, e.owner, spec.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// deref unwraps an optional string so the codec sees either the value or
// an absence, never a pointer.
func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
