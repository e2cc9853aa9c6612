package nomadext

import (
	"github.com/s-boomi/nomad-stac-converter/pkg/stac"
)

// SummariesView writes nomad:* aggregate values into a collection's
// summaries bag through the same codec as item properties, so cleared
// summaries disappear from the serialized collection too.
type SummariesView struct {
	summaries stac.PropertyBag
}

// Summaries wraps a collection's summaries with the extension, declaring
// the schema URI on the collection when addIfMissing is set.
func Summaries(col *stac.Collection, addIfMissing bool) (*SummariesView, error) {
	if err := stac.EnsureExtension(col, SchemaURI, addIfMissing); err != nil {
		return nil, err
	}
	return &SummariesView{summaries: col.Summaries}, nil
}

// Targets returns the summarized target bodies, or nil when unset.
func (s *SummariesView) Targets() ([]string, error) {
	v, err := stac.GetProperty[[]string](s.summaries, TargetsProp)
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// SetTargets stores the summarized target bodies.
func (s *SummariesView) SetTargets(targets []string) {
	stac.SetProperty(s.summaries, TargetsProp, targets)
}

// LocalTimes returns the summarized local time values, or nil when unset.
func (s *SummariesView) LocalTimes() ([]string, error) {
	v, err := stac.GetProperty[[]string](s.summaries, LocalTimeProp)
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// SetLocalTimes stores the summarized local time values.
func (s *SummariesView) SetLocalTimes(localTimes []string) {
	stac.SetProperty(s.summaries, LocalTimeProp, localTimes)
}

// TargetClasses returns the summarized target classes, or nil when unset.
func (s *SummariesView) TargetClasses() ([]TargetClass, error) {
	v, err := stac.GetProperty[[]TargetClass](s.summaries, TargetClassProp)
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// SetTargetClasses stores the summarized target classes.
func (s *SummariesView) SetTargetClasses(classes []TargetClass) {
	stac.SetProperty(s.summaries, TargetClassProp, classes)
}
