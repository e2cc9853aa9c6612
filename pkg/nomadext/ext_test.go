package nomadext

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/s-boomi/nomad-stac-converter/pkg/stac"
)

func newTestItem(t *testing.T) *stac.Item {
	t.Helper()
	return stac.NewItem("obs-001", nil, nil, time.Date(2018, 4, 22, 10, 0, 0, 0, time.UTC))
}

func ptr[T any](v T) *T { return &v }

func TestExtDeclaresSchemaOnce(t *testing.T) {
	item := newTestItem(t)

	for i := 0; i < 3; i++ {
		if _, err := Ext(item, true); err != nil {
			t.Fatalf("Ext: %v", err)
		}
	}

	count := 0
	for _, uri := range item.Extensions() {
		if uri == SchemaURI {
			count++
		}
	}
	if count != 1 {
		t.Errorf("schema URI declared %d times, want 1", count)
	}
}

func TestExtWithoutDeclaration(t *testing.T) {
	item := newTestItem(t)

	if _, err := Ext(item, false); !errors.Is(err, stac.ErrExtensionNotDeclared) {
		t.Fatalf("Ext(addIfMissing=false) = %v, want ErrExtensionNotDeclared", err)
	}
}

func TestTargetsMultiplicity(t *testing.T) {
	item := newTestItem(t)
	ext, err := Ext(item, true)
	if err != nil {
		t.Fatal(err)
	}

	// Absent: nil, not an empty list, and no error.
	got, err := ext.Targets()
	if err != nil {
		t.Fatalf("Targets on absent key: %v", err)
	}
	if got != nil {
		t.Errorf("Targets on absent key = %v, want nil", got)
	}

	// Two bodies in the same view, like Ganymede and Jupiter in one scene.
	ext.SetTargets([]string{"Ganymede", "Jupiter"})
	got, err = ext.Targets()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Ganymede", "Jupiter"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Targets = %v, want %v", got, want)
	}
}

func TestSetTargetsEmptyEqualsClear(t *testing.T) {
	item := newTestItem(t)
	ext, err := Ext(item, true)
	if err != nil {
		t.Fatal(err)
	}

	for _, clear := range [][]string{nil, {}} {
		ext.SetTargets([]string{"Mars"})
		ext.SetTargets(clear)

		if _, ok := item.Properties[TargetsProp]; ok {
			t.Errorf("SetTargets(%v) left %s in the bag", clear, TargetsProp)
		}
		got, err := ext.Targets()
		if err != nil || got != nil {
			t.Errorf("Targets after SetTargets(%v) = %v, %v; want nil, nil", clear, got, err)
		}
	}
}

func TestTargetsTypeMismatch(t *testing.T) {
	item := newTestItem(t)
	ext, err := Ext(item, true)
	if err != nil {
		t.Fatal(err)
	}
	item.Properties[TargetsProp] = "Ganymede"

	if _, err := ext.Targets(); !errors.Is(err, stac.ErrTypeMismatch) {
		t.Fatalf("Targets over string value = %v, want ErrTypeMismatch", err)
	}
}

func TestBandRequired(t *testing.T) {
	item := newTestItem(t)
	ext, err := Ext(item, true)
	if err != nil {
		t.Fatal(err)
	}

	_, err = ext.Band()
	if !errors.Is(err, stac.ErrRequiredFieldMissing) {
		t.Fatalf("Band on absent key = %v, want ErrRequiredFieldMissing", err)
	}
	if !strings.Contains(err.Error(), BandProp) {
		t.Errorf("error %q does not name %s", err, BandProp)
	}

	ext.SetBand(ptr("lno"))
	band, err := ext.Band()
	if err != nil {
		t.Fatalf("Band after SetBand: %v", err)
	}
	if band != "lno" {
		t.Errorf("Band = %q, want lno", band)
	}
}

func TestBandClearRearmsRequired(t *testing.T) {
	item := newTestItem(t)
	ext, err := Ext(item, true)
	if err != nil {
		t.Fatal(err)
	}

	ext.SetBand(ptr("so"))
	ext.SetBand(nil)

	if _, ok := item.Properties[BandProp]; ok {
		t.Errorf("SetBand(nil) left %s in the bag", BandProp)
	}
	if _, err := ext.Band(); !errors.Is(err, stac.ErrRequiredFieldMissing) {
		t.Fatalf("Band after clearing = %v, want ErrRequiredFieldMissing", err)
	}
}

func TestLocalTimeOptionalScalar(t *testing.T) {
	item := newTestItem(t)
	ext, err := Ext(item, true)
	if err != nil {
		t.Fatal(err)
	}

	got, err := ext.LocalTime()
	if err != nil || got != nil {
		t.Fatalf("LocalTime on absent key = %v, %v; want nil, nil", got, err)
	}

	ext.SetLocalTime(ptr("34:150:12.343"))
	got, err = ext.LocalTime()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != "34:150:12.343" {
		t.Errorf("LocalTime = %v, want 34:150:12.343", got)
	}

	ext.SetLocalTime(nil)
	if _, ok := item.Properties[LocalTimeProp]; ok {
		t.Error("SetLocalTime(nil) left the key in the bag")
	}
}

func TestTargetClassRoundTrip(t *testing.T) {
	item := newTestItem(t)
	ext, err := Ext(item, true)
	if err != nil {
		t.Fatal(err)
	}

	ext.SetTargetClass(ptr(TargetClassPlanet))
	got, err := ext.TargetClass()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != TargetClassPlanet {
		t.Errorf("TargetClass = %v, want planet", got)
	}
}

func TestApply(t *testing.T) {
	item := newTestItem(t)
	ext, err := Ext(item, true)
	if err != nil {
		t.Fatal(err)
	}

	ext.Apply([]string{"mars"}, ptr("lno"), ptr("34:150:12.343"), ptr(TargetClassPlanet))
	if err := ext.Validate(); err != nil {
		t.Fatalf("Validate after Apply: %v", err)
	}

	// Nil arguments clear everything they cover.
	ext.Apply(nil, nil, nil, nil)
	for _, key := range []string{TargetsProp, BandProp, LocalTimeProp, TargetClassProp} {
		if _, ok := item.Properties[key]; ok {
			t.Errorf("Apply(nil...) left %s in the bag", key)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		props   map[string]any
		wantErr error
	}{
		{
			name:    "valid",
			props:   map[string]any{BandProp: "uvis", TargetsProp: []string{"mars"}},
			wantErr: nil,
		},
		{
			name:    "missing required band",
			props:   map[string]any{TargetsProp: []string{"mars"}},
			wantErr: stac.ErrRequiredFieldMissing,
		},
		{
			name:    "targets wrong shape",
			props:   map[string]any{BandProp: "so", TargetsProp: "mars"},
			wantErr: stac.ErrTypeMismatch,
		},
		{
			name:    "unknown target class",
			props:   map[string]any{BandProp: "so", TargetClassProp: "megastructure"},
			wantErr: stac.ErrTypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newTestItem(t)
			ext, err := Ext(item, true)
			if err != nil {
				t.Fatal(err)
			}
			for k, v := range tt.props {
				item.Properties[k] = v
			}

			err = ext.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssetExt(t *testing.T) {
	item := newTestItem(t)
	asset := stac.NewAsset("obs-001.h5", stac.MediaTypeHDF5)
	item.AddAsset("dataformat", asset)

	ext, err := AssetExt(item, asset, true)
	if err != nil {
		t.Fatal(err)
	}
	ext.SetBand(ptr("lno"))

	if !item.HasExtension(SchemaURI) {
		t.Error("AssetExt did not declare the schema on the owning item")
	}
	if asset.ExtraFields[BandProp] != "lno" {
		t.Errorf("asset extra field %s = %v, want lno", BandProp, asset.ExtraFields[BandProp])
	}
	if _, ok := item.Properties[BandProp]; ok {
		t.Error("asset-scoped write leaked into item properties")
	}
}

func TestSummaries(t *testing.T) {
	start := time.Date(2018, 4, 22, 0, 0, 0, 0, time.UTC)
	extent := stac.Extent{
		Spatial:  stac.SpatialExtent{BBoxes: [][]float64{{-180, -90, 180, 90}}},
		Temporal: stac.TemporalExtent{Intervals: [][2]*time.Time{{&start, nil}}},
	}
	col := stac.NewCollection("observations", "d", "CC-BY-SA-4.0", extent)

	s, err := Summaries(col, true)
	if err != nil {
		t.Fatal(err)
	}
	s.SetTargets([]string{"mars"})
	s.SetTargetClasses([]TargetClass{TargetClassPlanet})

	targets, err := s.Targets()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(targets, []string{"mars"}) {
		t.Errorf("Targets = %v, want [mars]", targets)
	}

	s.SetTargets(nil)
	if _, ok := col.Summaries[TargetsProp]; ok {
		t.Error("cleared summary still present")
	}
}
