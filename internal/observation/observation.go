// Package observation reads NOMAD observation records from the sparse
// GeoJSON files delivered by the archive. Each feature is one spectrum:
// a footprint plus viewing-geometry and instrument-state properties.
package observation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Read errors.
var (
	ErrNotFeatureCollection = errors.New("not a GeoJSON Feature or FeatureCollection")
	ErrBadTimestamp         = errors.New("unparseable observation timestamp")
)

// Observation is one spectrum record as found in the source files.
type Observation struct {
	PsaLID             string
	Geometry           map[string]any
	BBox               []float64
	UTCStart           time.Time
	UTCEnd             time.Time
	SpecIx             int64
	DiffractionOrder   int64
	IncidenceAngle     float64
	EmergenceAngle     float64
	PhaseAngle         float64
	CentreLatitude     float64
	CentreLongitude    float64
	ChannelTemperature float64
	HDF5Filename       string
	MartianYear        int64
	Ls                 float64
	LocalSolarTime     string
}

// MarsLocalTime renders the observation's local time in the
// lexicographically sortable MarsYear:Ls:LocalSolarTime form.
func (o Observation) MarsLocalTime() string {
	return fmt.Sprintf("%d:%g:%s", o.MartianYear, o.Ls, o.LocalSolarTime)
}

// ReadFile parses every feature of a GeoJSON file into observations. A
// single top-level Feature is accepted as a one-element collection.
func ReadFile(path string) ([]Observation, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	obs, err := parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return obs, nil
}

func parse(b []byte) ([]Observation, error) {
	switch gjson.GetBytes(b, "type").String() {
	case "FeatureCollection":
		var out []Observation
		var parseErr error
		gjson.GetBytes(b, "features").ForEach(func(_, feature gjson.Result) bool {
			o, err := fromFeature(feature)
			if err != nil {
				parseErr = err
				return false
			}
			out = append(out, o)
			return true
		})
		return out, parseErr
	case "Feature":
		o, err := fromFeature(gjson.ParseBytes(b))
		if err != nil {
			return nil, err
		}
		return []Observation{o}, nil
	default:
		return nil, ErrNotFeatureCollection
	}
}

// fromFeature plucks the observation fields out of one GeoJSON feature.
func fromFeature(feature gjson.Result) (Observation, error) {
	props := feature.Get("properties")

	start, err := parseTime(props.Get("utc_start_time").String())
	if err != nil {
		return Observation{}, err
	}
	end, err := parseTime(props.Get("utc_end_time").String())
	if err != nil {
		return Observation{}, err
	}

	var geom map[string]any
	if raw := feature.Get("geometry").Raw; raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &geom); err != nil {
			return Observation{}, errors.Wrap(err, "decoding geometry")
		}
	}

	return Observation{
		PsaLID:             props.Get("psa_lid").String(),
		Geometry:           geom,
		BBox:               bboxOf(geom),
		UTCStart:           start,
		UTCEnd:             end,
		SpecIx:             props.Get("spec_ix").Int(),
		DiffractionOrder:   props.Get("diffraction_order").Int(),
		IncidenceAngle:     props.Get("incidence_angle").Float(),
		EmergenceAngle:     props.Get("emergence_angle").Float(),
		PhaseAngle:         props.Get("phase_angle").Float(),
		CentreLatitude:     props.Get("centre_latitude").Float(),
		CentreLongitude:    props.Get("centre_longitude").Float(),
		ChannelTemperature: props.Get("channel_temperature").Float(),
		HDF5Filename:       props.Get("hdf5_filename").String(),
		MartianYear:        props.Get("martian_year").Int(),
		Ls:                 props.Get("ls").Float(),
		LocalSolarTime:     props.Get("local_solar_time").String(),
	}, nil
}

// timeLayouts are the timestamp shapes seen in archive deliveries.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrBadTimestamp, "%q", s)
}

// bboxOf computes [minLon, minLat, maxLon, maxLat] from a decoded
// GeoJSON geometry by walking its coordinate nesting.
func bboxOf(geom map[string]any) []float64 {
	if geom == nil {
		return nil
	}
	minLon, minLat := math.Inf(1), math.Inf(1)
	maxLon, maxLat := math.Inf(-1), math.Inf(-1)
	found := false

	var walk func(v any)
	walk = func(v any) {
		coords, ok := v.([]any)
		if !ok {
			return
		}
		// A position is a list whose first element is a number.
		if len(coords) >= 2 {
			if lon, ok := coords[0].(float64); ok {
				if lat, ok := coords[1].(float64); ok {
					minLon = math.Min(minLon, lon)
					maxLon = math.Max(maxLon, lon)
					minLat = math.Min(minLat, lat)
					maxLat = math.Max(maxLat, lat)
					found = true
					return
				}
			}
		}
		for _, c := range coords {
			walk(c)
		}
	}
	walk(geom["coordinates"])

	if !found {
		return nil
	}
	return []float64{minLon, minLat, maxLon, maxLat}
}

// Bounds returns the union bbox and time range of a set of observations.
func Bounds(obs []Observation) (bbox []float64, start, end time.Time) {
	minLon, minLat := math.Inf(1), math.Inf(1)
	maxLon, maxLat := math.Inf(-1), math.Inf(-1)
	found := false

	for _, o := range obs {
		if len(o.BBox) == 4 {
			minLon = math.Min(minLon, o.BBox[0])
			minLat = math.Min(minLat, o.BBox[1])
			maxLon = math.Max(maxLon, o.BBox[2])
			maxLat = math.Max(maxLat, o.BBox[3])
			found = true
		}
		if start.IsZero() || o.UTCStart.Before(start) {
			start = o.UTCStart
		}
		if o.UTCEnd.After(end) {
			end = o.UTCEnd
		}
	}
	if found {
		bbox = []float64{minLon, minLat, maxLon, maxLat}
	}
	return bbox, start, end
}
