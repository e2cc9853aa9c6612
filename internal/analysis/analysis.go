// Package analysis concatenates the sparse per-observation GeoJSON files
// into a single table for people who want to look at the data before
// (or instead of) cataloging it. Exports land in the handler's output
// folder.
package analysis

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/s-boomi/nomad-stac-converter/internal/iofs"
	"github.com/s-boomi/nomad-stac-converter/internal/observation"
)

// ErrUnknownFormat is returned for format names outside Formats().
var ErrUnknownFormat = errors.New("unknown analysis format")

// Format names for SaveToFormat.
const (
	FormatCSV     = "csv"
	FormatSQLite  = "sqlite"
	FormatGeoJSON = "geojson"
)

// Format describes one export format for the formats listing.
type Format struct {
	Name        string
	Description string
	Writable    bool
}

// Formats enumerates the formats the exporter knows about. Shapefile and
// GeoPackage are listed so users of the original toolchain see why they
// are gone: both need a geodesy stack this converter deliberately lacks.
func Formats() []Format {
	return []Format{
		{Name: FormatCSV, Description: "flat table, geometry as WKT-free centre coordinates", Writable: true},
		{Name: FormatSQLite, Description: "observations table in a SQLite database", Writable: true},
		{Name: FormatGeoJSON, Description: "merged FeatureCollection", Writable: true},
		{Name: "shp", Description: "ESRI Shapefile (requires a reprojection stack)", Writable: false},
		{Name: "gpkg", Description: "GeoPackage (requires a reprojection stack)", Writable: false},
	}
}

// Exporter reads every observation in the handler's input folder and
// writes one merged file per call.
type Exporter struct {
	io  *iofs.Handler
	log zerolog.Logger
}

// New creates an exporter over the handler's folders.
func New(io *iofs.Handler, log zerolog.Logger) *Exporter {
	return &Exporter{io: io, log: log}
}

// SaveToFormat merges all observations and writes them as filename in
// the output folder. It returns the number of rows written.
func (e *Exporter) SaveToFormat(filename, format string) (int, error) {
	obs, err := e.load()
	if err != nil {
		return 0, err
	}
	e.log.Info().Int("observations", len(obs)).Str("format", format).Msg("exporting")

	dest := filepath.Join(e.io.OutputDir, filename)
	switch format {
	case FormatCSV:
		err = writeCSV(dest, obs)
	case FormatSQLite:
		err = writeSQLite(dest, obs)
	case FormatGeoJSON:
		err = writeGeoJSON(dest, obs)
	default:
		return 0, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	if err != nil {
		return 0, err
	}
	return len(obs), nil
}

// load reads every observation file once; the *.json glob also matches
// *.geojson names, so paths are deduplicated.
func (e *Exporter) load() ([]observation.Observation, error) {
	seen := make(map[string]bool)
	var obs []observation.Observation
	for _, ext := range []string{"geojson", "json"} {
		files, err := e.io.InputFilesWithExt(ext)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if seen[file] {
				continue
			}
			seen[file] = true
			fileObs, err := observation.ReadFile(file)
			if err != nil {
				return nil, err
			}
			obs = append(obs, fileObs...)
		}
	}
	return obs, nil
}

// csvHeader is the column order of CSV exports and the sqlite table.
var csvHeader = []string{
	"psa_lid", "utc_start_time", "utc_end_time", "spec_ix",
	"diffraction_order", "incidence_angle", "emergence_angle",
	"phase_angle", "centre_latitude", "centre_longitude",
	"channel_temperature", "hdf5_filename", "mars_local_time",
}

func rowOf(o observation.Observation) []string {
	return []string{
		o.PsaLID,
		o.UTCStart.Format(time.RFC3339),
		o.UTCEnd.Format(time.RFC3339),
		strconv.FormatInt(o.SpecIx, 10),
		strconv.FormatInt(o.DiffractionOrder, 10),
		strconv.FormatFloat(o.IncidenceAngle, 'g', -1, 64),
		strconv.FormatFloat(o.EmergenceAngle, 'g', -1, 64),
		strconv.FormatFloat(o.PhaseAngle, 'g', -1, 64),
		strconv.FormatFloat(o.CentreLatitude, 'g', -1, 64),
		strconv.FormatFloat(o.CentreLongitude, 'g', -1, 64),
		strconv.FormatFloat(o.ChannelTemperature, 'g', -1, 64),
		o.HDF5Filename,
		o.MarsLocalTime(),
	}
}

func writeCSV(dest string, obs []observation.Observation) error {
	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, o := range obs {
		if err := w.Write(rowOf(o)); err != nil {
			return errors.Wrapf(err, "writing row %s", o.PsaLID)
		}
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "flushing %s", dest)
}

func writeGeoJSON(dest string, obs []observation.Observation) error {
	features := make([]map[string]any, 0, len(obs))
	for _, o := range obs {
		features = append(features, map[string]any{
			"type":     "Feature",
			"geometry": o.Geometry,
			"properties": map[string]any{
				"psa_lid":             o.PsaLID,
				"utc_start_time":      o.UTCStart.Format(time.RFC3339),
				"utc_end_time":        o.UTCEnd.Format(time.RFC3339),
				"spec_ix":             o.SpecIx,
				"diffraction_order":   o.DiffractionOrder,
				"incidence_angle":     o.IncidenceAngle,
				"emergence_angle":     o.EmergenceAngle,
				"phase_angle":         o.PhaseAngle,
				"centre_latitude":     o.CentreLatitude,
				"centre_longitude":    o.CentreLongitude,
				"channel_temperature": o.ChannelTemperature,
				"hdf5_filename":       o.HDF5Filename,
				"mars_local_time":     o.MarsLocalTime(),
			},
		})
	}
	b, err := json.MarshalIndent(map[string]any{
		"type":     "FeatureCollection",
		"features": features,
	}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding feature collection")
	}
	if err := os.WriteFile(dest, b, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", dest)
	}
	return nil
}
