package analysis

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/s-boomi/nomad-stac-converter/internal/observation"
)

const observationsSchema = `
CREATE TABLE IF NOT EXISTS observations (
	psa_lid             TEXT PRIMARY KEY,
	utc_start_time      TEXT NOT NULL,
	utc_end_time        TEXT NOT NULL,
	spec_ix             INTEGER NOT NULL,
	diffraction_order   INTEGER NOT NULL,
	incidence_angle     REAL,
	emergence_angle     REAL,
	phase_angle         REAL,
	centre_latitude     REAL,
	centre_longitude    REAL,
	channel_temperature REAL,
	hdf5_filename       TEXT,
	mars_local_time     TEXT
);
CREATE INDEX IF NOT EXISTS idx_observations_order ON observations(diffraction_order);
`

const insertObservation = `
INSERT OR REPLACE INTO observations (
	psa_lid, utc_start_time, utc_end_time, spec_ix, diffraction_order,
	incidence_angle, emergence_angle, phase_angle, centre_latitude,
	centre_longitude, channel_temperature, hdf5_filename, mars_local_time
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// writeSQLite loads the merged observations into a single-table SQLite
// database, replacing rows that share a psa_lid. All rows go in one
// transaction so a failed export leaves no partial database behind.
func writeSQLite(dest string, obs []observation.Observation) error {
	db, err := sql.Open("sqlite", dest)
	if err != nil {
		return errors.Wrapf(err, "opening %s", dest)
	}
	defer db.Close()

	if _, err := db.Exec(observationsSchema); err != nil {
		return errors.Wrap(err, "initializing schema")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertObservation)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer stmt.Close()

	for _, o := range obs {
		_, err := stmt.Exec(
			o.PsaLID,
			o.UTCStart.Format(time.RFC3339),
			o.UTCEnd.Format(time.RFC3339),
			o.SpecIx,
			o.DiffractionOrder,
			o.IncidenceAngle,
			o.EmergenceAngle,
			o.PhaseAngle,
			o.CentreLatitude,
			o.CentreLongitude,
			o.ChannelTemperature,
			o.HDF5Filename,
			o.MarsLocalTime(),
		)
		if err != nil {
			return errors.Wrapf(err, "inserting %s", o.PsaLID)
		}
	}
	return errors.Wrap(tx.Commit(), "committing export")
}
