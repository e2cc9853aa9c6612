// Package catalog assembles the STAC catalog tree from raw observation
// files: one root collection per run, one sub-collection per diffraction
// order, one item per spectrum, with the instrument extension fields
// populated through the typed accessors.
package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/s-boomi/nomad-stac-converter/internal/instrument"
	"github.com/s-boomi/nomad-stac-converter/internal/iofs"
	"github.com/s-boomi/nomad-stac-converter/internal/observation"
	"github.com/s-boomi/nomad-stac-converter/pkg/nomadext"
	"github.com/s-boomi/nomad-stac-converter/pkg/stac"
)

// ErrNoObservations is returned when the input folder holds files but
// none of them yields an observation.
var ErrNoObservations = errors.New("no observations found in input folder")

// Dataset constants carried onto every generated record.
const (
	collectionLicense    = "CC-BY-SA-4.0"
	rootCollectionID     = "10-days-lno"
	rootCollectionDescr  = "Nomad LNO Samples over 2018"
	projectionCode       = "IAU:2015:49986"
	platformName         = "exomars-trace-gas-orbiter"
	constellationName    = "exomars"
	missionName          = "ExoMars"
	instrumentName       = "nomad"
	observedTarget       = "mars"
	dataAssetKey         = "dataformat"
	observationFileExts  = "geojson"
	observationFileExts2 = "json"
)

// Creator builds one catalog per invocation. It owns the extension
// registry so registration is explicit and deterministic rather than
// ambient.
type Creator struct {
	CatalogID   string
	Description string
	Bands       []stac.Band

	io       *iofs.Handler
	registry *stac.Registry
	log      zerolog.Logger
}

// New creates a creator over the given folders with the selected bands
// registered against their schema URIs.
func New(catalogID, description string, bands []stac.Band, io *iofs.Handler, log zerolog.Logger) *Creator {
	registry := stac.NewRegistry()
	registry.Register(nomadext.ExtensionName, nomadext.SchemaURI)
	registry.Register("eo", stac.EOSchemaURI)
	registry.Register("projection", stac.ProjectionSchemaURI)

	return &Creator{
		CatalogID:   catalogID,
		Description: description,
		Bands:       bands,
		io:          io,
		registry:    registry,
		log:         log,
	}
}

// Registry exposes the creator's extension registry.
func (c *Creator) Registry() *stac.Registry {
	return c.registry
}

// Create reads every observation file under the input folder, assembles
// the catalog tree, and saves it under the output folder. A non-empty
// output folder is an error unless clean is set. Items whose extension
// fields fail validation are skipped with a warning rather than aborting
// the whole run.
func (c *Creator) Create(clean bool, catalogType stac.CatalogType) (*stac.Catalog, error) {
	started := time.Now()

	empty, err := c.io.IsInputEmpty()
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, errors.Wrap(iofs.ErrInputEmpty, "download the data first")
	}
	if err := c.io.EnsureOutputWritable(clean); err != nil {
		return nil, err
	}

	obs, err := c.readObservations()
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, ErrNoObservations
	}
	c.log.Info().Int("observations", len(obs)).Msg("input folder read")

	cat := stac.NewCatalog(c.CatalogID, c.Description)
	root, err := c.buildRootCollection(obs)
	if err != nil {
		return nil, err
	}

	for _, order := range diffractionOrders(obs) {
		sub, err := c.buildOrderCollection(order, slice(obs, order))
		if err != nil {
			return nil, err
		}
		root.AddChild(sub)
		c.log.Info().
			Str("collection", sub.ID).
			Int("items", len(sub.Items())).
			Msg("sub-collection added")
	}
	cat.AddChild(root)

	c.log.Info().Str("output", c.io.OutputDir).Str("type", string(catalogType)).Msg("saving catalog")
	if err := cat.Save(c.io.OutputDir, catalogType); err != nil {
		return nil, err
	}
	c.log.Info().Dur("elapsed", time.Since(started)).Msg("catalog created")
	return cat, nil
}

// readObservations loads every .geojson and .json file in the input
// folder. The *.json glob also matches *.geojson names, so paths are
// deduplicated before reading.
func (c *Creator) readObservations() ([]observation.Observation, error) {
	seen := make(map[string]bool)
	var files []string
	for _, ext := range []string{observationFileExts, observationFileExts2} {
		matches, err := c.io.InputFilesWithExt(ext)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}

	var obs []observation.Observation
	for _, file := range files {
		fileObs, err := observation.ReadFile(file)
		if err != nil {
			return nil, err
		}
		obs = append(obs, fileObs...)
	}
	return obs, nil
}

// buildRootCollection creates the run's master collection with band,
// target, and projection summaries.
func (c *Creator) buildRootCollection(obs []observation.Observation) (*stac.Collection, error) {
	col := collectionFromSlice(rootCollectionID, rootCollectionDescr, obs)

	stac.ApplyEOBands(col, c.Bands)
	stac.ApplyProjection(col, projectionCode)

	summaries, err := nomadext.Summaries(col, true)
	if err != nil {
		return nil, err
	}
	summaries.SetTargets([]string{observedTarget})
	summaries.SetTargetClasses([]nomadext.TargetClass{nomadext.TargetClassPlanet})

	return col, nil
}

// buildOrderCollection creates one sub-collection for a diffraction
// order and fills it with items, skipping rows that fail validation.
func (c *Creator) buildOrderCollection(order int64, obs []observation.Observation) (*stac.Collection, error) {
	id := fmt.Sprintf("diffraction-order-%d", order)
	descr := fmt.Sprintf("NOMAD spectra at diffraction order %d", order)
	col := collectionFromSlice(id, descr, obs)

	for _, o := range obs {
		item, err := c.buildItem(o)
		if err != nil {
			c.log.Warn().Err(err).Str("psa_lid", o.PsaLID).Msg("skipping observation")
			continue
		}
		col.AddItem(item)
	}
	return col, nil
}

// buildItem converts one observation into a catalog item with its asset
// and extension fields.
func (c *Creator) buildItem(o observation.Observation) (*stac.Item, error) {
	id := o.PsaLID
	if id == "" {
		// Deliveries occasionally miss the PSA logical identifier.
		id = uuid.Must(uuid.NewV7()).String()
	}

	item := stac.NewItem(id, o.Geometry, o.BBox, o.UTCStart)

	// Geometry values that fit no extension stay plain properties.
	stac.SetProperty(item.Properties, "spec_ix", o.SpecIx)
	stac.SetProperty(item.Properties, "incidence_angle", o.IncidenceAngle)
	stac.SetProperty(item.Properties, "emergence_angle", o.EmergenceAngle)
	stac.SetProperty(item.Properties, "phase_angle", o.PhaseAngle)
	stac.SetProperty(item.Properties, "centre_latitude", o.CentreLatitude)
	stac.SetProperty(item.Properties, "centre_longitude", o.CentreLongitude)
	stac.SetProperty(item.Properties, "channel_temperature", o.ChannelTemperature)

	cm := item.CommonMetadata()
	cm.SetPlatform(platformName)
	cm.SetInstruments([]string{instrumentName})
	cm.SetConstellation(constellationName)
	cm.SetMission(missionName)
	cm.SetTimeRange(o.UTCStart, o.UTCEnd)

	if o.HDF5Filename != "" {
		item.AddAsset(dataAssetKey, stac.NewAsset(o.HDF5Filename, stac.MediaTypeHDF5))
	}

	ext, err := nomadext.Ext(item, true)
	if err != nil {
		return nil, err
	}
	band := c.itemBand()
	localTime := o.MarsLocalTime()
	targetClass := nomadext.TargetClassPlanet
	ext.Apply([]string{observedTarget}, &band, &localTime, &targetClass)

	if err := ext.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// itemBand names the band recorded on each item. The 10-day sample
// dataset is single-channel, so the first selected band identifies it.
func (c *Creator) itemBand() string {
	if len(c.Bands) > 0 {
		return c.Bands[0].CommonName
	}
	return instrument.BandLNO
}

// collectionFromSlice builds a collection whose extent covers the given
// observations.
func collectionFromSlice(id, description string, obs []observation.Observation) *stac.Collection {
	bbox, start, end := observation.Bounds(obs)
	extent := stac.Extent{
		Spatial:  stac.SpatialExtent{BBoxes: [][]float64{bbox}},
		Temporal: stac.TemporalExtent{Intervals: [][2]*time.Time{{&start, &end}}},
	}
	return stac.NewCollection(id, description, collectionLicense, extent)
}

// diffractionOrders returns the distinct orders present, ascending.
func diffractionOrders(obs []observation.Observation) []int64 {
	seen := make(map[int64]bool)
	var orders []int64
	for _, o := range obs {
		if !seen[o.DiffractionOrder] {
			seen[o.DiffractionOrder] = true
			orders = append(orders, o.DiffractionOrder)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i] < orders[j] })
	return orders
}

// slice filters observations to one diffraction order.
func slice(obs []observation.Observation, order int64) []observation.Observation {
	var out []observation.Observation
	for _, o := range obs {
		if o.DiffractionOrder == order {
			out = append(out, o)
		}
	}
	return out
}
