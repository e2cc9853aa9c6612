package stac

import (
	"time"
)

// Common metadata property keys shared by all STAC objects.
const (
	PropPlatform      = "platform"
	PropInstruments   = "instruments"
	PropConstellation = "constellation"
	PropMission       = "mission"
	PropStartDatetime = "start_datetime"
	PropEndDatetime   = "end_datetime"
)

// Item is one catalog record: an observation with a footprint, a time
// range, a property bag, and zero or more assets. Geometry is kept as
// decoded GeoJSON; the converter never reprojects or interprets it.
type Item struct {
	ID         string
	Geometry   map[string]any
	BBox       []float64
	Datetime   time.Time
	Properties PropertyBag
	Assets     map[string]*Asset

	extensions []string
	collection string
}

// NewItem creates an item with an empty property bag and no assets.
func NewItem(id string, geometry map[string]any, bbox []float64, datetime time.Time) *Item {
	return &Item{
		ID:         id,
		Geometry:   geometry,
		BBox:       bbox,
		Datetime:   datetime,
		Properties: make(PropertyBag),
		Assets:     make(map[string]*Asset),
	}
}

// AddAsset attaches an asset under key, replacing any prior asset with
// the same key.
func (i *Item) AddAsset(key string, a *Asset) {
	i.Assets[key] = a
}

// HasExtension reports whether the item declares the schema URI.
func (i *Item) HasExtension(uri string) bool {
	for _, u := range i.extensions {
		if u == uri {
			return true
		}
	}
	return false
}

// AddExtension declares the schema URI on the item. Adding an already
// declared URI is a no-op.
func (i *Item) AddExtension(uri string) {
	if !i.HasExtension(uri) {
		i.extensions = append(i.extensions, uri)
	}
}

// Extensions returns the declared schema URIs in declaration order.
func (i *Item) Extensions() []string {
	return append([]string(nil), i.extensions...)
}

// CommonMetadata returns a view over the item's shared STAC metadata
// fields. The view writes through the property codec, so clearing a
// field removes its key.
func (i *Item) CommonMetadata() CommonMetadata {
	return CommonMetadata{props: i.Properties}
}

// CommonMetadata reads and writes the cross-extension metadata fields
// (platform, instruments, constellation, mission, time range) of an
// item's property bag.
type CommonMetadata struct {
	props PropertyBag
}

// Platform returns the platform identifier, or nil when unset.
func (cm CommonMetadata) Platform() (*string, error) {
	return GetProperty[string](cm.props, PropPlatform)
}

// SetPlatform stores the platform identifier; an empty value is kept
// as-is since empty strings are values, not absences.
func (cm CommonMetadata) SetPlatform(platform string) {
	SetProperty(cm.props, PropPlatform, platform)
}

// Instruments returns the instrument list, or nil when unset.
func (cm CommonMetadata) Instruments() ([]string, error) {
	v, err := GetProperty[[]string](cm.props, PropInstruments)
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// SetInstruments stores the instrument list; an empty list removes it.
func (cm CommonMetadata) SetInstruments(instruments []string) {
	SetProperty(cm.props, PropInstruments, instruments)
}

// Constellation returns the constellation name, or nil when unset.
func (cm CommonMetadata) Constellation() (*string, error) {
	return GetProperty[string](cm.props, PropConstellation)
}

// SetConstellation stores the constellation name.
func (cm CommonMetadata) SetConstellation(constellation string) {
	SetProperty(cm.props, PropConstellation, constellation)
}

// Mission returns the mission name, or nil when unset.
func (cm CommonMetadata) Mission() (*string, error) {
	return GetProperty[string](cm.props, PropMission)
}

// SetMission stores the mission name.
func (cm CommonMetadata) SetMission(mission string) {
	SetProperty(cm.props, PropMission, mission)
}

// SetTimeRange stores the observation's start and end instants.
func (cm CommonMetadata) SetTimeRange(start, end time.Time) {
	SetProperty(cm.props, PropStartDatetime, start.UTC().Format(time.RFC3339))
	SetProperty(cm.props, PropEndDatetime, end.UTC().Format(time.RFC3339))
}

// itemJSON is the serialized GeoJSON Feature shape of an Item.
type itemJSON struct {
	Type           string         `json:"type"`
	StacVersion    string         `json:"stac_version"`
	StacExtensions []string       `json:"stac_extensions,omitempty"`
	ID             string         `json:"id"`
	Geometry       map[string]any `json:"geometry"`
	BBox           []float64      `json:"bbox,omitempty"`
	Properties     map[string]any `json:"properties"`
	Links          []Link         `json:"links"`
	Assets         map[string]any `json:"assets"`
	Collection     string         `json:"collection,omitempty"`
}

// toJSON builds the serialized record. The property bag is copied so the
// injected datetime does not leak back into the live item, and assets
// are flattened with their extension fields.
func (i *Item) toJSON(links []Link) itemJSON {
	props := make(map[string]any, len(i.Properties)+1)
	for k, v := range i.Properties {
		props[k] = v
	}
	props["datetime"] = i.Datetime.UTC().Format(time.RFC3339)

	assets := make(map[string]any, len(i.Assets))
	for k, a := range i.Assets {
		assets[k] = a.toJSONMap()
	}

	return itemJSON{
		Type:           "Feature",
		StacVersion:    Version,
		StacExtensions: i.extensions,
		ID:             i.ID,
		Geometry:       i.Geometry,
		BBox:           i.BBox,
		Properties:     props,
		Links:          links,
		Assets:         assets,
		Collection:     i.collection,
	}
}
