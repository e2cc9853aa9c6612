package stac

import "time"

// SpatialExtent is the set of bounding boxes a collection covers.
type SpatialExtent struct {
	BBoxes [][]float64 `json:"bbox"`
}

// TemporalExtent is the set of time intervals a collection covers. A nil
// endpoint means open-ended.
type TemporalExtent struct {
	Intervals [][2]*time.Time
}

// Extent combines the spatial and temporal coverage of a collection.
type Extent struct {
	Spatial  SpatialExtent
	Temporal TemporalExtent
}

// Collection groups related items and child collections under a shared
// description, license, and extent. Summaries is a property bag of
// aggregate values across the collection's items; it follows the same
// pop-if-none codec as item properties.
type Collection struct {
	ID          string
	Description string
	License     string
	Extent      Extent
	Summaries   PropertyBag

	extensions []string
	children   []*Collection
	items      []*Item
}

// NewCollection creates a collection with an empty summaries bag.
func NewCollection(id, description, license string, extent Extent) *Collection {
	return &Collection{
		ID:          id,
		Description: description,
		License:     license,
		Extent:      extent,
		Summaries:   make(PropertyBag),
	}
}

// AddItem appends an item and records its parent collection id.
func (c *Collection) AddItem(i *Item) {
	i.collection = c.ID
	c.items = append(c.items, i)
}

// AddChild appends a child collection.
func (c *Collection) AddChild(child *Collection) {
	c.children = append(c.children, child)
}

// Items returns the directly attached items.
func (c *Collection) Items() []*Item {
	return c.items
}

// Children returns the directly attached child collections.
func (c *Collection) Children() []*Collection {
	return c.children
}

// HasExtension reports whether the collection declares the schema URI.
func (c *Collection) HasExtension(uri string) bool {
	for _, u := range c.extensions {
		if u == uri {
			return true
		}
	}
	return false
}

// AddExtension declares the schema URI on the collection, once.
func (c *Collection) AddExtension(uri string) {
	if !c.HasExtension(uri) {
		c.extensions = append(c.extensions, uri)
	}
}

// Extensions returns the declared schema URIs in declaration order.
func (c *Collection) Extensions() []string {
	return append([]string(nil), c.extensions...)
}

// collectionJSON is the serialized shape of a Collection.
type collectionJSON struct {
	Type           string         `json:"type"`
	StacVersion    string         `json:"stac_version"`
	StacExtensions []string       `json:"stac_extensions,omitempty"`
	ID             string         `json:"id"`
	Description    string         `json:"description"`
	License        string         `json:"license"`
	Extent         extentJSON     `json:"extent"`
	Summaries      map[string]any `json:"summaries,omitempty"`
	Links          []Link         `json:"links"`
}

type extentJSON struct {
	Spatial  spatialJSON  `json:"spatial"`
	Temporal temporalJSON `json:"temporal"`
}

type spatialJSON struct {
	BBox [][]float64 `json:"bbox"`
}

type temporalJSON struct {
	Interval [][2]*string `json:"interval"`
}

func (c *Collection) toJSON(links []Link) collectionJSON {
	intervals := make([][2]*string, 0, len(c.Extent.Temporal.Intervals))
	for _, iv := range c.Extent.Temporal.Intervals {
		var pair [2]*string
		for n, t := range iv {
			if t != nil {
				s := t.UTC().Format(time.RFC3339)
				pair[n] = &s
			}
		}
		intervals = append(intervals, pair)
	}

	var summaries map[string]any
	if len(c.Summaries) > 0 {
		summaries = c.Summaries
	}

	return collectionJSON{
		Type:           "Collection",
		StacVersion:    Version,
		StacExtensions: c.extensions,
		ID:             c.ID,
		Description:    c.Description,
		License:        c.License,
		Extent: extentJSON{
			Spatial:  spatialJSON{BBox: c.Extent.Spatial.BBoxes},
			Temporal: temporalJSON{Interval: intervals},
		},
		Summaries: summaries,
		Links:     links,
	}
}
