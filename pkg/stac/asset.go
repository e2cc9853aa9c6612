package stac

// Media types for asset hrefs.
const (
	MediaTypeHDF5    = "application/x-hdf5"
	MediaTypeJSON    = "application/json"
	MediaTypeGeoJSON = "application/geo+json"
	MediaTypeCOG     = "image/tiff; application=geotiff; profile=cloud-optimized"
)

// Asset points at data associated with an Item, such as the source HDF5
// observation file. ExtraFields holds extension properties scoped to the
// asset rather than the item; it obeys the same pop-if-none codec.
type Asset struct {
	Href        string
	MediaType   string
	Title       string
	Roles       []string
	ExtraFields PropertyBag
}

// NewAsset creates an asset for href with the given media type and an
// empty extra-field bag.
func NewAsset(href, mediaType string) *Asset {
	return &Asset{
		Href:        href,
		MediaType:   mediaType,
		ExtraFields: make(PropertyBag),
	}
}

// toJSONMap flattens the asset and its extra fields into one object.
// Extension fields are flattened alongside href/type rather than nested.
func (a *Asset) toJSONMap() map[string]any {
	m := map[string]any{"href": a.Href}
	if a.MediaType != "" {
		m["type"] = a.MediaType
	}
	if a.Title != "" {
		m["title"] = a.Title
	}
	if len(a.Roles) > 0 {
		m["roles"] = a.Roles
	}
	for k, v := range a.ExtraFields {
		m[k] = v
	}
	return m
}
