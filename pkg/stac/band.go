package stac

// Band describes one spectral band of an instrument, mirroring the
// Electro-Optical extension's band object. Wavelengths are micrometers.
type Band struct {
	Name             string  `json:"name"`
	CommonName       string  `json:"common_name,omitempty"`
	Description      string  `json:"description,omitempty"`
	CenterWavelength float64 `json:"center_wavelength,omitempty"`
	FullWidthHalfMax float64 `json:"full_width_half_max,omitempty"`
}

// Electro-Optical extension identity and summary keys.
const (
	EOSchemaURI = "https://stac-extensions.github.io/eo/v1.1.0/schema.json"
	EOBandsProp = "eo:bands"
)

// Projection extension identity and summary keys.
const (
	ProjectionSchemaURI = "https://stac-extensions.github.io/projection/v1.1.0/schema.json"
	ProjectionEPSGProp  = "proj:epsg"
)

// ApplyEOBands records the band summary on a collection and declares the
// Electro-Optical extension on it.
func ApplyEOBands(c *Collection, bands []Band) {
	c.AddExtension(EOSchemaURI)
	SetProperty(c.Summaries, EOBandsProp, bands)
}

// ApplyProjection records the coordinate reference system code on a
// collection and declares the Projection extension on it. Planetary
// bodies use IAU codes rather than EPSG integers, so the code is kept
// as a string.
func ApplyProjection(c *Collection, code string) {
	c.AddExtension(ProjectionSchemaURI)
	SetProperty(c.Summaries, ProjectionEPSGProp, code)
}
