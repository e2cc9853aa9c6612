// Package instrument holds static NOMAD instrument metadata: the three
// spectral channels and their band descriptions.
package instrument

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/s-boomi/nomad-stac-converter/pkg/stac"
)

// ErrUnknownBand is returned for band selectors outside so/lno/uvis.
var ErrUnknownBand = errors.New("unknown NOMAD band")

// Band selector names accepted on the command line.
const (
	BandSO   = "so"
	BandLNO  = "lno"
	BandUVIS = "uvis"
)

// bands maps selector names to the channel descriptions. SO and LNO are
// infrared echelle channels (micrometers); UVIS wavelengths are given in
// nanometers and stored here converted to micrometers.
var bands = map[string]stac.Band{
	BandSO: {
		Name:             "SO",
		CommonName:       BandSO,
		Description:      "Solar Occultation, 2.2-4.3 um",
		CenterWavelength: (4.3 + 2.2) / 2,
		FullWidthHalfMax: 4.3 - 2.2,
	},
	BandLNO: {
		Name:             "LNO",
		CommonName:       BandLNO,
		Description:      "Limb, Nadir and Occultation, 2.2-3.8 um",
		CenterWavelength: (3.8 + 2.2) / 2,
		FullWidthHalfMax: 3.8 - 2.2,
	},
	BandUVIS: {
		Name:             "UVIS",
		CommonName:       BandUVIS,
		Description:      "Ultraviolet-VISible, 200-650 nm",
		CenterWavelength: ((650 + 200) / 2) * 1e-3,
		FullWidthHalfMax: (650 - 200) * 1e-3,
	},
}

// Band returns the description for a selector name, case-insensitively.
func Band(name string) (stac.Band, error) {
	b, ok := bands[strings.ToLower(name)]
	if !ok {
		return stac.Band{}, errors.Wrapf(ErrUnknownBand, "%q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return b, nil
}

// Bands resolves a list of selector names, failing on the first unknown
// one.
func Bands(names []string) ([]stac.Band, error) {
	out := make([]stac.Band, 0, len(names))
	for _, name := range names {
		b, err := Band(name)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Names returns the valid band selectors in sorted order.
func Names() []string {
	names := make([]string, 0, len(bands))
	for name := range bands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
