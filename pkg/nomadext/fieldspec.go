package nomadext

// Extension identity. The schema URI is what validators of the generated
// catalog consume; the converter only guarantees the key namespace.
const (
	ExtensionName = "nomad"
	SchemaURI     = "https://stac-extensions.github.io/nomad/v1.0.0/schema.json"
	Prefix        = "nomad:"
)

// Property keys. Consumers expect these exact keys in serialized items.
const (
	TargetsProp     = Prefix + "target"
	BandProp        = Prefix + "band"
	LocalTimeProp   = Prefix + "local_time"
	TargetClassProp = Prefix + "target_class"
)

// Field cardinalities.
const (
	CardinalityScalar = "scalar"
	CardinalityList   = "list"
)

// Field value types.
const (
	ValueTypeString      = "string"
	ValueTypeTargetClass = "target_class"
)

// FieldSpec describes one extension field: its stored key, whether a
// valid record requires it, and its shape. The table is defined once and
// shared by every wrapped item.
type FieldSpec struct {
	Name        string
	Required    bool
	Cardinality string
	ValueType   string
}

// Fields is the extension's field table. "Required" means required for a
// valid record; the accessors still allow clearing a required field, and
// reads after that fail.
var Fields = []FieldSpec{
	{Name: TargetsProp, Required: false, Cardinality: CardinalityList, ValueType: ValueTypeString},
	{Name: BandProp, Required: true, Cardinality: CardinalityScalar, ValueType: ValueTypeString},
	{Name: LocalTimeProp, Required: false, Cardinality: CardinalityScalar, ValueType: ValueTypeString},
	{Name: TargetClassProp, Required: false, Cardinality: CardinalityScalar, ValueType: ValueTypeTargetClass},
}

// TargetClass identifies the kind of observed body, following the IVOA
// EPN-TAP target description parameter.
type TargetClass string

// Accepted target classes.
const (
	TargetClassAsteroid             TargetClass = "asteroid"
	TargetClassDwarfPlanet          TargetClass = "dwarf_planet"
	TargetClassPlanet               TargetClass = "planet"
	TargetClassSatellite            TargetClass = "satellite"
	TargetClassComet                TargetClass = "comet"
	TargetClassExoplanet            TargetClass = "exoplanet"
	TargetClassInterplanetaryMedium TargetClass = "interplanetary_medium"
	TargetClassSample               TargetClass = "sample"
	TargetClassSky                  TargetClass = "sky"
	TargetClassSpacecraft           TargetClass = "spacecraft"
	TargetClassSpacejunk            TargetClass = "spacejunk"
	TargetClassStar                 TargetClass = "star"
	TargetClassCalibration          TargetClass = "calibration"
)

// validTargetClasses is the set of recognized target classes.
var validTargetClasses = map[TargetClass]bool{
	TargetClassAsteroid:             true,
	TargetClassDwarfPlanet:          true,
	TargetClassPlanet:               true,
	TargetClassSatellite:            true,
	TargetClassComet:                true,
	TargetClassExoplanet:            true,
	TargetClassInterplanetaryMedium: true,
	TargetClassSpacecraft:           true,
	TargetClassSample:               true,
	TargetClassSky:                  true,
	TargetClassSpacejunk:            true,
	TargetClassStar:                 true,
	TargetClassCalibration:          true,
}

// IsValid reports whether tc is a recognized target class.
func (tc TargetClass) IsValid() bool {
	return validTargetClasses[tc]
}
