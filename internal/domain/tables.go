package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// ukWKT2 is the UK 2km Lambert Azimuthal Equal Area grid on the Met Office
// spherical earth (radius 6371229m). It has no EPSG code.
const ukWKT2 = `PROJCRS["Met Office UK 2km Lambert Azimuthal Equal Area",BASEGEOGCRS["unknown",DATUM["unknown",ELLIPSOID["unknown",6371229,0,LENGTHUNIT["metre",1]]],PRIMEM["Greenwich",0,ANGLEUNIT["degree",0.0174532925199433]]],CONVERSION["unknown",METHOD["Lambert Azimuthal Equal Area",ID["EPSG",9820]],PARAMETER["Latitude of natural origin",54.9,ANGLEUNIT["degree",0.0174532925199433],ID["EPSG",8801]],PARAMETER["Longitude of natural origin",-2.5,ANGLEUNIT["degree",0.0174532925199433],ID["EPSG",8802]],PARAMETER["False easting",0,LENGTHUNIT["metre",1],ID["EPSG",8806]],PARAMETER["False northing",0,LENGTHUNIT["metre",1],ID["EPSG",8807]]],CS[Cartesian,2],AXIS["(E)",east,ORDER[1],LENGTHUNIT["metre",1]],AXIS["(N)",north,ORDER[2],LENGTHUNIT["metre",1]]]`

const globalWKT2 = `GEOGCRS["WGS 84",DATUM["World Geodetic System 1984",ELLIPSOID["WGS 84",6378137,298.257223563,LENGTHUNIT["metre",1]]],PRIMEM["Greenwich",0,ANGLEUNIT["degree",0.0174532925199433]],CS[ellipsoidal,2],AXIS["geodetic latitude (Lat)",north,ORDER[1],ANGLEUNIT["degree",0.0174532925199433]],AXIS["geodetic longitude (Lon)",east,ORDER[2],ANGLEUNIT["degree",0.0174532925199433]],ID["EPSG",4326]]`

var (
	globalBBox = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

	ukProjectedBBox = orb.Bound{Min: orb.Point{-1159000, -1037000}, Max: orb.Point{925000, 903000}}
	ukBBox          = orb.Bound{
		Min: orb.Point{-24.53378493833058, 44.50650694725796},
		Max: orb.Point{15.303254906837337, 63.01353038140843},
	}
)

// ukFootprint traces the edge of the UK grid in WGS84.
var ukFootprint = orb.Polygon{orb.Ring{
	{-24.53378493833058, 61.324488948957956},
	{-23.951373173315336, 60.493545743436769},
	{-23.390896432012816, 59.642901967655732},
	{-22.841332451643318, 58.755508388715391},
	{-22.31335960938301, 57.848390936796626},
	{-21.801567181007321, 56.912986826934201},
	{-21.305906343002128, 55.949248252727905},
	{-20.826259788283505, 54.957120844212596},
	{-20.358637436880535, 53.927882178398434},
	{-19.907071029893029, 52.870076921146051},
	{-19.47125743836736, 51.783621585087218},
	{-19.047676772929652, 50.659695923614777},
	{-18.636530266007984, 49.498124454681488},
	{-18.24076150704655, 48.307479067833967},
	{-17.85726509418285, 47.078823241490895},
	{-17.486059187992534, 45.811920231152506},
	{-17.127109019634418, 44.506506947257961},
	{-15.505827472321721, 44.731218368449781},
	{-13.885825860364733, 44.928314140866874},
	{-12.243428372623802, 45.100560386215285},
	{-10.605011280169697, 45.24509473459603},
	{-8.946742890035738, 45.36393890630027},
	{-7.295351722195853, 45.455113283820126},
	{-5.639648518520391, 45.519498986208873},
	{-3.981107744788353, 45.557004758650798},
	{-2.321224400757482, 45.567577173910777},
	{-0.661503245561277, 45.55120113548314},
	{0.996552142145287, 45.507900020207771},
	{2.65145028401201, 45.43773545751332},
	{4.301722517152545, 45.340806749681384},
	{5.945933326513551, 45.217249944602258},
	{7.582690128393277, 45.067236579159307},
	{9.223137694420183, 44.889515090803961},
	{9.516538867106773, 46.214340147390146},
	{9.82044599417415, 47.501001440503842},
	{10.132650886942383, 48.74091702446794},
	{10.457660860756802, 49.952037057383372},
	{10.79332144679133, 51.125708654880285},
	{11.13958576340595, 52.262120651749875},
	{11.499287378552452, 53.370228452045964},
	{11.869671426326294, 54.441366044050284},
	{12.253831966406114, 55.484426293773282},
	{12.648531526077839, 56.490743551039934},
	{13.05713338849257, 57.469156234231541},
	{13.475831953348639, 58.411006880996538},
	{13.912511851065867, 59.33378430533233},
	{14.35898320017346, 60.220118303314543},
	{14.824001969831695, 61.087422072202891},
	{15.303254906837337, 61.927027387435338},
	{12.871655946289337, 62.209277200563875},
	{10.400470016364583, 62.45057399884363},
	{7.914310140853996, 62.648572133129136},
	{5.400279783166546, 62.804447665893385},
	{2.864695576108446, 62.91753580170105},
	{0.333925859864863, 62.986973455823794},
	{-2.224322992711248, 63.01353038140843},
	{-4.763674234671517, 62.996681924309321},
	{-7.29679693171977, 62.936872788865081},
	{-9.836285590351739, 62.833403028602532},
	{-12.355687094751509, 62.687020652261616},
	{-14.848587701338502, 62.498353138924266},
	{-17.309046001669611, 62.268189153976081},
	{-19.750152039231516, 61.995224171054332},
	{-22.16609393016936, 61.679609773846522},
	{-24.53378493833058, 61.324488948957956},
}}

var modelDefinitions = []ModelDefinition{
	{
		Model:       ModelGlobal,
		Token:       "global-deterministic-10km",
		DisplayName: "Met Office Global Deterministic 10km",
		Description: "Deterministic forecasts from the Met Office global configuration of the Unified Model, on a 10km latitude/longitude grid covering the whole globe.",
		Resolution:  "10km",
		RunHours:    []int{0, 6, 12, 18},
		MaxHorizon:  168 * time.Hour,
		Grid: Grid{
			CRSCode:           "EPSG:4326",
			WKT2:              globalWKT2,
			PROJ:              "+proj=longlat +datum=WGS84 +no_defs",
			ProjectedBBox:     globalBBox,
			ProjectedGeometry: globalBBox.ToPolygon(),
			Shape:             [2]int{1920, 2560},
			BBox:              globalBBox,
			Footprint:         globalBBox.ToPolygon(),
		},
	},
	{
		Model:       ModelUK,
		Token:       "uk-deterministic-2km",
		DisplayName: "Met Office UK Deterministic 2km",
		Description: "Deterministic forecasts from the Met Office UK configuration of the Unified Model, on a 2km Lambert Azimuthal Equal Area grid covering the UK and Ireland.",
		Resolution:  "2km",
		RunHours:    []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23},
		MaxHorizon:  120 * time.Hour,
		Grid: Grid{
			WKT2:              ukWKT2,
			PROJ:              "+proj=laea +lat_0=54.9 +lon_0=-2.5 +x_0=0 +y_0=0 +R=6371229 +units=m +no_defs",
			ProjectedBBox:     ukProjectedBBox,
			ProjectedGeometry: ukProjectedBBox.ToPolygon(),
			Shape:             [2]int{970, 1042},
			BBox:              ukBBox,
			Footprint:         ukFootprint,
		},
	},
}

var themeDefinitions = []ThemeDefinition{
	{
		Theme:       ThemeSurface,
		Title:       "Surface",
		Description: "Single-level fields at or near the surface, including screen-level (1.5m) and 10m diagnostics, cloud, precipitation, radiation and convection.",
		LevelType:   LevelSurface,
		Variables: map[Model][]string{
			ModelGlobal: variableIDs(concatVariables(sharedSurfaceVariables, globalOnlySurfaceVariables)),
			ModelUK:     variableIDs(concatVariables(sharedSurfaceVariables, ukOnlySurfaceVariables)),
		},
	},
	{
		Theme:       ThemePressureLevel,
		Title:       "Pressure levels",
		Description: "Fields on standard pressure levels.",
		LevelType:   LevelPressure,
		Variables: map[Model][]string{
			ModelGlobal: variableIDs(concatVariables(sharedPressureVariables, globalOnlyPressureVariables)),
			ModelUK:     variableIDs(sharedPressureVariables),
		},
	},
	{
		Theme:       ThemeHeightLevel,
		Title:       "Height levels",
		Description: "Fields on fixed heights above ground level.",
		LevelType:   LevelHeight,
		Variables: map[Model][]string{
			ModelGlobal: variableIDs(sharedHeightVariables),
			ModelUK:     variableIDs(concatVariables(sharedHeightVariables, ukOnlyHeightVariables)),
		},
	},
}

var defaultTables = NewTables(
	modelDefinitions,
	themeDefinitions,
	concatVariables(
		sharedPressureVariables,
		sharedHeightVariables,
		sharedSurfaceVariables,
		globalOnlyPressureVariables,
		globalOnlySurfaceVariables,
		ukOnlyHeightVariables,
		ukOnlySurfaceVariables,
	),
)

// DefaultTables returns the compiled-in Met Office model, theme and variable
// tables. The returned value is shared and read-only.
func DefaultTables() *Tables {
	return defaultTables
}

// Tables indexes model, theme and variable definitions. A Tables value is
// never modified after NewTables returns, so it is safe for concurrent use.
type Tables struct {
	models    map[Model]ModelDefinition
	tokens    map[string]Model
	order     []Model
	themes    map[Theme]ThemeDefinition
	variables map[string]VariableDefinition
}

// NewTables builds lookup tables from definition lists. Later entries with a
// duplicate key replace earlier ones.
func NewTables(models []ModelDefinition, themes []ThemeDefinition, variables []VariableDefinition) *Tables {
	t := &Tables{
		models:    make(map[Model]ModelDefinition, len(models)),
		tokens:    make(map[string]Model, len(models)),
		themes:    make(map[Theme]ThemeDefinition, len(themes)),
		variables: make(map[string]VariableDefinition, len(variables)),
	}
	for _, m := range models {
		if _, ok := t.models[m.Model]; !ok {
			t.order = append(t.order, m.Model)
		}
		t.models[m.Model] = m
		t.tokens[m.Token] = m.Model
	}
	for _, th := range themes {
		t.themes[th.Theme] = th
	}
	for _, v := range variables {
		t.variables[v.ID] = v
	}
	return t
}

// Model looks up a model definition.
func (t *Tables) Model(m Model) (ModelDefinition, bool) {
	def, ok := t.models[m]
	return def, ok
}

// ModelByToken resolves the collection segment of an object key.
func (t *Tables) ModelByToken(token string) (ModelDefinition, bool) {
	m, ok := t.tokens[token]
	if !ok {
		return ModelDefinition{}, false
	}
	return t.Model(m)
}

// Models lists the known models in definition order.
func (t *Tables) Models() []Model {
	return append([]Model(nil), t.order...)
}

// Theme looks up a theme definition.
func (t *Tables) Theme(th Theme) (ThemeDefinition, bool) {
	def, ok := t.themes[th]
	return def, ok
}

// Variable looks up a variable definition by ID.
func (t *Tables) Variable(id string) (VariableDefinition, bool) {
	def, ok := t.variables[id]
	return def, ok
}
