package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

const ancillaryTitle = "Ancillary data"

// AssetMetadata is the descriptive field set for one object.
type AssetMetadata struct {
	Key          string
	Href         string
	Title        string
	Description  string
	Roles        []string
	MediaType    string
	Unit         string
	StandardName string
	Variable     string
	Period       string
	Level        *Level

	// Warnings holds non-fatal findings such as *UnknownVariableWarning.
	Warnings []error
}

// Projection is the native coordinate reference system of a model grid.
type Projection struct {
	Code     string // empty when the CRS has no registered code
	WKT2     string
	PROJ     string
	BBox     orb.Bound
	Geometry orb.Polygon
	Shape    [2]int
}

// VariableSummary describes one variable of a collection.
type VariableSummary struct {
	ID           string
	Description  string
	Unit         string
	StandardName string
	LevelType    LevelType
}

// CollectionMetadata is the descriptive field set for a model/theme collection.
type CollectionMetadata struct {
	ID          string
	Title       string
	Description string
	Model       Model
	Theme       Theme
	Resolution  string // nominal grid spacing, e.g. "2km"
	Keywords    []string

	BBox       orb.Bound
	Footprint  orb.Polygon
	Projection Projection

	RunHours   []int
	MaxHorizon time.Duration
	Cadence    string

	Variables []VariableSummary
}

// ItemMetadata is the descriptive field set shared by every asset of an item.
type ItemMetadata struct {
	ID            string
	CollectionID  string
	Model         Model
	Theme         Theme
	ReferenceTime time.Time
	ValidTime     time.Time
	ForecastStep  time.Duration
	Horizon       string

	BBox       orb.Bound
	Footprint  orb.Polygon
	Projection Projection
}

// Assembler maps descriptors to catalog metadata using static tables. It is
// safe for concurrent use.
type Assembler struct {
	tables *Tables
}

// NewAssembler creates an Assembler over the given tables.
func NewAssembler(tables *Tables) *Assembler {
	return &Assembler{tables: tables}
}

var defaultAssembler = NewAssembler(defaultTables)

// Describe assembles asset metadata with the default tables.
func Describe(d ForecastDescriptor) (AssetMetadata, error) {
	return defaultAssembler.Describe(d)
}

// DescribeCollection assembles collection metadata with the default tables.
func DescribeCollection(model Model, theme Theme) (CollectionMetadata, error) {
	return defaultAssembler.DescribeCollection(model, theme)
}

// DescribeItem assembles item metadata with the default tables.
func DescribeItem(d ForecastDescriptor) (ItemMetadata, error) {
	return defaultAssembler.DescribeItem(d)
}

// Describe builds the title, description, roles and media type of the
// object behind d. Unknown variables degrade to a generic description and a
// warning; a missing or incomplete model or theme definition is a
// *ConfigurationGap.
func (a *Assembler) Describe(d ForecastDescriptor) (AssetMetadata, error) {
	def, _, err := a.definitions(d.Model, d.Theme)
	if err != nil {
		return AssetMetadata{}, err
	}

	meta := AssetMetadata{
		Key:       d.AssetKey(),
		Href:      d.Href,
		MediaType: d.Format.MediaType(),
		Variable:  d.Variable,
		Period:    d.Period,
		Level:     d.Level,
	}

	if !d.HasVariable() {
		meta.Title = ancillaryTitle
		meta.Roles = []string{"ancillary"}
		meta.Description = fmt.Sprintf("Ancillary file for the %s.", def.DisplayName)
		if v, ok := a.tables.Variable(d.AncillaryName); ok {
			meta.Description = v.Description
			meta.Unit = v.Unit
			meta.StandardName = v.StandardName
		}
		return meta, nil
	}

	meta.Title = title(d)
	meta.Roles = []string{"data"}

	v, known := a.tables.Variable(d.Variable)
	if !known {
		meta.Warnings = append(meta.Warnings, &UnknownVariableWarning{Model: d.Model, Variable: d.Variable})
		meta.Description = describeUnknown(def, d)
		return meta, nil
	}

	meta.Unit = v.Unit
	meta.StandardName = v.StandardName
	meta.Description = describeKnown(v, d)
	return meta, nil
}

// DescribeCollection builds the collection fields of a model/theme pair,
// including its spatial extent and native projection.
func (a *Assembler) DescribeCollection(model Model, theme Theme) (CollectionMetadata, error) {
	def, th, err := a.definitions(model, theme)
	if err != nil {
		return CollectionMetadata{}, err
	}

	ids := th.Variables[model]
	if len(ids) == 0 {
		return CollectionMetadata{}, &ConfigurationGap{Model: model, Theme: theme, Field: "variables"}
	}
	vars := make([]VariableSummary, 0, len(ids))
	for _, id := range ids {
		v, ok := a.tables.Variable(id)
		if !ok {
			return CollectionMetadata{}, &ConfigurationGap{Model: model, Theme: theme, Field: "variable " + id}
		}
		vars = append(vars, VariableSummary{
			ID:           v.ID,
			Description:  v.Description,
			Unit:         v.Unit,
			StandardName: v.StandardName,
			LevelType:    v.LevelType,
		})
	}

	return CollectionMetadata{
		ID:          CollectionID(model, theme),
		Title:       fmt.Sprintf("%s: %s", def.DisplayName, th.Title),
		Description: strings.Join([]string{def.Description, th.Description, def.Cadence()}, " "),
		Model:       model,
		Theme:       theme,
		Resolution:  def.Resolution,
		Keywords:    []string{"Met Office", "forecast", "deterministic", "weather", string(model), string(theme), def.Resolution},
		BBox:        def.Grid.BBox,
		Footprint:   def.Grid.Footprint,
		Projection:  projection(def.Grid),
		RunHours:    slices.Clone(def.RunHours),
		MaxHorizon:  def.MaxHorizon,
		Cadence:     def.Cadence(),
		Variables:   vars,
	}, nil
}

// DescribeItem builds the fields shared by every asset of the item d belongs to.
func (a *Assembler) DescribeItem(d ForecastDescriptor) (ItemMetadata, error) {
	def, _, err := a.definitions(d.Model, d.Theme)
	if err != nil {
		return ItemMetadata{}, err
	}
	return ItemMetadata{
		ID:            ItemID(d.Model, d.Theme, d.ReferenceTime, d.ForecastStep),
		CollectionID:  CollectionID(d.Model, d.Theme),
		Model:         d.Model,
		Theme:         d.Theme,
		ReferenceTime: d.ReferenceTime,
		ValidTime:     d.ValidTime(),
		ForecastStep:  d.ForecastStep,
		Horizon:       d.Horizon(),
		BBox:          def.Grid.BBox,
		Footprint:     def.Grid.Footprint,
		Projection:    projection(def.Grid),
	}, nil
}

func (a *Assembler) definitions(model Model, theme Theme) (ModelDefinition, ThemeDefinition, error) {
	def, ok := a.tables.Model(model)
	if !ok {
		return ModelDefinition{}, ThemeDefinition{}, &ConfigurationGap{Model: model, Field: "model definition"}
	}
	if err := checkModel(def); err != nil {
		return ModelDefinition{}, ThemeDefinition{}, err
	}
	th, ok := a.tables.Theme(theme)
	if !ok {
		return ModelDefinition{}, ThemeDefinition{}, &ConfigurationGap{Model: model, Theme: theme, Field: "theme definition"}
	}
	if th.Title == "" {
		return ModelDefinition{}, ThemeDefinition{}, &ConfigurationGap{Model: model, Theme: theme, Field: "theme title"}
	}
	return def, th, nil
}

// checkModel rejects definitions that would produce incomplete extents or
// projection metadata.
func checkModel(def ModelDefinition) error {
	missing := func(field string) error {
		return &ConfigurationGap{Model: def.Model, Field: field}
	}
	g := def.Grid
	switch {
	case def.DisplayName == "":
		return missing("display name")
	case def.Description == "":
		return missing("description")
	case def.Resolution == "":
		return missing("resolution")
	case len(def.RunHours) == 0:
		return missing("run hours")
	case def.MaxHorizon <= 0:
		return missing("max horizon")
	case g.CRSCode == "" && g.WKT2 == "":
		return missing("grid CRS")
	case g.Shape[0] <= 0 || g.Shape[1] <= 0:
		return missing("grid shape")
	case g.BBox.IsEmpty():
		return missing("spatial extent")
	case len(g.Footprint) == 0:
		return missing("footprint")
	case g.ProjectedBBox.IsEmpty():
		return missing("projected extent")
	}
	return nil
}

func projection(g Grid) Projection {
	return Projection{
		Code:     g.CRSCode,
		WKT2:     g.WKT2,
		PROJ:     g.PROJ,
		BBox:     g.ProjectedBBox,
		Geometry: g.ProjectedGeometry,
		Shape:    g.Shape,
	}
}

// title composes e.g. "Maximum temperature at 1.5m over 1 hour".
func title(d ForecastDescriptor) string {
	quantity := strings.ReplaceAll(d.Quantity, "_", " ")
	var b strings.Builder
	switch d.Statistic {
	case "max":
		b.WriteString("Maximum " + quantity)
	case "min":
		b.WriteString("Minimum " + quantity)
	case "mean":
		b.WriteString("Mean " + quantity)
	default:
		b.WriteString(capitalize(quantity))
	}
	if d.Level != nil {
		if phrase := d.Level.String(); phrase != "" {
			b.WriteString(" " + phrase)
		}
	}
	if d.Period != "" {
		b.WriteString(" over " + humanPeriod(d.Period))
	}
	return b.String()
}

func describeKnown(v VariableDefinition, d ForecastDescriptor) string {
	parts := []string{v.Description, fmt.Sprintf("Unit: %s.", v.Unit)}
	if d.Level != nil {
		parts = append(parts, fmt.Sprintf("Level: %s.", d.Level))
	}
	if d.Period != "" {
		parts = append(parts, fmt.Sprintf("Period: %s.", humanPeriod(d.Period)))
	}
	return strings.Join(parts, " ")
}

func describeUnknown(def ModelDefinition, d ForecastDescriptor) string {
	desc := fmt.Sprintf("%s parameter %q.", def.DisplayName, d.Parameter)
	if d.Level != nil {
		desc += fmt.Sprintf(" Level: %s.", d.Level)
	}
	return desc
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// humanPeriod turns "PT03H" into "3 hours".
func humanPeriod(period string) string {
	digits := strings.TrimSuffix(strings.TrimPrefix(period, "PT"), "H")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return period
	}
	if n == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", n)
}
