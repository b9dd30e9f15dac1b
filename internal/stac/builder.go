package stac

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/met-office-stac/internal/domain"
)

// ErrNoAssets is returned when an item would have no assets.
var ErrNoAssets = errors.New("no assets found")

// Source is a decoded object key together with its listing metadata.
type Source struct {
	Descriptor   domain.ForecastDescriptor
	Size         int64
	LastModified time.Time
}

// Builder turns assembled metadata into STAC documents. It is safe for
// concurrent use.
type Builder struct {
	assembler *domain.Assembler
	// clock stamps the created property of items.
	clock clockwork.Clock
}

// NewBuilder creates a Builder. A nil assembler uses the default tables and a
// nil clock uses the real clock.
func NewBuilder(assembler *domain.Assembler, clock clockwork.Clock) *Builder {
	if assembler == nil {
		assembler = domain.NewAssembler(domain.DefaultTables())
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Builder{assembler: assembler, clock: clock}
}

// Item builds one item from sources that share an item ID. Non-fatal
// findings such as unknown variables are returned alongside the item.
func (b *Builder) Item(sources []Source) (Item, []error, error) {
	if len(sources) == 0 {
		return Item{}, nil, ErrNoAssets
	}

	meta, err := b.assembler.DescribeItem(sources[0].Descriptor)
	if err != nil {
		return Item{}, nil, fmt.Errorf("describe item: %w", err)
	}

	var warnings []error
	assets := make(map[string]Asset, len(sources))
	for _, src := range sources {
		d := src.Descriptor
		if id := domain.ItemID(d.Model, d.Theme, d.ReferenceTime, d.ForecastStep); id != meta.ID {
			return Item{}, nil, fmt.Errorf("asset %s belongs to item %s, not %s", d.Href, id, meta.ID)
		}

		am, err := b.assembler.Describe(d)
		if err != nil {
			return Item{}, nil, fmt.Errorf("describe asset %s: %w", d.Href, err)
		}
		warnings = append(warnings, am.Warnings...)

		// Keep the newest object when two keys map to the same asset.
		if prev, ok := assets[am.Key]; ok && prev.Updated != nil && !src.LastModified.After(*prev.Updated) {
			continue
		}
		assets[am.Key] = asset(am, src)
	}

	props := ItemProperties{
		Datetime:                  meta.ValidTime,
		Created:                   b.clock.Now().UTC(),
		ForecastReferenceDatetime: meta.ReferenceTime,
		ForecastHorizon:           meta.Horizon,
		ProjCode:                  projCode(meta.Projection),
		ProjWKT2:                  meta.Projection.WKT2,
		ProjBBox:                  bbox(meta.Projection.BBox),
		ProjShape:                 meta.Projection.Shape[:],
		ProjGeometry:              geometry(meta.Projection.Geometry),
	}

	return Item{
		Type:           "Feature",
		StacVersion:    Version,
		StacExtensions: []string{ForecastExtension, ProjectionExtension, FileExtension},
		ID:             meta.ID,
		Collection:     meta.CollectionID,
		Geometry:       geometry(meta.Footprint),
		BBox:           bbox(meta.BBox),
		Properties:     props,
		Links: []Link{
			{Rel: "collection", Href: "./collection.json", Type: "application/json"},
			{Rel: "parent", Href: "./collection.json", Type: "application/json"},
		},
		Assets: assets,
	}, warnings, nil
}

func asset(am domain.AssetMetadata, src Source) Asset {
	a := Asset{
		Href:             am.Href,
		Title:            am.Title,
		Description:      am.Description,
		Type:             am.MediaType,
		Roles:            am.Roles,
		ForecastVariable: am.StandardName,
		ForecastDuration: am.Period,
		FileSize:         src.Size,
	}
	if a.ForecastVariable == "" {
		a.ForecastVariable = am.Variable
	}
	if !src.LastModified.IsZero() {
		updated := src.LastModified.UTC()
		a.Updated = &updated
	}
	return a
}

func projCode(p domain.Projection) *string {
	if p.Code == "" {
		return nil
	}
	code := p.Code
	return &code
}

// Collection builds the collection document for a model and theme.
func (b *Builder) Collection(model domain.Model, theme domain.Theme) (Collection, error) {
	meta, err := b.assembler.DescribeCollection(model, theme)
	if err != nil {
		return Collection{}, fmt.Errorf("describe collection: %w", err)
	}

	dims := dimensions(meta)
	dimNames := make([]string, 0, len(dims))
	for _, name := range []string{"time", "z", "y", "x"} {
		if _, ok := dims[name]; ok {
			dimNames = append(dimNames, name)
		}
	}

	vars := make(map[string]CubeVariable, len(meta.Variables))
	for _, v := range meta.Variables {
		vars[v.ID] = CubeVariable{
			Type:        "data",
			Description: v.Description,
			Dimensions:  dimNames,
			Unit:        v.Unit,
		}
	}

	return Collection{
		Type:           "Collection",
		StacVersion:    Version,
		StacExtensions: []string{ForecastExtension, ProjectionExtension, DatacubeExtension},
		ID:             meta.ID,
		Title:          meta.Title,
		Description:    meta.Description,
		Keywords:       meta.Keywords,
		License:        License,
		Providers: []Provider{
			{Name: "Met Office", Roles: []string{"producer", "licensor"}, URL: "https://www.metoffice.gov.uk"},
			{Name: "Amazon Web Services", Roles: []string{"host"}, URL: "https://aws.amazon.com/opendata/"},
		},
		Extent: Extent{
			Spatial:  SpatialExtent{BBox: [][]float64{bbox(meta.BBox)}},
			Temporal: TemporalExtent{Interval: [][2]*time.Time{{nil, nil}}},
		},
		Summaries: map[string]any{
			"proj:code":  []*string{projCode(meta.Projection)},
			"proj:shape": [][]int{meta.Projection.Shape[:]},
			"proj:bbox":  [][]float64{bbox(meta.Projection.BBox)},
		},
		CubeDimensions: dims,
		CubeVariables:  vars,
		Links: []Link{
			{Rel: "license", Href: licenseURL, Title: "Creative Commons Attribution-ShareAlike 4.0"},
		},
	}, nil
}

func dimensions(meta domain.CollectionMetadata) map[string]CubeDimension {
	var refSys any = meta.Projection.WKT2
	if meta.Projection.Code != "" {
		refSys = meta.Projection.Code
	}
	pb := meta.Projection.BBox

	xDesc, yDesc, unit := "Projection x coordinate", "Projection y coordinate", "m"
	if meta.Projection.Code == "EPSG:4326" {
		xDesc, yDesc, unit = "Longitude", "Latitude", "degree"
	}

	dims := map[string]CubeDimension{
		"time": {
			Type:        "temporal",
			Description: "Forecast valid time",
			Extent:      []any{nil, nil},
		},
		"x": {
			Type:            "spatial",
			Axis:            "x",
			Description:     xDesc,
			Extent:          []any{pb.Min.X(), pb.Max.X()},
			ReferenceSystem: refSys,
			Unit:            unit,
		},
		"y": {
			Type:            "spatial",
			Axis:            "y",
			Description:     yDesc,
			Extent:          []any{pb.Min.Y(), pb.Max.Y()},
			ReferenceSystem: refSys,
			Unit:            unit,
		},
	}

	switch meta.Theme {
	case domain.ThemePressureLevel:
		dims["z"] = CubeDimension{Type: "spatial", Axis: "z", Description: "Pressure level", Unit: "Pa"}
	case domain.ThemeHeightLevel:
		dims["z"] = CubeDimension{Type: "spatial", Axis: "z", Description: "Height above ground level", Unit: "m"}
	}
	return dims
}
