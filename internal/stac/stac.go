// Package stac holds the SpatioTemporal Asset Catalog documents produced for
// Met Office forecast runs and builds them from domain metadata.
package stac

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	Version = "1.0.0"

	ForecastExtension   = "https://stac-extensions.github.io/forecast/v0.2.0/schema.json"
	ProjectionExtension = "https://stac-extensions.github.io/projection/v2.0.0/schema.json"
	DatacubeExtension   = "https://stac-extensions.github.io/datacube/v2.2.0/schema.json"
	FileExtension       = "https://stac-extensions.github.io/file/v2.1.0/schema.json"

	License    = "CC-BY-SA-4.0"
	licenseURL = "https://creativecommons.org/licenses/by-sa/4.0/"
)

// Link is a STAC link object.
type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// Asset is one forecast object within an item.
type Asset struct {
	Href        string   `json:"href"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	Roles       []string `json:"roles,omitempty"`

	// ForecastVariable is the CF standard name when one is known, otherwise
	// the Met Office parameter name.
	ForecastVariable string `json:"forecast:variable,omitempty"`
	ForecastDuration string `json:"forecast:duration,omitempty"`

	Updated  *time.Time `json:"updated,omitempty"`
	FileSize int64      `json:"file:size,omitempty"`
}

// ItemProperties carries the forecast and projection fields of an item.
type ItemProperties struct {
	Datetime time.Time `json:"datetime"`
	Created  time.Time `json:"created"`

	ForecastReferenceDatetime time.Time `json:"forecast:reference_datetime"`
	ForecastHorizon           string    `json:"forecast:horizon"`

	// ProjCode is null for grids without a registered CRS code.
	ProjCode     *string           `json:"proj:code"`
	ProjWKT2     string            `json:"proj:wkt2,omitempty"`
	ProjBBox     []float64         `json:"proj:bbox,omitempty"`
	ProjShape    []int             `json:"proj:shape,omitempty"`
	ProjGeometry *geojson.Geometry `json:"proj:geometry,omitempty"`
}

// Item is a STAC Feature grouping every object of one model run step.
type Item struct {
	Type           string            `json:"type"`
	StacVersion    string            `json:"stac_version"`
	StacExtensions []string          `json:"stac_extensions"`
	ID             string            `json:"id"`
	Collection     string            `json:"collection,omitempty"`
	Geometry       *geojson.Geometry `json:"geometry"`
	BBox           []float64         `json:"bbox"`
	Properties     ItemProperties    `json:"properties"`
	Links          []Link            `json:"links"`
	Assets         map[string]Asset  `json:"assets"`
}

// Provider is an organization that produces or hosts the data.
type Provider struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	URL         string   `json:"url,omitempty"`
}

type SpatialExtent struct {
	BBox [][]float64 `json:"bbox"`
}

// TemporalExtent intervals use nil for open ends.
type TemporalExtent struct {
	Interval [][2]*time.Time `json:"interval"`
}

type Extent struct {
	Spatial  SpatialExtent  `json:"spatial"`
	Temporal TemporalExtent `json:"temporal"`
}

// CubeDimension is a datacube extension dimension object.
type CubeDimension struct {
	Type            string `json:"type"`
	Axis            string `json:"axis,omitempty"`
	Description     string `json:"description,omitempty"`
	Extent          []any  `json:"extent,omitempty"`
	ReferenceSystem any    `json:"reference_system,omitempty"`
	Unit            string `json:"unit,omitempty"`
}

// CubeVariable is a datacube extension variable object.
type CubeVariable struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Dimensions  []string `json:"dimensions"`
	Unit        string   `json:"unit,omitempty"`
}

// Collection describes one model/theme pair.
type Collection struct {
	Type           string                   `json:"type"`
	StacVersion    string                   `json:"stac_version"`
	StacExtensions []string                 `json:"stac_extensions"`
	ID             string                   `json:"id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description"`
	Keywords       []string                 `json:"keywords,omitempty"`
	License        string                   `json:"license"`
	Providers      []Provider               `json:"providers,omitempty"`
	Extent         Extent                   `json:"extent"`
	Summaries      map[string]any           `json:"summaries,omitempty"`
	CubeDimensions map[string]CubeDimension `json:"cube:dimensions,omitempty"`
	CubeVariables  map[string]CubeVariable  `json:"cube:variables,omitempty"`
	Links          []Link                   `json:"links"`
}

func bbox(b orb.Bound) []float64 {
	return []float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()}
}

func geometry(p orb.Polygon) *geojson.Geometry {
	if len(p) == 0 {
		return nil
	}
	return geojson.NewGeometry(p)
}
