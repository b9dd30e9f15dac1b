package domain

import (
	"fmt"
	"strings"
	"time"
)

// Convention names the object key layout a descriptor was decoded from.
type Convention string

const (
	ConventionForecast         Convention = "forecast"
	ConventionSteppedAncillary Convention = "stepped-ancillary"
	ConventionStaticAncillary  Convention = "static-ancillary"
)

// FileFormat is the container format of a forecast object.
type FileFormat string

const (
	FormatNetCDF  FileFormat = "netcdf"
	FormatGRIB2   FileFormat = "grib2"
	FormatUnknown FileFormat = "unknown"
)

// MediaType returns the IANA media type for the format.
func (f FileFormat) MediaType() string {
	switch f {
	case FormatNetCDF:
		return "application/netcdf"
	case FormatGRIB2:
		return "application/wmo-GRIB2"
	default:
		return "application/octet-stream"
	}
}

func formatFromExtension(ext string) FileFormat {
	switch ext {
	case "nc", "nc4":
		return FormatNetCDF
	case "grib2", "grb2":
		return FormatGRIB2
	default:
		return FormatUnknown
	}
}

// Level is the vertical position of a variable. Value is empty when the file
// holds every level of the given type (e.g. all pressure levels).
type Level struct {
	Type  LevelType `json:"type"`
	Value string    `json:"value,omitempty"`
}

// String renders the level as a phrase that follows a quantity name.
func (l Level) String() string {
	switch l.Type {
	case LevelHeight:
		if l.Value == "" {
			return "on height levels"
		}
		return "at " + l.Value
	case LevelPressure:
		if l.Value == "" {
			return "on pressure levels"
		}
		return "at " + l.Value
	case LevelSurface:
		return "at surface"
	case LevelMeanSeaLevel:
		return "at mean sea level"
	case LevelTropopause:
		return "at tropopause"
	default:
		return ""
	}
}

// ForecastDescriptor is the decoded form of one forecast object key. It is
// returned by value and never modified after decoding.
type ForecastDescriptor struct {
	Href       string     `json:"href"`
	Convention Convention `json:"convention"`
	Model      Model      `json:"model"`
	Theme      Theme      `json:"theme"`

	ReferenceTime time.Time     `json:"reference_time"`
	ForecastStep  time.Duration `json:"forecast_step"`

	// Parameter is the raw parameter segment, e.g. "temperature_at_screen_level_max-PT01H".
	Parameter string `json:"parameter,omitempty"`
	// Variable is the variable table key, the parameter without its period.
	// Empty for ancillary files.
	Variable  string `json:"variable,omitempty"`
	Quantity  string `json:"quantity,omitempty"`
	Level     *Level `json:"level,omitempty"`
	Statistic string `json:"statistic,omitempty"` // "max", "min" or "mean"
	Period    string `json:"period,omitempty"`    // ISO 8601, e.g. "PT01H"

	Extension     string     `json:"extension"`
	Format        FileFormat `json:"format"`
	AncillaryName string     `json:"ancillary_name,omitempty"`
}

// ValidTime is the time the forecast applies to.
func (d ForecastDescriptor) ValidTime() time.Time {
	return d.ReferenceTime.Add(d.ForecastStep)
}

// HasVariable reports whether the object carries a forecast variable.
func (d ForecastDescriptor) HasVariable() bool {
	return d.Variable != ""
}

// Horizon formats the forecast step the way Met Office object keys do.
func (d ForecastDescriptor) Horizon() string {
	return FormatHorizon(d.ForecastStep)
}

// AssetKey names the asset within its item. Stepped ancillaries carry no
// name, so their key is "ancillary-<ext>" to keep one asset per file format.
func (d ForecastDescriptor) AssetKey() string {
	switch {
	case d.Parameter != "":
		return d.Parameter
	case d.AncillaryName != "":
		return d.AncillaryName
	case d.Extension != "":
		return "ancillary-" + strings.ToLower(d.Extension)
	default:
		return "ancillary"
	}
}

// FormatHorizon renders a step as "PTnnnnHmmM", e.g. 3h -> "PT0003H00M".
func FormatHorizon(step time.Duration) string {
	h := int(step / time.Hour)
	m := int((step % time.Hour) / time.Minute)
	return fmt.Sprintf("PT%04dH%02dM", h, m)
}

// FormatReferenceTime renders a run time as it appears in object keys.
func FormatReferenceTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseReferenceTime parses a run time written as in object keys,
// e.g. "20251121T0300Z".
func ParseReferenceTime(s string) (time.Time, error) {
	return parseTimestamp(s)
}

// Prefix returns the key prefix under which a model run's objects live.
func Prefix(def ModelDefinition, reference time.Time) string {
	return def.Token + "/" + FormatReferenceTime(reference) + "/"
}
