package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// Model identifies a Met Office deterministic forecast model.
type Model string

const (
	ModelGlobal Model = "global"
	ModelUK     Model = "uk"
)

// Theme groups related variables of a model into one collection.
type Theme string

const (
	ThemeSurface       Theme = "surface"
	ThemePressureLevel Theme = "pressure-level"
	ThemeHeightLevel   Theme = "height-level"
)

// LevelType is the kind of vertical coordinate a variable is reported on.
type LevelType string

const (
	LevelHeight       LevelType = "height"
	LevelPressure     LevelType = "pressure"
	LevelSurface      LevelType = "surface"
	LevelMeanSeaLevel LevelType = "mean_sea_level"
	LevelTropopause   LevelType = "tropopause"
)

// Grid holds the native grid and projection of a model.
type Grid struct {
	// CRSCode is an authority:code identifier such as "EPSG:4326". Empty when
	// the projection has no registered code, in which case WKT2 must be set.
	CRSCode string
	WKT2    string
	PROJ    string

	ProjectedBBox     orb.Bound
	ProjectedGeometry orb.Polygon
	Shape             [2]int // rows, columns

	// WGS84 extent of the grid.
	BBox      orb.Bound
	Footprint orb.Polygon
}

// ModelDefinition is the static description of one forecast model.
type ModelDefinition struct {
	Model       Model
	Token       string // collection segment of object keys, e.g. "uk-deterministic-2km"
	DisplayName string
	Description string
	Resolution  string
	RunHours    []int
	MaxHorizon  time.Duration
	Grid        Grid
}

// OnSchedule reports whether t is a nominal run time of the model.
func (m ModelDefinition) OnSchedule(t time.Time) bool {
	t = t.UTC()
	if t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	return slices.Contains(m.RunHours, t.Hour())
}

// RecentRuns returns up to n run times at or before now, newest first.
func (m ModelDefinition) RecentRuns(now time.Time, n int) []time.Time {
	if len(m.RunHours) == 0 || n <= 0 {
		return nil
	}
	runs := make([]time.Time, 0, n)
	t := now.UTC().Truncate(time.Hour)
	// Two days covers any schedule with at least one run per day.
	for i := 0; i < 48 && len(runs) < n; i++ {
		if m.OnSchedule(t) {
			runs = append(runs, t)
		}
		t = t.Add(-time.Hour)
	}
	return runs
}

// Cadence describes the run schedule in prose.
func (m ModelDefinition) Cadence() string {
	hours := slices.Clone(m.RunHours)
	slices.Sort(hours)

	var when string
	switch {
	case len(hours) == 24:
		when = "every hour"
	case len(hours) > 1 && evenlySpaced(hours):
		when = fmt.Sprintf("every %d hours at %s UTC", 24/len(hours), joinHours(hours))
	default:
		when = fmt.Sprintf("at %s UTC", joinHours(hours))
	}
	return fmt.Sprintf("Runs %s with forecasts out to %d hours.", when, int(m.MaxHorizon/time.Hour))
}

func evenlySpaced(hours []int) bool {
	if 24%len(hours) != 0 {
		return false
	}
	step := 24 / len(hours)
	for i, h := range hours {
		if h != hours[0]+i*step {
			return false
		}
	}
	return true
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%02d", h)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// ThemeDefinition groups the variables a model publishes for one theme.
type ThemeDefinition struct {
	Theme       Theme
	Title       string
	Description string
	LevelType   LevelType
	Variables   map[Model][]string
}

// CollectionID is the STAC collection identifier for a model and theme.
func CollectionID(model Model, theme Theme) string {
	return fmt.Sprintf("met-office-%s-deterministic-%s", model, theme)
}

// ParseCollectionID is the inverse of CollectionID.
func ParseCollectionID(id string) (Model, Theme, bool) {
	rest, ok := strings.CutPrefix(id, "met-office-")
	if !ok {
		return "", "", false
	}
	model, theme, ok := strings.Cut(rest, "-deterministic-")
	if !ok || model == "" || theme == "" {
		return "", "", false
	}
	return Model(model), Theme(theme), true
}

// Themes lists every theme in a stable order.
func Themes() []Theme {
	return []Theme{ThemeSurface, ThemePressureLevel, ThemeHeightLevel}
}
