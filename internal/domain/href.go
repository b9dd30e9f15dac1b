package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const timestampLayout = "20060102T1504Z"

var (
	// timestampRe is the fixed-width run/valid time form, e.g. "20250614T0300Z".
	timestampRe = regexp.MustCompile(`^\d{8}T\d{4}Z$`)

	// horizonRe is the zero-padded forecast step, e.g. "PT0003H00M".
	horizonRe = regexp.MustCompile(`^PT(\d{4})H(\d{2})M$`)

	// periodRe is the accumulation or statistic window suffix, e.g. "PT01H".
	periodRe = regexp.MustCompile(`^PT\d{1,3}H$`)

	// ancillaryNameRe is a static ancillary file name, e.g. "landsea_mask".
	ancillaryNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// levelSuffixes are tried in order against a variable name with any
// statistic suffix already removed.
var levelSuffixes = []struct {
	suffix string
	level  Level
}{
	{"_on_pressure_levels", Level{Type: LevelPressure}},
	{"_on_height_levels", Level{Type: LevelHeight}},
	{"_at_screen_level", Level{Type: LevelHeight, Value: "1.5m"}},
	{"_at_mean_sea_level", Level{Type: LevelMeanSeaLevel}},
	{"_at_tropopause", Level{Type: LevelTropopause}},
	{"_at_surface", Level{Type: LevelSurface}},
	{"_at_10m", Level{Type: LevelHeight, Value: "10m"}},
}

var statisticSuffixes = []string{"max", "min", "mean"}

// basename holds the fields a convention extracted from a file stem, before
// validation.
type basename struct {
	valid     string
	horizon   string
	parameter string
	name      string
}

type convention struct {
	name  Convention
	match func(stem string) (basename, bool)
}

// conventions is the precedence order. The first convention whose matcher
// accepts a stem decodes it; later conventions are not consulted even when
// field validation then fails, so a malformed forecast key is reported
// instead of being read as an ancillary file.
var conventions = []convention{
	{name: ConventionForecast, match: matchForecast},
	{name: ConventionSteppedAncillary, match: matchSteppedAncillary},
	{name: ConventionStaticAncillary, match: matchStaticAncillary},
}

// Conventions lists the supported key conventions in precedence order.
func Conventions() []Convention {
	out := make([]Convention, len(conventions))
	for i, c := range conventions {
		out[i] = c.name
	}
	return out
}

// matchForecast accepts "<valid>-<horizon>-<parameter>".
func matchForecast(stem string) (basename, bool) {
	parts := strings.SplitN(stem, "-", 3)
	if len(parts) != 3 || !startsWithDigit(parts[0]) || parts[2] == "" {
		return basename{}, false
	}
	return basename{valid: parts[0], horizon: parts[1], parameter: parts[2]}, true
}

// matchSteppedAncillary accepts "<valid>-<horizon>".
func matchSteppedAncillary(stem string) (basename, bool) {
	parts := strings.Split(stem, "-")
	if len(parts) != 2 || !startsWithDigit(parts[0]) {
		return basename{}, false
	}
	return basename{valid: parts[0], horizon: parts[1]}, true
}

// matchStaticAncillary accepts a lower-case name such as "orography". Stems
// with dashes or timestamps belong to the stepped conventions.
func matchStaticAncillary(stem string) (basename, bool) {
	if !ancillaryNameRe.MatchString(stem) {
		return basename{}, false
	}
	return basename{name: stem}, true
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// Decoder turns object keys into forecast descriptors using a set of static
// tables. It holds no mutable state and is safe for concurrent use.
type Decoder struct {
	tables *Tables
}

// NewDecoder creates a Decoder over the given tables.
func NewDecoder(tables *Tables) *Decoder {
	return &Decoder{tables: tables}
}

var defaultDecoder = NewDecoder(defaultTables)

// Parse decodes an object key with the default tables.
func Parse(key string) (ForecastDescriptor, error) {
	return defaultDecoder.Parse(key)
}

// Parse decodes an object key or URL of the form
// [<scheme>://<bucket>/...]<collection>/<reference>/<file>.
func (dec *Decoder) Parse(key string) (ForecastDescriptor, error) {
	path := key
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(path, "/")
	if len(segments) < 3 {
		return ForecastDescriptor{}, newParseError(key, "", "expected <collection>/<reference>/<file>", nil)
	}
	n := len(segments)
	token, reference, file := segments[n-3], segments[n-2], segments[n-1]

	def, ok := dec.tables.ModelByToken(token)
	if !ok {
		return ForecastDescriptor{}, newParseError(key, "collection", fmt.Sprintf("unknown model %q", token), nil)
	}

	refTime, err := parseTimestamp(reference)
	if err != nil {
		return ForecastDescriptor{}, newParseError(key, "reference_time", "invalid timestamp", err)
	}
	if !def.OnSchedule(refTime) {
		return ForecastDescriptor{}, newParseError(key, "reference_time",
			fmt.Sprintf("%s is not a %s run time", reference, def.Model), nil)
	}

	stem, ext := splitExtension(file)
	for _, c := range conventions {
		b, ok := c.match(stem)
		if !ok {
			continue
		}
		return dec.build(key, def, refTime, c.name, b, ext)
	}
	return ForecastDescriptor{}, newParseError(key, "file", "does not match any known naming convention", nil)
}

func (dec *Decoder) build(key string, def ModelDefinition, refTime time.Time, conv Convention, b basename, ext string) (ForecastDescriptor, error) {
	d := ForecastDescriptor{
		Href:          key,
		Convention:    conv,
		Model:         def.Model,
		Theme:         ThemeSurface,
		ReferenceTime: refTime,
		Extension:     ext,
		Format:        formatFromExtension(strings.ToLower(ext)),
	}

	if conv == ConventionForecast || conv == ConventionSteppedAncillary {
		step, err := validateStep(key, def, refTime, b)
		if err != nil {
			return ForecastDescriptor{}, err
		}
		d.ForecastStep = step
	}

	switch conv {
	case ConventionForecast:
		variable, period := splitPeriod(b.parameter)
		if variable == "" {
			return ForecastDescriptor{}, newParseError(key, "parameter", "empty variable name", nil)
		}
		quantity, statistic := splitStatistic(variable)
		quantity, level := splitLevel(quantity)

		d.Parameter = b.parameter
		d.Variable = variable
		d.Period = period
		d.Statistic = statistic
		d.Quantity = quantity
		d.Level = level
		d.Theme = themeForLevel(level)
	case ConventionStaticAncillary:
		if d.Format == FormatUnknown {
			return ForecastDescriptor{}, newParseError(key, "file",
				fmt.Sprintf("unsupported ancillary extension %q", ext), nil)
		}
		if quantity, _ := splitStatistic(b.name); hasLevel(quantity) {
			return ForecastDescriptor{}, newParseError(key, "file",
				fmt.Sprintf("parameter %s has no valid time and horizon", b.name), nil)
		}
		d.AncillaryName = b.name
	}

	if _, ok := dec.tables.Theme(d.Theme); !ok {
		return ForecastDescriptor{}, newParseError(key, "theme", fmt.Sprintf("unknown theme %q", d.Theme), nil)
	}
	return d, nil
}

// validateStep checks the valid time and horizon fields against each other
// and against the model's forecast range.
func validateStep(key string, def ModelDefinition, refTime time.Time, b basename) (time.Duration, error) {
	validTime, err := parseTimestamp(b.valid)
	if err != nil {
		return 0, newParseError(key, "valid_time", "invalid timestamp", err)
	}
	step, err := parseHorizon(b.horizon)
	if err != nil {
		return 0, newParseError(key, "forecast_step", "invalid horizon", err)
	}
	if step > def.MaxHorizon {
		return 0, newParseError(key, "forecast_step",
			fmt.Sprintf("%s exceeds the %s forecast range of %s", b.horizon, def.Model, def.MaxHorizon), nil)
	}
	if !validTime.Equal(refTime.Add(step)) {
		return 0, newParseError(key, "valid_time",
			fmt.Sprintf("%s is not reference time plus %s", b.valid, b.horizon), nil)
	}
	return step, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if !timestampRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("%q is not in YYYYMMDDTHHMMZ form", s)
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseHorizon(s string) (time.Duration, error) {
	m := horizonRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q is not in PTnnnnHmmM form", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if minutes >= 60 {
		return 0, errors.New("minutes out of range")
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

func splitExtension(file string) (stem, ext string) {
	i := strings.LastIndexByte(file, '.')
	if i < 0 {
		return file, ""
	}
	return file[:i], file[i+1:]
}

// splitPeriod separates a trailing "-PTnnH" window. Parameters with any other
// dash suffix are kept whole.
func splitPeriod(parameter string) (variable, period string) {
	i := strings.LastIndexByte(parameter, '-')
	if i < 0 || !periodRe.MatchString(parameter[i+1:]) {
		return parameter, ""
	}
	return parameter[:i], parameter[i+1:]
}

func splitStatistic(variable string) (quantity, statistic string) {
	for _, s := range statisticSuffixes {
		if q, ok := strings.CutSuffix(variable, "_"+s); ok && q != "" {
			return q, s
		}
	}
	return variable, ""
}

func splitLevel(quantity string) (string, *Level) {
	for _, ls := range levelSuffixes {
		if q, ok := strings.CutSuffix(quantity, ls.suffix); ok && q != "" {
			level := ls.level
			return q, &level
		}
	}
	return quantity, nil
}

func hasLevel(quantity string) bool {
	_, level := splitLevel(quantity)
	return level != nil
}

func themeForLevel(level *Level) Theme {
	if level == nil || level.Value != "" {
		return ThemeSurface
	}
	switch level.Type {
	case LevelPressure:
		return ThemePressureLevel
	case LevelHeight:
		return ThemeHeightLevel
	default:
		return ThemeSurface
	}
}
