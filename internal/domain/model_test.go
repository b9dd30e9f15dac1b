package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelDefinition_OnSchedule(t *testing.T) {
	global, ok := DefaultTables().Model(ModelGlobal)
	require.True(t, ok)
	uk, ok := DefaultTables().Model(ModelUK)
	require.True(t, ok)

	tests := []struct {
		name string
		def  ModelDefinition
		at   time.Time
		want bool
	}{
		{"global 06z", global, time.Date(2025, 12, 4, 6, 0, 0, 0, time.UTC), true},
		{"global 03z", global, time.Date(2025, 12, 4, 3, 0, 0, 0, time.UTC), false},
		{"uk 03z", uk, time.Date(2025, 12, 4, 3, 0, 0, 0, time.UTC), true},
		{"uk half past", uk, time.Date(2025, 12, 4, 3, 30, 0, 0, time.UTC), false},
		{"offset zone normalized", global, time.Date(2025, 12, 4, 7, 0, 0, 0, time.FixedZone("CET", 3600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.def.OnSchedule(tt.at))
		})
	}
}

func TestModelDefinition_RecentRuns(t *testing.T) {
	global, _ := DefaultTables().Model(ModelGlobal)
	uk, _ := DefaultTables().Model(ModelUK)
	now := time.Date(2025, 12, 4, 7, 45, 0, 0, time.UTC)

	assert.Equal(t, []time.Time{
		time.Date(2025, 12, 4, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 3, 18, 0, 0, 0, time.UTC),
	}, global.RecentRuns(now, 3))

	assert.Equal(t, []time.Time{
		time.Date(2025, 12, 4, 7, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 4, 6, 0, 0, 0, time.UTC),
	}, uk.RecentRuns(now, 2))

	assert.Nil(t, uk.RecentRuns(now, 0))
	assert.Nil(t, ModelDefinition{}.RecentRuns(now, 3))
}

func TestModelDefinition_Cadence(t *testing.T) {
	tests := []struct {
		name  string
		hours []int
		want  string
	}{
		{"hourly", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}, "Runs every hour with forecasts out to 48 hours."},
		{"twice daily unsorted", []int{12, 0}, "Runs every 12 hours at 00 and 12 UTC with forecasts out to 48 hours."},
		{"irregular", []int{0, 3, 12}, "Runs at 00, 03 and 12 UTC with forecasts out to 48 hours."},
		{"once daily", []int{6}, "Runs at 06 UTC with forecasts out to 48 hours."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := ModelDefinition{RunHours: tt.hours, MaxHorizon: 48 * time.Hour}
			assert.Equal(t, tt.want, def.Cadence())
		})
	}
}

func TestCollectionID_RoundTrip(t *testing.T) {
	for _, model := range []Model{ModelGlobal, ModelUK} {
		for _, theme := range Themes() {
			id := CollectionID(model, theme)
			gotModel, gotTheme, ok := ParseCollectionID(id)
			require.True(t, ok, id)
			assert.Equal(t, model, gotModel)
			assert.Equal(t, theme, gotTheme)
		}
	}

	for _, bad := range []string{"", "met-office-", "uk-deterministic-surface", "met-office-uk-surface", "met-office--deterministic-surface"} {
		_, _, ok := ParseCollectionID(bad)
		assert.False(t, ok, bad)
	}
}

func TestTables_Lookup(t *testing.T) {
	tables := DefaultTables()

	assert.Equal(t, []Model{ModelGlobal, ModelUK}, tables.Models())

	def, ok := tables.ModelByToken("uk-deterministic-2km")
	require.True(t, ok)
	assert.Equal(t, ModelUK, def.Model)

	_, ok = tables.ModelByToken("XYZ")
	assert.False(t, ok)

	global, _ := tables.Model(ModelGlobal)
	assert.NotEmpty(t, global.Grid.CRSCode)

	v, ok := tables.Variable("temperature_at_screen_level")
	require.True(t, ok)
	assert.Equal(t, "air_temperature", v.StandardName)
}

func TestPrefix(t *testing.T) {
	uk, _ := DefaultTables().Model(ModelUK)
	ref := time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "uk-deterministic-2km/20251121T0000Z/", Prefix(uk, ref))
}

func TestFormatHorizon(t *testing.T) {
	assert.Equal(t, "PT0000H00M", FormatHorizon(0))
	assert.Equal(t, "PT0003H00M", FormatHorizon(3*time.Hour))
	assert.Equal(t, "PT0168H30M", FormatHorizon(168*time.Hour+30*time.Minute))
}

func TestParseReferenceTime(t *testing.T) {
	ref, err := ParseReferenceTime("20251121T0300Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 21, 3, 0, 0, 0, time.UTC), ref)
	assert.Equal(t, "20251121T0300Z", FormatReferenceTime(ref))

	for _, bad := range []string{"", "2025-11-21T03:00Z", "20251121T0300", "20251321T0300Z"} {
		_, err := ParseReferenceTime(bad)
		assert.Error(t, err, bad)
	}
}
