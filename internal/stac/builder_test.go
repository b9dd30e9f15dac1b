package stac_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

const ukRun = "s3://met-office-atmospheric-model-data/uk-deterministic-2km/20251121T0000Z/"

var created = time.Date(2025, 11, 21, 4, 12, 0, 0, time.UTC)

func newBuilder() *stac.Builder {
	return stac.NewBuilder(nil, clockwork.NewFakeClockAt(created))
}

func source(t *testing.T, key string, size int64, modified time.Time) stac.Source {
	t.Helper()
	d, err := domain.Parse(key)
	require.NoError(t, err)
	return stac.Source{Descriptor: d, Size: size, LastModified: modified}
}

func TestBuilder_Item(t *testing.T) {
	modified := time.Date(2025, 11, 21, 3, 40, 0, 0, time.UTC)

	item, warnings, err := newBuilder().Item([]stac.Source{
		source(t, ukRun+"20251121T0300Z-PT0003H00M-temperature_at_screen_level.nc", 1024, modified),
		source(t, ukRun+"20251121T0300Z-PT0003H00M-precipitation_accumulation-PT01H.nc", 2048, modified),
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "Feature", item.Type)
	assert.Equal(t, "uk-surface-20251121T0000Z-PT0003H00M", item.ID)
	assert.Equal(t, "met-office-uk-deterministic-surface", item.Collection)
	assert.Equal(t, time.Date(2025, 11, 21, 3, 0, 0, 0, time.UTC), item.Properties.Datetime)
	assert.Equal(t, time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC), item.Properties.ForecastReferenceDatetime)
	assert.Equal(t, "PT0003H00M", item.Properties.ForecastHorizon)
	assert.Equal(t, created, item.Properties.Created)
	assert.Nil(t, item.Properties.ProjCode)
	assert.Equal(t, []int{970, 1042}, item.Properties.ProjShape)
	assert.Equal(t, []float64{-1159000, -1037000, 925000, 903000}, item.Properties.ProjBBox)
	require.NotNil(t, item.Geometry)
	assert.Equal(t, "Polygon", item.Geometry.Geometry().GeoJSONType())

	require.Len(t, item.Assets, 2)
	temp := item.Assets["temperature_at_screen_level"]
	assert.Equal(t, "Temperature at 1.5m", temp.Title)
	assert.Equal(t, "air_temperature", temp.ForecastVariable)
	assert.Equal(t, "application/netcdf", temp.Type)
	assert.Equal(t, int64(1024), temp.FileSize)
	require.NotNil(t, temp.Updated)
	assert.Equal(t, modified, *temp.Updated)

	precip := item.Assets["precipitation_accumulation-PT01H"]
	assert.Equal(t, "PT01H", precip.ForecastDuration)
}

func TestBuilder_Item_ConcurrentClocks(t *testing.T) {
	key := ukRun + "20251121T0300Z-PT0003H00M-temperature_at_screen_level.nc"
	src := source(t, key, 1, time.Time{})

	var wg sync.WaitGroup
	got := make([]time.Time, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stamp := created.Add(time.Duration(i) * time.Hour)
			item, _, err := stac.NewBuilder(nil, clockwork.NewFakeClockAt(stamp)).Item([]stac.Source{src})
			if assert.NoError(t, err) {
				got[i] = item.Properties.Created
			}
		}()
	}
	wg.Wait()

	for i, stamp := range got {
		assert.Equal(t, created.Add(time.Duration(i)*time.Hour), stamp)
	}
}

func TestBuilder_Item_JSON(t *testing.T) {

	item, _, err := newBuilder().Item([]stac.Source{
		source(t, ukRun+"20251121T0300Z-PT0003H00M-temperature_at_screen_level.nc", 0, time.Time{}),
	})
	require.NoError(t, err)

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	props := doc["properties"].(map[string]any)

	assert.Equal(t, "2025-11-21T03:00:00Z", props["datetime"])
	assert.Equal(t, "2025-11-21T00:00:00Z", props["forecast:reference_datetime"])
	assert.Equal(t, "PT0003H00M", props["forecast:horizon"])
	assert.Contains(t, props, "proj:code")
	assert.Nil(t, props["proj:code"])
	assert.Contains(t, doc["stac_extensions"], stac.ForecastExtension)

	asset := doc["assets"].(map[string]any)["temperature_at_screen_level"].(map[string]any)
	assert.NotContains(t, asset, "updated")
	assert.NotContains(t, asset, "file:size")
}

func TestBuilder_Item_GlobalHasProjectionCode(t *testing.T) {

	item, _, err := newBuilder().Item([]stac.Source{
		source(t, "global-deterministic-10km/20251204T0600Z/20251204T0600Z-PT0000H00M.nc", 10, time.Time{}),
	})
	require.NoError(t, err)

	require.NotNil(t, item.Properties.ProjCode)
	assert.Equal(t, "EPSG:4326", *item.Properties.ProjCode)
	assert.Equal(t, []float64{-180, -90, 180, 90}, item.BBox)
	assert.Equal(t, []string{"ancillary"}, item.Assets["ancillary-nc"].Roles)
}

func TestBuilder_Item_SteppedAncillaryPerFormat(t *testing.T) {
	run := "global-deterministic-10km/20251204T0600Z/"
	item, _, err := newBuilder().Item([]stac.Source{
		source(t, run+"20251204T0600Z-PT0000H00M.nc", 10, time.Time{}),
		source(t, run+"20251204T0600Z-PT0000H00M.grib2", 20, time.Time{}),
	})
	require.NoError(t, err)

	require.Len(t, item.Assets, 2)
	assert.Equal(t, run+"20251204T0600Z-PT0000H00M.nc", item.Assets["ancillary-nc"].Href)
	assert.Equal(t, run+"20251204T0600Z-PT0000H00M.grib2", item.Assets["ancillary-grib2"].Href)
}

func TestBuilder_Item_UnknownVariableWarning(t *testing.T) {

	item, warnings, err := newBuilder().Item([]stac.Source{
		source(t, ukRun+"20251121T0300Z-PT0003H00M-brand_new_diagnostic.nc", 1, time.Time{}),
	})
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], domain.ErrUnknownVariable)
	assert.Equal(t, "brand_new_diagnostic", item.Assets["brand_new_diagnostic"].ForecastVariable)
}

func TestBuilder_Item_KeepsNewestDuplicate(t *testing.T) {
	older := time.Date(2025, 11, 21, 3, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	key := ukRun + "20251121T0300Z-PT0003H00M-temperature_at_screen_level.nc"

	item, _, err := newBuilder().Item([]stac.Source{
		source(t, key, 2, newer),
		source(t, key, 1, older),
	})
	require.NoError(t, err)

	require.Len(t, item.Assets, 1)
	assert.Equal(t, int64(2), item.Assets["temperature_at_screen_level"].FileSize)
}

func TestBuilder_Item_Errors(t *testing.T) {
	b := newBuilder()

	_, _, err := b.Item(nil)
	assert.ErrorIs(t, err, stac.ErrNoAssets)

	_, _, err = b.Item([]stac.Source{
		source(t, ukRun+"20251121T0300Z-PT0003H00M-temperature_at_screen_level.nc", 1, time.Time{}),
		source(t, ukRun+"20251121T0400Z-PT0004H00M-temperature_at_screen_level.nc", 1, time.Time{}),
	})
	assert.ErrorContains(t, err, "belongs to item")

	gappy := domain.NewAssembler(domain.NewTables(nil, nil, nil))
	_, _, err = stac.NewBuilder(gappy, nil).Item([]stac.Source{
		source(t, ukRun+"20251121T0300Z-PT0003H00M-temperature_at_screen_level.nc", 1, time.Time{}),
	})
	assert.ErrorIs(t, err, domain.ErrConfigurationGap)
}

func TestBuilder_Collection(t *testing.T) {
	tests := []struct {
		model    domain.Model
		theme    domain.Theme
		wantCode any
		wantZ    bool
	}{
		{domain.ModelGlobal, domain.ThemeSurface, "EPSG:4326", false},
		{domain.ModelGlobal, domain.ThemePressureLevel, "EPSG:4326", true},
		{domain.ModelUK, domain.ThemeHeightLevel, nil, true},
	}

	for _, tt := range tests {
		t.Run(domain.CollectionID(tt.model, tt.theme), func(t *testing.T) {
			c, err := newBuilder().Collection(tt.model, tt.theme)
			require.NoError(t, err)

			assert.Equal(t, "Collection", c.Type)
			assert.Equal(t, domain.CollectionID(tt.model, tt.theme), c.ID)
			assert.Equal(t, stac.License, c.License)
			require.Len(t, c.Extent.Spatial.BBox, 1)
			assert.Len(t, c.Extent.Spatial.BBox[0], 4)
			assert.NotEmpty(t, c.CubeVariables)

			_, hasZ := c.CubeDimensions["z"]
			assert.Equal(t, tt.wantZ, hasZ)
			for id, v := range c.CubeVariables {
				assert.Equal(t, "data", v.Type, id)
				assert.Contains(t, v.Dimensions, "time", id)
			}

			data, err := json.Marshal(c)
			require.NoError(t, err)
			var doc map[string]any
			require.NoError(t, json.Unmarshal(data, &doc))
			codes := doc["summaries"].(map[string]any)["proj:code"].([]any)
			assert.Equal(t, []any{tt.wantCode}, codes)
		})
	}
}

func TestBuilder_Collection_UnknownTheme(t *testing.T) {
	_, err := newBuilder().Collection(domain.ModelUK, domain.Theme("ocean"))
	assert.ErrorIs(t, err, domain.ErrConfigurationGap)
}
