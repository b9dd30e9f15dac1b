// Command metoffice-stac decodes Met Office forecast object keys and
// publishes STAC collections and items for the deterministic models on the
// AWS open data bucket.
//
// Usage:
//
//	metoffice-stac parse uk-deterministic-2km/20251121T0000Z/20251121T0300Z-PT0003H00M-temperature_at_screen_level.nc
//	metoffice-stac collection met-office-uk-deterministic-surface
//	metoffice-stac items uk-deterministic-2km 20251121T0000Z
//	metoffice-stac item met-office-uk-deterministic-surface 20251121T0000Z 20251121T0300Z
//	metoffice-stac serve --sink kafka
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
