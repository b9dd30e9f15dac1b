// Package domain decodes Met Office deterministic forecast object keys and
// maps them to catalog metadata.
//
// # Data Source
//
// The Met Office publishes global (10km) and UK (2km) deterministic model
// output as NetCDF objects in the public S3 bucket
// s3://met-office-atmospheric-model-data (eu-west-2). Each model run is a
// prefix; each object holds one parameter at one forecast step.
//
// # Key Conventions
//
// Keys have the layout:
//
//	<collection>/<reference>/<file>
//	uk-deterministic-2km/20250614T0000Z/20250614T0300Z-PT0003H00M-temperature_at_screen_level.nc
//
// Anything before <collection> (a scheme, bucket or URL host) is ignored.
//
// Collection tokens:
//
//	global-deterministic-10km  runs 00/06/12/18 UTC, out to T+168
//	uk-deterministic-2km       runs hourly, out to T+120
//
// Times:
//
//	Reference and valid times are "YYYYMMDDTHHMMZ" in UTC. The horizon is the
//	zero-padded step "PTnnnnHmmM". Valid time must equal reference time plus
//	the horizon.
//
// File names, tried in this order (see [Conventions]):
//
//	forecast           <valid>-<horizon>-<parameter>[-<period>].<ext>
//	stepped ancillary  <valid>-<horizon>.<ext>
//	static ancillary   <name>.<ext>
//
// The first convention whose shape matches decodes the file. A key that looks
// like a forecast but carries a bad field is a [ParseError], never an
// ancillary file. Static ancillary names are lower-case identifiers with a
// NetCDF or GRIB2 extension and no level suffix, so stray
// objects such as README.txt are rejected too.
//
// Parameters:
//
//	temperature_at_screen_level_max-PT01H
//	└─ quantity ─┘└── level ──┘└st┘ └period┘
//
//	Level suffixes: _at_screen_level (1.5m), _at_10m, _at_surface,
//	_at_mean_sea_level, _at_tropopause, _on_pressure_levels,
//	_on_height_levels. Statistic suffixes: _max, _min, _mean.
//	_on_pressure_levels and _on_height_levels select the pressure-level and
//	height-level themes; everything else is surface.
//
// Unknown parameters are kept verbatim and produce an
// [UnknownVariableWarning] at assembly time. Unknown collection tokens are
// rejected because they decide the run schedule and grid.
//
// # ID Generation
//
// Item IDs are "<model>-<theme>-<reference>-<horizon>". The scheme is
// versioned by [ItemIDVersion]. See [ItemID].
package domain
