package domain

// VariableDefinition describes one Met Office forecast parameter. The ID is
// the parameter name as it appears in object keys with any accumulation or
// statistic period ("-PT01H") removed.
type VariableDefinition struct {
	ID           string
	Description  string
	Unit         string
	StandardName string // CF standard name, empty when none applies
	LevelType    LevelType
}

// Shared by both models.
var sharedPressureVariables = []VariableDefinition{
	{
		ID:           "height_ASL_on_pressure_levels",
		Description:  "Height above mean sea level or altitude of the pressure levels. This is considered approximately equivalent to geopotential height. Geopotential is the sum of the specific gravitational potential energy relative to the geoid and the specific centripetal potential energy. Geopotential height is the geopotential divided by the standard acceleration due to gravity.",
		Unit:         "m",
		StandardName: "geopotential_height",
		LevelType:    LevelPressure,
	},
	{
		ID:           "relative_humidity_on_pressure_levels",
		Description:  "Fractional relative humidity (ratio of the partial pressure of water vapour to the equilibrium vapour pressure of water) on pressure levels.",
		Unit:         "1",
		StandardName: "relative_humidity",
		LevelType:    LevelPressure,
	},
	{
		ID:           "temperature_on_pressure_levels",
		Description:  "Air temperature on pressure levels.",
		Unit:         "K",
		StandardName: "air_temperature",
		LevelType:    LevelPressure,
	},
	{
		ID:           "wet_bulb_potential_temperature_on_pressure_levels",
		Description:  "Wet bulb potential temperature (temperature that a parcel of air at any level would have if starting at the wet bulb temperature, it was brought at a saturated adiabatic lapse rate, to the standard pressure of 1000hPa) on pressure levels.",
		Unit:         "K",
		StandardName: "wet_bulb_potential_temperature",
		LevelType:    LevelPressure,
	},
	{
		ID:           "wind_direction_on_pressure_levels",
		Description:  "Wind on a pressure level is defined as a two-dimensional (horizontal) air velocity vector with no vertical component. In meteorological reports the direction of the wind vector is given as the direction from which it is blowing.",
		Unit:         "degrees",
		StandardName: "wind_from_direction",
		LevelType:    LevelPressure,
	},
	{
		ID:           "wind_speed_on_pressure_levels",
		Description:  "Wind on a pressure level is defined as a two-dimensional (horizontal) air velocity with no vertical component. The speed is the magnitude of velocity.",
		Unit:         "m s-1",
		StandardName: "wind_speed",
		LevelType:    LevelPressure,
	},
}

var sharedHeightVariables = []VariableDefinition{
	{
		ID:           "cloud_amount_on_height_levels",
		Description:  "Fraction of horizontal grid square occupied by cloud on height levels.",
		Unit:         "1",
		StandardName: "cloud_volume_fraction_in_atmosphere_layer",
		LevelType:    LevelHeight,
	},
}

var sharedSurfaceVariables = []VariableDefinition{
	{
		ID:           "cloud_amount_below_1000ft_ASL",
		Description:  "Fraction of horizontal grid square occupied by cloud cover below 1,000 feet above sea level.",
		Unit:         "1",
		StandardName: "cloud_area_fraction_assuming_only_consider_surface_to_1000_feet_asl",
		LevelType:    LevelSurface,
	},
	{
		ID:           "cloud_amount_of_high_cloud",
		Description:  "Fraction of horizontal grid square occupied by cloud in the high-level cloud height range; from 5,574m (~18,000ft) to 13,608m (~44,500ft).",
		Unit:         "1",
		StandardName: "high_type_cloud_area_fraction",
		LevelType:    LevelSurface,
	},
	{
		ID:           "cloud_amount_of_low_cloud",
		Description:  "Fraction on horizontal grid square occupied by cloud in the low-level cloud height range: from 111m (~350ft) to 1,949m (~6,500ft).",
		Unit:         "1",
		StandardName: "low_type_cloud_area_fraction",
		LevelType:    LevelSurface,
	},
	{
		ID:           "cloud_amount_of_medium_cloud",
		Description:  "A fraction of horizontal grid square occupied by cloud in the mid-level cloud height range; from 1,949m (~6,500ft) to 5,574m (~18,000ft).",
		Unit:         "1",
		StandardName: "medium_type_cloud_area_fraction",
		LevelType:    LevelSurface,
	},
	{
		ID:           "cloud_amount_of_total_cloud",
		Description:  "Fraction of horizontal grid square occupied by cloud as diagnosed by the model cloud scheme. This is for the whole atmosphere column as seen from the surface or the top of the atmosphere.",
		Unit:         "1",
		StandardName: "cloud_area_fraction",
		LevelType:    LevelSurface,
	},
	{
		ID:           "fog_fraction_at_screen_level",
		Description:  "Fog means a visibility of 1000 m or lower. The reduction in visibility is caused by water droplets or minute ice crystals forming close to the surface. This quantity represents the fraction of horizontal grid square occupied by fog. An alternative interpretation is that this represents the fractional probability of fog being present at any location in the grid square.",
		Unit:         "1",
		StandardName: "fog_area_fraction",
		LevelType:    LevelHeight,
	},
	{
		ID:           "precipitation_rate",
		Description:  "Instantaneous rate at which liquid water (as a depth) is being deposited on the surface.",
		Unit:         "m s-1",
		StandardName: "lwe_precipitation_rate",
		LevelType:    LevelSurface,
	},
	{
		ID:           "pressure_at_mean_sea_level",
		Description:  "Air pressure at mean sea level which is close to the geoid in sea areas. Air pressure at sea level is the quantity often abbreviated as MSLP or PMSL.",
		Unit:         "Pa",
		StandardName: "air_pressure_at_sea_level",
		LevelType:    LevelMeanSeaLevel,
	},
	{
		ID:           "radiation_flux_in_longwave_downward_at_surface",
		Description:  `Longwave radiation at the surface from above directed at the ground. In accordance with common usage in geophysical disciplines "flux" implies per unit area called "flux density" in physics.`,
		Unit:         "W m-2",
		StandardName: "surface_downwelling_longwave_flux_in_air",
		LevelType:    LevelSurface,
	},
	{
		ID:           "radiation_flux_in_shortwave_direct_downward_at_surface",
		Description:  `Shortwave radiation at the surface from above directed at the ground. "Direct" means that the radiation has followed a direct path from the sun and is alternatively known as "direct insolation". In accordance with common usage in geophysical disciplines "flux" implies per unit area called "flux density" in physics.`,
		Unit:         "W m-2",
		StandardName: "surface_direct_downwelling_shortwave_flux_in_air",
		LevelType:    LevelSurface,
	},
	{
		ID:           "radiation_flux_in_uv_downward_at_surface",
		Description:  `Ultraviolet radiation at the surface from above directed at the ground. In accordance with common usage in geophysical disciplines flux implies per unit area called "flux density" in physics.`,
		Unit:         "W m-2",
		StandardName: "surface_downwelling_ultraviolet_flux_in_air",
		LevelType:    LevelSurface,
	},
	{
		ID:           "relative_humidity_at_screen_level",
		Description:  "Fractional relative humidity (ratio of the partial pressure of water vapour to the equilibrium vapour pressure of water) at screen level (1.5m above the surface.)",
		Unit:         "1",
		StandardName: "relative_humidity",
		LevelType:    LevelHeight,
	},
	{
		ID:           "snow_depth_water_equivalent",
		Description:  "Liquid water equivalent (LWE) depth of the snow lying on the surface (ground). Typically, water is 10 times as dense as snow so multiplying by 10 gives an approximate depth of the snow, although wet snow can be significantly denser and powder snow much less dense.",
		Unit:         "m",
		StandardName: "lwe_thickness_of_surface_snow_amount",
		LevelType:    LevelSurface,
	},
	{
		ID:           "temperature_at_screen_level",
		Description:  "Air temperature at screen level (1.5m).",
		Unit:         "K",
		StandardName: "air_temperature",
		LevelType:    LevelHeight,
	},
	{
		ID:           "temperature_at_screen_level_max",
		Description:  "Maximum instantaneous air temperature at screen level (1.5m).",
		Unit:         "K",
		StandardName: "air_temperature",
		LevelType:    LevelHeight,
	},
	{
		ID:           "temperature_at_screen_level_min",
		Description:  "Minimum instantaneous air temperature at screen level (1.5m).",
		Unit:         "K",
		StandardName: "air_temperature",
		LevelType:    LevelHeight,
	},
	{
		ID:           "temperature_at_surface",
		Description:  "Temperature at the surface interface between the air and the ground.",
		Unit:         "K",
		StandardName: "surface_temperature",
		LevelType:    LevelSurface,
	},
	{
		ID:           "temperature_of_dew_point_at_screen_level",
		Description:  "Dew point temperature (temperature at which a parcel of air reaches saturation upon being cooled at constant pressure and specific humidity) at screen level.",
		Unit:         "K",
		StandardName: "dew_point_temperature",
		LevelType:    LevelHeight,
	},
	{
		ID:           "visibility_at_screen_level",
		Description:  "Distance at which a known object can be seen horizontally from screen level (1.5m).",
		Unit:         "m",
		StandardName: "visibility_in_air",
		LevelType:    LevelHeight,
	},
	{
		ID:           "wind_direction_at_10m",
		Description:  "Mean wind direction is equivalent to the mean direction observed over the 10 minutes preceding the validity time. In meteorological reports the direction of the wind vector is given as the direction from which it is blowing. 10m wind is the considered surface wind.",
		Unit:         "degrees",
		StandardName: "wind_from_direction",
		LevelType:    LevelHeight,
	},
	{
		ID:           "wind_gust_at_10m",
		Description:  "The gust speed is equivalent to the maximum 3 second mean wind speed observed over the 10 minutes preceding validity time. 10m wind is the considered surface wind.",
		Unit:         "m s-1",
		StandardName: "wind_speed_of_gust",
		LevelType:    LevelHeight,
	},
	{
		ID:           "wind_gust_at_10m_max",
		Description:  "Maximum diagnosed instantaneous wind gust at 10m. This can be considered as the extreme wind speed that might be experienced in this period.",
		Unit:         "m s-1",
		StandardName: "wind_speed_of_gust",
		LevelType:    LevelHeight,
	},
	{
		ID:           "wind_speed_at_10m",
		Description:  "Mean wind speed is equivalent to the mean speed observed over the 10 minutes preceding the validity time. 10m wind is the considered surface wind.",
		Unit:         "m s-1",
		StandardName: "wind_speed",
		LevelType:    LevelHeight,
	},
	{
		ID:           "pressure_at_tropopause",
		Description:  "Air pressure at tropopause.",
		Unit:         "Pa",
		StandardName: "tropopause_air_pressure",
		LevelType:    LevelTropopause,
	},
	{
		ID:           "temperature_at_tropopause",
		Description:  "Temperature at tropopause.",
		Unit:         "K",
		StandardName: "tropopause_air_temperature",
		LevelType:    LevelTropopause,
	},
	{
		ID:           "rainfall_rate_from_convection",
		Description:  "Instantaneous rate at which rain, produced by the model convection scheme, is being deposited on the surface.",
		Unit:         "m s-1",
		StandardName: "convective_rainfall_rate",
		LevelType:    LevelSurface,
	},
	{
		ID:           "snowfall_rate_from_convection",
		Description:  "Rate at which liquid water equivalent (LWE) snow, produced by the model convection scheme, is being deposited on the surface.",
		Unit:         "m s-1",
		StandardName: "lwe_convective_snowfall_rate",
		LevelType:    LevelSurface,
	},
	{
		ID:           "rainfall_rate_from_convection_max",
		Description:  "Maximum instantaneous rate at which rain, produced by the model convection scheme, is being deposited on the surface.",
		Unit:         "m s-1",
		StandardName: "convective_rainfall_rate",
		LevelType:    LevelSurface,
	},
	{
		ID:           "snowfall_rate_from_convection_max",
		Description:  "Maximum instantaneous rate at which liquid water equivalent (LWE) snow, produced by the model convection scheme, is being deposited on the surface.",
		Unit:         "m s-1",
		StandardName: "lwe_convective_snowfall_rate",
		LevelType:    LevelSurface,
	},
	{
		ID:           "snowfall_rate_from_convection_mean",
		Description:  "Mean rate at which liquid water equivalent (LWE) snow, produced by the model convection scheme, is being deposited on the surface.",
		Unit:         "m s-1",
		StandardName: "lwe_convective_snowfall_rate",
		LevelType:    LevelSurface,
	},
}

var globalOnlyPressureVariables = []VariableDefinition{
	{
		ID:           "wind_vertical_velocity_on_pressure_levels",
		Description:  "Speed of the vertical component of the air motion at a pressure level. Upwards is positive and downwards is negative.",
		Unit:         "m s-1",
		StandardName: "upward_air_velocity",
		LevelType:    LevelPressure,
	},
}

var globalOnlySurfaceVariables = []VariableDefinition{
	{
		ID:           "CAPE_most_unstable_below_500hPa",
		Description:  "CAPE (Convective Available Potential Energy) calculated for the most unstable parcel where the most unstable parcel is defined as the parcel with the highest fixed level CAPE launched from any level (including screen-level = 1.5m) within 500hPa of the surface pressure.",
		Unit:         "J kg-1",
		StandardName: "atmosphere_convective_available_potential_energy",
		LevelType:    LevelSurface,
	},
	{
		ID:           "CAPE_surface",
		Description:  "Value of CAPE (Convection Available Potential Energy) calculated for a surface based parcel, where a surface based parcel is defined as a parcel initiated with thermodynamic properties at screen level height (1.5m) i.e. the parcel is launched from screen level.",
		Unit:         "J kg-1",
		StandardName: "atmosphere_convective_available_potential_energy_wrt_surface",
		LevelType:    LevelSurface,
	},
	{
		ID:           "CAPE_mixed_layer_lowest_500m",
		Description:  "Convective Available Potential Energy (CAPE) calculated for a parcel with the thermodynamic properties of the density-weighted mean of the lowest 500 m above ground level.",
		Unit:         "J kg-1",
		StandardName: "atmosphere_convective_available_potential_energy",
		LevelType:    LevelSurface,
	},
	{
		ID:           "CIN_most_unstable_below_500hPa",
		Description:  "Any additional energy required to lift the most unstable parcel to its level of free convection. Where most unstable parcel is defined as the parcel with the highest fixed-level CAPE launched from any level (including screen-level) within 500 hPa of the surface pressure.",
		Unit:         "J kg-1",
		StandardName: "atmosphere_convective_inhibition",
		LevelType:    LevelSurface,
	},
	{
		ID:           "CIN_surface",
		Description:  "Any additional energy required to lift a surface-based parcel (i.e. a parcel launched from screen-level (1.5m)) to its level of free convection.",
		Unit:         "J kg-1",
		StandardName: "atmosphere_convective_inhibition_wrt_surface",
		LevelType:    LevelSurface,
	},
	{
		ID:           "CIN_mixed_layer_lowest_500m",
		Description:  "Any additional energy required to lift a mixed-layer parcel to its level of free convection. Where a mixed layer parcel is defined as a parcel with thermodynamic properties of the density weighted mean of the lowest 500 m above ground level (AGL).",
		Unit:         "J kg-1",
		StandardName: "atmosphere_convective_inhibition",
		LevelType:    LevelSurface,
	},
	{
		ID:           "cloud_amount_of_total_convective_cloud",
		Description:  "Fraction of horizontal grid squares occupied by convective cloud as diagnosed by the model convection scheme. This is for the whole atmosphere column as seen from the surface or the top of the atmosphere.",
		Unit:         "1",
		StandardName: "convective_cloud_area_fraction",
		LevelType:    LevelSurface,
	},
	{
		ID:           "latent_heat_flux_at_surface_mean",
		Description:  `Exchange of heat between the surface and the air on account of evaporation (including sublimation). In accordance with common usage in geophysical disciplines "flux" implies per unit area called "flux density" in physics. Upwards is positive; negative is downward.`,
		Unit:         "W m-2",
		StandardName: "surface_upward_latent_heat_flux",
		LevelType:    LevelSurface,
	},
	{
		ID:           "precipitation_accumulation",
		Description:  "Implied depth of the layer of liquid water which has been deposited on the surface. This includes rain, snow and hail with the ice phase precipitation being considered as a liquid water equivalent (lwe) value. It includes the contribution from the model convection scheme if this is invoked (true for Global models but not the UK models) as well as that from the model precipitation scheme.",
		Unit:         "m",
		StandardName: "lwe_thickness_of_precipitation_amount",
		LevelType:    LevelSurface,
	},
	{
		ID:           "radiation_flux_in_shortwave_total_downward_at_surface",
		Description:  `Total shortwave radiation at the surface from above directed at the ground. In accordance with common usage in geophysical disciplines "flux" implies per unit area called "flux density" in physics.`,
		Unit:         "W m-2",
		StandardName: "surface_downwelling_shortwave_flux_in_air",
		LevelType:    LevelSurface,
	},
	{
		ID:           "rainfall_accumulation",
		Description:  `Implied depth of the rain produced by the model precipitation scheme which has been deposited on the surface. For the Global models (which run a convection scheme) the "rainfall accumulation from convection" must be added to this to get the total rainfall accumulation.`,
		Unit:         "m",
		StandardName: "thickness_of_rainfall_amount",
		LevelType:    LevelSurface,
	},
	{
		ID:           "rainfall_rate",
		Description:  `Instantaneous rate at which rain (as a depth) which has been produced by the model precipitation scheme is being deposited on the surface. For the Global models (which run a convection scheme) the "rainfall rate from convection" must be added to this to get the total rainfall rate.`,
		Unit:         "m s-1",
		StandardName: "rainfall_rate",
		LevelType:    LevelSurface,
	},
	{
		ID:           "snowfall_rate",
		Description:  `Instantaneous rate at which liquid water equivalent (LWE) snow (as a depth) which has been produced by the model precipitation scheme is being deposited on the surface. For the Global models which run a convection scheme) the "snowfall rate from convection" must be added to this to get the total snowfall rate.`,
		Unit:         "m s-1",
		StandardName: "lwe_snowfall_rate",
		LevelType:    LevelSurface,
	},
}

var ukOnlyHeightVariables = []VariableDefinition{
	{
		ID:           "temperature_on_height_levels",
		Description:  "Air temperature on height levels.",
		Unit:         "K",
		StandardName: "air_temperature",
		LevelType:    LevelHeight,
	},
	{
		ID:           "wind_direction_on_height_levels",
		Description:  "Wind direction on height levels. In meteorological reports the direction of the wind vector is given as the direction from which it is blowing.",
		Unit:         "degrees",
		StandardName: "wind_from_direction",
		LevelType:    LevelHeight,
	},
	{
		ID:           "wind_speed_on_height_levels",
		Description:  "Wind speed on height levels. The speed is the magnitude of velocity.",
		Unit:         "m s-1",
		StandardName: "wind_speed",
		LevelType:    LevelHeight,
	},
}

var ukOnlySurfaceVariables = []VariableDefinition{
	{
		ID:           "hail_fall_accumulation",
		Description:  "Implied depth of hail (as liquid water equivalent) which has been deposited on the surface.",
		Unit:         "m",
		StandardName: "lwe_thickness_of_graupel_and_hail_fall_amount",
		LevelType:    LevelSurface,
	},
	{
		ID:           "hail_fall_rate",
		Description:  "Instantaneous rate at which hail (as liquid water equivalent) is being deposited on the surface.",
		Unit:         "m s-1",
		StandardName: "lwe_graupel_and_hail_fall_rate",
		LevelType:    LevelSurface,
	},
	{
		ID:           "height_AGL_at_cloud_base_where_cloud_cover_2p5_oktas",
		Description:  "Height above ground level at cloud base where cloud cover is 2.5 oktas (approximately 31% coverage).",
		Unit:         "m",
		StandardName: "cloud_base_height_2p5_oktas",
		LevelType:    LevelSurface,
	},
	{
		ID:           "height_AGL_at_freezing_level",
		Description:  "Height above ground level at the 0°C isotherm (freezing level).",
		Unit:         "m",
		StandardName: "freezing_level_height",
		LevelType:    LevelSurface,
	},
	{
		ID:           "height_AGL_at_wet_bulb_freezing_level",
		Description:  "Height above ground level at the wet bulb freezing level.",
		Unit:         "m",
		StandardName: "wet_bulb_freezing_level_height",
		LevelType:    LevelSurface,
	},
	{
		ID:           "landsea_mask",
		Description:  "Binary mask indicating land (1) or sea (0) surface type.",
		Unit:         "1",
		StandardName: "land_binary_mask",
		LevelType:    LevelSurface,
	},
	{
		ID:           "lightning_flash_accumulation",
		Description:  "Accumulated count of lightning flashes in the grid square.",
		Unit:         "1",
		StandardName: "number_of_lightning_flashes_per_unit_area",
		LevelType:    LevelSurface,
	},
	{
		ID:           "pressure_at_surface",
		Description:  "Air pressure at the surface.",
		Unit:         "Pa",
		StandardName: "surface_air_pressure",
		LevelType:    LevelSurface,
	},
	{
		ID:           "radiation_flux_in_shortwave_diffuse_downward_at_surface",
		Description:  `Diffuse shortwave radiation at the surface from above directed at the ground. In accordance with common usage in geophysical disciplines "flux" implies per unit area called "flux density" in physics.`,
		Unit:         "W m-2",
		StandardName: "surface_diffusive_downwelling_shortwave_flux_in_air",
		LevelType:    LevelSurface,
	},
	{
		ID:           "sensible_heat_flux_at_surface",
		Description:  `Exchange of heat between the surface and the air by motion of air; also called "turbulent" heat flux. In accordance with common usage in geophysical disciplines "flux" implies per unit area called "flux density" in physics. Upwards is positive; negative is downward.`,
		Unit:         "W m-2",
		StandardName: "surface_upward_sensible_heat_flux",
		LevelType:    LevelSurface,
	},
	{
		ID:           "snowfall_accumulation",
		Description:  "Implied depth of snow (as liquid water equivalent) which has been deposited on the surface.",
		Unit:         "m",
		StandardName: "lwe_thickness_of_snowfall_amount",
		LevelType:    LevelSurface,
	},
}

func concatVariables(groups ...[]VariableDefinition) []VariableDefinition {
	var out []VariableDefinition
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func variableIDs(vars []VariableDefinition) []string {
	ids := make([]string, len(vars))
	for i, v := range vars {
		ids[i] = v.ID
	}
	return ids
}
