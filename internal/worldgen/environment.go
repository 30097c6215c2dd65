package worldgen

// ComposeEnvironment derives environment settings from a theme profile. The
// per-world-type base table always yields a value; override rules are applied
// in keyword-weight-descending order and each field is overridden at most
// once, so the result does not depend on map iteration order.
func ComposeEnvironment(profile ThemeProfile, tables Tables) EnvironmentSettings {
	settings, ok := tables.Environments[profile.WorldType]
	if !ok {
		settings = tables.Environments[WorldTypeRealistic]
	}

	overridden := make(map[EnvironmentField]bool, 4)
	for _, kw := range profile.TopKeywords(len(profile.Keywords)) {
		for _, rule := range tables.Overrides {
			if rule.Keyword != kw || overridden[rule.Field] {
				continue
			}
			switch rule.Field {
			case FieldLighting:
				settings.Lighting = rule.Value
			case FieldWeather:
				settings.Weather = rule.Value
			case FieldAmbientSound:
				settings.AmbientSound = rule.Value
			case FieldSkybox:
				settings.Skybox = rule.Value
			}
			overridden[rule.Field] = true
		}
	}

	return settings
}
