package factory

import "maps"

// merge layers the overrides on top of defaults, later maps winning.
func merge(defaults map[string]any, overrides []map[string]any) map[string]any {
	merged := maps.Clone(defaults)

	for _, data := range overrides {
		maps.Copy(merged, data)
	}

	return merged
}
