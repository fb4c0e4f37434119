package diagram

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// mergeConfig deep-merges override into base. Nested maps merge key by key;
// scalars and arrays replace. Neither input is mutated and either may be nil.
// The result is always a fresh non-nil map.
func mergeConfig(base, override map[string]any) map[string]any {
	k := koanf.New(".")
	if len(base) > 0 {
		_ = k.Load(confmap.Provider(base, ""), nil)
	}
	if len(override) > 0 {
		_ = k.Load(confmap.Provider(override, ""), nil)
	}
	return k.Raw()
}
