package diagram

import (
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"github.com/scrawl-labs/scrawl/pkg/core"
)

// baseSecureKeys are configuration keys a document may never override
// through directives, regardless of site configuration. The site config
// "secure" key extends this list.
var baseSecureKeys = []string{"secure", "securityLevel", "maxTextSize"}

var (
	configMu   sync.Mutex
	siteConfig = map[string]any{}
	overlays   []map[string]any
)

// Initialize replaces the site configuration with the given overrides on top
// of the built-in defaults and drops any directive overlays. Call it once at
// startup; calling it again restarts configuration state from scratch.
func Initialize(overrides map[string]any) {
	configMu.Lock()
	defer configMu.Unlock()
	siteConfig = mergeConfig(nil, overrides)
	overlays = nil
}

// UpdateSiteConfig deep-merges more site-level configuration into the
// current site config.
func UpdateSiteConfig(m map[string]any) {
	configMu.Lock()
	defer configMu.Unlock()
	siteConfig = mergeConfig(siteConfig, m)
}

// SiteConfig returns a copy of the site configuration map.
func SiteConfig() map[string]any {
	configMu.Lock()
	defer configMu.Unlock()
	return mergeConfig(nil, siteConfig)
}

// AddDirectives pushes a render-scoped configuration overlay, typically the
// merged config a preprocessed document carried. Secure keys are stripped at
// every nesting level; a document cannot raise its own size limit or relax
// the security level.
func AddDirectives(m map[string]any) {
	if len(m) == 0 {
		return
	}
	configMu.Lock()
	defer configMu.Unlock()
	overlay := mergeConfig(nil, m)
	sanitizeDirective(overlay, secureKeysLocked())
	overlays = append(overlays, overlay)
}

// ResetConfig drops all directive overlays, returning the effective
// configuration to the site configuration. Site config survives.
func ResetConfig() {
	configMu.Lock()
	defer configMu.Unlock()
	overlays = nil
}

// ResetAll drops directive overlays and the site configuration both. Test
// hook.
func ResetAll() {
	configMu.Lock()
	defer configMu.Unlock()
	siteConfig = map[string]any{}
	overlays = nil
}

// CurrentConfig returns the effective configuration: defaults overlaid with
// site config and any directive overlays, decoded into the typed form.
func CurrentConfig() *core.Config {
	configMu.Lock()
	defer configMu.Unlock()

	merged := mergeConfig(nil, siteConfig)
	for _, o := range overlays {
		merged = mergeConfig(merged, o)
	}

	cfg := core.DefaultConfig()
	// Values that cannot decode into their typed field are skipped; the
	// default for that field stands.
	_ = decodeConfig(merged, cfg)
	return cfg
}

func decodeConfig(m map[string]any, out *core.Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "koanf",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(m)
}

// secureKeysLocked returns the effective secure key list: the built-in set
// plus any strings under the site config "secure" key. Caller holds configMu.
func secureKeysLocked() map[string]bool {
	keys := make(map[string]bool, len(baseSecureKeys))
	for _, k := range baseSecureKeys {
		keys[k] = true
	}
	if extra, ok := siteConfig["secure"].([]any); ok {
		for _, v := range extra {
			if s, ok := v.(string); ok {
				keys[s] = true
			}
		}
	}
	return keys
}

// sanitizeDirective removes secure keys and dunder keys from a directive
// overlay at every nesting level, in place.
func sanitizeDirective(m map[string]any, secure map[string]bool) {
	for key, v := range m {
		if secure[key] || strings.HasPrefix(key, "__") {
			delete(m, key)
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			sanitizeDirective(nested, secure)
		}
	}
}
