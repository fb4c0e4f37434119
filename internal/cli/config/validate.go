package config

import (
	"fmt"
	"sort"
	"strings"
)

// knownThemes are the theme names rendered diagrams understand.
var knownThemes = map[string]bool{
	"default": true,
	"dark":    true,
	"forest":  true,
	"neutral": true,
}

// ThemeNames returns the known theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(knownThemes))
	for name := range knownThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !knownThemes[c.Theme] {
		return fmt.Errorf("unknown theme %q (known themes: %s)", c.Theme, strings.Join(ThemeNames(), ", "))
	}
	if !strings.Contains(c.Serve.Addr, ":") {
		return fmt.Errorf("serve address %q must be host:port", c.Serve.Addr)
	}
	return nil
}
