package config

const (
	// DefaultTheme is the theme applied when neither the config file
	// nor a flag selects one.
	DefaultTheme = "default"

	// DefaultAddr is the address the preview server binds to by default.
	DefaultAddr = "localhost:7420"
)

// Config holds all CLI configuration options.
type Config struct {
	// Theme selects the color theme used for rendered diagrams.
	Theme string `koanf:"theme"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Site holds diagram configuration applied to every render before
	// any in-document directives. Keys mirror the directive payload,
	// for example {"pie": {"textPosition": 0.5}}.
	Site map[string]any `koanf:"site"`

	// Serve configures the preview server.
	Serve ServeConfig `koanf:"serve"`
}

// ServeConfig holds configuration for the scrawl serve command.
type ServeConfig struct {
	// Addr is the host:port the preview server listens on.
	Addr string `koanf:"addr"`

	// Store is the path of the snippet database. Empty disables
	// persistence; ":memory:" keeps snippets for the lifetime of the
	// process only.
	Store string `koanf:"store"`

	// Watch is a directory watched for diagram file changes. Saved
	// files are re-rendered and pushed to connected browsers.
	Watch string `koanf:"watch"`
}

// SiteConfig returns the site configuration with the selected theme
// folded in, ready to hand to diagram.Initialize. A theme set in the
// site map wins unless a non-default theme was selected explicitly.
func (c *Config) SiteConfig() map[string]any {
	site := make(map[string]any, len(c.Site)+1)
	for k, v := range c.Site {
		site[k] = v
	}
	if c.Theme != DefaultTheme || site["theme"] == nil {
		site["theme"] = c.Theme
	}
	return site
}
