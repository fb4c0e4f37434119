package svg

// Theme holds the color variables diagram renderers draw with. Renderers
// apply these as presentation attributes, so documents carry no stylesheet
// and render identically everywhere.
type Theme struct {
	Name string

	Background string
	NodeFill   string
	NodeBorder string
	NodeText   string
	LineColor  string
	TextColor  string

	ClusterFill   string
	ClusterBorder string

	NoteFill   string
	NoteBorder string

	ActorFill   string
	ActorBorder string

	GridColor string

	// Accents is the palette cycled through for pie slices, gantt sections
	// and similar enumerated fills.
	Accents []string
}

var themes = map[string]Theme{
	"default": {
		Name:          "default",
		Background:    "#ffffff",
		NodeFill:      "#ececff",
		NodeBorder:    "#9370db",
		NodeText:      "#333333",
		LineColor:     "#333333",
		TextColor:     "#333333",
		ClusterFill:   "#ffffde",
		ClusterBorder: "#aaaa33",
		NoteFill:      "#fff5ad",
		NoteBorder:    "#aaaa33",
		ActorFill:     "#ececff",
		ActorBorder:   "#9370db",
		GridColor:     "#e0e0e0",
		Accents: []string{
			"#7c88d8", "#f4a6c0", "#a3e6c2", "#f6c177", "#c6a8f0", "#f3d97b", "#8fd5e8", "#f4b98f",
		},
	},
	"dark": {
		Name:          "dark",
		Background:    "#2b2b33",
		NodeFill:      "#1f2937",
		NodeBorder:    "#81b1db",
		NodeText:      "#e5e7eb",
		LineColor:     "#9ca3af",
		TextColor:     "#e5e7eb",
		ClusterFill:   "#1f2430",
		ClusterBorder: "#4b5563",
		NoteFill:      "#44413a",
		NoteBorder:    "#8a8157",
		ActorFill:     "#1f2937",
		ActorBorder:   "#81b1db",
		GridColor:     "#3f3f46",
		Accents: []string{
			"#5b6bc0", "#b05c78", "#4f9d69", "#b08940", "#7e57c2", "#948c3a", "#3f8fa3", "#b06a45",
		},
	},
	"forest": {
		Name:          "forest",
		Background:    "#ffffff",
		NodeFill:      "#cde498",
		NodeBorder:    "#13540c",
		NodeText:      "#333333",
		LineColor:     "#467346",
		TextColor:     "#333333",
		ClusterFill:   "#e8f5d0",
		ClusterBorder: "#6eaa49",
		NoteFill:      "#fff5ad",
		NoteBorder:    "#aaaa33",
		ActorFill:     "#cde498",
		ActorBorder:   "#13540c",
		GridColor:     "#d8e8c8",
		Accents: []string{
			"#6eaa49", "#a3c981", "#4f7942", "#c2d99a", "#2f5d2f", "#8fbc6f", "#5c8a50", "#b5d18e",
		},
	},
	"neutral": {
		Name:          "neutral",
		Background:    "#ffffff",
		NodeFill:      "#eeeeee",
		NodeBorder:    "#999999",
		NodeText:      "#222222",
		LineColor:     "#666666",
		TextColor:     "#222222",
		ClusterFill:   "#f6f6f6",
		ClusterBorder: "#bbbbbb",
		NoteFill:      "#f4f4f4",
		NoteBorder:    "#aaaaaa",
		ActorFill:     "#eeeeee",
		ActorBorder:   "#999999",
		GridColor:     "#e5e5e5",
		Accents: []string{
			"#555555", "#888888", "#aaaaaa", "#666666", "#999999", "#777777", "#bbbbbb", "#444444",
		},
	},
}

// Named returns the theme with the given name, falling back to the default
// theme for unknown names.
func Named(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

// Accent returns the palette color for index i, cycling when i exceeds the
// palette length.
func (t Theme) Accent(i int) string {
	if len(t.Accents) == 0 {
		return t.NodeFill
	}
	return t.Accents[((i%len(t.Accents))+len(t.Accents))%len(t.Accents)]
}
