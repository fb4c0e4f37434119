package core

// Security levels controlling how much trust rendered output places in the
// diagram source text.
const (
	// SecurityStrict encodes all HTML-significant characters in labels.
	SecurityStrict = "strict"
	// SecurityLoose passes label text through unencoded.
	SecurityLoose = "loose"
	// SecurityAntiscript encodes script content but allows other markup.
	SecurityAntiscript = "antiscript"
)

// DefaultMaxTextSize is the size limit applied to diagram source text when no
// explicit maxTextSize is configured.
const DefaultMaxTextSize = 50000

// Config is the effective diagram configuration: baseline defaults overlaid
// with site-level configuration and any render-scoped directive overrides.
type Config struct {
	Theme         string `koanf:"theme"`
	FontFamily    string `koanf:"fontFamily"`
	FontSize      int    `koanf:"fontSize"`
	SecurityLevel string `koanf:"securityLevel"`
	MaxTextSize   int    `koanf:"maxTextSize"`

	// Wrap is forced on when the source text carries a wrap directive.
	Wrap bool `koanf:"wrap"`

	Flowchart FlowchartConfig `koanf:"flowchart"`
	Sequence  SequenceConfig  `koanf:"sequence"`
	Gantt     GanttConfig     `koanf:"gantt"`
	Pie       PieConfig       `koanf:"pie"`
}

// FlowchartConfig holds flowchart layout settings.
type FlowchartConfig struct {
	NodeSpacing int    `koanf:"nodeSpacing"` // gap between nodes in one rank
	RankSpacing int    `koanf:"rankSpacing"` // gap between ranks
	Padding     int    `koanf:"padding"`     // inner node padding
	Curve       string `koanf:"curve"`       // linear, step
}

// SequenceConfig holds sequence diagram layout settings.
type SequenceConfig struct {
	DiagramMarginX      int  `koanf:"diagramMarginX"`
	DiagramMarginY      int  `koanf:"diagramMarginY"`
	ActorMargin         int  `koanf:"actorMargin"`   // gap between actor boxes
	Width               int  `koanf:"width"`         // actor box width
	Height              int  `koanf:"height"`        // actor box height
	BoxMargin           int  `koanf:"boxMargin"`     // margin around loop/alt frames
	NoteMargin          int  `koanf:"noteMargin"`    // margin around notes
	MessageMargin       int  `koanf:"messageMargin"` // vertical step per message
	MirrorActors        bool `koanf:"mirrorActors"`  // repeat actor boxes at the bottom
	ShowSequenceNumbers bool `koanf:"showSequenceNumbers"`
}

// GanttConfig holds gantt chart layout settings.
type GanttConfig struct {
	TitleTopMargin      int    `koanf:"titleTopMargin"`
	BarHeight           int    `koanf:"barHeight"`
	BarGap              int    `koanf:"barGap"`
	TopPadding          int    `koanf:"topPadding"`
	LeftPadding         int    `koanf:"leftPadding"`
	FontSize            int    `koanf:"fontSize"`
	SectionFontSize     int    `koanf:"sectionFontSize"`
	NumberSectionStyles int    `koanf:"numberSectionStyles"`
	AxisFormat          string `koanf:"axisFormat"` // Go time layout for axis labels

	// DisplayMode selects an alternate layout. The only recognized value is
	// "compact", which packs each section onto a single row. Legacy sources
	// set this through a top-level displayMode front matter field.
	DisplayMode string `koanf:"displayMode"`
}

// PieConfig holds pie chart layout settings.
type PieConfig struct {
	// TextPosition is the radial position of slice labels, 0 (center) to 1 (rim).
	TextPosition float64 `koanf:"textPosition"`
}

// DefaultConfig returns the baseline configuration. Callers own the returned
// value and may mutate it freely.
func DefaultConfig() *Config {
	return &Config{
		Theme:         "default",
		FontFamily:    `"trebuchet ms", verdana, arial, sans-serif`,
		FontSize:      16,
		SecurityLevel: SecurityStrict,
		MaxTextSize:   DefaultMaxTextSize,
		Flowchart: FlowchartConfig{
			NodeSpacing: 50,
			RankSpacing: 50,
			Padding:     15,
			Curve:       "linear",
		},
		Sequence: SequenceConfig{
			DiagramMarginX:      50,
			DiagramMarginY:      10,
			ActorMargin:         50,
			Width:               150,
			Height:              65,
			BoxMargin:           10,
			NoteMargin:          10,
			MessageMargin:       35,
			MirrorActors:        true,
			ShowSequenceNumbers: false,
		},
		Gantt: GanttConfig{
			TitleTopMargin:      25,
			BarHeight:           20,
			BarGap:              4,
			TopPadding:          50,
			LeftPadding:         75,
			FontSize:            11,
			SectionFontSize:     11,
			NumberSectionStyles: 4,
			AxisFormat:          "2006-01-02",
		},
		Pie: PieConfig{
			TextPosition: 0.75,
		},
	}
}
