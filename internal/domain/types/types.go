// Package types contains the presentation descriptors emitted by the
// classifiers and shared by every rendering layer.
package types

// Color is a semantic colour token. Renderers resolve it through Hex.
type Color string

// Colour tokens used by the score bands, biomarker statuses and trends.
const (
	ColorGreen       Color = "green"
	ColorLightGreen  Color = "light-green"
	ColorGreenStrong Color = "green-strong"
	ColorGreenMedium Color = "green-medium"
	ColorOrange      Color = "orange"
	ColorRedOrange   Color = "red-orange"
	ColorOrangeRed   Color = "orange-red"
	ColorRed         Color = "red"
	ColorGray        Color = "gray"
)

var palette = map[Color]string{
	ColorGreen:       "#22C55E",
	ColorLightGreen:  "#84CC16",
	ColorGreenStrong: "#16A34A",
	ColorGreenMedium: "#4ADE80",
	ColorOrange:      "#F59E0B",
	ColorRedOrange:   "#F97316",
	ColorOrangeRed:   "#EA580C",
	ColorRed:         "#EF4444",
	ColorGray:        "#9CA3AF",
}

// Hex returns the hex value for c, falling back to the gray swatch.
func (c Color) Hex() string {
	if h, ok := palette[c]; ok {
		return h
	}
	return palette[ColorGray]
}

// Glyph selects the trend arrow shown next to a biomarker.
type Glyph string

// Trend glyphs.
const (
	GlyphArrowUp   Glyph = "arrow-up"
	GlyphArrowDown Glyph = "arrow-down"
	GlyphFlat      Glyph = "flat"
)

// Symbol returns a printable rune for terminal renderers.
func (g Glyph) Symbol() string {
	switch g {
	case GlyphArrowUp:
		return "↑"
	case GlyphArrowDown:
		return "↓"
	case GlyphFlat:
		return "→"
	default:
		return "→"
	}
}

// Polarity is the clinically favourable direction for a biomarker.
type Polarity string

// Polarities.
const (
	HigherIsBetter Polarity = "higher-is-better"
	LowerIsBetter  Polarity = "lower-is-better"
)

// Band is the qualitative band of an aggregate health score.
type Band string

// Score bands, high to low.
const (
	BandExcellent Band = "EXCELLENT"
	BandGood      Band = "GOOD"
	BandFair      Band = "FAIR"
	BandPoor      Band = "POOR"
	BandCritical  Band = "CRITICAL"
)

// Trend labels.
const (
	LabelStable    = "Stable"
	LabelImproving = "Improving"
	LabelWorsening = "Worsening"
)

// ScoreBand describes how an aggregate score is presented.
type ScoreBand struct {
	Score    float64 `json:"score"`
	Band     Band    `json:"band"`
	Label    string  `json:"label"`
	Color    Color   `json:"color"`
	Hex      string  `json:"hex"`
	Progress float64 `json:"progress"` // clamp(score, 0, 100) / 100
}

// Biomarker describes how a single reading is presented.
type Biomarker struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	LastUpdated string   `json:"last_updated,omitempty"`
	Value       float64  `json:"value"`
	Status      string   `json:"status"`
	StatusColor Color    `json:"status_color"`
	Polarity    Polarity `json:"polarity"`
	IsGoodTrend bool     `json:"is_good_trend"`
	TrendColor  Color    `json:"trend_color"`
	TrendLabel  string   `json:"trend_label"`
	Glyph       Glyph    `json:"glyph"`
	ShowPercent bool     `json:"show_percent"`
	PercentText string   `json:"percent_text,omitempty"`
}

// PanelSummary aggregates a classified lab panel.
type PanelSummary struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	Improving      int            `json:"improving"`
	Worsening      int            `json:"worsening"`
	Stable         int            `json:"stable"`
	NeedsAttention []string       `json:"needs_attention"` // ids with borderline, high or low status, in input order
}

// Panel is a classified lab results list.
type Panel struct {
	Results []Biomarker  `json:"results"`
	Summary PanelSummary `json:"summary"`
}
