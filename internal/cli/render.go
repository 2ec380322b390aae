package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/okian/vitals/internal/domain/types"
)

const progressWidth = 20

type renderer struct {
	w       io.Writer
	noColor bool
}

func newRenderer(w io.Writer, noColor bool) *renderer {
	return &renderer{w: w, noColor: noColor}
}

// paint wraps s in the terminal colour closest to token c.
func (r *renderer) paint(c types.Color, s string) string {
	var col *color.Color
	switch c {
	case types.ColorGreenStrong:
		col = color.New(color.FgGreen, color.Bold)
	case types.ColorGreen, types.ColorGreenMedium:
		col = color.New(color.FgGreen)
	case types.ColorLightGreen:
		col = color.New(color.FgHiGreen)
	case types.ColorOrange:
		col = color.New(color.FgYellow)
	case types.ColorRedOrange, types.ColorOrangeRed:
		col = color.New(color.FgHiRed)
	case types.ColorRed:
		col = color.New(color.FgRed, color.Bold)
	case types.ColorGray:
		col = color.New(color.FgHiBlack)
	default:
		col = color.New(color.FgHiBlack)
	}
	if r.noColor {
		col.DisableColor()
	}
	return col.Sprint(s)
}

func (r *renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *renderer) score(b types.ScoreBand) {
	filled := int(math.Round(b.Progress * progressWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled)
	r.printf("%s  %s  %s %s\n",
		r.paint(b.Color, fmt.Sprintf("%-9s", b.Label)),
		formatNumber(b.Score),
		r.paint(b.Color, bar),
		fmt.Sprintf("%.0f%%", b.Progress*100),
	)
}

// trendText renders the glyph, percent (when shown) and label.
func (r *renderer) trendText(b types.Biomarker) string {
	parts := []string{b.Glyph.Symbol()}
	if b.ShowPercent {
		parts = append(parts, b.PercentText)
	}
	parts = append(parts, b.TrendLabel)
	return r.paint(b.TrendColor, strings.Join(parts, " "))
}

func (r *renderer) biomarker(b types.Biomarker) {
	name := b.Name
	if name == "" {
		name = b.ID
	}
	value := formatNumber(b.Value)
	if b.Unit != "" {
		value += " " + b.Unit
	}
	r.printf("%-22s %-14s %s  %s\n",
		name,
		value,
		r.paint(b.StatusColor, fmt.Sprintf("%-10s", b.Status)),
		r.trendText(b),
	)
}

func (r *renderer) panel(p types.Panel) {
	r.printf("%-22s %-14s %-10s  %s\n", "BIOMARKER", "VALUE", "STATUS", "TREND")
	r.printf("%s\n", strings.Repeat("─", 64))
	for _, b := range p.Results {
		r.biomarker(b)
	}
	s := p.Summary
	r.printf("\n%d readings: %s, %s, %s\n",
		s.Total,
		r.paint(types.ColorGreen, fmt.Sprintf("%d improving", s.Improving)),
		r.paint(types.ColorRed, fmt.Sprintf("%d worsening", s.Worsening)),
		r.paint(types.ColorGray, fmt.Sprintf("%d stable", s.Stable)),
	)
	if len(s.NeedsAttention) > 0 {
		r.printf("needs attention: %s\n", strings.Join(s.NeedsAttention, ", "))
	}
}

func formatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
