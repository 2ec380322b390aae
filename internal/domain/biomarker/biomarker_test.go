package biomarker_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/okian/vitals/internal/domain/biomarker"
	"github.com/okian/vitals/internal/domain/model"
	"github.com/okian/vitals/internal/domain/polarity"
	"github.com/okian/vitals/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifier_Scenarios(t *testing.T) {
	Convey("Given a classifier with the default polarity table", t, func() {
		c := biomarker.New()

		Convey("When glucose is high and trending up", func() {
			got := c.Classify(model.Reading{
				ID: "glucose", Status: model.StatusHigh, Trend: model.TrendUp, TrendPercent: 12,
			})

			Convey("Then the trend should be worsening", func() {
				So(got.StatusColor, ShouldEqual, types.ColorOrangeRed)
				So(got.Polarity, ShouldEqual, types.LowerIsBetter)
				So(got.IsGoodTrend, ShouldBeFalse)
				So(got.TrendColor, ShouldEqual, types.ColorRed)
				So(got.TrendLabel, ShouldEqual, "Worsening")
				So(got.Glyph, ShouldEqual, types.GlyphArrowUp)
				So(got.ShowPercent, ShouldBeTrue)
				So(got.PercentText, ShouldEqual, "12%")
			})
		})

		Convey("When HDL is optimal and trending up", func() {
			got := c.Classify(model.Reading{
				ID: "hdl_cholesterol", Status: model.StatusOptimal, Trend: model.TrendUp, TrendPercent: 5,
			})

			Convey("Then polarity should default and the trend should be improving", func() {
				So(got.StatusColor, ShouldEqual, types.ColorGreenStrong)
				So(got.Polarity, ShouldEqual, types.HigherIsBetter)
				So(got.IsGoodTrend, ShouldBeTrue)
				So(got.TrendColor, ShouldEqual, types.ColorGreen)
				So(got.TrendLabel, ShouldEqual, "Improving")
			})
		})
	})
}

func TestClassifier_Polarity(t *testing.T) {
	Convey("Given a classifier with the default polarity table", t, func() {
		c := biomarker.New()

		Convey("When any lower-is-better id trends down", func() {
			Convey("Then it should be improving", func() {
				for _, id := range polarity.Default().IDs() {
					got := c.Classify(model.Reading{ID: id, Status: model.StatusNormal, Trend: model.TrendDown, TrendPercent: 3})
					So(got.IsGoodTrend, ShouldBeTrue)
					So(got.TrendColor, ShouldEqual, types.ColorGreen)
					So(got.TrendLabel, ShouldEqual, "Improving")
					So(got.Glyph, ShouldEqual, types.GlyphArrowDown)
				}
			})
		})

		Convey("When an unlisted id trends down", func() {
			got := c.Classify(model.Reading{ID: "vitamin_d", Status: model.StatusLow, Trend: model.TrendDown, TrendPercent: 8})

			Convey("Then it should be worsening", func() {
				So(got.IsGoodTrend, ShouldBeFalse)
				So(got.TrendColor, ShouldEqual, types.ColorRed)
				So(got.TrendLabel, ShouldEqual, "Worsening")
				So(got.Glyph, ShouldEqual, types.GlyphArrowDown)
			})
		})

		Convey("When a misspelled lower-is-better id trends down", func() {
			got := c.Classify(model.Reading{ID: "LDL_cholesterol", Trend: model.TrendDown})

			Convey("Then it should fall back to higher-is-better", func() {
				So(got.Polarity, ShouldEqual, types.HigherIsBetter)
				So(got.TrendLabel, ShouldEqual, "Worsening")
			})
		})
	})

	Convey("Given a classifier with an injected table", t, func() {
		c := biomarker.New(biomarker.WithPolarityTable(polarity.New("triglycerides")))

		Convey("Then only the injected ids should be lower-is-better", func() {
			So(c.Classify(model.Reading{ID: "triglycerides", Trend: model.TrendDown}).IsGoodTrend, ShouldBeTrue)
			So(c.Classify(model.Reading{ID: "glucose", Trend: model.TrendDown}).IsGoodTrend, ShouldBeFalse)
			So(c.Table().IDs(), ShouldResemble, []string{"triglycerides"})
		})
	})

	Convey("Given a nil table option", t, func() {
		c := biomarker.New(biomarker.WithPolarityTable(nil))

		Convey("Then the default table should be kept", func() {
			So(c.Table().Len(), ShouldEqual, 4)
		})
	})
}

func TestClassifier_Stable(t *testing.T) {
	Convey("Given stable readings", t, func() {
		c := biomarker.New()

		Convey("When the id is lower-is-better or not", func() {
			Convey("Then both should be gray and stable with no percent", func() {
				for _, id := range []string{"glucose", "hdl_cholesterol"} {
					got := c.Classify(model.Reading{ID: id, Status: model.StatusNormal, Trend: model.TrendStable, TrendPercent: 7})
					So(got.TrendColor, ShouldEqual, types.ColorGray)
					So(got.TrendLabel, ShouldEqual, "Stable")
					So(got.IsGoodTrend, ShouldBeFalse)
					So(got.Glyph, ShouldEqual, types.GlyphFlat)
					So(got.ShowPercent, ShouldBeFalse)
					So(got.PercentText, ShouldEqual, "")
				}
			})
		})
	})
}

func TestClassifier_Fallbacks(t *testing.T) {
	Convey("Given out-of-enum inputs", t, func() {
		c := biomarker.New()

		Convey("When the status is unknown", func() {
			got := c.Classify(model.Reading{ID: "glucose", Status: "elevated", Trend: model.TrendUp})

			Convey("Then the status colour should be gray", func() {
				So(got.StatusColor, ShouldEqual, types.ColorGray)
				So(got.Status, ShouldEqual, "elevated")
			})
		})

		Convey("When the trend is unknown", func() {
			got := c.Classify(model.Reading{ID: "glucose", Status: model.StatusNormal, Trend: "sideways", TrendPercent: 4})

			Convey("Then it should render neutrally", func() {
				So(got.TrendColor, ShouldEqual, types.ColorGray)
				So(got.TrendLabel, ShouldEqual, "Stable")
				So(got.Glyph, ShouldEqual, types.GlyphFlat)
				So(got.ShowPercent, ShouldBeFalse)
			})
		})
	})
}

func TestClassifier_Percent(t *testing.T) {
	Convey("Given trend magnitudes outside the usual range", t, func() {
		c := biomarker.New()

		Convey("When the percent is negative or above 100", func() {
			neg := c.Classify(model.Reading{ID: "glucose", Trend: model.TrendDown, TrendPercent: -5})
			big := c.Classify(model.Reading{ID: "glucose", Trend: model.TrendUp, TrendPercent: 250.5})

			Convey("Then they should pass through unclamped", func() {
				So(neg.PercentText, ShouldEqual, "-5%")
				So(big.PercentText, ShouldEqual, "250.5%")
			})
		})
	})
}

func TestStatusColor(t *testing.T) {
	Convey("Given every status", t, func() {
		So(biomarker.StatusColor(model.StatusOptimal), ShouldEqual, types.ColorGreenStrong)
		So(biomarker.StatusColor(model.StatusNormal), ShouldEqual, types.ColorGreenMedium)
		So(biomarker.StatusColor(model.StatusBorderline), ShouldEqual, types.ColorOrange)
		So(biomarker.StatusColor(model.StatusHigh), ShouldEqual, types.ColorOrangeRed)
		So(biomarker.StatusColor(model.StatusLow), ShouldEqual, types.ColorRed)
		So(biomarker.StatusColor(""), ShouldEqual, types.ColorGray)
	})
}

func TestClassifier_Idempotent(t *testing.T) {
	Convey("Given a reading classified concurrently", t, func() {
		c := biomarker.New()
		r := model.Reading{ID: "creatinine", Name: "Creatinine", Unit: "mg/dL", Value: 0.9,
			Status: model.StatusBorderline, Trend: model.TrendDown, TrendPercent: 2.5}
		want := c.Classify(r)

		var wg sync.WaitGroup
		got := make([]types.Biomarker, 32)
		for i := range got {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				got[i] = c.Classify(r)
			}(i)
		}
		wg.Wait()

		Convey("Then every result should equal the first", func() {
			for _, g := range got {
				So(g, ShouldResemble, want)
			}
			So(want.Name, ShouldEqual, "Creatinine")
			So(want.Value, ShouldEqual, 0.9)
		})
	})
}

func TestClassifier_IgnoresValue(t *testing.T) {
	Convey("Given readings that differ only in value", t, func() {
		c := biomarker.New()
		base := model.Reading{ID: "ldl_cholesterol", Status: model.StatusBorderline, Trend: model.TrendDown, TrendPercent: 7.5}
		want := c.Classify(base)

		for _, v := range []float64{0, -1, 1e9, math.NaN()} {
			r := base
			r.Value = v
			got := c.Classify(r)

			Convey(fmt.Sprintf("Then value %v leaves the verdict unchanged", v), func() {
				So(got.StatusColor, ShouldEqual, want.StatusColor)
				So(got.TrendColor, ShouldEqual, want.TrendColor)
				So(got.TrendLabel, ShouldEqual, want.TrendLabel)
				So(got.IsGoodTrend, ShouldEqual, want.IsGoodTrend)
				So(got.Glyph, ShouldEqual, want.Glyph)
				So(got.ShowPercent, ShouldEqual, want.ShowPercent)
				So(got.PercentText, ShouldEqual, want.PercentText)
				So(got.Polarity, ShouldEqual, want.Polarity)
			})
		}

		Convey("Then the shared verdict is the lower-is-better improvement", func() {
			So(want.StatusColor, ShouldEqual, types.ColorOrange)
			So(want.IsGoodTrend, ShouldBeTrue)
			So(want.TrendLabel, ShouldEqual, types.LabelImproving)
			So(want.PercentText, ShouldEqual, "7.5%")
		})
	})
}
