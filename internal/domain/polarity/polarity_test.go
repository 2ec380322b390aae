package polarity_test

import (
	"sync"
	"testing"

	"github.com/okian/vitals/internal/domain/polarity"
	"github.com/okian/vitals/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultTable(t *testing.T) {
	Convey("Given the default polarity table", t, func() {
		tbl := polarity.Default()

		Convey("Then it should list the built-in lower-is-better ids", func() {
			So(tbl.IDs(), ShouldResemble, []string{"creatinine", "glucose", "ldl_cholesterol", "total_cholesterol"})
			So(tbl.Len(), ShouldEqual, 4)
		})

		Convey("When looking up a listed id", func() {
			Convey("Then it should be lower-is-better", func() {
				So(tbl.Contains("glucose"), ShouldBeTrue)
				So(tbl.Of("ldl_cholesterol"), ShouldEqual, types.LowerIsBetter)
			})
		})

		Convey("When looking up an unlisted id", func() {
			Convey("Then it should default to higher-is-better", func() {
				So(tbl.Contains("hdl_cholesterol"), ShouldBeFalse)
				So(tbl.Of("hdl_cholesterol"), ShouldEqual, types.HigherIsBetter)
			})
		})

		Convey("When the id differs by spelling or case", func() {
			Convey("Then the lookup should not match", func() {
				So(tbl.Of("Glucose"), ShouldEqual, types.HigherIsBetter)
				So(tbl.Of("ldl-cholesterol"), ShouldEqual, types.HigherIsBetter)
				So(tbl.Of(" glucose"), ShouldEqual, types.HigherIsBetter)
			})
		})
	})
}

func TestNewTable(t *testing.T) {
	Convey("Given ids used to build a table", t, func() {
		ids := []string{"triglycerides", "", "glucose"}
		tbl := polarity.New(ids...)

		Convey("Then empty ids should be ignored", func() {
			So(tbl.Len(), ShouldEqual, 2)
			So(tbl.Contains(""), ShouldBeFalse)
		})

		Convey("When the input slice is modified afterwards", func() {
			ids[0] = "vitamin_d"

			Convey("Then the table should be unaffected", func() {
				So(tbl.Contains("triglycerides"), ShouldBeTrue)
				So(tbl.Contains("vitamin_d"), ShouldBeFalse)
			})
		})

		Convey("When the returned ids are modified", func() {
			out := tbl.IDs()
			out[0] = "mutated"

			Convey("Then the table should be unaffected", func() {
				So(tbl.IDs(), ShouldResemble, []string{"glucose", "triglycerides"})
			})
		})
	})

	Convey("Given a nil or empty table", t, func() {
		var nilTable *polarity.Table
		empty := &polarity.Table{}

		Convey("Then every id should be higher-is-better", func() {
			So(nilTable.Of("glucose"), ShouldEqual, types.HigherIsBetter)
			So(empty.Of("glucose"), ShouldEqual, types.HigherIsBetter)
			So(nilTable.IDs(), ShouldBeEmpty)
			So(nilTable.Len(), ShouldEqual, 0)
		})
	})
}

func TestTableConcurrentReads(t *testing.T) {
	Convey("Given a shared table", t, func() {
		tbl := polarity.Default()

		Convey("When read from many goroutines", func() {
			var wg sync.WaitGroup
			results := make([]types.Polarity, 64)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i] = tbl.Of("creatinine")
				}(i)
			}
			wg.Wait()

			Convey("Then every read should agree", func() {
				for _, p := range results {
					So(p, ShouldEqual, types.LowerIsBetter)
				}
			})
		})
	})
}
