package smoketest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/vitals/internal/adapters/http/api"
	service "github.com/okian/vitals/internal/app"
	"github.com/okian/vitals/internal/domain/types"
	"github.com/okian/vitals/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newTarget(opts ...service.Option) *httptest.Server {
	svc := service.New(append([]service.Option{service.WithMetrics(false)}, opts...)...)
	mux := http.NewServeMux()
	api.NewServer(svc, svc, logger.Named("api")).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func testConfig(url string) *Config {
	return &Config{BaseURL: url, NumReadings: 60, PanelSize: 25, Workers: 4, Timeout: 5 * time.Second}
}

func TestRun(t *testing.T) {
	Convey("Given a running vitals server", t, func() {
		So(logger.Init(logger.WithWriter(io.Discard)), ShouldBeNil)

		Convey("When the server uses the default polarity table", func() {
			ts := newTarget()
			defer ts.Close()

			stats, err := Run(context.Background(), testConfig(ts.URL))

			Convey("Then every reading matches the local classifier", func() {
				So(err, ShouldBeNil)
				So(stats.ReadingsGenerated, ShouldEqual, 60)
				So(stats.ReadingsSubmitted, ShouldEqual, 60)
				So(stats.ReadingsMatched, ShouldEqual, 60)
				So(stats.PanelsChecked, ShouldEqual, 3)
				So(stats.Mismatches, ShouldEqual, 0)
			})
		})

		Convey("When the server runs a configured polarity table", func() {
			ts := newTarget(service.WithLowerIsBetter([]string{"hdl_cholesterol", "ferritin"}))
			defer ts.Close()

			_, err := Run(context.Background(), testConfig(ts.URL))

			Convey("Then the local classifier mirrors it", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When panels exceed the server limit", func() {
			ts := newTarget(service.WithMaxPanelSize(10))
			defer ts.Close()

			stats, err := Run(context.Background(), testConfig(ts.URL))

			Convey("Then the run reports failed requests", func() {
				So(errors.Is(err, ErrRequest), ShouldBeTrue)
				So(stats.RequestsFailed, ShouldEqual, 3)
				So(stats.ReadingsMatched, ShouldEqual, 60)
			})
		})
	})
}

func TestRunDetectsMismatch(t *testing.T) {
	Convey("Given a server that always answers a fixed descriptor", t, func() {
		So(logger.Init(logger.WithWriter(io.Discard)), ShouldBeNil)
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		mux.HandleFunc("/v1/polarity", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"lower_is_better":[]}`))
		})
		mux.HandleFunc("/v1/biomarkers/classify", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(types.Biomarker{ID: "bogus"})
		})
		mux.HandleFunc("/v1/panels/classify", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(types.Panel{})
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		stats, err := Run(context.Background(), testConfig(ts.URL))

		Convey("Then the run fails with a mismatch", func() {
			So(errors.Is(err, ErrMismatch), ShouldBeTrue)
			So(stats.ReadingsMatched, ShouldEqual, 0)
			So(stats.Mismatches, ShouldEqual, 63)
		})
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Given smoke configs", t, func() {
		Convey("Then a zero reading count is allowed", func() {
			cfg := testConfig("http://unused")
			cfg.NumReadings = 0
			So(cfg.Validate(), ShouldBeNil)
		})

		cases := []struct {
			name   string
			mutate func(*Config)
		}{
			{"negative readings", func(c *Config) { c.NumReadings = -1 }},
			{"zero panel size", func(c *Config) { c.PanelSize = 0 }},
			{"zero workers", func(c *Config) { c.Workers = 0 }},
			{"negative workers", func(c *Config) { c.Workers = -3 }},
		}
		for _, tc := range cases {
			Convey("When the config has "+tc.name, func() {
				cfg := testConfig("http://unused")
				tc.mutate(cfg)

				Convey("Then Validate and Run reject it before any request", func() {
					So(errors.Is(cfg.Validate(), ErrInvalidConfig), ShouldBeTrue)

					stats, err := Run(context.Background(), cfg)
					So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
					So(stats, ShouldBeNil)
				})
			})
		}
	})
}

func TestRunUnhealthy(t *testing.T) {
	Convey("Given a target that is down", t, func() {
		So(logger.Init(logger.WithWriter(io.Discard)), ShouldBeNil)
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := Run(context.Background(), testConfig(ts.URL))

		Convey("Then the health check fails", func() {
			So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
		})
	})
}

func TestGenerateReadings(t *testing.T) {
	Convey("Given generated readings", t, func() {
		readings := generateReadings(40)

		Convey("Then they stay within the known enumerations", func() {
			So(len(readings), ShouldEqual, 40)
			for _, r := range readings {
				So(r.Status.Known(), ShouldBeTrue)
				So(r.Trend.Known(), ShouldBeTrue)
				So(r.TrendPercent, ShouldBeBetweenOrEqual, 0.0, float64(maxTrendPercent))
				So(r.ID, ShouldNotBeEmpty)
			}
			So(readings[0].ID, ShouldStartWith, "marker_")
		})
	})
}
