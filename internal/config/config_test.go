package config_test

import (
	"context"
	"testing"

	"github.com/okian/ploffs/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.PeriodColumn, convey.ShouldEqual, "Week")
			convey.So(cfg.Target, convey.ShouldEqual, "Nico")
			convey.So(cfg.PercentPrecision, convey.ShouldEqual, 2)
			convey.So(cfg.SeedOverrides, convey.ShouldResemble, map[int]int{4: 5, 5: 4})
			convey.So(cfg.CacheEnabled, convey.ShouldBeTrue)
			convey.So(cfg.ReloadInterval, convey.ShouldEqual, 0)
		})

		convey.Convey("And the defaults should validate", func() {
			convey.So(config.Validate(cfg), convey.ShouldBeNil)
		})
	})
}
