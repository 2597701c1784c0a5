package config

import (
	"testing"

	"github.com/hoopsgrab-cli/hoopsgrab/filesystem"
	"github.com/hoopsgrab-cli/hoopsgrab/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Time window defaults should match the kept range", func() {
			So(Setup(), ShouldBeNil)
			So(viper.GetInt(key.FilterWindowStart), ShouldEqual, 1200)
			So(viper.GetInt(key.FilterWindowEnd), ShouldEqual, 1330)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("site.base.url"), ShouldEqual, "site_base_url")
		})
	})
}

func TestFieldEnv(t *testing.T) {
	Convey("Field env names carry the application prefix", t, func() {
		f := Default[key.SiteEmail]
		So(f.Env(), ShouldEqual, "HOOPSGRAB_SITE_EMAIL")
	})
}
