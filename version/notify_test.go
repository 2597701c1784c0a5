package version

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/hoopsgrab-cli/hoopsgrab/constant"
	"github.com/hoopsgrab-cli/hoopsgrab/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func captureNotify() string {
	reader, writer, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = writer

	Notify()

	_ = writer.Close()
	os.Stdout = stdout

	out, _ := io.ReadAll(reader)
	return string(out)
}

func TestNotify(t *testing.T) {
	Convey("Notify", t, func() {
		viper.Set(key.CliVersionCheck, true)
		restore := latest
		Reset(func() {
			latest = restore
			viper.Set(key.CliVersionCheck, true)
		})

		Convey("stays quiet when the release lookup fails", func() {
			latest = func() (string, error) { return "", errors.New("rate limited") }
			So(captureNotify(), ShouldNotContainSubstring, "New version is available")
		})

		Convey("stays quiet when already up to date", func() {
			latest = func() (string, error) { return constant.Version, nil }
			So(captureNotify(), ShouldNotContainSubstring, "New version is available")
		})

		Convey("announces a newer release", func() {
			latest = func() (string, error) { return "99.0.0", nil }

			out := captureNotify()
			So(out, ShouldContainSubstring, "New version is available")
			So(out, ShouldContainSubstring, "99.0.0")
		})

		Convey("honors the version check switch", func() {
			viper.Set(key.CliVersionCheck, false)
			latest = func() (string, error) { return "99.0.0", nil }
			So(captureNotify(), ShouldNotContainSubstring, "New version is available")
		})
	})
}
