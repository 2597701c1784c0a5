package util

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeTitle(t *testing.T) {
	Convey("SanitizeTitle", t, func() {
		Convey("Should strip characters outside letters, digits, whitespace and hyphens", func() {
			So(SanitizeTitle("14/06/2025 12h00 - Rucker Park"), ShouldEqual, "14062025_12h00_Rucker_Park")
		})

		Convey("Should collapse whitespace and hyphen runs to single underscores", func() {
			So(SanitizeTitle("a  - -  b"), ShouldEqual, "a_b")
		})

		Convey("Should be idempotent", func() {
			inputs := []string{
				"14/06/2025 12h00 - Rucker Park",
				"plain",
				"  padded  ",
				"sym!@#bols",
			}
			for _, in := range inputs {
				once := SanitizeTitle(in)
				So(SanitizeTitle(once), ShouldEqual, once)
			}
		})

		Convey("Output should contain only word characters", func() {
			safe := regexp.MustCompile(`^[A-Za-z0-9_]*$`)
			So(safe.MatchString(SanitizeTitle("crazy | title? *with* éverything")), ShouldBeTrue)
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "video", "videos"), ShouldEqual, "1 video")
		So(Quantify(3, "video", "videos"), ShouldEqual, "3 videos")
	})
}

func TestReGroups(t *testing.T) {
	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`(?P<hour>\d{1,2})h(?P<minute>\d{2})`)
		groups := ReGroups(re, "14/06/2025 12h45")
		So(groups["hour"], ShouldEqual, "12")
		So(groups["minute"], ShouldEqual, "45")

		So(ReGroups(re, "no time here"), ShouldBeEmpty)
	})
}
