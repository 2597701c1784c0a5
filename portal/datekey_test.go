package portal

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDateKey(t *testing.T) {
	Convey("DateKey", t, func() {
		base := time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC)

		Convey("Always lands on a Wednesday strictly before the given day", func() {
			for day := 0; day < 21; day++ {
				now := base.AddDate(0, 0, day)
				key, err := time.Parse("20060102", DateKey(now))
				So(err, ShouldBeNil)
				So(key.Weekday(), ShouldEqual, time.Wednesday)
				So(key.Before(now), ShouldBeTrue)
			}
		})

		Convey("Backs off a full week when the given day is itself a Wednesday", func() {
			for day := 0; day < 7; day++ {
				now := base.AddDate(0, 0, day)
				if now.Weekday() != time.Wednesday {
					continue
				}
				key, err := time.Parse("20060102", DateKey(now))
				So(err, ShouldBeNil)
				So(key.AddDate(0, 0, 7).Format("20060102"), ShouldEqual, now.Format("20060102"))
			}
		})

		Convey("Is never more than seven days back", func() {
			for day := 0; day < 14; day++ {
				now := base.AddDate(0, 0, day)
				key, err := time.Parse("20060102", DateKey(now))
				So(err, ShouldBeNil)
				So(now.Sub(key), ShouldBeLessThanOrEqualTo, 8*24*time.Hour)
			}
		})
	})
}
