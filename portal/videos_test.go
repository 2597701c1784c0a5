package portal

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogin(t *testing.T) {
	Convey("Login", t, func() {
		driver := newFakeDriver()
		client := newTestClient(driver)

		Convey("succeeds when the account page is reached", func() {
			driver.location = "https://hoopsfactory.example/my-account"

			So(client.Login("user@example.com", "hunter2"), ShouldBeTrue)
			So(driver.navigated, ShouldContain, client.LoginURL())
			So(driver.values[emailSelector], ShouldEqual, "user@example.com")
			So(driver.values[passwordSelector], ShouldEqual, "hunter2")
			So(driver.clicked, ShouldContain, submitSelector)
		})

		Convey("fails when the portal bounces back to the login page", func() {
			driver.location = "https://hoopsfactory.example/login"

			So(client.Login("user@example.com", "wrong"), ShouldBeFalse)
		})

		Convey("fails when navigation errors", func() {
			driver.navErr = errors.New("net::ERR_CONNECTION_REFUSED")

			So(client.Login("user@example.com", "hunter2"), ShouldBeFalse)
			So(driver.values, ShouldBeEmpty)
		})

		Convey("fails when the form never attaches", func() {
			driver.waitErr = errors.New("timeout")

			So(client.Login("user@example.com", "hunter2"), ShouldBeFalse)
		})
	})
}

func TestApplyFilters(t *testing.T) {
	Convey("ApplyFilters", t, func() {
		driver := newFakeDriver()
		client := newTestClient(driver)

		Convey("selects center, court and date", func() {
			driver.dateAvailable = true

			So(client.ApplyFilters("20250611"), ShouldBeTrue)
			So(driver.clicked, ShouldResemble, []string{centerTrigger, courtTrigger, dayTrigger})
		})

		Convey("keeps all dates when the session date is absent", func() {
			driver.dateAvailable = false

			So(client.ApplyFilters("20250611"), ShouldBeTrue)
		})

		Convey("fails when a filter widget cannot be clicked", func() {
			driver.clickErr = errors.New("node not found")

			So(client.ApplyFilters("20250611"), ShouldBeFalse)
		})

		Convey("fails when the page script errors", func() {
			driver.evalErr = errors.New("evaluate failed")

			So(client.ApplyFilters("20250611"), ShouldBeFalse)
		})
	})
}

func TestListVideos(t *testing.T) {
	Convey("ListVideos", t, func() {
		driver := newFakeDriver()
		client := newTestClient(driver)

		Convey("keeps only the replays inside the time window", func() {
			driver.cardsJSON = `[
				{"title": "14/06/2025 11h00 - Court 3", "downloadUrl": "/dl?path=/videos/a.mp4", "directUrl": "/videos/a.mp4", "videoSrc": null, "index": 0},
				{"title": "14/06/2025 12h00 - Court 3", "downloadUrl": "/dl?path=/videos/b.mp4", "directUrl": "/videos/b.mp4", "videoSrc": null, "index": 1},
				{"title": "14/06/2025 12h45 - Court 3", "downloadUrl": "/dl", "directUrl": null, "videoSrc": "https://cdn.example/c.mp4", "index": 2},
				{"title": "14/06/2025 13h15 - Court 3", "downloadUrl": "/dl?path=/videos/d.mp4", "directUrl": "/videos/d.mp4", "videoSrc": "https://cdn.example/d.mp4", "index": 3},
				{"title": "14/06/2025 14h00 - Court 3", "downloadUrl": "/dl?path=/videos/e.mp4", "directUrl": "/videos/e.mp4", "videoSrc": null, "index": 4}
			]`

			videos, err := client.ListVideos()

			So(err, ShouldBeNil)
			So(videos, ShouldHaveLength, 3)
			So(videos[0].Title, ShouldContainSubstring, "12h00")
			So(videos[1].Title, ShouldContainSubstring, "12h45")
			So(videos[2].Title, ShouldContainSubstring, "13h15")

			Convey("and preserves the original card indexes", func() {
				So(videos[0].Index, ShouldEqual, 1)
				So(videos[2].Index, ShouldEqual, 3)
			})

			Convey("and prefers the direct URL over the video element source", func() {
				So(videos[0].MediaURL().MustGet(), ShouldEqual, "/videos/b.mp4")
				So(videos[1].MediaURL().MustGet(), ShouldEqual, "https://cdn.example/c.mp4")
				So(videos[2].MediaURL().MustGet(), ShouldEqual, "/videos/d.mp4")
			})
		})

		Convey("returns an empty slice for an empty listing", func() {
			driver.cardsJSON = `[]`

			videos, err := client.ListVideos()

			So(err, ShouldBeNil)
			So(videos, ShouldBeEmpty)
		})

		Convey("propagates a card grid that never renders", func() {
			driver.waitErr = errors.New("timeout waiting for .card")

			_, err := client.ListVideos()

			So(err, ShouldNotBeNil)
		})
	})
}

func TestWithinWindow(t *testing.T) {
	Convey("WithinWindow", t, func() {
		client := newTestClient(newFakeDriver())

		Convey("keeps both window boundaries", func() {
			So(client.WithinWindow("14/06/2025 12h00 - Court 3"), ShouldBeTrue)
			So(client.WithinWindow("14/06/2025 13h30 - Court 3"), ShouldBeTrue)
		})

		Convey("drops times just outside the window", func() {
			So(client.WithinWindow("14/06/2025 11h59 - Court 3"), ShouldBeFalse)
			So(client.WithinWindow("14/06/2025 13h31 - Court 3"), ShouldBeFalse)
		})

		Convey("keeps titles without a recognizable time", func() {
			So(client.WithinWindow("Finale - Court 3"), ShouldBeTrue)
		})

		Convey("reads single-digit hours", func() {
			client.WindowStart = 900
			client.WindowEnd = 1030

			So(client.WithinWindow("14/06/2025 9h30 - Court 3"), ShouldBeTrue)
		})
	})
}
