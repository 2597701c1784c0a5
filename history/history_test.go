package history

import (
	"testing"

	"github.com/hoopsgrab-cli/hoopsgrab/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a saved replay", t, func() {
		filesystem.SetMemMapFs()

		const (
			date  = "20250611"
			title = "14/06/2025 12h00 - Court 3"
			path  = "/downloads/20250611/14062025_12h00_Court_3.mp4"
		)

		So(filesystem.API().WriteFile(path, []byte("replay"), 0644), ShouldBeNil)
		So(Save(date, title, path), ShouldBeNil)

		Convey("It should appear in the registry", func() {
			saved, err := Get()

			So(err, ShouldBeNil)
			So(saved, ShouldHaveLength, 1)

			record, ok := Lookup(date, title)
			So(ok, ShouldBeTrue)
			So(record.Path, ShouldEqual, path)
		})

		Convey("Lookup should miss for another session date", func() {
			_, ok := Lookup("20250618", title)
			So(ok, ShouldBeFalse)
		})

		Convey("Lookup should miss once the file is gone", func() {
			So(filesystem.API().Remove(path), ShouldBeNil)

			_, ok := Lookup(date, title)
			So(ok, ShouldBeFalse)
		})

		Convey("Remove should delete the record", func() {
			record, ok := Lookup(date, title)
			So(ok, ShouldBeTrue)
			So(Remove(record), ShouldBeNil)

			saved, err := Get()
			So(err, ShouldBeNil)
			So(saved, ShouldBeEmpty)
		})
	})
}
