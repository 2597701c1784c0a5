package grab

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hoopsgrab-cli/hoopsgrab/filesystem"
	"github.com/hoopsgrab-cli/hoopsgrab/history"
	"github.com/hoopsgrab-cli/hoopsgrab/portal"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeSession scripts an entire portal visit.
type fakeSession struct {
	location    string
	cardsJSON   string
	downloadErr error
	clickErr    error

	closed     bool
	headless   bool
	downloaded []string
}

func (s *fakeSession) Navigate(url string) error               { return nil }
func (s *fakeSession) Click(selector string) error             { return nil }
func (s *fakeSession) SetValue(selector, value string) error   { return nil }
func (s *fakeSession) Location() (string, error)               { return s.location, nil }
func (s *fakeSession) Sleep(time.Duration)                     {}
func (s *fakeSession) WaitQuiescent(time.Duration) error       { return nil }
func (s *fakeSession) Close()                                  { s.closed = true }
func (s *fakeSession) SetExtraHeaders(map[string]string) error { return nil }

func (s *fakeSession) WaitReady(selector string, timeout time.Duration) error { return nil }

func (s *fakeSession) Evaluate(expression string, result any) error {
	if strings.Contains(expression, "querySelectorAll('.card')") {
		return json.Unmarshal([]byte(s.cardsJSON), result)
	}
	*(result.(*bool)) = true
	return nil
}

func (s *fakeSession) DownloadNavigate(url, dest string, timeout time.Duration) error {
	if s.downloadErr != nil {
		return s.downloadErr
	}
	s.downloaded = append(s.downloaded, dest)
	return filesystem.API().WriteFile(dest, []byte("replay"), 0644)
}

func (s *fakeSession) DownloadClick(expression, dest string, timeout time.Duration) error {
	if s.clickErr != nil {
		return s.clickErr
	}
	s.downloaded = append(s.downloaded, dest)
	return filesystem.API().WriteFile(dest, []byte("replay"), 0644)
}

// stubSessions rewires session opening to hand out scripted sessions and
// records the headless flag of every attempt.
func stubSessions(headlessLog *[]bool, sessions *[]*fakeSession, template fakeSession) func() {
	origOpen := openSession
	origHTTP := newHTTPClient

	openSession = func(ctx context.Context, headless bool) (session, error) {
		sess := template
		sess.headless = headless
		*headlessLog = append(*headlessLog, headless)
		*sessions = append(*sessions, &sess)
		return &sess, nil
	}
	newHTTPClient = func(string) *resty.Client { return resty.New() }

	return func() {
		openSession = origOpen
		newHTTPClient = origHTTP
	}
}

func testOptions() Options {
	return Options{
		Email:       "user@example.com",
		Password:    "hunter2",
		BaseURL:     "https://hoopsfactory.example",
		Center:      "0",
		Court:       "3",
		WindowStart: 1200,
		WindowEnd:   1330,
		DownloadDir: "/downloads",
		Headless:    true,
	}
}

const listingJSON = `[
	{"title": "14/06/2025 11h00 - Court 3", "downloadUrl": "/dl?id=1", "directUrl": null, "videoSrc": null, "index": 0},
	{"title": "14/06/2025 12h00 - Court 3", "downloadUrl": "/dl?id=2", "directUrl": null, "videoSrc": null, "index": 1},
	{"title": "14/06/2025 12h45 - Court 3", "downloadUrl": "/dl?id=3", "directUrl": null, "videoSrc": null, "index": 2},
	{"title": "14/06/2025 13h15 - Court 3", "downloadUrl": "/dl?id=4", "directUrl": null, "videoSrc": null, "index": 3},
	{"title": "14/06/2025 14h00 - Court 3", "downloadUrl": "/dl?id=5", "directUrl": null, "videoSrc": null, "index": 4}
]`

func TestRun(t *testing.T) {
	Convey("Run", t, func() {
		filesystem.SetMemMapFs()
		ctx := context.Background()

		var headlessLog []bool
		var sessions []*fakeSession

		Convey("saves every replay inside the window", func() {
			restore := stubSessions(&headlessLog, &sessions, fakeSession{
				location:  "https://hoopsfactory.example/my-account",
				cardsJSON: listingJSON,
			})
			defer restore()

			summary, err := Run(ctx, testOptions())

			So(err, ShouldBeNil)
			So(summary.Attempted, ShouldEqual, 3)
			So(summary.Saved, ShouldEqual, 3)
			So(sessions, ShouldHaveLength, 1)
			So(sessions[0].closed, ShouldBeTrue)

			dir := filepath.Join("/downloads", portal.DateKey(time.Now()))
			So(summary.Files, ShouldResemble, []string{
				filepath.Join(dir, "14062025_12h00_Court_3.mp4"),
				filepath.Join(dir, "14062025_12h45_Court_3.mp4"),
				filepath.Join(dir, "14062025_13h15_Court_3.mp4"),
			})
			for _, file := range summary.Files {
				exists, err := filesystem.API().Exists(file)
				So(err, ShouldBeNil)
				So(exists, ShouldBeTrue)
			}
		})

		Convey("retries an empty listing, then treats it as success", func() {
			restore := stubSessions(&headlessLog, &sessions, fakeSession{
				location:  "https://hoopsfactory.example/my-account",
				cardsJSON: `[]`,
			})
			defer restore()

			summary, err := Run(ctx, testOptions())

			So(err, ShouldBeNil)
			So(summary.Attempted, ShouldEqual, 0)
			So(summary.Saved, ShouldEqual, 0)
			So(sessions, ShouldHaveLength, 3)
		})

		Convey("restarts on failure and shows the browser on the last attempt", func() {
			restore := stubSessions(&headlessLog, &sessions, fakeSession{
				location: "https://hoopsfactory.example/login",
			})
			defer restore()

			_, err := Run(ctx, testOptions())

			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrRetriesExhausted), ShouldBeTrue)
			So(headlessLog, ShouldResemble, []bool{true, true, false})
			for _, sess := range sessions {
				So(sess.closed, ShouldBeTrue)
			}
		})

		Convey("records unsaveable replays without aborting the run", func() {
			restore := stubSessions(&headlessLog, &sessions, fakeSession{
				location:    "https://hoopsfactory.example/my-account",
				cardsJSON:   listingJSON,
				downloadErr: errors.New("download canceled"),
				clickErr:    errors.New("node not found"),
			})
			defer restore()

			summary, err := Run(ctx, testOptions())

			So(err, ShouldBeNil)
			So(summary.Failed, ShouldEqual, 3)
			So(summary.Saved, ShouldEqual, 0)
			So(sessions, ShouldHaveLength, 1)
		})

		Convey("skips replays already saved by an earlier run", func() {
			restore := stubSessions(&headlessLog, &sessions, fakeSession{
				location:  "https://hoopsfactory.example/my-account",
				cardsJSON: listingJSON,
			})
			defer restore()

			date := portal.DateKey(time.Now())
			saved := filepath.Join("/downloads", date, "14062025_12h00_Court_3.mp4")
			So(filesystem.API().WriteFile(saved, []byte("replay"), 0644), ShouldBeNil)
			So(history.Save(date, "14/06/2025 12h00 - Court 3", saved), ShouldBeNil)

			summary, err := Run(ctx, testOptions())

			So(err, ShouldBeNil)
			So(summary.Skipped, ShouldEqual, 1)
			So(summary.Saved, ShouldEqual, 2)
			So(summary.Files, ShouldHaveLength, 3)
		})

		Convey("stops immediately on a canceled context", func() {
			restore := stubSessions(&headlessLog, &sessions, fakeSession{})
			defer restore()

			canceled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := Run(canceled, testOptions())

			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(sessions, ShouldBeEmpty)
		})
	})
}
