package grab

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hoopsgrab-cli/hoopsgrab/browser"
	"github.com/hoopsgrab-cli/hoopsgrab/download"
	"github.com/hoopsgrab-cli/hoopsgrab/history"
	"github.com/hoopsgrab-cli/hoopsgrab/log"
	"github.com/hoopsgrab-cli/hoopsgrab/network"
	"github.com/hoopsgrab-cli/hoopsgrab/portal"
	"github.com/hoopsgrab-cli/hoopsgrab/util"
)

// maxRetries bounds how often a failed run is restarted from scratch. The
// last restart runs with a visible browser window so a stuck page can be
// inspected.
const maxRetries = 2

// ErrRetriesExhausted reports that every run attempt failed.
var ErrRetriesExhausted = errors.New("all attempts failed")

// errNoVideos restarts the run like any other failure, a transient portal
// glitch can render an empty listing. Exhausting retries on it is still a
// successful run: there may simply be nothing to fetch.
var errNoVideos = errors.New("no replays matched the filters")

// Options carries everything one run needs. Zero pauses are honored as-is,
// tests rely on that.
type Options struct {
	Email    string
	Password string

	BaseURL     string
	Center      string
	Court       string
	WindowStart int
	WindowEnd   int

	DownloadDir string
	Headless    bool
	Progress    bool

	PageTimeout     time.Duration
	DownloadTimeout time.Duration
	Pause           time.Duration
	FilterSettle    time.Duration
	CardSettle      time.Duration
}

// Summary is what a finished run reports.
type Summary struct {
	Date      string
	Attempted int
	Saved     int
	Skipped   int
	Failed    int
	Files     []string
}

// session joins the page-automation and download surfaces of one browser.
type session interface {
	portal.Driver
	download.Driver
	Close()
}

// openSession is swapped out by tests.
var openSession = func(ctx context.Context, headless bool) (session, error) {
	return browser.Open(ctx, headless)
}

// newHTTPClient is swapped out by tests.
var newHTTPClient = network.NewClient

// Run fetches last session's replays. A failed attempt tears the whole
// browser down and starts over, up to maxRetries restarts; an empty filtered
// listing is a normal outcome, not a failure.
func Run(ctx context.Context, opts Options) (Summary, error) {
	dateKey := portal.DateKey(time.Now())
	dir := filepath.Join(opts.DownloadDir, dateKey)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}

		headless := opts.Headless && attempt < maxRetries
		if attempt > 0 {
			log.Warnf("restarting, attempt %d of %d", attempt+1, maxRetries+1)
		}

		summary, err := runOnce(ctx, opts, dateKey, dir, headless)
		if err == nil {
			return summary, nil
		}
		lastErr = err
		log.Errorf("attempt %d failed: %s", attempt+1, err)
	}

	// A listing that stayed empty through every attempt means there is
	// nothing to fetch, not that the run broke.
	if errors.Is(lastErr, errNoVideos) {
		log.Warnf("no replays for %s in the %04d-%04d window", dateKey, opts.WindowStart, opts.WindowEnd)
		return Summary{Date: dateKey}, nil
	}

	return Summary{Date: dateKey}, fmt.Errorf("%w: %s", ErrRetriesExhausted, lastErr)
}

func runOnce(ctx context.Context, opts Options, dateKey, dir string, headless bool) (Summary, error) {
	sess, err := openSession(ctx, headless)
	if err != nil {
		return Summary{}, err
	}
	defer sess.Close()

	client := &portal.Client{
		Driver:       sess,
		BaseURL:      opts.BaseURL,
		Center:       opts.Center,
		Court:        opts.Court,
		WindowStart:  opts.WindowStart,
		WindowEnd:    opts.WindowEnd,
		PageTimeout:  opts.PageTimeout,
		FilterSettle: opts.FilterSettle,
		CardSettle:   opts.CardSettle,
	}

	if !client.Login(opts.Email, opts.Password) {
		return Summary{}, errors.New("login failed")
	}

	relist := func() error {
		if err := sess.Navigate(client.VideosURL()); err != nil {
			return err
		}
		if !client.ApplyFilters(dateKey) {
			return errors.New("applying filters failed")
		}
		return nil
	}
	if err := relist(); err != nil {
		return Summary{}, err
	}

	videos, err := client.ListVideos()
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Date: dateKey, Attempted: len(videos)}
	if len(videos) == 0 {
		return summary, errNoVideos
	}
	log.Infof("found %s to save", util.Quantify(len(videos), "replay", "replays"))

	downloader := &download.Downloader{
		Driver:        sess,
		HTTP:          newHTTPClient(opts.BaseURL),
		BaseURL:       opts.BaseURL,
		Dir:           dir,
		Progress:      opts.Progress,
		Timeout:       opts.DownloadTimeout,
		Relist:        relist,
		ListingSettle: opts.CardSettle,
	}

	for i, video := range videos {
		if record, ok := history.Lookup(dateKey, video.Title); ok {
			log.Infof("already saved %q, skipping", video.Title)
			summary.Skipped++
			summary.Files = append(summary.Files, record.Path)
			continue
		}

		// A replay that resisted every strategy is recorded and skipped;
		// the remaining downloads and the run itself carry on.
		path, err := downloader.Fetch(video)
		if err != nil {
			log.Errorf("saving %q failed: %s", video.Title, err)
			summary.Failed++
			continue
		}
		if err := history.Save(dateKey, video.Title, path); err != nil {
			log.Warnf("recording %q in history failed: %s", video.Title, err)
		}
		log.Infof("saved %q to %s", video.Title, path)
		summary.Saved++
		summary.Files = append(summary.Files, path)

		// The portal throttles rapid-fire downloads from one session.
		if i < len(videos)-1 {
			sess.Sleep(opts.Pause)
		}
	}

	if summary.Failed > 0 {
		log.Warnf("%s could not be saved", util.Quantify(summary.Failed, "replay", "replays"))
	}
	return summary, nil
}
