package download

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hoopsgrab-cli/hoopsgrab/constant"
	"github.com/hoopsgrab-cli/hoopsgrab/filesystem"
	"github.com/hoopsgrab-cli/hoopsgrab/log"
	"github.com/hoopsgrab-cli/hoopsgrab/portal"
	"github.com/hoopsgrab-cli/hoopsgrab/util"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

const (
	cardSelector = `.card`

	// clickScript clicks the download anchor of the nth listing card. Used
	// as a last resort when neither the media address nor the download URL
	// can be fetched outside the page.
	clickScript = `(() => {
	const card = document.querySelectorAll('.card')[%d];
	if (!card) return false;
	const link = card.querySelector('a.download.external');
	if (!link) return false;
	link.click();
	return true;
})()`
)

// Driver is the browser surface the fallback strategies need.
type Driver interface {
	Navigate(url string) error
	WaitReady(selector string, timeout time.Duration) error
	SetExtraHeaders(headers map[string]string) error
	DownloadNavigate(url, dest string, timeout time.Duration) error
	DownloadClick(expression, dest string, timeout time.Duration) error
	Sleep(d time.Duration)
}

// Downloader saves portal replays to disk. Each replay is tried three ways,
// cheapest first: a plain HTTP fetch of the media address, the browser's
// native download of the card's download URL, and finally re-opening the
// listing and clicking the card's download anchor.
type Downloader struct {
	Driver   Driver
	HTTP     *resty.Client
	BaseURL  string
	Dir      string
	Progress bool

	// Timeout bounds a single strategy attempt for one file.
	Timeout time.Duration

	// Relist restores the filtered listing before the click fallback. The
	// earlier strategies navigate away from it.
	Relist func() error

	ListingSettle time.Duration
}

// Filename derives the on-disk name for a replay title.
func Filename(title string) string {
	return util.SanitizeTitle(title) + constant.VideoExtension
}

func (d *Downloader) timeout() time.Duration {
	if d.Timeout == 0 {
		return 5 * time.Minute
	}
	return d.Timeout
}

// Fetch saves a single replay under the download directory and returns the
// written path. Strategies are tried in order; the error of the last one wins
// when all fail.
func (d *Downloader) Fetch(video portal.VideoRecord) (string, error) {
	dest := filepath.Join(d.Dir, Filename(video.Title))

	if err := filesystem.API().MkdirAll(d.Dir, os.ModePerm); err != nil {
		return "", err
	}

	if media, ok := video.MediaURL().Get(); ok {
		if err := d.fetchDirect(media, dest); err != nil {
			log.Warnf("direct fetch of %q failed: %s", video.Title, err)
		} else {
			return dest, nil
		}
	} else {
		log.Warnf("no media address on %q, skipping direct fetch", video.Title)
	}

	if err := d.fetchBrowser(video.DownloadURL, dest); err != nil {
		log.Warnf("browser download of %q failed: %s", video.Title, err)
	} else {
		return dest, nil
	}

	if err := d.fetchClick(video.Index, dest); err != nil {
		return "", fmt.Errorf("all download strategies failed for %q: %w", video.Title, err)
	}
	return dest, nil
}

// fetchDirect streams the media address over plain HTTP, reusing the session
// cookies the browser accumulated is unnecessary here: the portal serves the
// media path without authentication once it is known.
func (d *Downloader) fetchDirect(media, dest string) error {
	address, err := d.resolve(media)
	if err != nil {
		return err
	}

	log.Debugf("direct fetch: %s", address)
	resp, err := d.HTTP.R().SetDoNotParseResponse(true).Get(address)
	if err != nil {
		return err
	}
	body := resp.RawBody()
	defer util.Ignore(body.Close)

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status())
	}

	return d.save(body, resp.RawResponse.ContentLength, dest)
}

func (d *Downloader) fetchBrowser(downloadURL, dest string) error {
	address, err := d.resolve(downloadURL)
	if err != nil {
		return err
	}

	if err := d.Driver.SetExtraHeaders(map[string]string{"Referer": d.BaseURL}); err != nil {
		return err
	}

	log.Debugf("browser download: %s", address)
	return d.Driver.DownloadNavigate(address, dest, d.timeout())
}

func (d *Downloader) fetchClick(index int, dest string) error {
	if d.Relist != nil {
		if err := d.Relist(); err != nil {
			return err
		}
	}
	if err := d.Driver.WaitReady(cardSelector, d.timeout()); err != nil {
		return err
	}
	d.Driver.Sleep(d.ListingSettle)

	log.Debugf("click download: card %d", index)
	return d.Driver.DownloadClick(fmt.Sprintf(clickScript, index), dest, d.timeout())
}

// save copies the response body to dest, drawing a progress bar when one is
// wanted and the size is known.
func (d *Downloader) save(body io.Reader, size int64, dest string) error {
	file, err := filesystem.API().Create(dest)
	if err != nil {
		return err
	}
	defer util.Ignore(file.Close)

	reader := body
	abort := func() {}
	if d.Progress && size > 0 {
		progress := mpb.New(mpb.WithWidth(64))
		bar := progress.AddBar(size,
			mpb.AppendDecorators(
				decor.CountersKibiByte("%6.1f / %6.1f"),
				decor.AverageSpeed(decor.UnitKiB, " %.1f"),
			),
			mpb.BarRemoveOnComplete(),
		)
		proxy := bar.ProxyReader(body)
		defer util.Ignore(proxy.Close)
		defer progress.Wait()
		// Wait only returns once every bar is complete. A bar fed a
		// truncated body never reaches its total, so it must be dropped
		// before the error path unwinds into Wait.
		abort = func() { bar.Abort(true) }
		reader = proxy
	}

	written, err := io.Copy(file, reader)
	if err != nil {
		abort()
		// A truncated file is worse than no file for a video player.
		_ = filesystem.API().Remove(dest)
		return err
	}

	log.Debugf("wrote %d bytes to %s", written, dest)
	return nil
}

// resolve makes a card address absolute against the portal base URL. Cards
// carry a mix of absolute CDN addresses and portal-relative paths.
func (d *Downloader) resolve(ref string) (string, error) {
	base, err := url.Parse(d.BaseURL)
	if err != nil {
		return "", err
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(parsed).String(), nil
}
