package browser

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	"github.com/hoopsgrab-cli/hoopsgrab/filesystem"
	"github.com/hoopsgrab-cli/hoopsgrab/log"
	"github.com/hoopsgrab-cli/hoopsgrab/where"
)

// ErrDownloadCanceled reports that the browser gave up on a native download.
var ErrDownloadCanceled = errors.New("browser canceled the download")

// DownloadNavigate navigates to a URL that triggers the browser's native
// download handling, waits for the resulting download to complete, and moves
// the file to dest. The navigation itself is expected to abort once the
// browser recognizes the response as a download.
func (s *Session) DownloadNavigate(url, dest string, timeout time.Duration) error {
	// Chrome aborts the navigation when it turns into a download; that
	// abort is the success path here, not a failure.
	trigger := chromedp.ActionFunc(func(ctx context.Context) error {
		if err := chromedp.Navigate(url).Do(ctx); err != nil && !abortedByDownload(err) {
			return err
		}
		return nil
	})
	return s.download(trigger, dest, timeout)
}

// DownloadClick evaluates a page script expected to click a download link and
// waits for the triggered download the same way DownloadNavigate does.
func (s *Session) DownloadClick(expression, dest string, timeout time.Duration) error {
	return s.download(chromedp.Evaluate(expression, nil), dest, timeout)
}

func (s *Session) download(trigger chromedp.Action, dest string, timeout time.Duration) error {
	dir := where.Temp()

	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	completed := make(chan string, 1)
	canceled := make(chan struct{}, 1)
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if progress, ok := ev.(*cdpbrowser.EventDownloadProgress); ok {
			switch progress.State {
			case cdpbrowser.DownloadProgressStateCompleted:
				select {
				case completed <- progress.GUID:
				default:
				}
			case cdpbrowser.DownloadProgressStateCanceled:
				select {
				case canceled <- struct{}{}:
				default:
				}
			}
		}
	})

	err := chromedp.Run(ctx,
		cdpbrowser.SetDownloadBehavior(cdpbrowser.SetDownloadBehaviorBehaviorAllowAndName).
			WithDownloadPath(dir).
			WithEventsEnabled(true),
	)
	if err != nil {
		return err
	}

	if err := chromedp.Run(ctx, trigger); err != nil {
		return err
	}

	select {
	case guid := <-completed:
		log.Debugf("browser: download %s completed", guid)
		return filesystem.API().Rename(filepath.Join(dir, guid), dest)
	case <-canceled:
		return ErrDownloadCanceled
	case <-ctx.Done():
		return ctx.Err()
	}
}

func abortedByDownload(err error) bool {
	return err != nil && strings.Contains(err.Error(), "net::ERR_ABORTED")
}
