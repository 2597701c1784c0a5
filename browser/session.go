// Package browser owns the automated Chrome session driven through chromedp.
//
// A Session wraps a single browser process, browsing context and page. It exposes
// the narrow page-automation surface the portal flows and the download pipeline
// consume, so both stay testable against fakes instead of a live browser.
package browser

import (
	"context"
	"strconv"
	"strings"
	"time"

	cdpnetwork "github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/hoopsgrab-cli/hoopsgrab/constant"
	"github.com/hoopsgrab-cli/hoopsgrab/key"
	"github.com/hoopsgrab-cli/hoopsgrab/log"
	"github.com/spf13/viper"
)

// Session is an exclusive handle on one running browser instance.
type Session struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
	closed      bool
}

// Open launches a browser process with a fixed desktop viewport and a spoofed
// desktop user agent. Sandbox-disabling flags keep the process usable inside
// containers where user namespaces are unavailable.
func Open(parent context.Context, headless bool) (*Session, error) {
	width, height := windowSize()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.DisableGPU,
		chromedp.WindowSize(width, height),
		chromedp.UserAgent(constant.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(log.Debugf),
		chromedp.WithErrorf(log.Errorf),
	)

	// Run with no actions spawns the process now, so a broken Chrome
	// installation surfaces here instead of on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, err
	}

	return &Session{
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

// windowSize parses the configured "width,height" viewport, defaulting to full HD.
func windowSize() (int, int) {
	parts := strings.SplitN(viper.GetString(key.BrowserWindowSize), ",", 2)
	if len(parts) != 2 {
		return 1920, 1080
	}
	width, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	height, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return 1920, 1080
	}
	return width, height
}

// Close releases the page, browsing context and browser process, in that order.
// Each step is independently guarded so one failing teardown never blocks the
// next; Close is idempotent and safe on every exit path.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true

	if err := chromedp.Cancel(s.ctx); err != nil {
		log.Debugf("browser: graceful shutdown failed: %s", err)
	}
	if s.cancelCtx != nil {
		s.cancelCtx()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
}

// Navigate loads the given URL in the session's page.
func (s *Session) Navigate(url string) error {
	return chromedp.Run(s.ctx, chromedp.Navigate(url))
}

// Click dispatches a click on the first element matching the selector.
func (s *Session) Click(selector string) error {
	return chromedp.Run(s.ctx, chromedp.Click(selector, chromedp.ByQuery))
}

// SetValue writes the value of the first element matching the selector.
func (s *Session) SetValue(selector, value string) error {
	return chromedp.Run(s.ctx, chromedp.SetValue(selector, value, chromedp.ByQuery))
}

// Evaluate runs the expression in page context and unmarshals its result.
func (s *Session) Evaluate(expression string, result any) error {
	return chromedp.Run(s.ctx, chromedp.Evaluate(expression, result))
}

// WaitReady blocks until an element matching the selector is attached to the
// DOM, bounded by the given timeout. Attachment, not visibility: several of the
// portal's filter widgets never become visible at all.
func (s *Session) WaitReady(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.WaitReady(selector, chromedp.ByQuery))
}

// WaitQuiescent polls until the document reports a complete ready state,
// bounded by the given timeout. It approximates network quiescence closely
// enough for the portal's post-login redirect.
func (s *Session) WaitQuiescent(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.Poll(
		`document.readyState === "complete"`,
		nil,
		chromedp.WithPollingInterval(200*time.Millisecond),
		chromedp.WithPollingTimeout(timeout),
	))
}

// Location returns the page's current URL.
func (s *Session) Location() (string, error) {
	var url string
	err := chromedp.Run(s.ctx, chromedp.Location(&url))
	return url, err
}

// Sleep pauses for the given duration, aborting early if the session dies.
func (s *Session) Sleep(d time.Duration) {
	_ = chromedp.Run(s.ctx, chromedp.Sleep(d))
}

// SetExtraHeaders applies page-wide HTTP headers to every subsequent request.
func (s *Session) SetExtraHeaders(headers map[string]string) error {
	h := make(cdpnetwork.Headers, len(headers))
	for k, v := range headers {
		h[k] = v
	}
	return chromedp.Run(s.ctx,
		cdpnetwork.Enable(),
		cdpnetwork.SetExtraHTTPHeaders(h),
	)
}
