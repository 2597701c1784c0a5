package portal

import (
	"regexp"
	"strconv"

	"github.com/hoopsgrab-cli/hoopsgrab/log"
	"github.com/hoopsgrab-cli/hoopsgrab/util"
	"github.com/samber/mo"
)

const cardSelector = `.card`

// VideoRecord describes one scraped replay card. Records are immutable after
// listing and consumed exactly once by the download pipeline.
type VideoRecord struct {
	Title       string
	DownloadURL string
	// DirectURL is the raw media address carried by the download link's
	// `path` query parameter, when the portal exposes one.
	DirectURL mo.Option[string]
	// VideoSrc is the inline player's src attribute, a secondary candidate
	// for direct fetching.
	VideoSrc mo.Option[string]
	// Index is the card's position in the rendered grid, needed to re-locate
	// it for the click-triggered download fallback.
	Index int
}

// MediaURL returns the preferred address for a direct HTTP fetch.
func (v VideoRecord) MediaURL() mo.Option[string] {
	if v.DirectURL.IsPresent() {
		return v.DirectURL
	}
	return v.VideoSrc
}

// extractScript walks the rendered card grid and projects the download
// metadata of every card that carries both a title and a download link plus at
// least one resolvable media address. Cards missing those are skipped, they
// are decorative or still loading.
const extractScript = `(() => {
	const videos = [];
	document.querySelectorAll('.card').forEach((card, index) => {
		const downloadLink = card.querySelector('a.download.external');
		const titleElement = card.querySelector('.product-name');
		if (!downloadLink || !titleElement) return;

		const downloadUrl = downloadLink.getAttribute('href');
		const title = titleElement.textContent.trim();

		const query = downloadUrl.split('?')[1] || '';
		const directUrl = new URLSearchParams(query).get('path');

		const videoElement = card.querySelector('video');
		const videoSrc = videoElement ? videoElement.getAttribute('src') : null;

		if (directUrl || videoSrc) {
			videos.push({title, downloadUrl, directUrl, videoSrc, index});
		}
	});
	return videos;
})()`

// card mirrors the JSON shape produced by extractScript.
type card struct {
	Title       string  `json:"title"`
	DownloadURL string  `json:"downloadUrl"`
	DirectURL   *string `json:"directUrl"`
	VideoSrc    *string `json:"videoSrc"`
	Index       int     `json:"index"`
}

// ListVideos scrapes the rendered listing and returns the replays inside the
// configured time-of-day window. The full card set is materialized before
// filtering.
func (c *Client) ListVideos() ([]VideoRecord, error) {
	if err := c.Driver.WaitReady(cardSelector, c.pageTimeout()); err != nil {
		return nil, err
	}
	c.Driver.Sleep(c.CardSettle)

	var cards []card
	if err := c.Driver.Evaluate(extractScript, &cards); err != nil {
		return nil, err
	}

	videos := make([]VideoRecord, 0, len(cards))
	for _, entry := range cards {
		record := VideoRecord{
			Title:       entry.Title,
			DownloadURL: entry.DownloadURL,
			DirectURL:   optionalString(entry.DirectURL),
			VideoSrc:    optionalString(entry.VideoSrc),
			Index:       entry.Index,
		}

		if !c.WithinWindow(record.Title) {
			log.Infof("skipping %q (outside kept time window)", record.Title)
			continue
		}
		log.Infof("keeping %q", record.Title)
		videos = append(videos, record)
	}

	log.Infof("found %s, %s inside the time window",
		util.Quantify(len(cards), "video", "videos"),
		util.Quantify(len(videos), "match", "matches"))
	return videos, nil
}

// timePattern matches the start-of-session time embedded in card titles,
// e.g. "14/06/2025 12h45".
var timePattern = regexp.MustCompile(`(?P<hour>\d{1,2})h(?P<minute>\d{2})`)

// WithinWindow reports whether a card title's embedded time falls inside the
// kept window. Titles carrying no recognizable time are kept: being unable to
// classify a replay is not a reason to drop it.
func (c *Client) WithinWindow(title string) bool {
	groups := util.ReGroups(timePattern, title)
	if len(groups) == 0 {
		log.Warnf("could not determine time for %q, keeping it", title)
		return true
	}

	hour, _ := strconv.Atoi(groups["hour"])
	minute, _ := strconv.Atoi(groups["minute"])
	value := hour*100 + minute

	return value >= c.WindowStart && value <= c.WindowEnd
}

func optionalString(s *string) mo.Option[string] {
	if s == nil || *s == "" {
		return mo.None[string]()
	}
	return mo.Some(*s)
}
