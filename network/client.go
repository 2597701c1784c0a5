package network

import (
	"net/http/cookiejar"

	"github.com/go-resty/resty/v2"
	"github.com/hoopsgrab-cli/hoopsgrab/constant"
	"github.com/samber/lo"
)

// NewClient builds the resty client used for direct media fetches. The portal
// verifies both the User-Agent and the Referer on raw media URLs, so the client
// presents the same desktop identity as the automated browser and advertises
// the portal itself as the referring page.
//
// No client-wide timeout is set: replay files run to gigabytes and each request
// carries its own context instead.
func NewClient(referer string) *resty.Client {
	client := resty.New()
	client.SetTransport(Transport())
	client.SetCookieJar(lo.Must(cookiejar.New(nil)))
	client.SetHeader("User-Agent", constant.UserAgent)
	client.SetHeader("Referer", referer)
	client.SetRetryCount(0)
	return client
}
