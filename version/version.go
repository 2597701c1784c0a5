// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hoopsgrab-cli/hoopsgrab/filesystem"
	"github.com/hoopsgrab-cli/hoopsgrab/where"
	"github.com/metafates/gache"
)

const releaseEndpoint = "https://api.github.com/repos/hoopsgrab-cli/hoopsgrab/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest retrieves the most recent stable application version identifier from the remote update registry.
// It queries the GitHub Releases API and caches the result for performance and rate-limit mitigation.
func Latest() (version string, err error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	resp, err := resty.New().R().Get(releaseEndpoint)
	if err != nil {
		return
	}

	err = json.Unmarshal(resp.Body(), &release)
	if err != nil {
		return
	}

	if release.TagName == "" {
		err = errors.New("empty tag name")
		return
	}

	// Release tags carry a 'v' prefix, version strings do not.
	version = release.TagName[1:]
	_ = versionCacher.Set(version)
	return
}
