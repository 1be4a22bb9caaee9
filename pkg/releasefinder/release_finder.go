package releasefinder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

type Release struct {
	URL string
	Tag string
}

type NotFoundError struct {
	OS   string
	Arch string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no release asset for %s (arch: %s)", e.OS, e.Arch)
}

// Find looks up the newest release asset matching the given OS and
// architecture in a GitHub releases listing.
func Find(ctx context.Context, api string, goos string, arch string) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to build releases request")
	}

	resp, err := http.DefaultClient.Do(req) //nolint:bodyclose
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get releases")
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			log.Println(err)
		}
	}(resp.Body)

	return findAsset(resp.Body, goos, arch)
}

type release struct {
	TagName string  `json:"tag_name"` //nolint:tagliatelle
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"` //nolint:tagliatelle
}

func findAsset(r io.Reader, goos string, arch string) (*Release, error) {
	var listing []release

	err := json.NewDecoder(r).Decode(&listing)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to decode releases listing")
	}

	for _, rel := range listing {
		for _, a := range rel.Assets {
			if strings.Contains(a.Name, goos) && strings.Contains(a.Name, arch) {
				return &Release{
					URL: a.BrowserDownloadURL,
					Tag: rel.TagName,
				}, nil
			}
		}
	}

	return nil, NotFoundError{OS: goos, Arch: arch}
}
