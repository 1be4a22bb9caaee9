package releasefinder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `[
  {
    "tag_name": "v1.2.0",
    "assets": [
      {"name": "dayzmanager-v1.2.0-linux-amd64", "browser_download_url": "https://example.com/linux-amd64"},
      {"name": "dayzmanager-v1.2.0-linux-arm64", "browser_download_url": "https://example.com/linux-arm64"}
    ]
  },
  {
    "tag_name": "v1.1.0",
    "assets": [
      {"name": "dayzmanager-v1.1.0-linux-amd64", "browser_download_url": "https://example.com/old"}
    ]
  }
]`

func Test_findAsset(t *testing.T) {
	release, err := findAsset(strings.NewReader(listing), "linux", "arm64")

	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", release.Tag)
	assert.Equal(t, "https://example.com/linux-arm64", release.URL)
}

func Test_findAsset_notFound(t *testing.T) {
	_, err := findAsset(strings.NewReader(listing), "darwin", "arm64")

	require.Error(t, err)

	var notFound NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
