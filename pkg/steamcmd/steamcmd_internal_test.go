package steamcmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRun struct {
	binary string
	args   []string
}

func recordingClient(user string, password string) (*Client, *[]recordedRun) {
	runs := &[]recordedRun{}

	c := NewClient("/opt/steamcmd/steamcmd.sh", user, password)
	c.run = func(_ context.Context, binary string, args ...string) error {
		*runs = append(*runs, recordedRun{binary: binary, args: args})

		return nil
	}

	return c, runs
}

func TestClient_DownloadItem(t *testing.T) {
	c, runs := recordingClient("operator", "secret")

	err := c.DownloadItem(context.Background(), "/srv/dayz", 221100, 1559212036)

	require.NoError(t, err)
	require.Len(t, *runs, 1)
	assert.Equal(t, "/opt/steamcmd/steamcmd.sh", (*runs)[0].binary)
	assert.Equal(t, []string{
		"+force_install_dir", "/srv/dayz",
		"+login", "operator", "secret",
		"+workshop_download_item", "221100", "1559212036", "validate",
		"+quit",
	}, (*runs)[0].args)
}

func TestClient_InstallApp(t *testing.T) {
	c, runs := recordingClient("operator", "secret")

	err := c.InstallApp(context.Background(), "/srv/dayz/server", 223350)

	require.NoError(t, err)
	require.Len(t, *runs, 1)
	assert.Equal(t, []string{
		"+force_install_dir", "/srv/dayz/server",
		"+login", "operator", "secret",
		"+app_update", "223350", "validate",
		"+quit",
	}, (*runs)[0].args)
}

func TestClient_redacted(t *testing.T) {
	c := NewClient("steamcmd", "operator", "secret")

	out := c.redacted([]string{"+login", "operator", "secret", "+quit"})

	assert.Equal(t, []string{"+login", "operator", "******", "+quit"}, out)
}
