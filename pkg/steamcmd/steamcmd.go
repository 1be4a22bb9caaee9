package steamcmd

import (
	"context"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/camspiers/dayzmanager/pkg/utils"
	"github.com/pkg/errors"
)

const installerURL = "https://steamcdn-a.akamaihd.net/client/installer/steamcmd_linux.tar.gz"

const scriptName = "steamcmd.sh"

// Client wraps the external steamcmd tool. Every operation is a single
// blocking invocation; steamcmd itself decides about retries and timeouts.
type Client struct {
	binary   string
	user     string
	password string

	run func(ctx context.Context, binary string, args ...string) error
}

func NewClient(binary string, user string, password string) *Client {
	c := &Client{
		binary:   binary,
		user:     user,
		password: password,
	}
	c.run = c.execRun

	return c
}

// EnsureInstalled makes sure a steamcmd binary is available, downloading the
// official installer archive into dir when none is found.
func (c *Client) EnsureInstalled(ctx context.Context, dir string) error {
	if c.binary != "" && utils.IsFileExists(c.binary) {
		return nil
	}

	if path, err := exec.LookPath("steamcmd"); err == nil {
		c.binary = path

		return nil
	}

	installed := filepath.Join(dir, scriptName)
	if !utils.IsFileExists(installed) {
		log.Println("steamcmd not found, downloading installer")
		err := utils.Download(ctx, installerURL, dir)
		if err != nil {
			return errors.WithMessage(err, "failed to download steamcmd")
		}
	}

	c.binary = installed

	return nil
}

// Login performs a single blocking authentication call against Steam.
func (c *Client) Login(ctx context.Context) error {
	err := c.run(ctx, c.binary, "+login", c.user, c.password, "+quit")
	if err != nil {
		return errors.WithMessagef(err, "failed to login as %s", c.user)
	}

	return nil
}

// DownloadItem fetches a workshop item into the workshop content cache under
// installDir. Success means the content on disk is current.
func (c *Client) DownloadItem(ctx context.Context, installDir string, appID int, itemID int) error {
	return c.run(ctx, c.binary,
		"+force_install_dir", installDir,
		"+login", c.user, c.password,
		"+workshop_download_item", strconv.Itoa(appID), strconv.Itoa(itemID), "validate",
		"+quit",
	)
}

// InstallApp installs or updates a Steam application into installDir.
func (c *Client) InstallApp(ctx context.Context, installDir string, appID int) error {
	return c.run(ctx, c.binary,
		"+force_install_dir", installDir,
		"+login", c.user, c.password,
		"+app_update", strconv.Itoa(appID), "validate",
		"+quit",
	)
}

func (c *Client) execRun(ctx context.Context, binary string, args ...string) error {
	cmd := exec.CommandContext(ctx, binary, args...)

	cmd.Stdout = log.Writer()
	cmd.Stderr = log.Writer()
	log.Println(binary, strings.Join(c.redacted(args), " "))

	return cmd.Run()
}

func (c *Client) redacted(args []string) []string {
	if c.password == "" {
		return args
	}

	out := make([]string, len(args))
	for i, a := range args {
		if a == c.password {
			a = "******"
		}
		out[i] = a
	}

	return out
}
