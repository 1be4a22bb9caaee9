package actions

import (
	"fmt"
	"os"
	"runtime"

	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/camspiers/dayzmanager/pkg/releasefinder"
	"github.com/camspiers/dayzmanager/pkg/utils"
	"github.com/minio/selfupdate"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/mod/semver"
)

const releasesAPI = "https://api.github.com/repos/camspiers/dayzmanager/releases"

// SelfUpdate replaces the running binary with the latest published release.
func SelfUpdate(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	fmt.Println("Checking for new versions...")
	release, err := releasefinder.Find(ctx, releasesAPI, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return errors.WithMessage(err, "failed to find release")
	}

	fmt.Println("Latest version is", release.Tag)
	fmt.Println("Your version is", dayz.Version)

	if semver.Compare(release.Tag, "v"+dayz.Version) != +1 && !cliCtx.Bool("force") {
		fmt.Println("No updates available")

		return nil
	}

	fmt.Printf("Downloading from %s\n", release.URL)

	f, err := os.CreateTemp("", "dayzmanager")
	if err != nil {
		return errors.WithMessage(err, "failed to create temp file")
	}
	defer func() {
		err := f.Close()
		if err != nil {
			fmt.Println("Failed to close temp file")

			return
		}
		err = os.Remove(f.Name())
		if err != nil {
			fmt.Println("Failed to remove temp file")
		}
	}()

	err = utils.DownloadFile(ctx, release.URL, f.Name())
	if err != nil {
		return errors.WithMessage(err, "failed to download")
	}

	_, err = f.Seek(0, 0)
	if err != nil {
		return errors.WithMessage(err, "failed to seek temp file")
	}

	fmt.Println("Applying...")
	err = selfupdate.Apply(f, selfupdate.Options{})
	if err != nil {
		return errors.WithMessage(err, "failed to update")
	}

	fmt.Println("Updated successfully")

	return nil
}
