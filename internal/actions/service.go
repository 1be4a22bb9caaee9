package actions

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/camspiers/dayzmanager/pkg/runhelper"
	"github.com/camspiers/dayzmanager/pkg/service"
	"github.com/camspiers/dayzmanager/pkg/systemd"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// ServiceInstall renders and installs the systemd unit for this
// installation.
func ServiceInstall(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	cfg, err := configFromCLI(cliCtx)
	if err != nil {
		return err
	}

	init, err := runhelper.DetectInit(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to detect init system")
	}
	if init != runhelper.InitSystemd {
		return errors.New("systemd is required to install the service unit")
	}

	binary, err := os.Executable()
	if err != nil {
		return errors.WithMessage(err, "failed to locate own binary")
	}

	u, err := user.Current()
	if err != nil {
		return errors.WithMessage(err, "failed to look up current user")
	}

	configPath, err := filepath.Abs(cliCtx.String("config"))
	if err != nil {
		return errors.WithMessage(err, "failed to resolve configuration path")
	}

	err = systemd.Install(ctx, systemd.Unit{
		User:       u.Username,
		Root:       cfg.Root,
		Binary:     binary,
		ConfigPath: configPath,
	})
	if err != nil {
		return err
	}

	fmt.Println("Installed", systemd.UnitPath)

	return nil
}

func ServiceStart(cliCtx *cli.Context) error {
	return service.Start(cliCtx.Context, systemd.UnitName)
}

func ServiceStop(cliCtx *cli.Context) error {
	return service.Stop(cliCtx.Context, systemd.UnitName)
}

func ServiceStatus(cliCtx *cli.Context) error {
	err := service.Status(cliCtx.Context, systemd.UnitName)
	if errors.Is(err, service.ErrInactiveService) {
		fmt.Println("Service is inactive")

		return nil
	}

	return err
}
