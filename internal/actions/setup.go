package actions

import (
	"fmt"

	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/camspiers/dayzmanager/pkg/server"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// Setup provisions a fresh installation: Steam authentication, steamcmd
// bootstrap, server binary installation and a full reconcile.
func Setup(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	cfg, err := configFromCLI(cliCtx)
	if err != nil {
		return err
	}

	err = server.GuardNotRunning(cfg.Root)
	if err != nil {
		return err
	}

	steam, err := steamClient(cliCtx, cfg)
	if err != nil {
		return err
	}

	err = steam.EnsureInstalled(ctx, dayz.SteamCMDDir(cfg.Root))
	if err != nil {
		return err
	}

	fmt.Println("Authenticating with Steam...")
	err = steam.Login(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Installing server...")
	err = steam.InstallApp(ctx, dayz.ServerDir(cfg.Root), dayz.ServerAppID)
	if err != nil {
		return errors.WithMessage(err, "failed to install server")
	}

	err = reconcile(ctx, cfg, steam)
	if err != nil {
		return err
	}

	fmt.Println("Setup complete")

	return nil
}
