package actions

import (
	"fmt"

	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/camspiers/dayzmanager/pkg/server"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// Update refreshes the server binary and reconciles content, resources and
// missions against the desired state.
func Update(cliCtx *cli.Context) error {
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

	fmt.Println("Updating server...")
	err = steam.InstallApp(ctx, dayz.ServerDir(cfg.Root), dayz.ServerAppID)
	if err != nil {
		return errors.WithMessage(err, "failed to update server")
	}

	err = reconcile(ctx, cfg, steam)
	if err != nil {
		return err
	}

	fmt.Println("Update complete")

	return nil
}
