package actions

import (
	"github.com/camspiers/dayzmanager/pkg/server"
	"github.com/urfave/cli/v2"
)

// Start launches the server under supervision and exits with the server's
// own exit code once it terminates.
func Start(cliCtx *cli.Context) error {
	cfg, err := configFromCLI(cliCtx)
	if err != nil {
		return err
	}

	err = server.GuardNotRunning(cfg.Root)
	if err != nil {
		return err
	}

	code, err := server.NewSupervisor(cfg).Run()
	if err != nil {
		return err
	}

	if code != 0 {
		return cli.Exit("", code)
	}

	return nil
}
