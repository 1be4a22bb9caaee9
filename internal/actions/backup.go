package actions

import (
	"fmt"
	"time"

	"github.com/camspiers/dayzmanager/pkg/backup"
	"github.com/camspiers/dayzmanager/pkg/server"
	"github.com/urfave/cli/v2"
)

// Backup archives the runtime mission directory and prunes archives older
// than the configured retention window.
func Backup(cliCtx *cli.Context) error {
	cfg, err := configFromCLI(cliCtx)
	if err != nil {
		return err
	}

	err = server.GuardNotRunning(cfg.Root)
	if err != nil {
		return err
	}

	m := backup.New(cfg.Root, cfg.Backup)

	path, err := m.Create(time.Now())
	if err != nil {
		return err
	}
	fmt.Println("Created backup", path)

	err = m.Prune(time.Now())
	if err != nil {
		return err
	}

	return nil
}
