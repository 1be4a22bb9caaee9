package actions

import (
	"fmt"
	"time"

	"github.com/camspiers/dayzmanager/pkg/server"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/urfave/cli/v2"
)

// Status reports whether a supervised server is live for this installation.
func Status(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	cfg, err := configFromCLI(cliCtx)
	if err != nil {
		return err
	}

	if !server.IsRunning(cfg.Root) {
		fmt.Println("Server is not running")

		return nil
	}

	pid, err := server.ReadPID(cfg.Root)
	if err != nil {
		return errors.WithMessage(err, "failed to read pid file")
	}

	fmt.Println("Server is running with pid", pid)

	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return nil
	}

	if name, err := p.NameWithContext(ctx); err == nil {
		fmt.Println("Process:", name)
	}
	if created, err := p.CreateTimeWithContext(ctx); err == nil {
		started := time.UnixMilli(created)
		fmt.Printf("Started: %s (up %s)\n", started.Format(time.RFC1123), time.Since(started).Round(time.Second))
	}

	return nil
}
