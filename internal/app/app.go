package app

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/camspiers/dayzmanager/internal/actions"
	"github.com/camspiers/dayzmanager/internal/config"
	contextInternal "github.com/camspiers/dayzmanager/internal/context"
	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/camspiers/dayzmanager/pkg/utils"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

//nolint:funlen
func Run(args []string) {
	logname := setupLogging()

	app := &cli.App{
		Name:    "dayzmanager",
		Usage:   "DayZ dedicated server manager",
		Version: dayz.Version,
		Before: func(cliCtx *cli.Context) error {
			path := cliCtx.String("config")

			// Commands like self-update work without a configuration file;
			// the ones that need it fail on their own.
			if !utils.IsFileExists(path) {
				return nil
			}

			ctx, err := contextInternal.SetConfigContext(cliCtx.Context, path)
			if err != nil {
				return err
			}
			cliCtx.Context = ctx

			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultFileName,
				Usage: "path to the desired-state configuration file",
			},
			&cli.BoolFlag{
				Name:  "non-interactive",
				Value: false,
			},
		},
		Commands: []*cli.Command{
			{
				Name:        "setup",
				Description: "Install steamcmd and the server, then synchronize all declared state",
				Usage:       "Provision a fresh server installation",
				Action:      actions.Setup,
			},
			{
				Name:        "update",
				Aliases:     []string{"u"},
				Description: "Update the server and synchronize all declared state",
				Usage:       "Update an existing installation",
				Action:      actions.Update,
			},
			{
				Name:        "start",
				Aliases:     []string{"s"},
				Description: "Start the server in the foreground and supervise it",
				Usage:       "Start the server",
				Action:      actions.Start,
			},
			{
				Name:        "status",
				Description: "Show whether a server is running for this installation",
				Usage:       "Show server status",
				Action:      actions.Status,
			},
			{
				Name:        "backup",
				Aliases:     []string{"b"},
				Description: "Archive the mission directory and prune old backups",
				Usage:       "Back up mission data",
				Action:      actions.Backup,
			},
			{
				Name:        "service",
				Description: "Manage the systemd unit for this installation",
				Usage:       "Manage the systemd unit",
				Subcommands: []*cli.Command{
					{
						Name:        "install",
						Aliases:     []string{"i"},
						Description: "Install the systemd unit",
						Usage:       "Install the systemd unit",
						Action:      actions.ServiceInstall,
					},
					{
						Name:   "start",
						Usage:  "Start the service",
						Action: actions.ServiceStart,
					},
					{
						Name:   "stop",
						Usage:  "Stop the service",
						Action: actions.ServiceStop,
					},
					{
						Name:   "status",
						Usage:  "Show service status",
						Action: actions.ServiceStatus,
					},
				},
			},
			{
				Name:        "self-update",
				Description: "Update dayzmanager to the latest release",
				Usage:       "Update dayzmanager",
				Action:      actions.SelfUpdate,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name: "force",
					},
				},
			},
		},
	}

	err := app.Run(args)
	if err != nil {
		fmt.Println(err)
		if logname != "" {
			fmt.Println("See details in log file:", logname)
		}
		log.Fatal(err)
	}
}

// setupLogging sends the log to a timestamped file, falling back to stderr
// when the log directory is not writable. Returns the log file path, or ""
// on fallback.
func setupLogging() string {
	if _, err := os.Stat(dayz.DefaultLogPath); errors.Is(err, fs.ErrNotExist) {
		err := os.Mkdir(dayz.DefaultLogPath, 0755)
		if err != nil {
			return ""
		}
	}

	logname := fmt.Sprintf("%s/%s.log", dayz.DefaultLogPath, time.Now().Format("2006-01-02_15-04-05"))
	logFile, err := os.OpenFile(logname, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return ""
	}

	log.SetOutput(logFile)

	return logname
}
