package actions

import (
	"context"
	"fmt"
	"os"

	"github.com/camspiers/dayzmanager/internal/config"
	contextInternal "github.com/camspiers/dayzmanager/internal/context"
	"github.com/camspiers/dayzmanager/pkg/gitres"
	"github.com/camspiers/dayzmanager/pkg/mission"
	"github.com/camspiers/dayzmanager/pkg/steamcmd"
	"github.com/camspiers/dayzmanager/pkg/workshop"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const steamPasswordEnv = "DAYZMANAGER_STEAM_PASSWORD"

func configFromCLI(cliCtx *cli.Context) (*config.Config, error) {
	cfg := contextInternal.ConfigFromContext(cliCtx.Context)
	if cfg == nil {
		return nil, errors.New("configuration is not loaded")
	}

	return cfg, nil
}

func steamClient(cliCtx *cli.Context, cfg *config.Config) (*steamcmd.Client, error) {
	password := os.Getenv(steamPasswordEnv)

	if password == "" && !cliCtx.Bool("non-interactive") {
		fmt.Printf("Steam password for %s: ", cfg.Steam.User)

		// Read without echo.
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return nil, errors.WithMessage(err, "failed to read password")
		}
		fmt.Println()

		password = string(b)
	}

	return steamcmd.NewClient("", cfg.Steam.User, password), nil
}

// reconcile converges the installation toward the desired state, strictly in
// content, resources, missions order. The first failure aborts the run;
// already-completed items are left in place for inspection.
func reconcile(ctx context.Context, cfg *config.Config, steam *steamcmd.Client) error {
	fmt.Println("Synchronizing workshop content...")
	err := workshop.NewSyncer(cfg.Root, steam).Sync(ctx, cfg.Workshop)
	if err != nil {
		return err
	}

	fmt.Println("Synchronizing resources...")
	err = gitres.NewSyncer(cfg.Root).Sync(ctx, cfg.Resources)
	if err != nil {
		return err
	}

	fmt.Println("Synchronizing missions...")
	err = mission.NewSyncer(cfg.Root).Sync(ctx, cfg.Missions)
	if err != nil {
		return err
	}

	return nil
}
