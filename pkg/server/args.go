package server

import (
	"fmt"
	"strings"

	"github.com/camspiers/dayzmanager/internal/config"
	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/gopherclass/go-shellquote"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// LaunchArgs builds the server argument list: fixed flags, port, operator
// flags in declared order, then the combined mod-selection flag.
func LaunchArgs(cfg *config.Config) []string {
	args := []string{
		"-config=" + dayz.ServerConfigName,
		fmt.Sprintf("-port=%d", cfg.Server.Port),
		"-BEpath=battleye",
		"-profiles=profiles",
		"-dologs",
		"-adminlog",
		"-netlog",
		"-freezecheck",
	}

	args = append(args, cfg.Server.Args...)

	if len(cfg.Workshop) > 0 {
		names := lo.Map(cfg.Workshop, func(item config.ContentItem, _ int) string {
			return item.Name
		})
		args = append(args, "-mod="+strings.Join(names, ";"))
	}

	return args
}

// CommandLine is the full argv for the child process, including the
// optional wrapper command.
func CommandLine(cfg *config.Config) ([]string, error) {
	var argv []string

	if cfg.Server.Wrapper != "" {
		words, err := shellquote.Split(cfg.Server.Wrapper)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to parse wrapper command")
		}
		argv = append(argv, words...)
	}

	argv = append(argv, dayz.ServerBinaryPath(cfg.Root))
	argv = append(argv, LaunchArgs(cfg)...)

	return argv, nil
}
