package service

import (
	"context"
	"log"
	"os/exec"

	"github.com/pkg/errors"
)

// systemctl wrapper for controlling the installed dayzmanager unit.

func Start(ctx context.Context, serviceName string) error {
	return run(ctx, "start", serviceName)
}

func Stop(ctx context.Context, serviceName string) error {
	return run(ctx, "stop", serviceName)
}

func Restart(ctx context.Context, serviceName string) error {
	return run(ctx, "restart", serviceName)
}

const (
	systemdStatusInactive = 3
	systemdStatusNotFound = 4
)

func Status(ctx context.Context, serviceName string) error {
	cmd := exec.CommandContext(ctx, "systemctl", "--no-pager", "status", serviceName)
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println(cmd.String())

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return errors.WithMessage(err, "service status command failed")
	}

	switch exitErr.ExitCode() {
	case systemdStatusInactive:
		return ErrInactiveService
	case systemdStatusNotFound:
		return NewNotFoundError(serviceName)
	default:
		return errors.Wrapf(err, "service status command failed with exit code %d", exitErr.ExitCode())
	}
}

func run(ctx context.Context, action string, serviceName string) error {
	cmd := exec.CommandContext(ctx, "systemctl", action, serviceName)
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println(cmd.String())

	return cmd.Run()
}
