//go:build linux || darwin

package runhelper

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

const (
	InitUnknown = "unknown"
	InitSystemd = "systemd"
)

// DetectInit inspects pid 1 to decide whether systemd drives this host.
func DetectInit(ctx context.Context) (string, error) {
	p, err := process.NewProcessWithContext(ctx, 1)
	if err != nil {
		return InitUnknown, errors.WithMessage(err, "failed to load process with pid 1")
	}

	exe, err := p.ExeWithContext(ctx)
	if err != nil {
		return InitUnknown, errors.WithMessage(err, "failed to get executable path of pid 1")
	}

	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		resolved = exe
	}

	if filepath.Base(resolved) == "systemd" {
		return InitSystemd, nil
	}

	return InitUnknown, nil
}
