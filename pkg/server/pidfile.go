package server

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type AlreadyRunningError int

func (e AlreadyRunningError) Error() string {
	return fmt.Sprintf("a server is already running with pid %d", int(e))
}

func WritePIDFile(root string, pid int) error {
	err := os.WriteFile(dayz.PIDFilePath(root), []byte(strconv.Itoa(pid)), 0644)
	if err != nil {
		return errors.WithMessage(err, "failed to write pid file")
	}

	return nil
}

func RemovePIDFile(root string) {
	err := os.Remove(dayz.PIDFilePath(root))
	if err != nil && !os.IsNotExist(err) {
		log.Println("Failed to remove pid file:", err)
	}
}

func ReadPID(root string) (int, error) {
	b, err := os.ReadFile(dayz.PIDFilePath(root))
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, errors.WithMessage(err, "failed to parse pid file")
	}

	return pid, nil
}

// IsRunning reports whether a supervised server is live for this install
// root. A pid file naming a dead process is a stale artifact and reports
// false. The probe is signal 0: no effect on the target process.
func IsRunning(root string) bool {
	pid, err := ReadPID(root)
	if err != nil {
		return false
	}

	return unix.Kill(pid, 0) == nil
}

// GuardNotRunning gates mutating commands: it fails while a server is live
// so the installation's files are never touched underneath a running server.
func GuardNotRunning(root string) error {
	if !IsRunning(root) {
		return nil
	}

	pid, err := ReadPID(root)
	if err != nil {
		return err
	}

	return AlreadyRunningError(pid)
}
