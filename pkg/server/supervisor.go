package server

import (
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/camspiers/dayzmanager/internal/config"
	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/pkg/errors"
)

// child is the part of the running server the supervisor interacts with.
type child interface {
	Signal(sig os.Signal) error
}

type waitResult struct {
	code int
}

// Supervisor launches the server as a foreground child, records its pid,
// forwards termination, interrupt and hangup signals to it, and reports the
// child's exit code as its own.
type Supervisor struct {
	cfg *config.Config
}

func NewSupervisor(cfg *config.Config) *Supervisor {
	return &Supervisor{cfg: cfg}
}

// Run blocks until the server exits and returns its exit code. There is no
// grace-period kill: if the child ignores a forwarded signal, Run keeps
// waiting until the child exits on its own terms.
func (s *Supervisor) Run() (int, error) {
	argv, err := CommandLine(s.cfg)
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dayz.ServerDir(s.cfg.Root)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Println("Starting server:", cmd.String())

	// Installed before the child exists so a termination signal delivered
	// during startup cannot kill the supervisor and orphan the child.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sigs)

	err = cmd.Start()
	if err != nil {
		return 0, errors.WithMessage(err, "failed to start server")
	}

	err = WritePIDFile(s.cfg.Root, cmd.Process.Pid)
	if err != nil {
		// Without the pid file the liveness guard cannot see this server,
		// so the child must not be left running.
		killErr := cmd.Process.Kill()
		if killErr != nil {
			log.Println("Failed to kill server:", killErr)
		}
		_ = cmd.Wait()

		return 0, err
	}
	defer RemovePIDFile(s.cfg.Root)

	log.Println("Server started with pid", cmd.Process.Pid)

	waits := make(chan waitResult, 1)
	go func() {
		waits <- waitResult{code: exitCode(cmd.Wait())}
	}()

	return supervise(cmd.Process, sigs, waits), nil
}

// supervise is the supervisor's state machine. A forwarded hangup keeps
// supervision alive; termination and interrupt block until the child exits.
// The child's exit code is returned in every case.
func supervise(c child, sigs <-chan os.Signal, waits <-chan waitResult) int {
	for {
		select {
		case sig := <-sigs:
			log.Println("Forwarding signal to server:", sig)

			err := c.Signal(sig)
			if err != nil {
				log.Println("Failed to forward signal:", err)
			}

			if sig == syscall.SIGHUP {
				continue
			}

			res := <-waits

			return res.code
		case res := <-waits:
			return res.code
		}
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		log.Println("Failed to wait for server:", err)

		return 1
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}

	return exitErr.ExitCode()
}
