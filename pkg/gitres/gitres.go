package gitres

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/camspiers/dayzmanager/internal/config"
	"github.com/camspiers/dayzmanager/pkg/utils"
	"github.com/pkg/errors"
)

// StateConflictError reports a resource target path that is occupied by
// something this tool does not manage. It is never resolved automatically.
type StateConflictError struct {
	Path string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf(
		"path %s exists but is not a git checkout, refusing to touch it; resolve manually",
		e.Path,
	)
}

// Syncer keeps version-controlled resource checkouts up to date using the
// git command line tool.
type Syncer struct {
	root   string
	run    func(ctx context.Context, command string, args ...string) (string, error)
	lookup func(command string) bool
}

func NewSyncer(root string) *Syncer {
	return &Syncer{
		root:   root,
		run:    utils.ExecCommandWithOutput,
		lookup: utils.IsCommandAvailable,
	}
}

func (s *Syncer) Sync(ctx context.Context, specs []config.ResourceSpec) error {
	if len(specs) > 0 && !s.lookup("git") {
		return errors.New("git is not available in PATH")
	}

	for _, spec := range specs {
		err := s.syncResource(ctx, spec)
		if err != nil {
			return errors.WithMessagef(err, "failed to sync resource %s", spec.Name)
		}
	}

	return nil
}

// syncResource never merges: an update that cannot fast-forward fails so
// that local edits are preserved for the operator to reconcile.
func (s *Syncer) syncResource(ctx context.Context, spec config.ResourceSpec) error {
	target := filepath.Join(s.root, spec.Name)

	switch {
	case utils.IsDirExists(filepath.Join(target, ".git")):
		log.Println("Updating resource", spec.Name)
		_, err := s.run(ctx, "git", "-C", target, "pull", "--ff-only")
		if err != nil {
			return errors.WithMessage(err, "failed to fast-forward checkout")
		}
	case utils.IsFileExists(target):
		return &StateConflictError{Path: target}
	default:
		log.Println("Cloning resource", spec.Name)
		_, err := s.run(ctx, "git", "clone", spec.URL, target)
		if err != nil {
			return errors.WithMessage(err, "failed to clone")
		}
	}

	return nil
}
