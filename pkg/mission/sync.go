package mission

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/camspiers/dayzmanager/internal/config"
	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/camspiers/dayzmanager/pkg/utils"
	"github.com/pkg/errors"
)

// Syncer mirrors declared mission source trees into the server's runtime
// mission directory.
type Syncer struct {
	root string
}

func NewSyncer(root string) *Syncer {
	return &Syncer{root: root}
}

func (s *Syncer) Sync(_ context.Context, specs []config.MissionSpec) error {
	err := os.MkdirAll(dayz.MissionsDir(s.root), 0755)
	if err != nil {
		return errors.WithMessage(err, "failed to create mission directory")
	}

	for _, spec := range specs {
		err := s.syncMission(spec)
		if err != nil {
			return errors.WithMessagef(err, "failed to sync mission %s", spec.Destination())
		}
	}

	return nil
}

func (s *Syncer) syncMission(spec config.MissionSpec) error {
	src := filepath.Join(s.root, spec.Source)
	if !utils.IsDirExists(src) {
		return errors.Errorf("mission source %s not found", src)
	}

	dst := filepath.Join(dayz.MissionsDir(s.root), spec.Destination())
	marker := filepath.Join(dst, dayz.InstallMarkerName)

	// The marker's presence is the only signal distinguishing first install
	// from update. The marker itself is excluded from mirroring so deletion
	// propagation never removes it.
	patterns := []string{dayz.InstallMarkerName}
	patterns = append(patterns, spec.Exclude...)
	if utils.IsFileExists(marker) {
		patterns = append(patterns, spec.UpdateExclude...)
	}

	srcTree, err := Snapshot(src)
	if err != nil {
		return errors.WithMessage(err, "failed to snapshot source tree")
	}
	dstTree, err := Snapshot(dst)
	if err != nil {
		return errors.WithMessage(err, "failed to snapshot destination tree")
	}

	ops := Plan(srcTree, dstTree, patterns)
	log.Printf("Mirroring %s: %d operations\n", spec.Destination(), len(ops))

	err = s.apply(src, dst, ops)
	if err != nil {
		return err
	}

	err = os.WriteFile(marker, nil, 0644)
	if err != nil {
		return errors.WithMessage(err, "failed to write install marker")
	}

	return nil
}

func (s *Syncer) apply(src string, dst string, ops []Op) error {
	err := os.MkdirAll(dst, 0755)
	if err != nil {
		return err
	}

	for _, op := range ops {
		target := filepath.Join(dst, filepath.FromSlash(op.Rel))

		switch op.Kind {
		case OpDelete:
			err = os.RemoveAll(target)
		case OpMkdir:
			err = os.MkdirAll(target, 0755)
		case OpCopy:
			err = os.MkdirAll(filepath.Dir(target), 0755)
			if err == nil {
				err = utils.Copy(filepath.Join(src, filepath.FromSlash(op.Rel)), target)
			}
		}

		if err != nil {
			return errors.WithMessagef(err, "failed to mirror %s", op.Rel)
		}
	}

	return nil
}
