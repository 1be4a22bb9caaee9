package workshop

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/camspiers/dayzmanager/internal/config"
	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/pkg/errors"
)

// Key directories ship under either case variant depending on the mod author.
var keyDirNames = []string{"keys", "Keys"}

// Fetcher downloads a workshop item into the content cache under installDir.
type Fetcher interface {
	DownloadItem(ctx context.Context, installDir string, appID int, itemID int) error
}

// Syncer converges mod symlinks and the shared key directory toward the
// declared workshop item list.
type Syncer struct {
	root    string
	fetcher Fetcher
}

func NewSyncer(root string, fetcher Fetcher) *Syncer {
	return &Syncer{
		root:    root,
		fetcher: fetcher,
	}
}

// Sync processes items in declaration order and stops at the first failure.
// The shared key directory is cleared up front so that after a successful run
// it holds exactly the current item set's keys.
func (s *Syncer) Sync(ctx context.Context, items []config.ContentItem) error {
	err := s.resetKeysDir()
	if err != nil {
		return errors.WithMessage(err, "failed to reset key directory")
	}

	for _, item := range items {
		err := s.syncItem(ctx, item)
		if err != nil {
			return errors.WithMessagef(err, "failed to sync workshop item %s", item.Name)
		}
	}

	return nil
}

func (s *Syncer) resetKeysDir() error {
	keysDir := dayz.KeysDir(s.root)

	err := os.MkdirAll(keysDir, 0755)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(keysDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		err = os.RemoveAll(filepath.Join(keysDir, entry.Name()))
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Syncer) syncItem(ctx context.Context, item config.ContentItem) error {
	err := s.fetcher.DownloadItem(ctx, s.root, item.AppID, item.ItemID)
	if err != nil {
		return errors.WithMessage(err, "failed to fetch")
	}

	src := filepath.Join(dayz.WorkshopContentDir(s.root, item.AppID), strconv.Itoa(item.ItemID))
	dst := filepath.Join(dayz.ServerDir(s.root), item.Name)

	err = os.MkdirAll(dayz.ServerDir(s.root), 0755)
	if err != nil {
		return err
	}

	// Lstat so a dangling symlink from a previous run is still replaced.
	_, err = os.Lstat(dst)
	if err == nil {
		err = os.Remove(dst)
		if err != nil {
			return errors.WithMessage(err, "failed to remove existing symlink")
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	err = os.Symlink(src, dst)
	if err != nil {
		return errors.WithMessage(err, "failed to create symlink")
	}

	return s.linkKeys(src)
}

func (s *Syncer) linkKeys(src string) error {
	keysDir := dayz.KeysDir(s.root)

	for _, name := range keyDirNames {
		dir := filepath.Join(src, name)

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			target := filepath.Join(keysDir, entry.Name())

			err = os.Remove(target)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			err = os.Symlink(filepath.Join(dir, entry.Name()), target)
			if err != nil {
				return errors.WithMessagef(err, "failed to link key %s", entry.Name())
			}

			log.Println("Linked key", entry.Name())
		}
	}

	return nil
}
