package backup

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/camspiers/dayzmanager/internal/config"
	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/camspiers/dayzmanager/pkg/utils"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const archivePrefix = "mpmissions-"

const timestampLayout = "20060102-150405"

// Manager archives the runtime mission directory and prunes old archives by
// age.
type Manager struct {
	root          string
	compression   string
	retentionDays int
}

func New(root string, cfg config.Backup) *Manager {
	return &Manager{
		root:          root,
		compression:   cfg.Compression,
		retentionDays: cfg.RetentionDays,
	}
}

// Create writes a compressed tar of the mission directory into the backups
// directory and returns the archive path.
func (m *Manager) Create(now time.Time) (string, error) {
	src := dayz.MissionsDir(m.root)
	if !utils.IsDirExists(src) {
		return "", errors.Errorf("mission directory %s not found", src)
	}

	err := os.MkdirAll(dayz.BackupsDir(m.root), 0755)
	if err != nil {
		return "", errors.WithMessage(err, "failed to create backups directory")
	}

	name := fmt.Sprintf("%s%s.tar.%s", archivePrefix, now.Format(timestampLayout), m.ext())
	path := filepath.Join(dayz.BackupsDir(m.root), name)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.WithMessage(err, "failed to create archive file")
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			log.Println("Failed to close archive:", err)
		}
	}(f)

	err = m.compress(src, f)
	if err != nil {
		return "", errors.WithMessage(err, "failed to write archive")
	}

	log.Println("Created backup", path)

	return path, nil
}

func (m *Manager) ext() string {
	if m.compression == config.CompressionLZ4 {
		return "lz4"
	}

	return "gz"
}

func (m *Manager) compress(src string, out io.Writer) error {
	var cw io.WriteCloser
	if m.compression == config.CompressionLZ4 {
		cw = lz4.NewWriter(out)
	} else {
		cw = gzip.NewWriter(out)
	}

	tw := tar.NewWriter(cw)

	err := filepath.Walk(src, func(file string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, file)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		header, err := tar.FileInfoHeader(fi, file)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)

		err = tw.WriteHeader(header)
		if err != nil {
			return err
		}

		if fi.IsDir() {
			return nil
		}

		data, err := os.Open(file)
		if err != nil {
			return err
		}
		defer func(data *os.File) {
			err := data.Close()
			if err != nil {
				log.Println(err)
			}
		}(data)

		_, err = io.Copy(tw, data)

		return err
	})
	if err != nil {
		return err
	}

	err = tw.Close()
	if err != nil {
		return err
	}

	return cw.Close()
}

// Prune removes archives older than the retention window. Failures are
// accumulated so one stubborn file does not stop the sweep.
func (m *Manager) Prune(now time.Time) error {
	dir := dayz.BackupsDir(m.root)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.WithMessage(err, "failed to read backups directory")
	}

	cutoff := now.AddDate(0, 0, -m.retentionDays)

	var result error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), archivePrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			result = multierr.Append(result, err)

			continue
		}

		if !info.ModTime().Before(cutoff) {
			continue
		}

		err = os.Remove(filepath.Join(dir, entry.Name()))
		if err != nil {
			result = multierr.Append(result, err)

			continue
		}

		log.Println("Pruned backup", entry.Name())
	}

	return result
}
