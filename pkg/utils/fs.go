package utils

import (
	"os"

	"github.com/otiai10/copy"
)

func IsFileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func IsDirExists(path string) bool {
	st, err := os.Stat(path)

	return err == nil && st.IsDir()
}

func Copy(src string, dst string) error {
	return copy.Copy(src, dst)
}
