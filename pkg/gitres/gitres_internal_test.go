package gitres

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/camspiers/dayzmanager/internal/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingSyncer(root string, fail error) (*Syncer, *[][]string) {
	calls := &[][]string{}

	s := NewSyncer(root)
	s.lookup = func(string) bool { return true }
	s.run = func(_ context.Context, command string, args ...string) (string, error) {
		*calls = append(*calls, append([]string{command}, args...))

		return "", fail
	}

	return s, calls
}

func TestSyncer_Sync_gitUnavailable(t *testing.T) {
	s, calls := recordingSyncer(t.TempDir(), nil)
	s.lookup = func(string) bool { return false }

	err := s.Sync(context.Background(), []config.ResourceSpec{
		{Kind: config.ResourceKindGit, Name: "serverfiles", URL: "https://example.com/serverfiles.git"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "git")
	assert.Empty(t, *calls)
}

func TestSyncer_Sync_clone(t *testing.T) {
	root := t.TempDir()
	s, calls := recordingSyncer(root, nil)

	err := s.Sync(context.Background(), []config.ResourceSpec{
		{Kind: config.ResourceKindGit, Name: "serverfiles", URL: "https://example.com/serverfiles.git"},
	})

	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(
		t,
		[]string{"git", "clone", "https://example.com/serverfiles.git", filepath.Join(root, "serverfiles")},
		(*calls)[0],
	)
}

func TestSyncer_Sync_fastForward(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "serverfiles")
	require.NoError(t, os.MkdirAll(filepath.Join(target, ".git"), 0755))

	s, calls := recordingSyncer(root, nil)

	err := s.Sync(context.Background(), []config.ResourceSpec{
		{Kind: config.ResourceKindGit, Name: "serverfiles", URL: "https://example.com/serverfiles.git"},
	})

	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"git", "-C", target, "pull", "--ff-only"}, (*calls)[0])
}

func TestSyncer_Sync_divergedHistoryAborts(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "serverfiles", ".git"), 0755))

	s, _ := recordingSyncer(root, errors.New("fatal: Not possible to fast-forward, aborting."))

	err := s.Sync(context.Background(), []config.ResourceSpec{
		{Kind: config.ResourceKindGit, Name: "serverfiles", URL: "https://example.com/serverfiles.git"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "serverfiles")
	assert.Contains(t, err.Error(), "fast-forward")
}

func TestSyncer_Sync_unmanagedDirectoryConflict(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "serverfiles")
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "data.bin"), []byte("x"), 0644))

	s, calls := recordingSyncer(root, nil)

	err := s.Sync(context.Background(), []config.ResourceSpec{
		{Kind: config.ResourceKindGit, Name: "serverfiles", URL: "https://example.com/serverfiles.git"},
	})

	require.Error(t, err)

	var conflict *StateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, target, conflict.Path)

	// No git command ran and the directory is untouched.
	assert.Empty(t, *calls)
	assert.FileExists(t, filepath.Join(target, "data.bin"))
}
