package server_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/camspiers/dayzmanager/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRunning_noPIDFile(t *testing.T) {
	assert.False(t, server.IsRunning(t.TempDir()))
}

func TestIsRunning_liveProcess(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, server.WritePIDFile(root, os.Getpid()))

	assert.True(t, server.IsRunning(root))
}

func TestIsRunning_stalePIDFile(t *testing.T) {
	root := t.TempDir()
	// Larger than any possible pid, so the liveness probe always fails.
	require.NoError(t, server.WritePIDFile(root, 1<<30))

	assert.False(t, server.IsRunning(root))
}

func TestIsRunning_garbagePIDFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(dayz.PIDFilePath(root), []byte("not a pid"), 0644))

	assert.False(t, server.IsRunning(root))
}

func TestGuardNotRunning(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, server.GuardNotRunning(root))

	require.NoError(t, server.WritePIDFile(root, os.Getpid()))
	err := server.GuardNotRunning(root)

	require.Error(t, err)

	var running server.AlreadyRunningError
	require.ErrorAs(t, err, &running)
	assert.Equal(t, os.Getpid(), int(running))
}

func TestRemovePIDFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, server.WritePIDFile(root, os.Getpid()))

	server.RemovePIDFile(root)

	assert.NoFileExists(t, filepath.Join(root, dayz.PIDFileName))

	// Removing an already-absent pid file is not an error path.
	server.RemovePIDFile(root)
}
