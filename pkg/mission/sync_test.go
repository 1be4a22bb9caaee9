package mission_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/camspiers/dayzmanager/internal/config"
	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/camspiers/dayzmanager/pkg/mission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	}
}

func missionDst(root string) string {
	return filepath.Join(dayz.MissionsDir(root), "dayzOffline.chernarusplus")
}

func chernarusSpec() config.MissionSpec {
	return config.MissionSpec{
		Source:        "missions/dayzOffline.chernarusplus",
		Exclude:       []string{"storage_1/"},
		UpdateExclude: []string{"db/messages.xml"},
	}
}

func TestSyncer_Sync_firstInstall(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"missions/dayzOffline.chernarusplus/init.c":          "source init",
		"missions/dayzOffline.chernarusplus/db/messages.xml": "source messages",
	})

	dst := missionDst(root)
	writeTree(t, dst, map[string]string{
		"storage_1/players.db": "runtime data",
		"stale.xml":            "left over",
	})

	err := mission.NewSyncer(root).Sync(context.Background(), []config.MissionSpec{chernarusSpec()})

	require.NoError(t, err)

	// Full mirror: source files copied, stale destination file removed,
	// always-excluded runtime storage untouched.
	b, err := os.ReadFile(filepath.Join(dst, "init.c"))
	require.NoError(t, err)
	assert.Equal(t, "source init", string(b))

	b, err = os.ReadFile(filepath.Join(dst, "db", "messages.xml"))
	require.NoError(t, err)
	assert.Equal(t, "source messages", string(b))

	assert.NoFileExists(t, filepath.Join(dst, "stale.xml"))
	assert.FileExists(t, filepath.Join(dst, "storage_1", "players.db"))

	// Marker created after a successful mirror.
	assert.FileExists(t, filepath.Join(dst, dayz.InstallMarkerName))
}

func TestSyncer_Sync_updatePreservesExcluded(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"missions/dayzOffline.chernarusplus/init.c":          "source init v2",
		"missions/dayzOffline.chernarusplus/db/messages.xml": "source messages v2",
	})

	dst := missionDst(root)
	writeTree(t, dst, map[string]string{
		"init.c":                "local init",
		"db/messages.xml":       "operator edited",
		dayz.InstallMarkerName:  "",
		"storage_1/players.db":  "runtime data",
		"storage_1/dynamic.bin": "runtime data",
	})

	err := mission.NewSyncer(root).Sync(context.Background(), []config.MissionSpec{chernarusSpec()})

	require.NoError(t, err)

	// Regular files track the source.
	b, err := os.ReadFile(filepath.Join(dst, "init.c"))
	require.NoError(t, err)
	assert.Equal(t, "source init v2", string(b))

	// Update-only excluded file keeps the operator's edits.
	b, err = os.ReadFile(filepath.Join(dst, "db", "messages.xml"))
	require.NoError(t, err)
	assert.Equal(t, "operator edited", string(b))

	assert.FileExists(t, filepath.Join(dst, "storage_1", "players.db"))
	assert.FileExists(t, filepath.Join(dst, dayz.InstallMarkerName))
}

func TestSyncer_Sync_droppedDirectoryKeepsExcludedFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"missions/dayzOffline.chernarusplus/init.c": "source init",
	})

	dst := missionDst(root)
	writeTree(t, dst, map[string]string{
		"init.c":               "local init",
		"db/messages.xml":      "operator edited",
		"db/events.xml":        "old events",
		dayz.InstallMarkerName: "",
	})

	// The source dropped db entirely; the update-only excluded file inside
	// it must survive while the rest of the directory is mirrored away.
	err := mission.NewSyncer(root).Sync(context.Background(), []config.MissionSpec{chernarusSpec()})

	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dst, "db", "messages.xml"))
	require.NoError(t, err)
	assert.Equal(t, "operator edited", string(b))

	assert.NoFileExists(t, filepath.Join(dst, "db", "events.xml"))
}

func TestSyncer_Sync_markerForcesFullMirror(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"missions/dayzOffline.chernarusplus/db/messages.xml": "source messages",
	})

	dst := missionDst(root)
	writeTree(t, dst, map[string]string{
		"db/messages.xml": "operator edited",
	})

	// No marker: the update-only exclude is not applied.
	err := mission.NewSyncer(root).Sync(context.Background(), []config.MissionSpec{chernarusSpec()})

	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dst, "db", "messages.xml"))
	require.NoError(t, err)
	assert.Equal(t, "source messages", string(b))
}

func TestSyncer_Sync_converges(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"missions/dayzOffline.chernarusplus/init.c":        "init",
		"missions/dayzOffline.chernarusplus/env/wolf.xml":  "wolf",
		"missions/dayzOffline.chernarusplus/db/events.xml": "events",
	})

	syncer := mission.NewSyncer(root)
	specs := []config.MissionSpec{chernarusSpec()}

	require.NoError(t, syncer.Sync(context.Background(), specs))
	require.NoError(t, syncer.Sync(context.Background(), specs))

	dst := missionDst(root)
	for _, rel := range []string{"init.c", "env/wolf.xml", "db/events.xml"} {
		assert.FileExists(t, filepath.Join(dst, filepath.FromSlash(rel)))
	}
}

func TestSyncer_Sync_missingSource(t *testing.T) {
	root := t.TempDir()

	err := mission.NewSyncer(root).Sync(context.Background(), []config.MissionSpec{chernarusSpec()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dayzOffline.chernarusplus")
}
