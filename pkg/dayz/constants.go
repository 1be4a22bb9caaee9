package dayz

import (
	"path/filepath"
	"strconv"
)

// Version is replaced at build time via -ldflags.
var Version = "develop"

// Steam application ids. Workshop content for DayZ is published under the
// game's app id, while the dedicated server ships as its own app.
const (
	WorkshopAppID = 221100
	ServerAppID   = 223350
)

const (
	ServerBinaryName  = "DayZServer"
	ServerConfigName  = "serverDZ.cfg"
	DefaultServerPort = 2302

	PIDFileName       = "dayzmanager.pid"
	InstallMarkerName = ".dayzmanager"
)

const DefaultLogPath = "/var/log/dayzmanager"

func ServerDir(root string) string {
	return filepath.Join(root, "server")
}

func ServerBinaryPath(root string) string {
	return filepath.Join(ServerDir(root), ServerBinaryName)
}

func WorkshopContentDir(root string, appID int) string {
	return filepath.Join(root, "steamapps", "workshop", "content", strconv.Itoa(appID))
}

func KeysDir(root string) string {
	return filepath.Join(ServerDir(root), "keys")
}

func MissionsDir(root string) string {
	return filepath.Join(ServerDir(root), "mpmissions")
}

func BackupsDir(root string) string {
	return filepath.Join(root, "backups")
}

func SteamCMDDir(root string) string {
	return filepath.Join(root, "steamcmd")
}

func PIDFilePath(root string) string {
	return filepath.Join(root, PIDFileName)
}
