package server_test

import (
	"testing"

	"github.com/camspiers/dayzmanager/internal/config"
	"github.com/camspiers/dayzmanager/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Root: "/srv/dayz",
		Server: config.Server{
			Port: 2302,
			Args: []string{"-cpuCount=4", "-limitFPS=60"},
		},
		Workshop: []config.ContentItem{
			{Name: "@CF", ItemID: 1559212036},
			{Name: "@Expansion", ItemID: 2116151222},
		},
	}
}

func TestLaunchArgs(t *testing.T) {
	args := server.LaunchArgs(testConfig())

	assert.Equal(t, []string{
		"-config=serverDZ.cfg",
		"-port=2302",
		"-BEpath=battleye",
		"-profiles=profiles",
		"-dologs",
		"-adminlog",
		"-netlog",
		"-freezecheck",
		"-cpuCount=4",
		"-limitFPS=60",
		"-mod=@CF;@Expansion",
	}, args)
}

func TestLaunchArgs_withoutMods(t *testing.T) {
	cfg := testConfig()
	cfg.Workshop = nil

	args := server.LaunchArgs(cfg)

	for _, arg := range args {
		assert.NotContains(t, arg, "-mod=")
	}
}

func TestCommandLine_wrapper(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Wrapper = "taskset -c 0-3"

	argv, err := server.CommandLine(cfg)

	require.NoError(t, err)
	assert.Equal(t, []string{"taskset", "-c", "0-3", "/srv/dayz/server/DayZServer"}, argv[:4])
}

func TestCommandLine_withoutWrapper(t *testing.T) {
	argv, err := server.CommandLine(testConfig())

	require.NoError(t, err)
	assert.Equal(t, "/srv/dayz/server/DayZServer", argv[0])
}

func TestCommandLine_badWrapper(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Wrapper = "taskset 'unterminated"

	_, err := server.CommandLine(cfg)

	assert.Error(t, err)
}
