package vortconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/vort/cmds"
	"github.com/reusee/vort/configs"
	"github.com/reusee/vort/logs"
)

//go:embed schema.cue
var schema string

var configFlag = cmds.Collect[string]("-config", "read this config file first, repeatable")

func init() {
	cmds.Define("-no-config", cmds.Func(func() {
		noConfig = true
	}).Desc("do not read vort.cue files"))
}

var noConfig bool

// ConfigPaths lists config files in precedence order: explicit -config
// files, then the working directory, the user config dir and /etc.
type ConfigPaths []string

func (Module) ConfigPaths() ConfigPaths {
	paths := ConfigPaths(*configFlag)
	if noConfig {
		return paths
	}

	filenames := []string{
		"vort.cue",
		".vort.cue",
	}
	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "vort"))
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

func (Module) ConfigsLoader(
	paths ConfigPaths,
	logger logs.Logger,
) configs.Loader {
	if len(paths) > 0 {
		logger.Debug("config file",
			"paths", []string(paths),
		)
	}
	return configs.NewLoader(paths, schema)
}
