package logs

import (
	"log/slog"
	"strings"

	"github.com/reusee/vort/cmds"
)

// level is shared by every logger the process builds, so a flag parsed
// after the scope is created still takes effect.
var level = new(slog.LevelVar)

var levelFlags = []struct {
	name  string
	level slog.Level
}{
	{"-log-debug", slog.LevelDebug},
	{"-log-info", slog.LevelInfo},
	{"-log-warn", slog.LevelWarn},
	{"-log-error", slog.LevelError},
}

func init() {
	level.Set(slog.LevelWarn)
	for _, flag := range levelFlags {
		cmd := cmds.Func(func() {
			level.Set(flag.level)
		}).Desc("log " + strings.ToLower(flag.level.String()) + " records and above")
		if flag.level == slog.LevelDebug {
			cmd.Alias("-v")
		}
		cmds.Define(flag.name, cmd)
	}
}

var (
	jsonFormat = cmds.Switch("-log-json", "write log records to stderr as JSON lines")
	toJournal  = cmds.Switch("-log-journal", "also send log records to the systemd journal")
)
