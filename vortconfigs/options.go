package vortconfigs

import (
	"cmp"

	"github.com/reusee/vort/cmds"
	"github.com/reusee/vort/configs"
	"github.com/reusee/vort/logs"
	"github.com/reusee/vort/vortlang"
)

var (
	commentFlag        = cmds.Var[string]("-comment", "line comment marker")
	allowRedeclareFlag = cmds.Switch("-allow-redeclare", "let a same-kind declaration overwrite a variable")
	noWarnUnusedFlag   = cmds.Switch("-no-warn-unused", "do not warn about unread variables")
)

// setting reads key from the config files. ok is false when no file sets it.
// A broken config file panics, failing the scope that asked for it.
func setting[T any](loader configs.Loader, logger logs.Logger, key string) (value T, ok bool) {
	value, file, err := configs.Lookup[T](loader, key)
	if err != nil {
		panic(err)
	}
	if file == "" {
		return value, false
	}
	logger.Debug("config value",
		"key", key,
		"value", value,
		"file", file,
	)
	return value, true
}

type CommentMarker string

func (Module) CommentMarker(
	loader configs.Loader,
	logger logs.Logger,
) CommentMarker {
	fromConfig, _ := setting[string](loader, logger, "comment")
	return CommentMarker(cmp.Or(
		*commentFlag,
		fromConfig,
		vortlang.DefaultComment,
	))
}

type AllowRedeclare bool

func (Module) AllowRedeclare(
	loader configs.Loader,
	logger logs.Logger,
) AllowRedeclare {
	if *allowRedeclareFlag {
		return true
	}
	allow, _ := setting[bool](loader, logger, "allow_redeclare")
	return AllowRedeclare(allow)
}

// WarnUnused defaults to true.
type WarnUnused bool

func (Module) WarnUnused(
	loader configs.Loader,
	logger logs.Logger,
) WarnUnused {
	if *noWarnUnusedFlag {
		return false
	}
	warn, ok := setting[bool](loader, logger, "warn_unused")
	return WarnUnused(warn || !ok)
}

// Options gathers the settings into interpreter options.
func (Module) Options(
	comment CommentMarker,
	allowRedeclare AllowRedeclare,
	warnUnused WarnUnused,
) vortlang.Options {
	options := vortlang.Options{
		Lex: vortlang.LexOptions{
			Comment: string(comment),
		},
		WarnUnused: bool(warnUnused),
	}
	if allowRedeclare {
		options.Redeclare = vortlang.RedeclareSameKind
	}
	return options
}
