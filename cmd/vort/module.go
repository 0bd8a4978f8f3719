package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/vort/debugs"
	"github.com/reusee/vort/vortconfigs"
	"github.com/reusee/vort/vortlang"
)

type Module struct {
	dscope.Module
	Vortlang vortlang.Module
	Configs  vortconfigs.Module
	Debugs   debugs.Module
}
