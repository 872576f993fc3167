package main

import (
	"fmt"
	"os"

	"github.com/xeniagda/red/internal/action"
	"github.com/xeniagda/red/internal/docfs"
	"github.com/xeniagda/red/internal/editor"
	"github.com/xeniagda/red/internal/expr"
	"github.com/xeniagda/red/internal/script"
)

const (
	LogCatgApp    = "Application"
	LogCatgInput  = "Input"
	LogCatgExpr   = "Expressions"
	LogCatgAction = "Actions"
	LogCatgFS     = "Filesystem"
	LogCatgConf   = "Config"
	LogCatgScript = "Script"
	LogCatgSsh    = "SSH"
)

var debugLogCategories = []string{
	LogCatgApp,
	LogCatgInput,
	LogCatgExpr,
	LogCatgAction,
	LogCatgFS,
	LogCatgConf,
	LogCatgScript,
	LogCatgSsh,
}

func log(category, message string, args ...interface{}) {
	if *optDebugStderr {
		fmt.Fprintf(os.Stderr, "%s: %s\n", category, fmt.Sprintf(message, args...))
	}
	debugLog.Addf(category, message, args...)
}

func logTo(category string) func(message string, args ...interface{}) {
	return func(message string, args ...interface{}) {
		log(category, message, args...)
	}
}

func initDebugging() {
	expr.Debug = logTo(LogCatgExpr)
	action.Debug = logTo(LogCatgAction)
	editor.Debug = logTo(LogCatgApp)
	docfs.Debug = logTo(LogCatgFS)
	script.Debug = logTo(LogCatgScript)
}
