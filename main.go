// Command paperfold loads puzzle levels and checks which of their folds can be played.
package main

import (
	"os"

	"github.com/faiface/mainthread"
	"github.com/memmaker/paperfold/engine/util"
	"go.uber.org/zap"
)

func main() {
	exitCode := 0
	mainthread.Run(func() {
		app := newApp(os.Stdout, mainthread.Call)
		if err := app.rootCommand().Execute(); err != nil {
			util.LogSystemError("command failed", zap.Error(err))
			exitCode = 1
		}
	})
	os.Exit(exitCode)
}
