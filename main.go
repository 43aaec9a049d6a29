/*
This is an example of application that will use the
engine package to render a rotating cube
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-cube/engine"
	"github.com/spaghettifunk/anima-cube/engine/assets"
	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/platform/desktop"
	"github.com/spaghettifunk/anima-cube/engine/renderer/opengl"
	"github.com/spaghettifunk/anima-cube/engine/window"
	"github.com/spaghettifunk/anima-cube/testbed"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration file")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogFatal("failed to load configuration: %s", err)
	}
	level, err := config.LogLevel()
	if err != nil {
		core.LogFatal("invalid log level: %s", err)
	}
	core.SetLogLevel(level)

	tb, err := testbed.NewTestGame(config)
	if err != nil {
		core.LogFatal("%s", err)
	}

	win, err := window.Create(config.WindowManagerConfig(), desktop.New(), opengl.New)
	if err != nil {
		core.LogFatal("failed to create window: %s", err)
	}

	am := assets.NewAssetManager()
	if err := am.Initialize(config.Assets.Dir, config.Assets.HotReload); err != nil {
		_ = win.Close()
		core.LogFatal("failed to initialize assets: %s", err)
	}

	e, err := engine.New(tb.Game, win, am)
	if err != nil {
		_ = win.Close()
		core.LogFatal("%s", err)
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal("failed to initialize engine: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// the loop owns the GL context, so the handler only asks it to stop
	go func() {
		sig := <-sigCh
		core.LogInfo("received %s, stopping", sig)
		e.Stop()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal("engine stopped: %s", runErr)
	}
}
