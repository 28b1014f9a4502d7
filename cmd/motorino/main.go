// Command motorino renders a terrain with a controllable third-person
// player, a follow camera and a skybox.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/motorino/internal/config"
	"github.com/Faultbox/motorino/internal/game"
	"github.com/Faultbox/motorino/internal/logger"
)

func init() {
	// SDL and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("motorino failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	logger.Info("=== motorino ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	g.Run()
	return nil
}
