package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/config"
	"github.com/yllada/chatdock/prefs"
)

// Launch loads the configuration, opens the preference store and runs the
// application until it exits. SIGINT and SIGTERM quit it cleanly.
func Launch(ctx context.Context, verbose bool, prefsPath, version string) error {
	cfg, err := config.Load()
	if err != nil {
		if cfg == nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Initialize logger with structured logging and file output
	if err := common.InitLogger(cfg.LoggerConfig(verbose)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	store, err := prefs.Open(prefsPath)
	if err != nil {
		common.LogError("Opening preferences: %v", err)
		return err
	}
	defer store.Close()

	common.LogInfo("Starting %s v%s", common.AppName, version)
	app := NewApplication(cfg, store, version)

	// Handle shutdown signals (SIGINT, SIGTERM)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			common.LogInfo("Received signal, shutting down...")
			app.Quit()
		case <-done:
		}
	}()

	exitCode := app.Run([]string{os.Args[0]})
	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
		return fmt.Errorf("application exited with code %d", exitCode)
	}
	return nil
}
