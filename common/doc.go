// Package common provides shared constants, errors, logging and small
// abstractions used throughout ChatDock.
//
//   - Constants: application identifiers, file names, content defaults,
//     the supported shortcut set
//   - Errors: sentinel errors checked with errors.Is
//   - Logger: levelled logger writing to stdout and a rotated file, with
//     component-scoped loggers
//   - Dispatcher: the hop from tray/hotkey goroutines back onto the UI loop
//
// # Usage
//
//	log := common.Logger("tray")
//	log.Info("menu ready")
//
//	if errors.Is(err, common.ErrShortcutUnavailable) {
//	    // keep running without a hotkey
//	}
package common
