// Package debug hands out the process logger. The TUI owns the terminal,
// so logs go to a file under ~/.config/patchbay instead of stderr.
package debug

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	file *os.File
	log  = zerolog.Nop()
)

// Enable starts logging to ~/.config/patchbay/debug.log. Until it is
// called, Logger returns a no-op logger.
func Enable() error {
	if file != nil {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".config", "patchbay")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	log = zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: "15:04:05.000"}).
		With().Timestamp().Logger().Level(zerolog.DebugLevel)
	log.Debug().Msg("debug logging started")
	return nil
}

// Disable stops logging and closes the file.
func Disable() {
	if file != nil {
		file.Close()
		file = nil
	}
	log = zerolog.Nop()
}

// Logger returns the process logger.
func Logger() zerolog.Logger { return log }
