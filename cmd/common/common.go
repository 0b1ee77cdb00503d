// Package common holds the setup shared by bodypatch commands: logging, colors and host loading.
package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Manu343726/bodypatch/pkg/host"
	"github.com/Manu343726/bodypatch/pkg/logging"
	"github.com/Manu343726/bodypatch/pkg/routes"
	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/tebeka/atexit"
	"golang.org/x/term"
)

// Configuration keys, also the names of the persistent flags bound to them
const (
	KeyLogLevel = "log-level"
	KeyLogFile  = "log-file"
	KeyNoColor  = "no-color"
)

// SetupColor disables colored output if requested or if stdout is not a terminal
func SetupColor() {
	color.NoColor = viper.GetBool(KeyNoColor) || !term.IsTerminal(int(os.Stdout.Fd()))
}

// Logger creates the logger configured by flags, config file and environment. Console records go
// to console unless it is nil. The log file, if any, is closed at exit
func Logger(console io.Writer, extra ...slog.Handler) (*slog.Logger, error) {
	level, err := logging.ParseLevel(viper.GetString(KeyLogLevel))
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:   level,
		Console: console,
		File:    viper.GetString(KeyLogFile),
		Extra:   extra,
	})
	if err != nil {
		return nil, err
	}

	atexit.Register(func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
		}
	})

	return logger, nil
}

// LoadHost loads the host snapshot at path, or the built-in Deepdelve sample if useSample is set
func LoadHost(path string, useSample bool) (*host.Snapshot, *host.MemoryHost, error) {
	var snapshot *host.Snapshot

	if useSample {
		snapshot = routes.SampleSnapshot()
	} else {
		if path == "" {
			return nil, nil, fmt.Errorf("no snapshot given, pass a snapshot file or --sample")
		}

		var err error
		snapshot, err = host.LoadSnapshot(path)
		if err != nil {
			return nil, nil, err
		}
	}

	h, err := snapshot.MemoryHost()
	if err != nil {
		return nil, nil, err
	}

	return snapshot, h, nil
}

// Fail prints an error and exits with the given code, running exit handlers
func Fail(what string, err error, code int) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	atexit.Exit(code)
}
