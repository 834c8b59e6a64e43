// Package cli implements the sanumbers command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
	"github.com/custodia-labs/sanumbers/internal/logger"
)

// ErrNotConfigured is returned when a command runs before services are wired.
var ErrNotConfigured = errors.New("services not configured")

// Options holds the global flag values.
type Options struct {
	Verbose   bool
	ConfigDir string
	DataDir   string
	BaseURL   string
}

// Services are the core services the commands drive.
type Services struct {
	Loader    driving.ProvinceLoader
	Selection driving.SelectionService

	// NewSelection creates an independent selection, one per MCP tool call.
	NewSelection func() driving.SelectionService

	Actions  driving.ContactActionService
	Check    driving.CheckService
	Settings driving.SettingsService

	// Watcher is optional; the TUI reloads the selected province on change.
	Watcher driven.DataWatcher

	// DataLocation describes where province data is read from.
	DataLocation string
}

// Builder creates services once global flags are parsed.
type Builder func(Options) (*Services, error)

var (
	version = "dev"
	options Options
	builder Builder
	svc     *Services
)

var rootCmd = &cobra.Command{
	Use:   "sanumbers",
	Short: "South African emergency numbers by province and town",
	Long: `sanumbers looks up emergency service contacts for South African towns.

Pick a province, type a town, and get police, fire, ambulance and hospital
numbers with their addresses. In an emergency call 10177.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(options.Verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&options.Verbose, "verbose", "v", false, "print debug logs to stderr")
	flags.StringVar(&options.ConfigDir, "config-dir", "", "configuration directory (default ~/.sanumbers)")
	flags.StringVar(&options.DataDir, "data-dir", "", "province data directory (overrides source.root)")
	flags.StringVar(&options.BaseURL, "base-url", "", "province data base URL (selects the http source)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects already-built services, bypassing the builder.
func SetServices(s *Services) {
	svc = s
}

// Execute runs the root command. b builds services on first use.
func Execute(b Builder) error {
	builder = b
	return rootCmd.Execute()
}

// services returns the wired services, building them on first call.
func services() (*Services, error) {
	if svc != nil {
		return svc, nil
	}
	if builder == nil {
		return nil, ErrNotConfigured
	}
	s, err := builder(options)
	if err != nil {
		return nil, err
	}
	svc = s
	return svc, nil
}
