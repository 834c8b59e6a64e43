// Command sanumbers looks up South African emergency service contacts.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/sanumbers/internal/adapters/driven/config/file"
	datafile "github.com/custodia-labs/sanumbers/internal/adapters/driven/datasource/file"
	"github.com/custodia-labs/sanumbers/internal/adapters/driven/datasource/web"
	"github.com/custodia-labs/sanumbers/internal/adapters/driven/platform"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/cli"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
	"github.com/custodia-labs/sanumbers/internal/core/services"
	"github.com/custodia-labs/sanumbers/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(buildServices); err != nil {
		os.Exit(1)
	}
}

// buildServices wires adapters into core services according to the stored
// settings and any global flag overrides.
func buildServices(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	applyOverrides(&settings.Source, opts)

	source, watcher, err := newDataSource(settings)
	if err != nil {
		return nil, err
	}

	loader := services.NewProvinceLoader(source)

	s := &cli.Services{
		Loader:    loader,
		Selection: services.NewSelection(loader),
		NewSelection: func() driving.SelectionService {
			return services.NewSelection(loader)
		},
		Actions:      services.NewContactActionService(platform.NewDesktop()),
		Check:        services.NewCheckService(loader),
		Settings:     settingsService,
		DataLocation: source.Describe(),
	}
	if watcher != nil {
		s.Watcher = watcher
	}
	return s, nil
}

// applyOverrides lets --data-dir and --base-url take precedence over the
// stored source settings without persisting them.
func applyOverrides(src *domain.SourceSettings, opts cli.Options) {
	switch {
	case opts.DataDir != "":
		src.Kind = domain.SourceKindFile
		src.Root = opts.DataDir
	case opts.BaseURL != "":
		src.Kind = domain.SourceKindHTTP
		src.BaseURL = opts.BaseURL
	}
}

// newDataSource builds the configured source. A watcher is returned only for
// directory sources with watching enabled whose directory already exists.
func newDataSource(settings *domain.AppSettings) (driven.DataSource, *datafile.Watcher, error) {
	switch settings.Source.Kind {
	case domain.SourceKindHTTP:
		source, err := web.NewDataSource(web.Config{
			BaseURL:           settings.Source.BaseURL,
			RequestsPerSecond: settings.Source.RequestsPerSecond,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create http source: %w", err)
		}
		return source, nil, nil
	default:
		source, err := datafile.NewDataSource(settings.Source.Root)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create file source: %w", err)
		}
		if !settings.Watch {
			return source, nil, nil
		}
		if info, err := os.Stat(source.Root()); err != nil || !info.IsDir() {
			logger.Debug("Not watching %s: directory not available", source.Root())
			return source, nil, nil
		}
		return source, datafile.NewWatcher(source.Root(), 0), nil
	}
}
