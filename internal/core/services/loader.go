package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
	"github.com/custodia-labs/sanumbers/internal/logger"
)

// Ensure ProvinceLoader implements the interface.
var _ driving.ProvinceLoader = (*ProvinceLoader)(nil)

// ProvinceLoader resolves a province to a data resource and decodes it.
type ProvinceLoader struct {
	source driven.DataSource
}

// NewProvinceLoader creates a loader reading from source.
func NewProvinceLoader(source driven.DataSource) *ProvinceLoader {
	return &ProvinceLoader{source: source}
}

// Load fetches and decodes the dataset for province.
// Missing resources, transport errors and malformed payloads all wrap
// domain.ErrLoadFailure.
func (l *ProvinceLoader) Load(ctx context.Context, province string) (*domain.ProvinceDataset, error) {
	logger.Section("Province Load")
	logger.Debug("Province: %q", province)

	if !domain.IsProvince(province) {
		logger.Debug("Rejected: not a recognised province")
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrLoadFailure, domain.ErrUnknownProvince, province)
	}
	if l.source == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailure, domain.ErrNoSource)
	}

	key := domain.ResolveKey(province)
	logger.Debug("Resource key: %s (source: %s)", key, l.source.Describe())

	data, err := l.source.Fetch(ctx, key)
	if err != nil {
		logger.Warn("Fetch %s failed: %v", key, err)
		return nil, fmt.Errorf("%w: fetch %s: %w", domain.ErrLoadFailure, key, err)
	}
	logger.Debug("Fetched %d bytes", len(data))

	dataset, err := domain.DecodeProvinceDataset(data)
	if err != nil {
		logger.Warn("Decode %s failed: %v", key, err)
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrLoadFailure, key, err)
	}

	logger.Info("Loaded %s: %d towns, %d records", province, dataset.Len(), dataset.RecordCount())
	return dataset, nil
}
