package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
	"github.com/custodia-labs/sanumbers/internal/logger"
)

// Ensure CheckService implements the interface.
var _ driving.CheckService = (*CheckService)(nil)

// checkConcurrency bounds parallel loads during a coverage check.
const checkConcurrency = 4

// CheckService loads every province to report which data resources work.
type CheckService struct {
	loader driving.ProvinceLoader
}

// NewCheckService creates a new check service.
func NewCheckService(loader driving.ProvinceLoader) *CheckService {
	return &CheckService{loader: loader}
}

// CheckAll loads all provinces concurrently. Statuses are returned in
// province order; individual failures are reported in the status, not returned.
func (s *CheckService) CheckAll(ctx context.Context) []domain.ProvinceStatus {
	logger.Section("Coverage Check")

	provinces := domain.Provinces()
	statuses := make([]domain.ProvinceStatus, len(provinces))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(checkConcurrency)

	for i, province := range provinces {
		eg.Go(func() error {
			status := domain.ProvinceStatus{
				Province: province,
				Key:      domain.ResolveKey(province),
			}
			dataset, err := s.loader.Load(egCtx, province)
			if err != nil {
				status.Error = err.Error()
			} else {
				status.Towns = dataset.Len()
				status.Records = dataset.RecordCount()
			}
			statuses[i] = status
			return nil
		})
	}

	// Workers never return errors; Wait only joins them.
	_ = eg.Wait()

	ok := 0
	for _, st := range statuses {
		if st.OK() {
			ok++
		}
	}
	logger.Info("Coverage: %d/%d provinces loaded", ok, len(statuses))
	return statuses
}
