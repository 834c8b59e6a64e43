package driving

import (
	"context"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

// ProvinceLoader loads the dataset for a province.
type ProvinceLoader interface {
	// Load resolves the province to a resource key, fetches and decodes it.
	// Every failure wraps domain.ErrLoadFailure.
	Load(ctx context.Context, province string) (*domain.ProvinceDataset, error)
}

// SelectionService owns the province/search state shown to the user.
//
// Event-loop drivers call SetProvince, run Fetch off the loop, and hand the
// result back to ApplyLoad. Synchronous drivers use Select.
type SelectionService interface {
	// SetProvince records the selection. It returns the load to run, or nil
	// when the selection was cleared.
	SetProvince(name string) *domain.LoadRequest

	// Fetch performs a load request without touching state.
	Fetch(ctx context.Context, req *domain.LoadRequest) domain.LoadResult

	// ApplyLoad applies a result if it belongs to the latest request.
	// Returns false for superseded results.
	ApplyLoad(res domain.LoadResult) bool

	// Select sets the province and loads it synchronously.
	Select(ctx context.Context, name string) error

	// Reload re-issues a load for the selected province, or returns nil.
	Reload() *domain.LoadRequest

	// SetSearchText records the search text and refilters.
	SetSearchText(text string)

	// Snapshot returns a copy of the current state.
	Snapshot() domain.SelectionState
}

// CheckService verifies that province resources load.
type CheckService interface {
	// CheckAll loads every recognised province and reports each outcome.
	CheckAll(ctx context.Context) []domain.ProvinceStatus
}
