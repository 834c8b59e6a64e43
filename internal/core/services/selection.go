package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
	"github.com/custodia-labs/sanumbers/internal/logger"
)

// Ensure Selection implements the interface.
var _ driving.SelectionService = (*Selection)(nil)

// Selection owns the selected province, search text, loaded dataset and
// derived results. It is created once per UI and passed to consumers.
//
// Each province selection bumps a generation counter. A load result is only
// applied if it carries the latest generation, so a slow load for an earlier
// selection can never overwrite a newer one.
type Selection struct {
	mu     sync.RWMutex
	loader driving.ProvinceLoader
	state  domain.SelectionState
	seq    uint64
}

// NewSelection creates an empty selection backed by loader.
func NewSelection(loader driving.ProvinceLoader) *Selection {
	return &Selection{
		loader: loader,
		state: domain.SelectionState{
			FilteredResults: []domain.ServiceRecord{},
		},
	}
}

// SetProvince records a new selection and clears any previous load error.
// An empty name resets the state immediately and returns nil. Otherwise the
// returned request must be passed to Fetch and then ApplyLoad.
func (s *Selection) SetProvince(name string) *domain.LoadRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.state.SelectedProvince = name
	s.state.LoadError = ""

	if name == "" {
		logger.Debug("Selection cleared (seq %d)", s.seq)
		s.state.Dataset = nil
		s.state.SearchText = ""
		s.state.FilteredResults = []domain.ServiceRecord{}
		s.state.MatchedTown = ""
		s.state.IsLoading = false
		return nil
	}

	logger.Debug("Province selected: %s (seq %d)", name, s.seq)
	s.state.IsLoading = true
	return &domain.LoadRequest{Seq: s.seq, Province: name}
}

// Reload re-issues a load for the selected province under a new generation.
// Returns nil if no province is selected.
func (s *Selection) Reload() *domain.LoadRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SelectedProvince == "" {
		return nil
	}

	s.seq++
	s.state.LoadError = ""
	s.state.IsLoading = true
	logger.Debug("Reloading %s (seq %d)", s.state.SelectedProvince, s.seq)
	return &domain.LoadRequest{Seq: s.seq, Province: s.state.SelectedProvince, Reload: true}
}

// Fetch runs the loader for req. It does not read or write state.
func (s *Selection) Fetch(ctx context.Context, req *domain.LoadRequest) domain.LoadResult {
	res := domain.LoadResult{Seq: req.Seq, Province: req.Province, Reload: req.Reload}
	res.Dataset, res.Err = s.loader.Load(ctx, req.Province)
	return res
}

// ApplyLoad applies res if it answers the latest request.
//
// On success the dataset is replaced, the search is reset (kept for reloads)
// and results are recomputed. On failure the dataset is cleared, the search is
// reset and LoadError is set to domain.LoadFailureMessage.
func (s *Selection) ApplyLoad(res domain.LoadResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Seq != s.seq {
		logger.Debug("Discarding stale load for %s (seq %d, latest %d)", res.Province, res.Seq, s.seq)
		return false
	}

	s.state.IsLoading = false

	if res.Err != nil || res.Dataset == nil {
		s.state.SearchText = ""
		s.state.Dataset = nil
		s.state.LoadError = domain.LoadFailureMessage
		s.state.FilteredResults = []domain.ServiceRecord{}
		s.state.MatchedTown = ""
		return true
	}

	if !res.Reload {
		s.state.SearchText = ""
	}
	s.state.Dataset = res.Dataset
	s.state.LoadError = ""
	s.refilter()
	return true
}

// Select sets the province and loads it before returning.
// The returned error is the load error, if any; state reflects it either way.
func (s *Selection) Select(ctx context.Context, name string) error {
	req := s.SetProvince(name)
	if req == nil {
		return nil
	}
	res := s.Fetch(ctx, req)
	s.ApplyLoad(res)
	return res.Err
}

// SetSearchText records text and recomputes results against the current dataset.
func (s *Selection) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SearchText = text
	s.refilter()
}

// refilter recomputes results (caller must hold lock).
func (s *Selection) refilter() {
	town, _ := MatchTown(s.state.SearchText, s.state.Dataset)
	s.state.MatchedTown = town
	s.state.FilteredResults = FilterTown(s.state.SearchText, s.state.Dataset)
	logger.Debug("Filter %q: town=%q, %d results", s.state.SearchText, town, len(s.state.FilteredResults))
}

// Snapshot returns a copy of the current state.
func (s *Selection) Snapshot() domain.SelectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.FilteredResults = make([]domain.ServiceRecord, len(s.state.FilteredResults))
	copy(snap.FilteredResults, s.state.FilteredResults)
	return snap
}
