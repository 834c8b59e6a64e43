package domain

// SelectionState is the province, search and result state shown to the user.
// Values returned by the selection container are copies; mutating them has
// no effect on the container.
type SelectionState struct {
	// SelectedProvince is empty when no province is selected.
	SelectedProvince string

	// SearchText is the in-progress town search.
	SearchText string

	// Dataset is nil when no province is selected or the last load failed.
	Dataset *ProvinceDataset

	// FilteredResults is the service list of the matched town, possibly empty.
	FilteredResults []ServiceRecord

	// MatchedTown is the dataset key the search resolved to.
	MatchedTown string

	// IsLoading is true while a province load is in flight.
	IsLoading bool

	// LoadError is empty unless the most recent load failed.
	LoadError string
}

// AvailableTowns lists the towns of the loaded dataset.
func (s SelectionState) AvailableTowns() []string {
	return s.Dataset.TownNames()
}

// HasResults reports whether the search matched a town with services.
func (s SelectionState) HasResults() bool {
	return len(s.FilteredResults) > 0
}

// NoMatch reports a settled search that found nothing. It is not an error;
// presentation falls back to the national emergency number.
func (s SelectionState) NoMatch() bool {
	return s.SearchText != "" &&
		s.SelectedProvince != "" &&
		len(s.FilteredResults) == 0 &&
		!s.IsLoading
}

// LoadRequest identifies one province load. Seq increases with every
// selection so a result can be matched against the latest request.
type LoadRequest struct {
	Seq      uint64
	Province string

	// Reload marks a refresh of the already selected province. A reload keeps
	// the search text instead of resetting it.
	Reload bool
}

// LoadResult is the outcome of a LoadRequest. Exactly one of Dataset or Err is set.
type LoadResult struct {
	Seq      uint64
	Province string
	Reload   bool
	Dataset  *ProvinceDataset
	Err      error
}

// ProvinceStatus summarises a load attempt for one province.
type ProvinceStatus struct {
	Province string `json:"province"`
	Key      string `json:"key"`
	Towns    int    `json:"towns"`
	Records  int    `json:"records"`
	Error    string `json:"error,omitempty"`
}

// OK reports whether the province loaded.
func (s ProvinceStatus) OK() bool {
	return s.Error == ""
}
