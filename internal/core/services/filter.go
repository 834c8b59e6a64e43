package services

import (
	"strings"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

// MatchTown returns the first town, in dataset key order, whose name contains
// searchText case-insensitively. There is no ranking: the earliest key wins.
func MatchTown(searchText string, dataset *domain.ProvinceDataset) (string, bool) {
	if dataset == nil || searchText == "" {
		return "", false
	}

	needle := strings.ToLower(searchText)
	for _, town := range dataset.Towns() {
		if strings.Contains(strings.ToLower(town.Name), needle) {
			return town.Name, true
		}
	}
	return "", false
}

// FilterTown returns the full, ordered service list of the town matched by
// searchText, or an empty slice. The result is a copy of the dataset's list.
func FilterTown(searchText string, dataset *domain.ProvinceDataset) []domain.ServiceRecord {
	town, ok := MatchTown(searchText, dataset)
	if !ok {
		return []domain.ServiceRecord{}
	}

	services, _ := dataset.Services(town)
	out := make([]domain.ServiceRecord, len(services))
	copy(out, services)
	return out
}
