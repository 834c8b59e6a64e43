package mcp

import (
	"context"

	"github.com/custodia-labs/sanumbers/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
	"github.com/custodia-labs/sanumbers/internal/core/services"
)

const westernCapeJSON = `{"towns": {
	"Cape Town": [
		{"category": "Police", "name": "Cape Town Central SAPS", "phone": "0214678000", "address": "Buitenkant St"},
		{"category": "Hospital", "name": "Groote Schuur Hospital", "phone": "0214049111", "address": "Main Rd, Observatory"}
	],
	"Stellenbosch": [
		{"category": "Fire", "name": "Stellenbosch Fire", "phone": "0218088888", "address": "Merriman Ave"}
	]
}}`

// mockCheckService is a mock implementation of driving.CheckService.
type mockCheckService struct {
	statuses []domain.ProvinceStatus
}

func (m *mockCheckService) CheckAll(_ context.Context) []domain.ProvinceStatus {
	return m.statuses
}

// newTestPorts wires real services over an in-memory source holding Western Cape.
func newTestPorts() *Ports {
	src := memory.NewDataSource()
	src.Put("western-cape", []byte(westernCapeJSON))
	loader := services.NewProvinceLoader(src)
	return &Ports{
		Loader: loader,
		NewSelection: func() driving.SelectionService {
			return services.NewSelection(loader)
		},
	}
}
