package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/sanumbers/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

// --- Fixtures ---

const limpopoJSON = `{"towns": {"Polokwane": [
	{"category": "Police", "name": "Polokwane SAPS", "phone": "0152901300", "address": "X St"}
]}}`

const easternCapeJSON = `{"towns": {
	"East London": [
		{"category": "Police", "name": "East London SAPS", "phone": "0437022000", "address": "Fleet St"},
		{"category": "Hospital", "name": "Frere Hospital", "phone": "0437092111", "address": "Amalinda Main Rd"}
	],
	"East Rand": [
		{"category": "Fire", "name": "East Rand Fire", "phone": "0119991234", "address": "Main Reef Rd"}
	],
	"Mthatha": [
		{"category": "Ambulance", "name": "Mthatha EMS", "phone": "0475022000", "address": "Sutherland St"}
	]
}}`

var polokwaneSAPS = domain.ServiceRecord{
	Category: "Police",
	Name:     "Polokwane SAPS",
	Phone:    "0152901300",
	Address:  "X St",
}

func newTestSource() *memory.DataSource {
	src := memory.NewDataSource()
	src.Put("limpopo", []byte(limpopoJSON))
	src.Put("eastern-cape", []byte(easternCapeJSON))
	return src
}

// --- Mock implementations ---

// gatedLoader blocks each Load until its province gate is released.
type gatedLoader struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
	inner   *ProvinceLoader
}

func newGatedLoader(inner *ProvinceLoader) *gatedLoader {
	return &gatedLoader{
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 16),
		inner:   inner,
	}
}

func (g *gatedLoader) gate(province string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[province]
	if !ok {
		ch = make(chan struct{})
		g.gates[province] = ch
	}
	return ch
}

func (g *gatedLoader) release(province string) {
	close(g.gate(province))
}

func (g *gatedLoader) Load(ctx context.Context, province string) (*domain.ProvinceDataset, error) {
	g.started <- province
	select {
	case <-g.gate(province):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.inner.Load(ctx, province)
}

// mockPlatform records dial and copy calls.
type mockPlatform struct {
	dialed  []string
	copied  []string
	dialErr error
	copyErr error
}

func (m *mockPlatform) Dial(_ context.Context, number string) error {
	m.dialed = append(m.dialed, number)
	return m.dialErr
}

func (m *mockPlatform) Copy(text string) error {
	m.copied = append(m.copied, text)
	return m.copyErr
}
