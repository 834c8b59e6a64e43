package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/custodia-labs/sanumbers/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
	coresvc "github.com/custodia-labs/sanumbers/internal/core/services"
)

const westernCapeJSON = `{"towns": {
	"Cape Town": [
		{"category": "Police", "name": "Cape Town Central SAPS", "phone": "021 467 8000", "address": "Buitenkant St"},
		{"category": "Hospital", "name": "Groote Schuur Hospital", "phone": "021 404 9111", "address": "Main Rd, Observatory"}
	],
	"Stellenbosch": [
		{"category": "Fire", "name": "Stellenbosch Fire", "phone": "021 808 8888", "address": "Merriman Ave"}
	]
}}`

// fakePlatform records dialled and copied numbers.
type fakePlatform struct {
	mu     sync.Mutex
	dialed []string
	copied []string
	err    error
}

func (p *fakePlatform) Dial(_ context.Context, number string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.dialed = append(p.dialed, number)
	return nil
}

func (p *fakePlatform) Copy(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.copied = append(p.copied, text)
	return nil
}

type testEnv struct {
	services *Services
	source   *memory.DataSource
	platform *fakePlatform
	config   *memory.ConfigStore
}

// setupTestServices wires real services over in-memory adapters and
// installs them for the duration of the test.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	src := memory.NewDataSource()
	src.Put("western-cape", []byte(westernCapeJSON))
	platform := &fakePlatform{}
	config := memory.NewConfigStore()
	loader := coresvc.NewProvinceLoader(src)

	s := &Services{
		Loader:    loader,
		Selection: coresvc.NewSelection(loader),
		NewSelection: func() driving.SelectionService {
			return coresvc.NewSelection(loader)
		},
		Actions:      coresvc.NewContactActionService(platform),
		Check:        coresvc.NewCheckService(loader),
		Settings:     coresvc.NewSettingsService(config),
		DataLocation: src.Describe(),
	}

	prev := svc
	SetServices(s)
	t.Cleanup(func() { svc = prev })

	return &testEnv{services: s, source: src, platform: platform, config: config}
}

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores flag variables; cobra keeps values between executions.
func resetFlags() {
	options = Options{}
	lookupJSON = false
	checkJSON = false
	actionIndex = 1
	tuiProvince = ""
}
