package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(newTestPorts())
	require.NoError(t, err)
	return server
}

func TestServer_handleListProvinces(t *testing.T) {
	server := newTestServer(t)

	_, output, err := server.handleListProvinces(context.Background(), nil, ListProvincesInput{})

	require.NoError(t, err)
	require.Len(t, output.Provinces, 9)
	assert.Equal(t, ProvinceOutput{Name: "Limpopo", Key: "limpopo"}, output.Provinces[0])
	assert.Equal(t, ProvinceOutput{Name: "Western Cape", Key: "western-cape"}, output.Provinces[2])
}

func TestServer_handleListTowns(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	t.Run("lists towns in key order", func(t *testing.T) {
		_, output, err := server.handleListTowns(ctx, nil, ListTownsInput{Province: "western-cape"})

		require.NoError(t, err)
		assert.Equal(t, "Western Cape", output.Province)
		assert.Equal(t, []string{"Cape Town", "Stellenbosch"}, output.Towns)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("unknown province", func(t *testing.T) {
		_, _, err := server.handleListTowns(ctx, nil, ListTownsInput{Province: "Atlantis"})
		assert.ErrorIs(t, err, domain.ErrUnknownProvince)
	})

	t.Run("missing data", func(t *testing.T) {
		_, _, err := server.handleListTowns(ctx, nil, ListTownsInput{Province: "Gauteng"})
		assert.ErrorIs(t, err, domain.ErrLoadFailure)
		assert.Contains(t, err.Error(), domain.LoadFailureMessage)
	})
}

func TestServer_handleLookup(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	t.Run("partial match", func(t *testing.T) {
		_, output, err := server.handleLookup(ctx, nil, LookupInput{Province: "Western Cape", Town: "cape"})

		require.NoError(t, err)
		assert.Equal(t, "Cape Town", output.Town)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "Cape Town Central SAPS", output.Services[0].Name)
		assert.Empty(t, output.Advice)
	})

	t.Run("no match returns advice", func(t *testing.T) {
		_, output, err := server.handleLookup(ctx, nil, LookupInput{Province: "Western Cape", Town: "Durban"})

		require.NoError(t, err)
		assert.Zero(t, output.Count)
		assert.NotNil(t, output.Services)
		assert.Contains(t, output.Advice, "10177")
	})

	t.Run("empty town", func(t *testing.T) {
		_, _, err := server.handleLookup(ctx, nil, LookupInput{Province: "Western Cape", Town: "  "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("load failure", func(t *testing.T) {
		_, _, err := server.handleLookup(ctx, nil, LookupInput{Province: "Limpopo", Town: "Polokwane"})
		assert.ErrorIs(t, err, domain.ErrLoadFailure)
	})

	t.Run("town text is matched as typed", func(t *testing.T) {
		_, output, err := server.handleLookup(ctx, nil, LookupInput{Province: "Western Cape", Town: "Stellenbosch "})
		require.NoError(t, err)

		assert.Equal(t, "Stellenbosch ", output.Search)
		assert.Empty(t, output.Services)
		assert.NotEmpty(t, output.Advice)
	})

	t.Run("calls do not share state", func(t *testing.T) {
		_, first, err := server.handleLookup(ctx, nil, LookupInput{Province: "Western Cape", Town: "stellen"})
		require.NoError(t, err)
		_, second, err := server.handleLookup(ctx, nil, LookupInput{Province: "Western Cape", Town: "cape town"})
		require.NoError(t, err)

		assert.Equal(t, "Stellenbosch", first.Town)
		assert.Equal(t, "Cape Town", second.Town)
	})
}

func TestServer_handleCheck(t *testing.T) {
	ports := newTestPorts()
	ports.Check = &mockCheckService{statuses: []domain.ProvinceStatus{
		{Province: "Limpopo", Key: "limpopo", Error: "not found"},
		{Province: "Western Cape", Key: "western-cape", Towns: 2, Records: 3},
	}}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleCheck(context.Background(), nil, CheckInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Loaded)
	assert.Len(t, output.Statuses, 2)
}
