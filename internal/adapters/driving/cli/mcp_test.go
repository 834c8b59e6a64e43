package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")

	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_MissingLoader(t *testing.T) {
	prev := svc
	SetServices(&Services{})
	t.Cleanup(func() { svc = prev })

	_, err := executeCommand(t, "mcp", "serve")

	assert.ErrorIs(t, err, mcp.ErrMissingLoader)
}
