package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

// ListProvincesInput is the input schema for the list_provinces tool.
type ListProvincesInput struct{}

// ProvinceOutput is one province and its data resource key.
type ProvinceOutput struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// ListProvincesOutput is the output schema for the list_provinces tool.
type ListProvincesOutput struct {
	Provinces []ProvinceOutput `json:"provinces"`
}

// ListTownsInput is the input schema for the list_towns tool.
type ListTownsInput struct {
	Province string `json:"province" jsonschema:"province name, e.g. Western Cape or western-cape"`
}

// ListTownsOutput is the output schema for the list_towns tool.
type ListTownsOutput struct {
	Province string   `json:"province"`
	Towns    []string `json:"towns"`
	Count    int      `json:"count"`
}

// LookupInput is the input schema for the lookup_services tool.
type LookupInput struct {
	Province string `json:"province" jsonschema:"province name, e.g. Western Cape or western-cape"`
	Town     string `json:"town" jsonschema:"town name or part of one, matched case-insensitively"`
}

// LookupOutput is the output schema for the lookup_services tool.
type LookupOutput struct {
	Province string                 `json:"province"`
	Search   string                 `json:"search"`
	Town     string                 `json:"town,omitempty"`
	Services []domain.ServiceRecord `json:"services"`
	Count    int                    `json:"count"`
	Advice   string                 `json:"advice,omitempty"`
}

// CheckInput is the input schema for the check_provinces tool.
type CheckInput struct{}

// CheckOutput is the output schema for the check_provinces tool.
type CheckOutput struct {
	Statuses []domain.ProvinceStatus `json:"statuses"`
	Loaded   int                     `json:"loaded"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_provinces",
		Description: "List the nine South African provinces and their data keys",
	}, s.handleListProvinces)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_towns",
		Description: "List the towns with emergency service listings in a province",
	}, s.handleListTowns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "lookup_services",
		Description: "Find emergency services (police, fire, ambulance, hospital) for a town. " +
			"If nothing matches, advise calling the national emergency number 10177.",
	}, s.handleLookup)

	if s.ports.Check != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "check_provinces",
			Description: "Load every province and report which data resources work",
		}, s.handleCheck)
	}
}

func (s *Server) handleListProvinces(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListProvincesInput,
) (*mcp.CallToolResult, ListProvincesOutput, error) {
	names := domain.Provinces()
	output := ListProvincesOutput{Provinces: make([]ProvinceOutput, len(names))}
	for i, name := range names {
		output.Provinces[i] = ProvinceOutput{Name: name, Key: domain.ResolveKey(name)}
	}
	return nil, output, nil
}

func (s *Server) handleListTowns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTownsInput,
) (*mcp.CallToolResult, ListTownsOutput, error) {
	province, err := resolveProvince(input.Province)
	if err != nil {
		return nil, ListTownsOutput{}, err
	}

	dataset, err := s.ports.Loader.Load(ctx, province)
	if err != nil {
		return nil, ListTownsOutput{}, fmt.Errorf("%s: %w", domain.LoadFailureMessage, err)
	}

	towns := dataset.TownNames()
	return nil, ListTownsOutput{Province: province, Towns: towns, Count: len(towns)}, nil
}

func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, LookupOutput, error) {
	province, err := resolveProvince(input.Province)
	if err != nil {
		return nil, LookupOutput{}, err
	}
	town := input.Town
	if strings.TrimSpace(town) == "" {
		return nil, LookupOutput{}, fmt.Errorf("%w: town is required", domain.ErrInvalidInput)
	}

	sel := s.ports.NewSelection()
	if err := sel.Select(ctx, province); err != nil {
		return nil, LookupOutput{}, fmt.Errorf("%s: %w", domain.LoadFailureMessage, err)
	}
	sel.SetSearchText(town)
	state := sel.Snapshot()

	output := LookupOutput{
		Province: state.SelectedProvince,
		Search:   state.SearchText,
		Town:     state.MatchedTown,
		Services: state.FilteredResults,
		Count:    len(state.FilteredResults),
	}
	if state.NoMatch() {
		output.Advice = domain.NoMatchAdvice(state.SearchText)
	}
	return nil, output, nil
}

func (s *Server) handleCheck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CheckInput,
) (*mcp.CallToolResult, CheckOutput, error) {
	statuses := s.ports.Check.CheckAll(ctx)
	output := CheckOutput{Statuses: statuses}
	for _, st := range statuses {
		if st.OK() {
			output.Loaded++
		}
	}
	return nil, output, nil
}

// resolveProvince accepts a province name or key.
func resolveProvince(s string) (string, error) {
	province, ok := domain.LookupProvince(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownProvince, s)
	}
	return province, nil
}
