package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sanumbers resources.
	uriScheme = "sanumbers://"
)

// tipsDocument is the body of the tips resource.
type tipsDocument struct {
	Tips       []domain.Tip `json:"tips"`
	Disclaimer string       `json:"disclaimer"`
	Fallback   string       `json:"fallback"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "tips",
		Name:        "tips",
		Description: "National emergency numbers and the listing disclaimer",
		MIMEType:    "application/json",
	}, s.handleTipsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "provinces/{province}/towns",
		Name:        "province-towns",
		Description: "Towns with listings in a province, keyed by province key",
		MIMEType:    "application/json",
	}, s.handleTownsResource)
}

func (s *Server) handleTipsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(tipsDocument{
		Tips:       domain.EmergencyTips(),
		Disclaimer: domain.Disclaimer,
		Fallback:   domain.FallbackAdvice,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling tips: %w", err)
	}

	return jsonResult(req.Params.URI, data), nil
}

func (s *Server) handleTownsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	key := extractProvinceKey(req.Params.URI)
	province, ok := domain.LookupProvince(key)
	if key == "" || !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	dataset, err := s.ports.Loader.Load(ctx, province)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", province, err)
	}

	towns := dataset.TownNames()
	if towns == nil {
		towns = []string{}
	}
	data, err := json.MarshalIndent(towns, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling towns: %w", err)
	}

	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractProvinceKey extracts the key from a URI like sanumbers://provinces/{province}/towns.
func extractProvinceKey(uri string) string {
	const prefix = uriScheme + "provinces/"
	const suffix = "/towns"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
