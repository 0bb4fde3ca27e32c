package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/treestore/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for treestore resources.
	uriScheme = "treestore://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "groups",
		Name:        "groups",
		Description: "All document groups",
		MIMEType:    mimeJSON,
	}, s.handleGroupsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "groups/{group}/files",
		Name:        "group-files",
		Description: "Document names in a group",
		MIMEType:    mimeJSON,
	}, s.handleFilesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "groups/{group}/files/{file}",
		Name:        "document",
		Description: "A stored tree document",
		MIMEType:    mimeJSON,
	}, s.handleDocumentResource)
}

func (s *Server) handleGroupsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	groups, err := s.ports.Tree.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling groups: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func (s *Server) handleFilesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	group, file, ok := parseGroupURI(req.Params.URI)
	if !ok || file != "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	files, err := s.ports.Tree.ListFiles(ctx, group)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling files: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleDocumentResource reports missing documents as not found rather
// than returning the error-shaped tree.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	group, file, ok := parseGroupURI(req.Params.URI)
	if !ok || file == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result := s.ports.Tree.Load(ctx, group, file)
	if result.Status != domain.LoadStatusLoaded {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, string(result.Content)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     text,
		}},
	}
}

// parseGroupURI splits treestore://groups/{group}/files[/{file}].
// file is empty for the listing form.
func parseGroupURI(uri string) (group, file string, ok bool) {
	const prefix = uriScheme + "groups/"

	rest, found := strings.CutPrefix(uri, prefix)
	if !found {
		return "", "", false
	}

	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 2 && parts[1] == "files":
		group = parts[0]
	case len(parts) == 3 && parts[1] == "files" && parts[2] != "":
		group, file = parts[0], parts[2]
	default:
		return "", "", false
	}
	if group == "" {
		return "", "", false
	}
	return group, file, true
}
