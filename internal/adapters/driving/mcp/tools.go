package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/treestore/internal/core/domain"
)

// ListGroupsInput is the input schema for the list_groups tool.
type ListGroupsInput struct{}

// ListGroupsOutput is the output schema for the list_groups tool.
type ListGroupsOutput struct {
	Groups []string `json:"groups"`
	Count  int      `json:"count"`
}

// ListFilesInput is the input schema for the list_files tool.
type ListFilesInput struct {
	Group string `json:"group" jsonschema:"the group whose documents to list"`
}

// ListFilesOutput is the output schema for the list_files tool.
type ListFilesOutput struct {
	Group string   `json:"group"`
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// LoadDocumentInput is the input schema for the load_document tool.
type LoadDocumentInput struct {
	Group string `json:"group,omitempty" jsonschema:"the document's group (default document when omitted)"`
	File  string `json:"file,omitempty" jsonschema:"the document's file name (default document when omitted)"`
}

// LoadDocumentOutput is the output schema for the load_document tool.
type LoadDocumentOutput struct {
	Group  string `json:"group"`
	File   string `json:"file"`
	Status string `json:"status"`
	Tree   any    `json:"tree"`
}

// SaveDocumentInput is the input schema for the save_document tool.
type SaveDocumentInput struct {
	Group    string `json:"group" jsonschema:"the target group, created if missing"`
	File     string `json:"file" jsonschema:"the target file name"`
	TreeData any    `json:"tree_data" jsonschema:"the JSON document to store"`
}

// SaveDocumentOutput is the output schema for the save_document tool.
type SaveDocumentOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_groups",
		Description: "List all document groups",
	}, s.handleListGroups)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_files",
		Description: "List the documents stored in a group",
	}, s.handleListFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_document",
		Description: "Load a tree document; missing documents yield an error-shaped tree",
	}, s.handleLoadDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_document",
		Description: "Create or replace a tree document",
	}, s.handleSaveDocument)
}

func (s *Server) handleListGroups(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListGroupsInput,
) (*mcp.CallToolResult, ListGroupsOutput, error) {
	groups, err := s.ports.Tree.ListGroups(ctx)
	if err != nil {
		return nil, ListGroupsOutput{}, err
	}

	output := ListGroupsOutput{
		Groups: make([]string, len(groups)),
		Count:  len(groups),
	}
	for i, g := range groups {
		output.Groups[i] = g.Name
	}
	return nil, output, nil
}

func (s *Server) handleListFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListFilesInput,
) (*mcp.CallToolResult, ListFilesOutput, error) {
	files, err := s.ports.Tree.ListFiles(ctx, input.Group)
	if err != nil {
		return nil, ListFilesOutput{}, err
	}
	return nil, ListFilesOutput{Group: input.Group, Files: files, Count: len(files)}, nil
}

func (s *Server) handleLoadDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadDocumentInput,
) (*mcp.CallToolResult, LoadDocumentOutput, error) {
	result := s.ports.Tree.Load(ctx, input.Group, input.File)

	var tree any
	if err := json.Unmarshal(result.Content, &tree); err != nil {
		return nil, LoadDocumentOutput{}, fmt.Errorf("decoding document: %w", err)
	}

	return nil, LoadDocumentOutput{
		Group:  result.Group,
		File:   result.File,
		Status: result.Status.String(),
		Tree:   tree,
	}, nil
}

func (s *Server) handleSaveDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveDocumentInput,
) (*mcp.CallToolResult, SaveDocumentOutput, error) {
	var content json.RawMessage
	if input.TreeData != nil {
		data, err := json.Marshal(input.TreeData)
		if err != nil {
			return nil, SaveDocumentOutput{}, fmt.Errorf("encoding tree_data: %w", err)
		}
		content = data
	}

	err := s.ports.Tree.Save(ctx, domain.SaveRequest{
		Group:   input.Group,
		File:    input.File,
		Content: content,
	})
	if errors.Is(err, domain.ErrMissingField) {
		return nil, SaveDocumentOutput{Message: "group, file and tree_data are required"}, nil
	}
	if err != nil {
		return nil, SaveDocumentOutput{}, err
	}

	return nil, SaveDocumentOutput{
		Success: true,
		Message: fmt.Sprintf("saved %s/%s", input.Group, input.File),
	}, nil
}
