package mcp

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"politix/app/config"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const initTimeout = time.Minute

// Client runs an MCP server over stdio and calls its tools.
type Client struct {
	client  client.MCPClient
	timeout time.Duration
}

// NewClient starts the server, performs the handshake and checks that tool is offered.
func NewClient(ctx context.Context, cfg config.MCPServer, timeout time.Duration) (*Client, error) {
	mcpClient, err := client.NewStdioMCPClient(cfg.Command, nil, cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client for %s: %w", cfg.Command, err)
	}

	c := &Client{
		client:  mcpClient,
		timeout: timeout,
	}

	if err = c.initialize(ctx, cfg.Tool); err != nil {
		_ = mcpClient.Close()
		return nil, err
	}

	return c, nil
}

func (c *Client) initialize(ctx context.Context, tool string) error {
	ctx, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "politix",
		Version: "1.0.0",
	}

	if _, err := c.client.Initialize(ctx, initRequest); err != nil {
		return fmt.Errorf("failed to initialize MCP client: %w", err)
	}

	toolsResponse, err := c.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	found := slices.ContainsFunc(toolsResponse.Tools, func(t mcp.Tool) bool {
		return t.Name == tool
	})
	if !found {
		return fmt.Errorf("MCP server does not offer tool %q", tool)
	}

	return nil
}

// CallTool returns the concatenated text content of the tool result.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	callRequest := mcp.CallToolRequest{
		Request: mcp.Request{
			Method: "tools/call",
		},
	}
	callRequest.Params.Name = name
	callRequest.Params.Arguments = args

	response, err := c.client.CallTool(ctx, callRequest)
	if err != nil {
		return "", fmt.Errorf("MCP tool call failed: %w", err)
	}

	var result strings.Builder
	for _, content := range response.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			result.WriteString(textContent.Text)
			result.WriteString("\n")
		}
	}

	if response.IsError {
		return "", fmt.Errorf("MCP tool %s returned error: %s", name, strings.TrimSpace(result.String()))
	}

	return strings.TrimSpace(result.String()), nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
