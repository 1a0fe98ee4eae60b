package mcp_test

import (
	"context"
	"testing"

	"github.com/brewkit/brewmetrics/internal/contract"
	mcp_internal "github.com/brewkit/brewmetrics/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		CSVPath: "testdata/does-not-exist.csv",
		Scoring: contract.DefaultScoringConfig(),
	}

	s := mcp_internal.NewMCPServer(baseCfg)

	ctx := context.Background()

	t.Run("compare_beans with a single bean", func(t *testing.T) {
		tool := s.GetTool("compare_beans")
		require.NotNil(t, tool, "Tool compare_beans should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "compare_beans",
				Arguments: map[string]any{
					"beans": "kenya", // Needs at least 2
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "at least 2 beans")
	})

	t.Run("get_brew_trend with unknown metric", func(t *testing.T) {
		tool := s.GetTool("get_brew_trend")
		require.NotNil(t, tool, "Tool get_brew_trend should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_brew_trend",
				Arguments: map[string]any{
					"metric": "mouthfeel", // Not a tracked metric
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "unknown metric")
	})

	t.Run("score_brews with missing log", func(t *testing.T) {
		tool := s.GetTool("score_brews")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "score_brews",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "A missing brew log should surface as a tool error")
	})
}
