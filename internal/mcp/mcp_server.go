// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/brewkit/brewmetrics/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// metricEnum lists the metric names accepted by trend and comparison tools.
var metricEnum = []string{
	"extraction_pct", "tds_pct", "rating", "score",
	"grind_size", "water_temp_c", "brew_ratio",
	"bloom_time_s", "total_time_s",
}

// NewMCPServer initializes and configures the BrewMetrics MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"BrewMetrics Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: score_brews ---
	s.AddTool(mcp.NewTool("score_brews",
		mcp.WithDescription("Score every brew in the log against the ratio-aware quality model and return a ranked listing."),
		mcp.WithString("csv_path", mcp.Description("Path to the brew log CSV (defaults to the configured log).")),
		mcp.WithString("bean", mcp.Description("Restrict scoring to one bean id.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleScoreBrews)

	// --- 2. Tool: get_brew_trend ---
	s.AddTool(mcp.NewTool("get_brew_trend",
		mcp.WithDescription("Compute the trend of one metric over a trailing window of days."),
		mcp.WithString("metric", mcp.Description("Metric to trend. Defaults to 'score'."), mcp.Enum(metricEnum...)),
		mcp.WithNumber("window", mcp.Description("Trailing window in days. Defaults to 30.")),
		mcp.WithString("csv_path", mcp.Description("Path to the brew log CSV.")),
		mcp.WithString("bean", mcp.Description("Restrict the trend to one bean id.")),
	), h.handleGetBrewTrend)

	// --- 3. Tool: compare_beans ---
	s.AddTool(mcp.NewTool("compare_beans",
		mcp.WithDescription("Compare two or more beans on one metric, with per-bean aggregates and a shared confidence level."),
		mcp.WithString("beans", mcp.Description("Comma-separated bean ids to compare (at least 2)."), mcp.Required()),
		mcp.WithString("metric", mcp.Description("Metric to compare on. Defaults to 'score'."), mcp.Enum(metricEnum...)),
		mcp.WithString("csv_path", mcp.Description("Path to the brew log CSV.")),
	), h.handleCompareBeans)

	// --- 4. Tool: get_correlations ---
	s.AddTool(mcp.NewTool("get_correlations",
		mcp.WithDescription("Compute the pairwise correlation matrix between brewing parameters and outcomes."),
		mcp.WithString("csv_path", mcp.Description("Path to the brew log CSV.")),
		mcp.WithString("bean", mcp.Description("Restrict the matrix to one bean id.")),
	), h.handleGetCorrelations)

	// --- 5. Tool: get_optimal_brew ---
	s.AddTool(mcp.NewTool("get_optimal_brew",
		mcp.WithDescription("Find the best-scoring recorded brew and its parameters, optionally for one bean."),
		mcp.WithString("csv_path", mcp.Description("Path to the brew log CSV.")),
		mcp.WithString("bean", mcp.Description("Restrict the search to one bean id.")),
	), h.handleGetOptimalBrew)

	// --- 6. Tool: get_consistency ---
	s.AddTool(mcp.NewTool("get_consistency",
		mcp.WithDescription("Measure brewing repeatability as a 0-100 consistency score with a per-metric breakdown."),
		mcp.WithString("csv_path", mcp.Description("Path to the brew log CSV.")),
		mcp.WithString("bean", mcp.Description("Restrict the measurement to one bean id.")),
	), h.handleGetConsistency)

	// --- 7. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Condense the whole brew log into a single overview: volume, averages, standout beans and the recent rating trend."),
		mcp.WithString("csv_path", mcp.Description("Path to the brew log CSV.")),
	), h.handleGetSummary)

	return s
}

// StartMCPServer starts the BrewMetrics MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
