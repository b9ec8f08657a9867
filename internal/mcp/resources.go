// ABOUTME: MCP resource implementations for the gym dashboard.
// ABOUTME: Provides bbg://session, bbg://dashboard and bbg://payments resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/bbg/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// bbg://session - who is logged in
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "bbg://session",
		Name:        "Current Session",
		Description: "The logged-in identity, or logged_in=false",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	// bbg://dashboard - stats for the logged-in identity
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "bbg://dashboard",
		Name:        "Gym Dashboard",
		Description: "Counts, workouts per date and equipment by condition for the current identity",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// bbg://payments - subscriptions with derived status
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "bbg://payments",
		Name:        "Payment Status",
		Description: "Visible payments with Active/Expired status and expiring-soon flags",
		MIMEType:    "application/json",
	}, s.handlePaymentsResource)
}

// Resource handlers

func (s *Server) handleSessionResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]any{"logged_in": false}

	ident, err := s.app.Whoami()
	switch {
	case err == nil:
		result = map[string]any{"logged_in": true, "identity": ident}
	case !errors.Is(err, session.ErrNoSession):
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	return jsonResource("bbg://session", result)
}

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := s.app.Dashboard()
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return jsonResource("bbg://dashboard", map[string]any{
		"generated_at": s.app.Now().Format("2006-01-02T15:04:05Z07:00"),
		"stats":        stats,
	})
}

func (s *Server) handlePaymentsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	payments, err := s.app.Payments("")
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	expiring := 0
	for _, p := range payments {
		if p.ExpiringSoon {
			expiring++
		}
	}

	return jsonResource("bbg://payments", map[string]any{
		"payments": payments,
		"summary": map[string]int{
			"total":         len(payments),
			"expiring_soon": expiring,
		},
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
