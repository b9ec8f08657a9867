// ABOUTME: MCP tool implementations for the gym dashboard.
// ABOUTME: Login, list/add/delete per collection and the dashboard summary.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/bbg/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "login",
		Description: "Select the identity to act as: admin, captain or member. No password is required.",
	}, s.handleLogin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "logout",
		Description: "Clear the current identity",
	}, s.handleLogout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "whoami",
		Description: "Show the current identity",
	}, s.handleWhoami)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "dashboard",
		Description: "Member, captain, equipment and workout counts for the current identity",
	}, s.handleDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_captains",
		Description: "List gym captains",
	}, s.handleListCaptains)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_captain",
		Description: "Add a captain (administrator only)",
	}, s.handleAddCaptain)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_captain",
		Description: "Delete a captain by ID or ID prefix. Fails while members are assigned to it.",
	}, s.handleDeleteCaptain)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_members",
		Description: "List visible members, optionally filtered by name or email",
	}, s.handleListMembers)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_member",
		Description: "Add a member assigned to a captain",
	}, s.handleAddMember)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_member",
		Description: "Delete a member and all of its workouts",
	}, s.handleDeleteMember)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_equipment",
		Description: "List gym equipment",
	}, s.handleListEquipment)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_equipment",
		Description: "Add equipment with a condition of Good, Fair or Poor",
	}, s.handleAddEquipment)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_equipment",
		Description: "Delete equipment by ID or ID prefix. Fails while workouts reference it.",
	}, s.handleDeleteEquipment)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List visible workouts",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Log a workout for a member on a piece of equipment",
	}, s.handleAddWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout by ID or ID prefix",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_payments",
		Description: "List visible payments with status derived from the end date",
	}, s.handleListPayments)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_payment",
		Description: "Record a subscription payment; the end date is derived from the plan (administrator only)",
	}, s.handleAddPayment)
}

// Tool input/output types

type loginInput struct {
	Role string `json:"role" jsonschema:"admin, captain or member"`
	ID   string `json:"id,omitempty" jsonschema:"Captain or member ID or prefix; ignored for admin"`
}

type identityOutput struct {
	Identity models.Identity `json:"identity"`
	Message  string          `json:"message"`
}

type emptyInput struct{}

type simpleOutput struct {
	Message string `json:"message"`
}

type searchInput struct {
	Query string `json:"query,omitempty" jsonschema:"Case-insensitive substring to filter by"`
}

type deleteInput struct {
	ID string `json:"id" jsonschema:"Record ID or prefix"`
}

type addedOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type deleteMemberOutput struct {
	Message         string   `json:"message"`
	RemovedWorkouts []string `json:"removed_workouts"`
}

// Tool handlers

func (s *Server) handleLogin(ctx context.Context, req *mcp.CallToolRequest, input loginInput) (*mcp.CallToolResult, identityOutput, error) {
	role, err := models.ParseRole(input.Role)
	if err != nil {
		return nil, identityOutput{}, err
	}
	ident, err := s.app.Login(role, input.ID)
	if err != nil {
		return nil, identityOutput{}, fmt.Errorf("login failed: %w", err)
	}
	return nil, identityOutput{
		Identity: ident,
		Message:  fmt.Sprintf("Logged in as %s (%s)", ident.Name, ident.Role),
	}, nil
}

func (s *Server) handleLogout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.app.Logout()
	return nil, simpleOutput{Message: "Logged out"}, nil
}

func (s *Server) handleWhoami(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, identityOutput, error) {
	ident, err := s.app.Whoami()
	if err != nil {
		return nil, identityOutput{}, err
	}
	return nil, identityOutput{
		Identity: *ident,
		Message:  fmt.Sprintf("%s (%s) <%s>", ident.Name, ident.Role, ident.Email),
	}, nil
}

func (s *Server) handleDashboard(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	stats, err := s.app.Dashboard()
	if err != nil {
		return nil, nil, err
	}
	return nil, stats, nil
}

func (s *Server) handleListCaptains(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	captains, err := s.app.Captains()
	if err != nil {
		return nil, nil, err
	}
	if len(captains) == 0 {
		return nil, map[string]any{"message": "No captains found."}, nil
	}
	return nil, map[string]any{"captains": captains}, nil
}

func (s *Server) handleAddCaptain(ctx context.Context, req *mcp.CallToolRequest, input models.CaptainInput) (*mcp.CallToolResult, addedOutput, error) {
	c, err := s.app.AddCaptain(input)
	if err != nil {
		return nil, addedOutput{}, fmt.Errorf("failed to add captain: %w", err)
	}
	return nil, addedOutput{
		ID:      c.ID,
		Message: fmt.Sprintf("Added captain %s (ID: %s)", c.Name, c.ID),
	}, nil
}

func (s *Server) handleDeleteCaptain(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, simpleOutput, error) {
	c, err := s.app.DeleteCaptain(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete captain: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted captain: %s", c.Name)}, nil
}

func (s *Server) handleListMembers(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, any, error) {
	members, err := s.app.Members(input.Query)
	if err != nil {
		return nil, nil, err
	}
	if len(members) == 0 {
		return nil, map[string]any{"message": "No members found."}, nil
	}
	return nil, map[string]any{"members": members}, nil
}

func (s *Server) handleAddMember(ctx context.Context, req *mcp.CallToolRequest, input models.MemberInput) (*mcp.CallToolResult, addedOutput, error) {
	m, err := s.app.AddMember(input)
	if err != nil {
		return nil, addedOutput{}, fmt.Errorf("failed to add member: %w", err)
	}
	return nil, addedOutput{
		ID:      m.ID,
		Message: fmt.Sprintf("Added member %s (ID: %s)", m.Name, m.ID),
	}, nil
}

func (s *Server) handleDeleteMember(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, deleteMemberOutput, error) {
	m, removed, err := s.app.DeleteMember(input.ID)
	if err != nil {
		return nil, deleteMemberOutput{}, fmt.Errorf("failed to delete member: %w", err)
	}
	ids := make([]string, 0, len(removed))
	for _, w := range removed {
		ids = append(ids, w.ID)
	}
	return nil, deleteMemberOutput{
		Message:         fmt.Sprintf("Deleted member %s and %d workout(s)", m.Name, len(removed)),
		RemovedWorkouts: ids,
	}, nil
}

func (s *Server) handleListEquipment(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	items, err := s.app.Equipment()
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, map[string]any{"message": "No equipment found."}, nil
	}
	return nil, map[string]any{"equipment": items}, nil
}

func (s *Server) handleAddEquipment(ctx context.Context, req *mcp.CallToolRequest, input models.EquipmentInput) (*mcp.CallToolResult, addedOutput, error) {
	e, err := s.app.AddEquipment(input)
	if err != nil {
		return nil, addedOutput{}, fmt.Errorf("failed to add equipment: %w", err)
	}
	return nil, addedOutput{
		ID:      e.ID,
		Message: fmt.Sprintf("Added %d x %s (ID: %s)", e.Quantity, e.Name, e.ID),
	}, nil
}

func (s *Server) handleDeleteEquipment(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, simpleOutput, error) {
	e, err := s.app.DeleteEquipment(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete equipment: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted equipment: %s", e.Name)}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	workouts, err := s.app.Workouts()
	if err != nil {
		return nil, nil, err
	}
	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, map[string]any{"workouts": workouts}, nil
}

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input models.WorkoutInput) (*mcp.CallToolResult, addedOutput, error) {
	w, err := s.app.AddWorkout(input)
	if err != nil {
		return nil, addedOutput{}, fmt.Errorf("failed to add workout: %w", err)
	}
	return nil, addedOutput{
		ID:      w.ID,
		Message: fmt.Sprintf("Logged %dx%d on %s (ID: %s)", w.Sets, w.Reps, w.Date, w.ID),
	}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, simpleOutput, error) {
	w, err := s.app.DeleteWorkout(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted workout: %s", w.ID)}, nil
}

func (s *Server) handleListPayments(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, any, error) {
	payments, err := s.app.Payments(input.Query)
	if err != nil {
		return nil, nil, err
	}
	if len(payments) == 0 {
		return nil, map[string]any{"message": "No payments found."}, nil
	}
	return nil, map[string]any{"payments": payments}, nil
}

func (s *Server) handleAddPayment(ctx context.Context, req *mcp.CallToolRequest, input models.PaymentInput) (*mcp.CallToolResult, addedOutput, error) {
	p, err := s.app.AddPayment(input)
	if err != nil {
		return nil, addedOutput{}, fmt.Errorf("failed to add payment: %w", err)
	}
	return nil, addedOutput{
		ID:      p.ID,
		Message: fmt.Sprintf("Recorded %s payment of %.2f, valid until %s (ID: %s)", p.PlanType, p.Amount, p.EndDate, p.ID),
	}, nil
}
