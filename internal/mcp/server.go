package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/mvmnexus/innova/internal/repository"
)

// Services contains all domain services needed by the tool surface.
type Services struct {
	Identity IdentityService
	Projects ProjectService
	Queries  QueryService
	Session  repository.SessionStore
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "innova",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	handler := NewHandler(cfg.Services.Identity, cfg.Services.Projects, cfg.Services.Queries, cfg.Services.Session)
	registerTools(server, handler)

	return server
}

func registerTools(server *sdkmcp.Server, h *Handler) {
	// Accounts
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "register_account",
		Description: "Register a new leader or manager account",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params RegisterAccountParams) (*sdkmcp.CallToolResult, AccountResponse, error) {
		out, err := h.RegisterAccount(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "login",
		Description: "Authenticate and become the acting account for this session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params LoginParams) (*sdkmcp.CallToolResult, AccountResponse, error) {
		out, err := h.Login(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "logout",
		Description: "Clear the acting account for this session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params LogoutParams) (*sdkmcp.CallToolResult, StatusResponse, error) {
		out, err := h.Logout(ctx)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_account",
		Description: "Delete another account (manager only; self-deletion is refused)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params DeleteAccountParams) (*sdkmcp.CallToolResult, StatusResponse, error) {
		out, err := h.DeleteAccount(ctx, params)
		return nil, out, err
	})

	// Project lifecycle
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_project",
		Description: "Submit a new project with user stories for review (leader only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SubmitProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		out, err := h.SubmitProject(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "resubmit_project",
		Description: "Revise and resubmit a project that was returned for revision",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ResubmitProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		out, err := h.ResubmitProject(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "approve_project",
		Description: "Approve a pending project and attach an incentive (manager only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ApproveProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		out, err := h.ApproveProject(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "return_project",
		Description: "Send a pending project back to its leader for revision (manager only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ProjectIDParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		out, err := h.ReturnProject(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reject_project",
		Description: "Reject a pending project; the decision is final (manager only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ProjectIDParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		out, err := h.RejectProject(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "cancel_project",
		Description: "Withdraw an unapproved project; call once for a proposal, again with confirm",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params CancelProjectParams) (*sdkmcp.CallToolResult, CancelResponse, error) {
		out, err := h.CancelProject(ctx, params)
		return nil, out, err
	})

	// Story tracking
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "mark_stories_completed",
		Description: "Submit finished user stories with evidence for approval (owning leader only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params MarkStoriesCompletedParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		out, err := h.MarkStoriesCompleted(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "approve_stories",
		Description: "Approve user stories that are pending approval (manager only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ApproveStoriesParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		out, err := h.ApproveStories(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "record_tracking",
		Description: "Record AI-usage verification and progress notes on a tracked project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params RecordTrackingParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		out, err := h.RecordTracking(ctx, params)
		return nil, out, err
	})

	// Views
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project with derived progress and duration",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ProjectIDParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		out, err := h.GetProject(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List projects visible to the acting account",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params EmptyParams) (*sdkmcp.CallToolResult, ProjectListResponse, error) {
		out, err := h.ListProjects(ctx)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "pending_approvals",
		Description: "List projects awaiting review (manager only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params EmptyParams) (*sdkmcp.CallToolResult, ProjectListResponse, error) {
		out, err := h.PendingApprovals(ctx)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_history",
		Description: "Filter the project history by leader, company and status",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ProjectHistoryParams) (*sdkmcp.CallToolResult, ProjectListResponse, error) {
		out, err := h.ProjectHistory(ctx, params)
		return nil, out, err
	})
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "summary_counts",
		Description: "Aggregate project counts by review outcome",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params EmptyParams) (*sdkmcp.CallToolResult, SummaryResponse, error) {
		out, err := h.SummaryCounts(ctx)
		return nil, out, err
	})
}
