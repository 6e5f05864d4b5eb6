package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ChainURI names the resource holding the chain snapshot.
const ChainURI = "markov://chain"

// Engine defines the interface required by the MCP server to serve walks.
type Engine interface {
	ports.WalkEngine
}

// Server wraps an Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the logger for failed tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("markov-mcp", markov.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio serves JSON-RPC messages from in to out until ctx is done or
// in reaches EOF.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

func (s *Server) registerTools() {
	// TOOL: walk
	walkTool := mcp.NewTool("walk",
		mcp.WithDescription("Generate one random walk over the chain."),
		mcp.WithNumber("max",
			mcp.Description("Walk length bound (optional, defaults to the client's bound)"),
			mcp.Min(1),
			mcp.Max(ports.MaxWalkLength),
		),
	)
	s.mcpServer.AddTool(walkTool, s.handleWalk)

	// TOOL: inspect_chain
	s.mcpServer.AddTool(mcp.NewTool("inspect_chain",
		mcp.WithDescription("Get the chain's nodes and transition counts."),
	), s.handleInspect)
}

func (s *Server) handleWalk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxLength := request.GetInt("max", s.engine.DefaultLength())
	if maxLength < 1 || maxLength > ports.MaxWalkLength {
		return mcp.NewToolResultError(fmt.Sprintf("max must be between 1 and %d, got %d", ports.MaxWalkLength, maxLength)), nil
	}

	rec, err := s.engine.Walk(ctx, maxLength)
	if err != nil {
		s.logger.Error("mcp walk failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("walk failed: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := s.snapshot()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: markov://chain
	s.mcpServer.AddResource(mcp.NewResource(ChainURI, "Current Chain",
		mcp.WithMIMEType("application/json"),
	), s.readChain)
}

func (s *Server) readChain(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ChainURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) snapshot() ([]byte, error) {
	snap, err := s.engine.Inspect()
	if err != nil {
		return nil, fmt.Errorf("inspect failed: %w", err)
	}
	return json.Marshal(snap)
}
