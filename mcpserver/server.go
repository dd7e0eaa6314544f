// Package mcpserver exposes the tool registry over the Model Context
// Protocol. It owns the session lifecycle, argument decoding, the error
// envelope, and the audit trail; the tools themselves stay transport-blind.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mealiemcp"
	"mealiemcp/mealie"
	"mealiemcp/tools"
)

const (
	Name    = "mealie-mcp"
	Version = "0.1.0"
)

// instructions are sent to every connecting client during initialization.
const instructions = "Tools for a self-hosted Mealie recipe manager: recipes, shopping lists, " +
	"organizers (categories, tags, kitchen tools), the foods and units registries, and an " +
	"ingredient formalization workflow. Delete tools remove data in Mealie directly; call " +
	"them only when the user asked for exactly that."

// ToolProvider is the slice of the registry the server shell needs.
type ToolProvider interface {
	GetTools() []*tools.Tool
	GetTool(name string) (*tools.Tool, error)
}

// Server wraps an MCP server around a tool registry.
type Server struct {
	mcp     *mcp.Server
	tools   ToolProvider
	auditor mealiemcp.AuditLogger
}

// New initializes a new server.
func New(tp ToolProvider, auditor mealiemcp.AuditLogger) *Server {
	if auditor == nil {
		auditor = mealiemcp.NewNoOpAuditLogger()
	}
	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    Name,
			Version: Version,
		}, &mcp.ServerOptions{
			Instructions: instructions,
		}),
		tools:   tp,
		auditor: auditor,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	for _, t := range s.tools.GetTools() {
		s.mcp.AddTool(&mcp.Tool{
			Name:         t.Name,
			Title:        t.Title,
			Description:  t.Description,
			InputSchema:  t.InputSchema,
			OutputSchema: t.OutputSchema,
		}, s.handler(t))
	}
}

// handler adapts one registry tool to the MCP calling convention. Tool
// failures are reported in-band with IsError so the client model can read
// them and react; a non-nil error here would surface as a protocol fault.
func (s *Server) handler(t *tools.Tool) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		call := mealiemcp.ToolCallRecord{
			ID:        uuid.NewString(),
			Timestamp: start,
			Tool:      t.Name,
		}

		args := map[string]any{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				call.Outcome = "error"
				call.ErrorKind = "validation"
				call.Error = err.Error()
				call.DurationMS = time.Since(start).Milliseconds()
				s.audit(call)
				return errorResult("validation", fmt.Sprintf("arguments must be a JSON object: %v", err)), nil
			}
		}
		call.Arguments = args

		slog.Info("SERVER: Handling tool call", "tool", t.Name)

		out, err := t.Run(ctx, args)
		call.DurationMS = time.Since(start).Milliseconds()

		if err != nil {
			kind := errorKind(err)
			call.Outcome = "error"
			call.ErrorKind = kind
			call.Error = err.Error()
			s.audit(call)
			slog.Error("SERVER: Tool call failed", "tool", t.Name, "kind", kind, "error", err)
			return errorResult(kind, err.Error()), nil
		}

		call.Outcome = "ok"
		s.audit(call)
		slog.Info("SERVER: Tool call complete", "tool", t.Name, "duration_ms", call.DurationMS)
		return successResult(out)
	}
}

func (s *Server) audit(call mealiemcp.ToolCallRecord) {
	if err := s.auditor.LogToolCall(call); err != nil {
		slog.Error("Failed to record tool call", "error", err, "tool", call.Tool)
	}
}

// Run serves MCP over stdio, blocking until the client disconnects or ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP, blocking until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, host string, port int, path string) error {
	return runHTTP(ctx, s.mcp, host, port, path)
}

// Connect binds the server to a transport and returns the session. The in-app
// harness and tests use this with in-memory transports.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

func runHTTP(ctx context.Context, srv *mcp.Server, host string, port int, path string) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil)
	e.Any(path, echo.WrapHandler(handler))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "server": Name, "version": Version})
	})

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	slog.Info("SERVER: HTTP transport listening", "addr", addr, "path", path)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// errorKind classifies a tool failure for the error envelope and the audit
// trail. Caller mistakes map to "validation", backend failures keep the
// client's classification, anything else is "internal".
func errorKind(err error) string {
	var in *tools.InputError
	if errors.As(err, &in) {
		return "validation"
	}
	if kind := mealie.KindOf(err); kind != "" {
		return string(kind)
	}
	return "internal"
}

func successResult(out map[string]any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(out)
	if err != nil {
		return errorResult("internal", fmt.Sprintf("encode result: %v", err)), nil
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
		StructuredContent: out,
	}, nil
}

func errorResult(kind, message string) *mcp.CallToolResult {
	data, _ := json.Marshal(map[string]any{
		"error": map[string]any{"kind": kind, "message": message},
	})
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}
