package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"mealiemcp"
	"mealiemcp/tools"
)

// InstrumentedServer is an instrumented version of Server with observability
// metrics and spans on every tool call.
type InstrumentedServer struct {
	mcp     *mcp.Server
	tools   ToolProvider
	auditor mealiemcp.AuditLogger
	tracer  trace.Tracer
	meter   metric.Meter

	toolCalls       metric.Int64Counter
	toolCallsFailed metric.Int64Counter
	toolDuration    metric.Float64Histogram
}

// NewInstrumented initializes a new instrumented server.
func NewInstrumented(tp ToolProvider, auditor mealiemcp.AuditLogger, tracer trace.Tracer, meter metric.Meter) *InstrumentedServer {
	if auditor == nil {
		auditor = mealiemcp.NewNoOpAuditLogger()
	}
	s := &InstrumentedServer{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    Name,
			Version: Version,
		}, &mcp.ServerOptions{
			Instructions: instructions,
		}),
		tools:   tp,
		auditor: auditor,
		tracer:  tracer,
		meter:   meter,
	}

	// Initialize all metrics
	s.toolCalls, _ = s.meter.Int64Counter("tool_calls_total",
		metric.WithDescription("Total number of tool calls executed"))
	s.toolCallsFailed, _ = s.meter.Int64Counter("tool_calls_failed_total",
		metric.WithDescription("Total number of tool calls that failed"))
	s.toolDuration, _ = s.meter.Float64Histogram("tool_execution_time_seconds",
		metric.WithDescription("Time taken to execute individual tools in seconds"))

	toolsAvailableGauge, _ := s.meter.Int64Gauge("tools_available_count",
		metric.WithDescription("Number of tools available to connected clients"))
	toolsAvailableGauge.Record(context.Background(), int64(len(tp.GetTools())))

	s.registerTools()
	return s
}

func (s *InstrumentedServer) registerTools() {
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

func (s *InstrumentedServer) handler(t *tools.Tool) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := s.tracer.Start(ctx, "InstrumentedServer.CallTool", trace.WithAttributes(
			attribute.String("tool_name", t.Name),
		))
		defer span.End()

		s.toolCalls.Add(ctx, 1, metric.WithAttributes(
			attribute.String("tool_name", t.Name),
		))

		start := time.Now()
		call := mealiemcp.ToolCallRecord{
			ID:        uuid.NewString(),
			Timestamp: start,
			Tool:      t.Name,
		}

		args := map[string]any{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				s.toolCallsFailed.Add(ctx, 1, metric.WithAttributes(
					attribute.String("tool_name", t.Name),
					attribute.String("error_type", "bad_arguments"),
				))
				span.SetStatus(codes.Error, "Bad arguments")
				span.RecordError(err)
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
		duration := time.Since(start)
		call.DurationMS = duration.Milliseconds()
		s.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
			attribute.String("tool_name", t.Name),
		))

		if err != nil {
			kind := errorKind(err)
			s.toolCallsFailed.Add(ctx, 1, metric.WithAttributes(
				attribute.String("tool_name", t.Name),
				attribute.String("error_type", kind),
			))
			span.SetStatus(codes.Error, "Tool execution failed")
			span.RecordError(err)
			call.Outcome = "error"
			call.ErrorKind = kind
			call.Error = err.Error()
			s.audit(call)
			slog.Error("SERVER: Tool call failed", "tool", t.Name, "kind", kind, "error", err)
			return errorResult(kind, err.Error()), nil
		}

		span.AddEvent("Tool executed successfully", trace.WithAttributes(
			attribute.String("tool_name", t.Name),
			attribute.Float64("tool_execution_time_seconds", duration.Seconds()),
		))

		call.Outcome = "ok"
		s.audit(call)
		slog.Info("SERVER: Tool call complete", "tool", t.Name, "duration_ms", call.DurationMS)
		return successResult(out)
	}
}

func (s *InstrumentedServer) audit(call mealiemcp.ToolCallRecord) {
	if err := s.auditor.LogToolCall(call); err != nil {
		slog.Error("Failed to record tool call", "error", err, "tool", call.Tool)
	}
}

// Run serves MCP over stdio, blocking until the client disconnects or ctx is
// cancelled.
func (s *InstrumentedServer) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP, blocking until ctx is cancelled.
func (s *InstrumentedServer) RunHTTP(ctx context.Context, host string, port int, path string) error {
	return runHTTP(ctx, s.mcp, host, port, path)
}

// Connect binds the server to a transport and returns the session.
func (s *InstrumentedServer) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}
