package mcpserver_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"

	"mealiemcp"
	"mealiemcp/audit"
	"mealiemcp/mealie"
	"mealiemcp/mcpserver"
	"mealiemcp/tools"
)

const baseURL = "http://mealie.test"

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

// newSession spins up a server over an in-memory transport and returns a
// connected client session.
func newSession(t *testing.T, profile tools.Profile, auditor mealiemcp.AuditLogger) *mcp.ClientSession {
	t.Helper()

	registry, err := tools.NewRegistry(mealie.New(baseURL, "test-token", nil), profile)
	must.NoError(t, err)
	server := mcpserver.New(registry, auditor)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	_, err = server.Connect(context.Background(), serverTransport)
	must.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(context.Background(), clientTransport, nil)
	must.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func listToolNames(t *testing.T, session *mcp.ClientSession) []string {
	t.Helper()
	var names []string
	cursor := ""
	for {
		page, err := session.ListTools(context.Background(), &mcp.ListToolsParams{Cursor: cursor})
		must.NoError(t, err)
		for _, tool := range page.Tools {
			names = append(names, tool.Name)
		}
		if page.NextCursor == "" {
			return names
		}
		cursor = page.NextCursor
	}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	must.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(*mcp.TextContent)
	must.True(t, ok, "first content part should be text")
	return tc.Text
}

func errorEnvelope(t *testing.T, result *mcp.CallToolResult) (kind, message string) {
	t.Helper()
	var env struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	must.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &env))
	return env.Error.Kind, env.Error.Message
}

func TestServer_ListTools_Profiles(t *testing.T) {
	setupHTTPMock(t)

	full := listToolNames(t, newSession(t, tools.ProfileFull, nil))
	core := listToolNames(t, newSession(t, tools.ProfileCore, nil))

	should.Len(t, full, 66)
	should.Len(t, core, 50)

	should.Contains(t, full, "get_labels")
	should.Contains(t, full, "set_recipe_tools")
	should.NotContains(t, core, "get_labels")
	should.NotContains(t, core, "set_recipe_tools")
	should.Contains(t, core, "formalize_recipe_ingredients")

	for _, name := range core {
		should.Contains(t, full, name, "core must be a subset of full")
	}
}

func TestServer_CallTool_RoundTrip(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", baseURL+"/api/recipes/pasta-carbonara",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{
			"slug": "pasta-carbonara",
			"name": "Pasta Carbonara",
		}))

	session := newSession(t, tools.ProfileFull, nil)
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_recipe",
		Arguments: map[string]any{"slug": "pasta-carbonara"},
	})
	must.NoError(t, err)
	must.False(t, result.IsError, "text: %s", textOf(t, result))

	var recipe map[string]any
	must.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &recipe))
	should.Equal(t, "Pasta Carbonara", recipe["name"])

	structured, ok := result.StructuredContent.(map[string]any)
	must.True(t, ok, "structured content should mirror the text payload")
	should.Equal(t, "pasta-carbonara", structured["slug"])
}

func TestServer_CallTool_StructuredAck(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("DELETE", baseURL+"/api/recipes/old-bread",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{}))

	session := newSession(t, tools.ProfileFull, nil)
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "delete_recipe",
		Arguments: map[string]any{"slug": "old-bread"},
	})
	must.NoError(t, err)
	must.False(t, result.IsError, "text: %s", textOf(t, result))

	structured, ok := result.StructuredContent.(map[string]any)
	must.True(t, ok)
	should.Equal(t, "deleted", structured["status"])
	should.Equal(t, "old-bread", structured["slug"])
}

func TestServer_CallTool_BackendErrorEnvelope(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", baseURL+"/api/recipes/gone",
		httpmock.NewJsonResponderOrPanic(404, map[string]any{"detail": "Recipe not found"}))

	session := newSession(t, tools.ProfileFull, nil)
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_recipe",
		Arguments: map[string]any{"slug": "gone"},
	})
	must.NoError(t, err, "backend failures must come back in-band, not as protocol errors")
	must.True(t, result.IsError)

	kind, message := errorEnvelope(t, result)
	should.Equal(t, "not_found", kind)
	should.Contains(t, message, "Recipe not found")
}

func TestServer_CallTool_ValidationEnvelope(t *testing.T) {
	setupHTTPMock(t)

	session := newSession(t, tools.ProfileFull, nil)
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "update_shopping_item",
		Arguments: map[string]any{"item_id": "it-1"},
	})
	must.NoError(t, err)
	must.True(t, result.IsError)

	kind, message := errorEnvelope(t, result)
	should.Equal(t, "validation", kind)
	should.Contains(t, message, "nothing to update")
	should.Zero(t, httpmock.GetTotalCallCount(), "input errors must not reach the backend")
}

func TestServer_AuditTrail(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", baseURL+"/api/recipes/pasta-carbonara",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{"slug": "pasta-carbonara"}))

	sink := audit.NewTestSink()
	auditor := audit.NewSessionLogger(sink)
	session := newSession(t, tools.ProfileFull, auditor)

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_recipe",
		Arguments: map[string]any{"slug": "pasta-carbonara"},
	})
	must.NoError(t, err)
	_, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "update_shopping_item",
		Arguments: map[string]any{"item_id": "it-1"},
	})
	must.NoError(t, err)

	must.NoError(t, auditor.Flush(context.Background()))
	must.Len(t, sink.Stored(), 1)

	var doc struct {
		AuditSession struct {
			ToolCalls []mealiemcp.ToolCallRecord `json:"tool_calls"`
		} `json:"audit_session"`
	}
	must.NoError(t, json.Unmarshal(sink.Stored()[0], &doc))
	must.Len(t, doc.AuditSession.ToolCalls, 2)

	first, second := doc.AuditSession.ToolCalls[0], doc.AuditSession.ToolCalls[1]
	should.Equal(t, "get_recipe", first.Tool)
	should.Equal(t, "ok", first.Outcome)
	should.Equal(t, "pasta-carbonara", first.Arguments["slug"])
	should.NotEmpty(t, first.ID)

	should.Equal(t, "update_shopping_item", second.Tool)
	should.Equal(t, "error", second.Outcome)
	should.Equal(t, "validation", second.ErrorKind)
	should.Contains(t, second.Error, "nothing to update")
}

func TestServer_UnknownTool(t *testing.T) {
	setupHTTPMock(t)

	session := newSession(t, tools.ProfileCore, nil)

	// get_labels exists only in the full profile, so this session must not
	// be able to reach it at all.
	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "get_labels"})
	should.Error(t, err)

	_, err = session.CallTool(context.Background(), &mcp.CallToolParams{Name: "no_such_tool"})
	should.Error(t, err)
}
