package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"mealiemcp"
	"mealiemcp/mcpserver"
	"mealiemcp/mealie"
	"mealiemcp/tools"
)

var (
	callProfile string
	callVerbose bool
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [arguments]",
	Short: "Call one tool through an in-process MCP session",
	Long: `Connects an in-process MCP client to the server over an in-memory
transport and calls a single tool against the configured Mealie
instance. Arguments are a JSON object:

  mealie-mcp call get_recipes '{"page": 1, "per_page": 5}'
  mealie-mcp call get_recipe '{"slug": "pasta-carbonara"}'
  mealie-mcp call formalize_recipe_ingredients '{"slug": "pasta-carbonara", "dry_run": true}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVar(&callProfile, "profile", "", `Tool profile, "full" or "core" (default from MEALIE_MCP_PROFILE)`)
	callCmd.Flags().BoolVar(&callVerbose, "verbose", false, "Dump the raw tool result")
}

func runCall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var mealieCfg mealiemcp.MealieConfig
	if err := envdecode.Decode(&mealieCfg); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	profile, err := resolveProfile(callProfile)
	if err != nil {
		return err
	}

	arguments := map[string]any{}
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &arguments); err != nil {
			return fmt.Errorf("arguments must be a JSON object: %w", err)
		}
	}

	client := mealie.New(mealieCfg.BaseURL, mealieCfg.APIToken, &http.Client{Timeout: mealieCfg.HTTPTimeout})
	registry, err := tools.NewRegistry(client, profile)
	if err != nil {
		return err
	}
	server := mcpserver.New(registry, mealiemcp.NewNoOpAuditLogger())

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport)
	if err != nil {
		return fmt.Errorf("failed to connect server: %w", err)
	}
	defer serverSession.Close()

	mcpClient := mcp.NewClient(&mcp.Implementation{Name: "mealie-mcp-cli", Version: mcpserver.Version}, nil)
	session, err := mcpClient.Connect(ctx, clientTransport, nil)
	if err != nil {
		return fmt.Errorf("failed to connect client: %w", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: args[0], Arguments: arguments})
	if err != nil {
		return err
	}

	if callVerbose {
		mealiemcp.Dump(result)
	}

	var text string
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text = tc.Text
			break
		}
	}

	if result.IsError {
		fmt.Fprintln(os.Stderr, text)
		return fmt.Errorf("tool %s failed", args[0])
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(text), "", "  "); err != nil {
		fmt.Println(text)
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}
