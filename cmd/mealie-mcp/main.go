package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mealie-mcp",
	Short: "MCP server for a self-hosted Mealie instance",
	Long: `mealie-mcp exposes a Mealie recipe manager to MCP clients: recipes,
shopping lists, organizers, the foods and units registries, and an
ingredient formalization workflow.

Configuration comes from the environment:

  MEALIE_URL          Base URL of the Mealie instance (default http://localhost:9000)
  MEALIE_API_TOKEN    Mealie API token (required)
  MEALIE_MCP_PROFILE  Tool profile, "full" or "core" (default full)
  MCP_TRANSPORT       "stdio" or "http" (default stdio)
  AUDIT_MODE          Tool-call audit trail: "off", "stdout", "file" or "s3" (default off)
  OTEL_ENABLED        Export traces and metrics over OTLP when true (default false)`,
	// No RunE - defaults to showing help when no subcommand is provided
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
