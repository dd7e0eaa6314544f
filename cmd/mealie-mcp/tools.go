package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mealiemcp/mealie"
	"mealiemcp/tools"
)

var toolsProfile string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools a profile exposes",
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.Flags().StringVar(&toolsProfile, "profile", "", `Tool profile, "full" or "core" (default from MEALIE_MCP_PROFILE)`)
}

// resolveProfile prefers the command-line flag over MEALIE_MCP_PROFILE.
func resolveProfile(flagValue string) (tools.Profile, error) {
	if flagValue != "" {
		return tools.ParseProfile(flagValue)
	}
	return tools.ParseProfile(os.Getenv("MEALIE_MCP_PROFILE"))
}

func runTools(cmd *cobra.Command, args []string) error {
	profile, err := resolveProfile(toolsProfile)
	if err != nil {
		return err
	}

	// The listing is static, so the backend client is never called.
	registry, err := tools.NewRegistry(mealie.New("http://localhost:9000", "", nil), profile)
	if err != nil {
		return err
	}

	list := registry.GetTools()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCORE\tTITLE")
	for _, t := range list {
		core := ""
		if t.Core {
			core = "✓"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, core, t.Title)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d tools (profile %s)\n", len(list), profile)
	return nil
}
