package tools

import (
	"fmt"
	"slices"
	"strings"

	"mealiemcp/mealie"
)

// Profile selects which subset of tools a server exposes.
type Profile string

const (
	// ProfileCore is the trimmed set for clients with small tool budgets.
	ProfileCore Profile = "core"
	// ProfileFull exposes every tool.
	ProfileFull Profile = "full"
)

// ParseProfile maps a config string to a Profile. Empty selects full.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ProfileFull):
		return ProfileFull, nil
	case string(ProfileCore):
		return ProfileCore, nil
	}
	return "", fmt.Errorf("unknown profile %q (want %q or %q)", s, ProfileCore, ProfileFull)
}

// Registry maps tool names to implementations
type Registry map[string]*Tool

// NewRegistry builds the registry for one backend client, keeping only the
// tools the profile includes. Every definition is validated first so a bad
// tool fails at startup, not at call time.
func NewRegistry(client *mealie.Client, profile Profile) (Registry, error) {
	if profile != ProfileCore && profile != ProfileFull {
		return nil, fmt.Errorf("unknown profile %q", profile)
	}

	seen := make(map[string]bool)
	reg := Registry{}
	for _, t := range allTools(client) {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate tool %q", t.Name)
		}
		seen[t.Name] = true
		if profile == ProfileCore && !t.Core {
			continue
		}
		reg[t.Name] = t
	}
	return reg, nil
}

// GetTools returns all tools in the registry as a slice, sorted by name.
func (r Registry) GetTools() []*Tool {
	tools := make([]*Tool, 0, len(r))
	for _, tool := range r {
		tools = append(tools, tool)
	}
	slices.SortFunc(tools, func(a, b *Tool) int { return strings.Compare(a.Name, b.Name) })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (*Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

func allTools(c *mealie.Client) []*Tool {
	var out []*Tool
	out = append(out, recipeTools(c)...)
	out = append(out, shoppingTools(c)...)
	out = append(out, organizerTools(c)...)
	out = append(out, foodTools(c)...)
	out = append(out, unitTools(c)...)
	out = append(out, labelTools(c)...)
	out = append(out, parserTools(c)...)
	return out
}
