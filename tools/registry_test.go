package tools_test

import (
	"slices"
	"testing"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"

	"mealiemcp/mealie"
	"mealiemcp/tools"
)

func newRegistry(t *testing.T, profile tools.Profile) tools.Registry {
	t.Helper()
	c := mealie.New("http://mealie.test", "test-token", nil)
	reg, err := tools.NewRegistry(c, profile)
	must.NoError(t, err)
	return reg
}

func toolNames(reg tools.Registry) []string {
	var names []string
	for _, tool := range reg.GetTools() {
		names = append(names, tool.Name)
	}
	return names
}

func TestNewRegistry_FullProfile(t *testing.T) {
	reg := newRegistry(t, tools.ProfileFull)
	should.Len(t, reg.GetTools(), 66)

	names := toolNames(reg)
	should.True(t, slices.IsSorted(names), "GetTools should list tools in name order")
	should.Contains(t, names, "formalize_recipe_ingredients")
	should.Contains(t, names, "set_recipe_tools")
	should.Contains(t, names, "get_labels")
}

func TestNewRegistry_CoreProfile(t *testing.T) {
	core := newRegistry(t, tools.ProfileCore)
	full := newRegistry(t, tools.ProfileFull)

	coreNames := toolNames(core)
	should.Len(t, coreNames, 50)

	for _, name := range coreNames {
		_, err := full.GetTool(name)
		should.NoError(t, err, "core tool %q missing from full", name)
	}
	should.Greater(t, len(full.GetTools()), len(core.GetTools()), "full must be a strict superset of core")

	for _, name := range []string{"get_labels", "set_recipe_tools", "get_empty_tags", "get_tool_by_slug"} {
		_, err := core.GetTool(name)
		should.Error(t, err, "%q should be full-only", name)
	}
	for _, name := range []string{"get_recipe", "formalize_recipe_ingredients", "merge_foods"} {
		_, err := core.GetTool(name)
		should.NoError(t, err, "%q should be in core", name)
	}
}

func TestRegistry_GetTool(t *testing.T) {
	reg := newRegistry(t, tools.ProfileFull)

	tool, err := reg.GetTool("get_recipe")
	must.NoError(t, err)
	should.Equal(t, "get_recipe", tool.Name)
	should.NotNil(t, tool.InputSchema)

	_, err = reg.GetTool("make_dinner")
	should.ErrorContains(t, err, "not found in registry")
}

func TestNewRegistry_UnknownProfile(t *testing.T) {
	c := mealie.New("http://mealie.test", "test-token", nil)
	_, err := tools.NewRegistry(c, tools.Profile("lite"))
	should.Error(t, err)
}

func TestParseProfile(t *testing.T) {
	cases := []struct {
		in      string
		want    tools.Profile
		wantErr bool
	}{
		{in: "", want: tools.ProfileFull},
		{in: "full", want: tools.ProfileFull},
		{in: "core", want: tools.ProfileCore},
		{in: " CORE ", want: tools.ProfileCore},
		{in: "lite", wantErr: true},
	}
	for _, tc := range cases {
		got, err := tools.ParseProfile(tc.in)
		if tc.wantErr {
			should.Error(t, err, "input %q", tc.in)
			continue
		}
		must.NoError(t, err, "input %q", tc.in)
		should.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestRegistry_EveryToolDescribed(t *testing.T) {
	for _, tool := range newRegistry(t, tools.ProfileFull).GetTools() {
		should.NotEmpty(t, tool.Title, "tool %q has no title", tool.Name)
		should.NotEmpty(t, tool.Description, "tool %q has no description", tool.Name)
		must.NotNil(t, tool.InputSchema, "tool %q has no input schema", tool.Name)
		should.Equal(t, "object", tool.InputSchema.Type, "tool %q input schema", tool.Name)
	}
}
