package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"mealiemcp/mealie"
)

// organizerPageSize is the page size used when resolving kitchen tools by
// name or id.
const organizerPageSize = 250

// organizerOps parameterizes one organizer kind. Categories, tags and
// kitchen tools share the same backend route shape, so their tool sets are
// built from one template.
type organizerOps struct {
	singular string // tool name fragment, e.g. "category"
	plural   string // tool name fragment, e.g. "categories"
	noun     string // description noun, e.g. "category" or "kitchen tool"
	nouns    string
	idKey    string
	core     bool

	list   func(context.Context, int, int) (map[string]any, error)
	get    func(context.Context, string) (map[string]any, error)
	bySlug func(context.Context, string) (map[string]any, error)
	empty  func(context.Context) ([]map[string]any, error)
	create func(context.Context, string) (map[string]any, error)
	update func(context.Context, string, map[string]any) (map[string]any, error)
	del    func(context.Context, string) (map[string]any, error)
}

func organizerTools(c *mealie.Client) []*Tool {
	var out []*Tool
	out = append(out, organizerToolSet(organizerOps{
		singular: "category", plural: "categories",
		noun: "category", nouns: "categories",
		idKey: "category_id", core: true,
		list: c.GetCategories, get: c.GetCategory, bySlug: c.GetCategoryBySlug,
		empty: c.GetEmptyCategories, create: c.CreateCategory,
		update: c.UpdateCategory, del: c.DeleteCategory,
	})...)
	out = append(out, organizerToolSet(organizerOps{
		singular: "tag", plural: "tags",
		noun: "tag", nouns: "tags",
		idKey: "tag_id", core: true,
		list: c.GetTags, get: c.GetTag, bySlug: c.GetTagBySlug,
		empty: c.GetEmptyTags, create: c.CreateTag,
		update: c.UpdateTag, del: c.DeleteTag,
	})...)
	out = append(out, organizerToolSet(organizerOps{
		singular: "tool", plural: "tools",
		noun: "kitchen tool", nouns: "kitchen tools",
		idKey: "tool_id", core: false,
		list: c.GetTools, get: c.GetTool, bySlug: c.GetToolBySlug,
		create: c.CreateTool, update: c.UpdateTool, del: c.DeleteTool,
	})...)
	out = append(out, setRecipeToolsTool(c))
	return out
}

func organizerToolSet(ops organizerOps) []*Tool {
	out := []*Tool{
		{
			Name:        "get_" + ops.plural,
			Title:       "List " + titleWords(ops.nouns),
			Core:        ops.core,
			Description: fmt.Sprintf("Returns a page of %s.", ops.nouns),
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"page":     intSchema("Page number, starting at 1."),
				"per_page": intSchema("Results per page."),
			}),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				return ops.list(ctx, intArg(input, "page", 0), intArg(input, "per_page", 0))
			},
		},
		{
			Name:        "get_" + ops.singular,
			Title:       "Get " + titleWords(ops.noun),
			Core:        ops.core,
			Description: fmt.Sprintf("Returns a %s by id, with the recipes under it.", ops.noun),
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				ops.idKey: strSchema(titleWords(ops.noun) + " id."),
			}, ops.idKey),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				id, err := requireStr(input, ops.idKey)
				if err != nil {
					return nil, err
				}
				return ops.get(ctx, id)
			},
		},
		{
			Name:        "get_" + ops.singular + "_by_slug",
			Title:       "Get " + titleWords(ops.noun) + " by Slug",
			Core:        false,
			Description: fmt.Sprintf("Returns a %s by slug.", ops.noun),
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema(titleWords(ops.noun) + " slug."),
			}, "slug"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				slug, err := requireStr(input, "slug")
				if err != nil {
					return nil, err
				}
				return ops.bySlug(ctx, slug)
			},
		},
		{
			Name:        "create_" + ops.singular,
			Title:       "Create " + titleWords(ops.noun),
			Core:        ops.core,
			Description: fmt.Sprintf("Creates a %s.", ops.noun),
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"name": strSchema(titleWords(ops.noun) + " name."),
			}, "name"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				name, err := requireStr(input, "name")
				if err != nil {
					return nil, err
				}
				return ops.create(ctx, name)
			},
		},
		{
			Name:        "update_" + ops.singular,
			Title:       "Rename " + titleWords(ops.noun),
			Core:        ops.core,
			Description: fmt.Sprintf("Renames a %s. Recipes keep their association under the new name.", ops.noun),
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				ops.idKey: strSchema(titleWords(ops.noun) + " id."),
				"name":    strSchema("New name."),
			}, ops.idKey, "name"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				id, err := requireStr(input, ops.idKey)
				if err != nil {
					return nil, err
				}
				name, err := requireStr(input, "name")
				if err != nil {
					return nil, err
				}
				return ops.update(ctx, id, map[string]any{"name": name})
			},
		},
		{
			Name:        "delete_" + ops.singular,
			Title:       "Delete " + titleWords(ops.noun),
			Core:        ops.core,
			Description: fmt.Sprintf("Deletes a %s. Recipes referencing it are kept.", ops.noun),
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				ops.idKey: strSchema(titleWords(ops.noun) + " id."),
			}, ops.idKey),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"status": strSchema(""),
				"id":     strSchema(""),
			}, "status", "id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				id, err := requireStr(input, ops.idKey)
				if err != nil {
					return nil, err
				}
				if _, err := ops.del(ctx, id); err != nil {
					return nil, err
				}
				return deletedResult("id", id), nil
			},
		},
	}
	if ops.empty != nil {
		out = append(out, &Tool{
			Name:        "get_empty_" + ops.plural,
			Title:       "List Empty " + titleWords(ops.nouns),
			Core:        false,
			Description: fmt.Sprintf("Returns %s that no recipe references.", ops.nouns),
			InputSchema: objSchema(nil),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				items, err := ops.empty(ctx)
				if err != nil {
					return nil, err
				}
				return listResult(ops.plural, items), nil
			},
		})
	}
	return out
}

func setRecipeToolsTool(c *mealie.Client) *Tool {
	return &Tool{
		Name:        "set_recipe_tools",
		Title:       "Set Recipe Tools",
		Core:        false,
		Description: "Replaces the kitchen tools attached to a recipe. Tools may be given by id or name; unknown names are created when create_missing is set.",
		InputSchema: objSchema(map[string]*jsonschema.Schema{
			"slug":           strSchema("Recipe slug or id."),
			"tool_ids":       arrSchema(strSchema(""), "Kitchen tool ids to attach."),
			"tool_names":     arrSchema(strSchema(""), "Kitchen tool names to attach."),
			"create_missing": boolSchema("Create kitchen tools for names that do not exist yet. Defaults to false."),
		}, "slug"),
		OutputSchema: objSchema(map[string]*jsonschema.Schema{
			"slug":          strSchema(""),
			"tools":         arrSchema(objSchema(nil), "Kitchen tools now attached to the recipe."),
			"created_tools": arrSchema(strSchema(""), "Names created by this call."),
		}, "slug", "tools", "created_tools"),
		Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			slug, err := requireStr(input, "slug")
			if err != nil {
				return nil, err
			}
			toolIDs := strsArg(input, "tool_ids")
			toolNames := strsArg(input, "tool_names")
			if len(toolIDs) == 0 && len(toolNames) == 0 {
				return nil, inputErr("tool_ids or tool_names is required")
			}

			page, err := c.GetTools(ctx, 1, organizerPageSize)
			if err != nil {
				return nil, err
			}
			byID := map[string]map[string]any{}
			byName := map[string]map[string]any{}
			for _, item := range mapsArg(page, "items") {
				if id, _ := item["id"].(string); id != "" {
					byID[id] = item
				}
				if name, _ := item["name"].(string); name != "" {
					byName[strings.ToLower(strings.TrimSpace(name))] = item
				}
			}

			selected := []map[string]any{}
			seen := map[string]bool{}
			add := func(item map[string]any) {
				id, _ := item["id"].(string)
				if id == "" || seen[id] {
					return
				}
				seen[id] = true
				selected = append(selected, item)
			}

			for _, id := range toolIDs {
				item, ok := byID[id]
				if !ok {
					return nil, inputErr("kitchen tool id %q not found", id)
				}
				add(item)
			}

			created := []string{}
			for _, name := range toolNames {
				key := strings.ToLower(strings.TrimSpace(name))
				if item, ok := byName[key]; ok {
					add(item)
					continue
				}
				if !boolArg(input, "create_missing", false) {
					return nil, inputErr("kitchen tool %q not found; pass create_missing to create it", name)
				}
				item, err := c.CreateTool(ctx, name)
				if err != nil {
					return nil, err
				}
				byName[key] = item
				add(item)
				created = append(created, name)
			}

			if _, err := c.PatchRecipe(ctx, slug, map[string]any{"tools": selected}); err != nil {
				return nil, err
			}
			return map[string]any{
				"slug":          slug,
				"tools":         selected,
				"created_tools": created,
			}, nil
		},
	}
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
