package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"mealiemcp/mealie"
)

// importScanPageSize is the page size used when scanning for a recipe
// already imported from a URL.
const importScanPageSize = 100

func recipeTools(c *mealie.Client) []*Tool {
	return []*Tool{
		{
			Name:        "get_recipes",
			Title:       "List Recipes",
			Core:        true,
			Description: "Returns a page of recipes with free-text search, ordering and category or tag filters.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"page":            intSchema("Page number, starting at 1."),
				"per_page":        intSchema("Results per page."),
				"search":          strSchema("Free-text search across recipe names and descriptions."),
				"order_by":        strSchema("Field to order by, e.g. name or createdAt."),
				"order_direction": strSchema("asc or desc."),
				"categories":      arrSchema(strSchema(""), "Category slugs to filter by."),
				"tags":            arrSchema(strSchema(""), "Tag slugs to filter by."),
			}),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				return c.GetRecipes(ctx, mealie.RecipeListParams{
					Page:           intArg(input, "page", 0),
					PerPage:        intArg(input, "per_page", 0),
					Search:         strArg(input, "search"),
					OrderBy:        strArg(input, "order_by"),
					OrderDirection: strArg(input, "order_direction"),
					Categories:     strsArg(input, "categories"),
					Tags:           strsArg(input, "tags"),
				})
			},
		},
		{
			Name:        "get_recipe",
			Title:       "Get Recipe",
			Core:        true,
			Description: "Returns the full recipe, including ingredients, instructions and organizers.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema("Recipe slug or id."),
			}, "slug"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				slug, err := requireStr(input, "slug")
				if err != nil {
					return nil, err
				}
				return c.GetRecipe(ctx, slug)
			},
		},
		{
			Name:        "create_recipe",
			Title:       "Create Recipe",
			Core:        true,
			Description: "Creates a recipe. Only the name is required; fill in the rest with update_recipe or patch_recipe.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"data": objSchema(map[string]*jsonschema.Schema{
					"name": strSchema("Recipe name."),
				}, "name"),
			}, "data"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema("Slug of the new recipe."),
			}, "slug"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				data := mapArg(input, "data")
				if len(data) == 0 {
					return nil, inputErr("data is required")
				}
				slug, err := c.CreateRecipe(ctx, data)
				if err != nil {
					return nil, err
				}
				return slugResult(slug), nil
			},
		},
		{
			Name:        "update_recipe",
			Title:       "Update Recipe",
			Core:        true,
			Description: "Replaces a recipe. Send the full recipe object; fields left out are cleared.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema("Recipe slug or id."),
				"data": objSchema(nil),
			}, "slug", "data"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				slug, err := requireStr(input, "slug")
				if err != nil {
					return nil, err
				}
				data := mapArg(input, "data")
				if len(data) == 0 {
					return nil, inputErr("data is required")
				}
				return c.UpdateRecipe(ctx, slug, data)
			},
		},
		{
			Name:        "patch_recipe",
			Title:       "Patch Recipe",
			Core:        true,
			Description: "Partially updates a recipe. Only the fields present in data change.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema("Recipe slug or id."),
				"data": objSchema(nil),
			}, "slug", "data"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				slug, err := requireStr(input, "slug")
				if err != nil {
					return nil, err
				}
				data := mapArg(input, "data")
				if len(data) == 0 {
					return nil, inputErr("data is required")
				}
				return c.PatchRecipe(ctx, slug, data)
			},
		},
		{
			Name:        "delete_recipe",
			Title:       "Delete Recipe",
			Core:        true,
			Description: "Deletes a recipe.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema("Recipe slug or id."),
			}, "slug"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"status": strSchema(""),
				"slug":   strSchema(""),
			}, "status", "slug"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				slug, err := requireStr(input, "slug")
				if err != nil {
					return nil, err
				}
				if _, err := c.DeleteRecipe(ctx, slug); err != nil {
					return nil, err
				}
				return deletedResult("slug", slug), nil
			},
		},
		{
			Name:        "duplicate_recipe",
			Title:       "Duplicate Recipe",
			Core:        true,
			Description: "Duplicates a recipe and returns the copy's slug.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema("Slug of the recipe to duplicate."),
			}, "slug"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema("Slug of the duplicate."),
			}, "slug"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				slug, err := requireStr(input, "slug")
				if err != nil {
					return nil, err
				}
				dup, err := c.DuplicateRecipe(ctx, slug)
				if err != nil {
					return nil, err
				}
				return slugResult(dup), nil
			},
		},
		{
			Name:        "import_recipe_from_url",
			Title:       "Import Recipe From URL",
			Core:        true,
			Description: "Scrapes a public recipe page and imports it, returning the new slug.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"url":          strSchema("URL of the recipe page."),
				"include_tags": boolSchema("Also import the site's tags. Defaults to false."),
			}, "url"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema("Slug of the imported recipe."),
			}, "slug"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				recipeURL, err := requireStr(input, "url")
				if err != nil {
					return nil, err
				}
				slug, err := c.ImportRecipeFromURL(ctx, recipeURL, boolArg(input, "include_tags", false))
				if err != nil {
					return nil, err
				}
				return slugResult(slug), nil
			},
		},
		{
			Name:        "import_or_get_recipe_from_url",
			Title:       "Import or Get Recipe From URL",
			Core:        true,
			Description: "Imports a recipe from a URL unless one imported from the same URL already exists. Returns the slug either way.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"url":          strSchema("URL of the recipe page."),
				"include_tags": boolSchema("Also import the site's tags when importing. Defaults to false."),
			}, "url"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug":    strSchema(""),
				"created": boolSchema("True when the recipe was imported by this call."),
			}, "slug", "created"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				recipeURL, err := requireStr(input, "url")
				if err != nil {
					return nil, err
				}
				for page := 1; ; page++ {
					resp, err := c.GetRecipes(ctx, mealie.RecipeListParams{Page: page, PerPage: importScanPageSize})
					if err != nil {
						return nil, err
					}
					items := mapsArg(resp, "items")
					for _, item := range items {
						org, _ := item["orgURL"].(string)
						slug, _ := item["slug"].(string)
						if org == recipeURL && slug != "" {
							return map[string]any{"slug": slug, "created": false}, nil
						}
					}
					totalPages := intArg(resp, "totalPages", 0)
					if len(items) == 0 || (totalPages > 0 && page >= totalPages) {
						break
					}
				}
				slug, err := c.ImportRecipeFromURL(ctx, recipeURL, boolArg(input, "include_tags", false))
				if err != nil {
					return nil, err
				}
				return map[string]any{"slug": slug, "created": true}, nil
			},
		},
		{
			Name:        "test_scrape_url",
			Title:       "Test Scrape URL",
			Core:        true,
			Description: "Scrapes a recipe page without importing anything, returning the recipe data the importer would use.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"url": strSchema("URL of the recipe page."),
			}, "url"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				recipeURL, err := requireStr(input, "url")
				if err != nil {
					return nil, err
				}
				return c.TestScrapeURL(ctx, recipeURL)
			},
		},
		{
			Name:        "set_recipe_last_made",
			Title:       "Set Recipe Last Made",
			Core:        true,
			Description: "Records the date a recipe was last made.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug": strSchema("Recipe slug or id."),
				"date": strSchema("Date the recipe was made, as YYYY-MM-DD."),
			}, "slug", "date"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				slug, err := requireStr(input, "slug")
				if err != nil {
					return nil, err
				}
				date, err := requireStr(input, "date")
				if err != nil {
					return nil, err
				}
				return c.SetRecipeLastMade(ctx, slug, date)
			},
		},
		{
			Name:        "suggest_recipes",
			Title:       "Suggest Recipes",
			Core:        true,
			Description: "Returns recipe suggestions based on the foods and tools on hand.",
			InputSchema: objSchema(nil),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				return c.GetRecipeSuggestions(ctx)
			},
		},
	}
}
