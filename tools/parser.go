package tools

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"mealiemcp/formalize"
	"mealiemcp/mealie"
)

func parserTools(c *mealie.Client) []*Tool {
	f := formalize.New(c)
	return []*Tool{
		{
			Name:        "parse_ingredient",
			Title:       "Parse Ingredient",
			Core:        true,
			Description: "Parses one free-text ingredient line into quantity, unit, food and note.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"text": strSchema("Ingredient line, e.g. \"2 cups flour, sifted\"."),
			}, "text"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				text, err := requireStr(input, "text")
				if err != nil {
					return nil, err
				}
				return c.ParseIngredient(ctx, text)
			},
		},
		{
			Name:        "parse_ingredients",
			Title:       "Parse Ingredients",
			Core:        true,
			Description: "Parses several ingredient lines in one call. Results are index-aligned with the input.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"texts": arrSchema(strSchema(""), "Ingredient lines to parse."),
			}, "texts"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"ingredients": arrSchema(objSchema(nil), "Parse results, one per input line."),
			}, "ingredients"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				texts := strsArg(input, "texts")
				if len(texts) == 0 {
					return nil, inputErr("texts is required")
				}
				items, err := c.ParseIngredients(ctx, texts)
				if err != nil {
					return nil, err
				}
				return listResult("ingredients", items), nil
			},
		},
		{
			Name:        "formalize_recipe_ingredients",
			Title:       "Formalize Recipe Ingredients",
			Core:        true,
			Description: "Parses a recipe's free-text ingredient lines and rewrites them with structured quantities, units and foods. Optionally creates missing foods or units and links ingredients to the instruction steps that mention them. Matches are committed only when unambiguous; everything else is reported.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug":                      strSchema("Recipe slug or id."),
				"create_missing_foods":      boolSchema("Create foods the registry is missing. Defaults to true."),
				"create_missing_units":      boolSchema("Create units the registry is missing. Defaults to false."),
				"link_ingredients_to_steps": boolSchema("Link each ingredient to the single instruction step that mentions it. Defaults to true."),
			}, "slug"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"slug":                strSchema(""),
				"status":              strSchema("ok, partial or no-ingredients."),
				"updated_ingredients": intSchema("Ingredient lines written back."),
				"created_foods":       arrSchema(strSchema(""), "Foods created during the run."),
				"created_units":       arrSchema(strSchema(""), "Units created during the run."),
				"linked_steps":        intSchema("Steps that ended up with at least one ingredient reference."),
				"links":               arrSchema(objSchema(nil), "Committed ingredient-to-step links."),
				"skipped_links":       arrSchema(objSchema(nil), "Ingredients left unlinked, with the reason."),
				"unresolved":          arrSchema(objSchema(nil), "Ingredients whose food or unit could not be committed."),
			}, "slug", "status", "updated_ingredients", "created_foods", "created_units", "linked_steps"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				slug, err := requireStr(input, "slug")
				if err != nil {
					return nil, err
				}
				report, err := f.Formalize(ctx, formalize.Request{
					Slug:               slug,
					CreateMissingFoods: boolArg(input, "create_missing_foods", true),
					CreateMissingUnits: boolArg(input, "create_missing_units", false),
					LinkStepReferences: boolArg(input, "link_ingredients_to_steps", true),
				})
				if err != nil {
					return nil, err
				}
				// marshal -> map[string]any to keep outputs uniform
				b, _ := json.Marshal(report)
				var m map[string]any
				_ = json.Unmarshal(b, &m)
				return m, nil
			},
		},
	}
}
