package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"mealiemcp/mealie"
)

func foodTools(c *mealie.Client) []*Tool {
	return []*Tool{
		{
			Name:        "get_foods",
			Title:       "List Foods",
			Core:        true,
			Description: "Returns a page of the canonical foods registry, optionally filtered by search.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"page":     intSchema("Page number, starting at 1."),
				"per_page": intSchema("Results per page."),
				"search":   strSchema("Fuzzy search over food names."),
			}),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				return c.GetFoods(ctx, intArg(input, "page", 0), intArg(input, "per_page", 0), strArg(input, "search"))
			},
		},
		{
			Name:        "get_food",
			Title:       "Get Food",
			Core:        true,
			Description: "Returns a food by id.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"food_id": strSchema("Food id."),
			}, "food_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				foodID, err := requireStr(input, "food_id")
				if err != nil {
					return nil, err
				}
				return c.GetFood(ctx, foodID)
			},
		},
		{
			Name:        "create_food",
			Title:       "Create Food",
			Core:        true,
			Description: "Adds a food to the registry, optionally tagged with a label.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"name":        strSchema("Food name."),
				"description": strSchema("Optional description."),
				"label_id":    strSchema("Label to attach, by id."),
			}, "name"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				name, err := requireStr(input, "name")
				if err != nil {
					return nil, err
				}
				return c.CreateFood(ctx, name, strArg(input, "description"), strArg(input, "label_id"))
			},
		},
		{
			Name:        "update_food",
			Title:       "Update Food",
			Core:        true,
			Description: "Updates a food's name or description. The backend wants the full object back, so the food is fetched first.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"food_id":     strSchema("Food id."),
				"name":        strSchema("New name."),
				"description": strSchema("New description."),
			}, "food_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				foodID, err := requireStr(input, "food_id")
				if err != nil {
					return nil, err
				}
				if !hasArg(input, "name") && !hasArg(input, "description") {
					return nil, inputErr("nothing to update: pass name or description")
				}
				food, err := c.GetFood(ctx, foodID)
				if err != nil {
					return nil, err
				}
				if hasArg(input, "name") {
					food["name"] = strArg(input, "name")
				}
				if hasArg(input, "description") {
					food["description"] = strArg(input, "description")
				}
				return c.UpdateFood(ctx, foodID, food)
			},
		},
		{
			Name:        "delete_food",
			Title:       "Delete Food",
			Core:        true,
			Description: "Removes a food from the registry.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"food_id": strSchema("Food id."),
			}, "food_id"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"status": strSchema(""),
				"id":     strSchema(""),
			}, "status", "id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				foodID, err := requireStr(input, "food_id")
				if err != nil {
					return nil, err
				}
				if _, err := c.DeleteFood(ctx, foodID); err != nil {
					return nil, err
				}
				return deletedResult("id", foodID), nil
			},
		},
		{
			Name:        "merge_foods",
			Title:       "Merge Foods",
			Core:        true,
			Description: "Merges one food into another. Everything referencing the source food is repointed to the target, then the source is removed.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"from_food_id": strSchema("Food to fold away."),
				"to_food_id":   strSchema("Food to keep."),
			}, "from_food_id", "to_food_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				fromID, err := requireStr(input, "from_food_id")
				if err != nil {
					return nil, err
				}
				toID, err := requireStr(input, "to_food_id")
				if err != nil {
					return nil, err
				}
				return c.MergeFoods(ctx, fromID, toID)
			},
		},
	}
}
