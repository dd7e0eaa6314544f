package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"mealiemcp/mealie"
)

func unitTools(c *mealie.Client) []*Tool {
	return []*Tool{
		{
			Name:        "get_units",
			Title:       "List Units",
			Core:        true,
			Description: "Returns a page of the canonical units registry.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"page":     intSchema("Page number, starting at 1."),
				"per_page": intSchema("Results per page."),
			}),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				return c.GetUnits(ctx, intArg(input, "page", 0), intArg(input, "per_page", 0))
			},
		},
		{
			Name:        "get_unit",
			Title:       "Get Unit",
			Core:        true,
			Description: "Returns a unit by id.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"unit_id": strSchema("Unit id."),
			}, "unit_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				unitID, err := requireStr(input, "unit_id")
				if err != nil {
					return nil, err
				}
				return c.GetUnit(ctx, unitID)
			},
		},
		{
			Name:        "create_unit",
			Title:       "Create Unit",
			Core:        true,
			Description: "Adds a unit to the registry.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"name":         strSchema("Unit name, e.g. tablespoon."),
				"abbreviation": strSchema("Short form, e.g. tbsp."),
				"description":  strSchema("Optional description."),
				"fraction":     boolSchema("Display amounts in this unit as fractions. Defaults to true."),
			}, "name"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				name, err := requireStr(input, "name")
				if err != nil {
					return nil, err
				}
				return c.CreateUnit(ctx, name,
					strArg(input, "abbreviation"),
					strArg(input, "description"),
					boolArg(input, "fraction", true))
			},
		},
		{
			Name:        "update_unit",
			Title:       "Update Unit",
			Core:        true,
			Description: "Updates a unit's name or abbreviation. The backend wants the full object back, so the unit is fetched first.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"unit_id":      strSchema("Unit id."),
				"name":         strSchema("New name."),
				"abbreviation": strSchema("New abbreviation."),
			}, "unit_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				unitID, err := requireStr(input, "unit_id")
				if err != nil {
					return nil, err
				}
				if !hasArg(input, "name") && !hasArg(input, "abbreviation") {
					return nil, inputErr("nothing to update: pass name or abbreviation")
				}
				unit, err := c.GetUnit(ctx, unitID)
				if err != nil {
					return nil, err
				}
				if hasArg(input, "name") {
					unit["name"] = strArg(input, "name")
				}
				if hasArg(input, "abbreviation") {
					unit["abbreviation"] = strArg(input, "abbreviation")
				}
				return c.UpdateUnit(ctx, unitID, unit)
			},
		},
		{
			Name:        "delete_unit",
			Title:       "Delete Unit",
			Core:        true,
			Description: "Removes a unit from the registry.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"unit_id": strSchema("Unit id."),
			}, "unit_id"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"status": strSchema(""),
				"id":     strSchema(""),
			}, "status", "id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				unitID, err := requireStr(input, "unit_id")
				if err != nil {
					return nil, err
				}
				if _, err := c.DeleteUnit(ctx, unitID); err != nil {
					return nil, err
				}
				return deletedResult("id", unitID), nil
			},
		},
		{
			Name:        "merge_units",
			Title:       "Merge Units",
			Core:        true,
			Description: "Merges one unit into another. Every ingredient using the source unit is repointed to the target, then the source is removed.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"from_unit_id": strSchema("Unit to fold away."),
				"to_unit_id":   strSchema("Unit to keep."),
			}, "from_unit_id", "to_unit_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				fromID, err := requireStr(input, "from_unit_id")
				if err != nil {
					return nil, err
				}
				toID, err := requireStr(input, "to_unit_id")
				if err != nil {
					return nil, err
				}
				return c.MergeUnits(ctx, fromID, toID)
			},
		},
	}
}
