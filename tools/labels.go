package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"mealiemcp/mealie"
)

// defaultLabelColor matches the backend UI's neutral label color.
const defaultLabelColor = "#E0E0E0"

func labelTools(c *mealie.Client) []*Tool {
	return []*Tool{
		{
			Name:        "get_labels",
			Title:       "List Labels",
			Core:        false,
			Description: "Returns a page of the group's labels.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"page":     intSchema("Page number, starting at 1."),
				"per_page": intSchema("Results per page."),
			}),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				return c.GetLabels(ctx, intArg(input, "page", 0), intArg(input, "per_page", 0))
			},
		},
		{
			Name:        "get_label",
			Title:       "Get Label",
			Core:        false,
			Description: "Returns a label by id.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"label_id": strSchema("Label id."),
			}, "label_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				labelID, err := requireStr(input, "label_id")
				if err != nil {
					return nil, err
				}
				return c.GetLabel(ctx, labelID)
			},
		},
		{
			Name:        "create_label",
			Title:       "Create Label",
			Core:        false,
			Description: "Creates a label for organizing foods and shopping items.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"name":  strSchema("Label name."),
				"color": strSchema("Display color as a hex string. Defaults to " + defaultLabelColor + "."),
			}, "name"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				name, err := requireStr(input, "name")
				if err != nil {
					return nil, err
				}
				color := strArg(input, "color")
				if color == "" {
					color = defaultLabelColor
				}
				return c.CreateLabel(ctx, name, color)
			},
		},
		{
			Name:        "update_label",
			Title:       "Update Label",
			Core:        false,
			Description: "Updates a label's name or color. The backend wants the full object back, so the label is fetched first.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"label_id": strSchema("Label id."),
				"name":     strSchema("New name."),
				"color":    strSchema("New display color as a hex string."),
			}, "label_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				labelID, err := requireStr(input, "label_id")
				if err != nil {
					return nil, err
				}
				if !hasArg(input, "name") && !hasArg(input, "color") {
					return nil, inputErr("nothing to update: pass name or color")
				}
				label, err := c.GetLabel(ctx, labelID)
				if err != nil {
					return nil, err
				}
				if hasArg(input, "name") {
					label["name"] = strArg(input, "name")
				}
				if hasArg(input, "color") {
					label["color"] = strArg(input, "color")
				}
				return c.UpdateLabel(ctx, labelID, label)
			},
		},
		{
			Name:        "delete_label",
			Title:       "Delete Label",
			Core:        false,
			Description: "Deletes a label. Foods and items keep working; they just lose the label.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"label_id": strSchema("Label id."),
			}, "label_id"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"status": strSchema(""),
				"id":     strSchema(""),
			}, "status", "id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				labelID, err := requireStr(input, "label_id")
				if err != nil {
					return nil, err
				}
				if _, err := c.DeleteLabel(ctx, labelID); err != nil {
					return nil, err
				}
				return deletedResult("id", labelID), nil
			},
		},
	}
}
