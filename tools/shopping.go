package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"mealiemcp/mealie"
)

func shoppingTools(c *mealie.Client) []*Tool {
	return []*Tool{
		{
			Name:        "get_shopping_lists",
			Title:       "List Shopping Lists",
			Core:        true,
			Description: "Returns a page of the household's shopping lists.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"page":     intSchema("Page number, starting at 1."),
				"per_page": intSchema("Results per page."),
			}),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				return c.GetShoppingLists(ctx, intArg(input, "page", 0), intArg(input, "per_page", 0))
			},
		},
		{
			Name:        "get_shopping_list",
			Title:       "Get Shopping List",
			Core:        true,
			Description: "Returns a shopping list with its items.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"list_id": strSchema("Shopping list id."),
			}, "list_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				listID, err := requireStr(input, "list_id")
				if err != nil {
					return nil, err
				}
				return c.GetShoppingList(ctx, listID)
			},
		},
		{
			Name:        "create_shopping_list",
			Title:       "Create Shopping List",
			Core:        true,
			Description: "Creates a named shopping list.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"name": strSchema("Name of the new list."),
			}, "name"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				name, err := requireStr(input, "name")
				if err != nil {
					return nil, err
				}
				return c.CreateShoppingList(ctx, name)
			},
		},
		{
			Name:        "update_shopping_list",
			Title:       "Rename Shopping List",
			Core:        true,
			Description: "Renames a shopping list. The backend wants the full object back, so the list is fetched first.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"list_id": strSchema("Shopping list id."),
				"name":    strSchema("New name."),
			}, "list_id", "name"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				listID, err := requireStr(input, "list_id")
				if err != nil {
					return nil, err
				}
				name, err := requireStr(input, "name")
				if err != nil {
					return nil, err
				}
				list, err := c.GetShoppingList(ctx, listID)
				if err != nil {
					return nil, err
				}
				list["name"] = name
				return c.UpdateShoppingList(ctx, listID, list)
			},
		},
		{
			Name:        "delete_shopping_list",
			Title:       "Delete Shopping List",
			Core:        true,
			Description: "Deletes a shopping list and its items.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"list_id": strSchema("Shopping list id."),
			}, "list_id"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"status": strSchema(""),
				"id":     strSchema(""),
			}, "status", "id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				listID, err := requireStr(input, "list_id")
				if err != nil {
					return nil, err
				}
				if _, err := c.DeleteShoppingList(ctx, listID); err != nil {
					return nil, err
				}
				return deletedResult("id", listID), nil
			},
		},
		{
			Name:        "add_recipe_to_shopping_list",
			Title:       "Add Recipe to Shopping List",
			Core:        true,
			Description: "Adds every ingredient of a recipe to a shopping list, scaled by the given factor.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"list_id":   strSchema("Shopping list id."),
				"recipe_id": strSchema("Recipe id (not slug)."),
				"scale":     numSchema("Recipe scale factor. Defaults to 1."),
			}, "list_id", "recipe_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				listID, err := requireStr(input, "list_id")
				if err != nil {
					return nil, err
				}
				recipeID, err := requireStr(input, "recipe_id")
				if err != nil {
					return nil, err
				}
				return c.AddRecipeToShoppingList(ctx, listID, recipeID, floatArg(input, "scale", 1))
			},
		},
		{
			Name:        "remove_recipe_from_shopping_list",
			Title:       "Remove Recipe from Shopping List",
			Core:        true,
			Description: "Removes a recipe's ingredients from a shopping list.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"list_id":   strSchema("Shopping list id."),
				"recipe_id": strSchema("Recipe id (not slug)."),
			}, "list_id", "recipe_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				listID, err := requireStr(input, "list_id")
				if err != nil {
					return nil, err
				}
				recipeID, err := requireStr(input, "recipe_id")
				if err != nil {
					return nil, err
				}
				return c.RemoveRecipeFromShoppingList(ctx, listID, recipeID)
			},
		},
		{
			Name:        "get_shopping_items",
			Title:       "List Shopping Items",
			Core:        true,
			Description: "Returns a page of shopping items. Filter to one list with shopping_list_id, or pass a raw query_filter expression.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"page":             intSchema("Page number, starting at 1."),
				"per_page":         intSchema("Results per page."),
				"order_by":         strSchema("Field to order by, e.g. position."),
				"shopping_list_id": strSchema("Only items on this list."),
				"query_filter":     strSchema("Raw filter expression, overrides shopping_list_id."),
			}),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				filter := strArg(input, "query_filter")
				if filter == "" {
					if listID := strArg(input, "shopping_list_id"); listID != "" {
						filter = fmt.Sprintf("shoppingListId=%q", listID)
					}
				}
				return c.GetShoppingItems(ctx, mealie.ShoppingItemListParams{
					Page:        intArg(input, "page", 0),
					PerPage:     intArg(input, "per_page", 0),
					OrderBy:     strArg(input, "order_by"),
					QueryFilter: filter,
				})
			},
		},
		{
			Name:        "get_shopping_item",
			Title:       "Get Shopping Item",
			Core:        true,
			Description: "Returns a shopping item by id.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"item_id": strSchema("Shopping item id."),
			}, "item_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				itemID, err := requireStr(input, "item_id")
				if err != nil {
					return nil, err
				}
				return c.GetShoppingItem(ctx, itemID)
			},
		},
		{
			Name:        "add_shopping_item",
			Title:       "Add Shopping Item",
			Core:        true,
			Description: "Adds one item to a shopping list. Unit and food are plain names the backend resolves.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"shopping_list_id": strSchema("Shopping list id."),
				"note":             strSchema("Free-text note, e.g. the item as written."),
				"quantity":         numSchema("Quantity. Defaults to 1."),
				"unit":             strSchema("Unit name."),
				"food":             strSchema("Food name."),
				"checked":          boolSchema("Start the item checked off. Defaults to false."),
			}, "shopping_list_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				listID, err := requireStr(input, "shopping_list_id")
				if err != nil {
					return nil, err
				}
				resp, err := c.AddShoppingItem(ctx, mealie.ShoppingItemParams{
					ShoppingListID: listID,
					Note:           strArg(input, "note"),
					Quantity:       floatArg(input, "quantity", 1),
					Unit:           strArg(input, "unit"),
					Food:           strArg(input, "food"),
					Checked:        boolArg(input, "checked", false),
				})
				if err != nil {
					return nil, err
				}
				// The change-set wrapper is overkill for one item; unwrap it.
				if created := mapsArg(resp, "createdItems"); len(created) == 1 {
					return created[0], nil
				}
				return resp, nil
			},
		},
		{
			Name:        "add_shopping_items_bulk",
			Title:       "Add Shopping Items in Bulk",
			Core:        true,
			Description: "Adds several items to a shopping list in one call. Items without a shoppingListId get the given list's.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"shopping_list_id": strSchema("Shopping list the items default to."),
				"items":            arrSchema(objSchema(nil), "Shopping items, in the backend's item shape."),
			}, "shopping_list_id", "items"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				listID, err := requireStr(input, "shopping_list_id")
				if err != nil {
					return nil, err
				}
				items := mapsArg(input, "items")
				if len(items) == 0 {
					return nil, inputErr("items is required")
				}
				for _, item := range items {
					if _, ok := item["shoppingListId"]; !ok {
						item["shoppingListId"] = listID
					}
				}
				return c.AddShoppingItemsBulk(ctx, items)
			},
		},
		{
			Name:        "update_shopping_item",
			Title:       "Update Shopping Item",
			Core:        true,
			Description: "Updates a shopping item's note or checked state. The backend wants the full object back, so the item is fetched first.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"item_id": strSchema("Shopping item id."),
				"note":    strSchema("New note."),
				"checked": boolSchema("New checked state."),
			}, "item_id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				itemID, err := requireStr(input, "item_id")
				if err != nil {
					return nil, err
				}
				if !hasArg(input, "note") && !hasArg(input, "checked") {
					return nil, inputErr("nothing to update: pass note or checked")
				}
				item, err := c.GetShoppingItem(ctx, itemID)
				if err != nil {
					return nil, err
				}
				if hasArg(input, "note") {
					item["note"] = strArg(input, "note")
				}
				if hasArg(input, "checked") {
					item["checked"] = boolArg(input, "checked", false)
				}
				return c.UpdateShoppingItem(ctx, itemID, item)
			},
		},
		{
			Name:        "delete_shopping_item",
			Title:       "Delete Shopping Item",
			Core:        true,
			Description: "Deletes a shopping item.",
			InputSchema: objSchema(map[string]*jsonschema.Schema{
				"item_id": strSchema("Shopping item id."),
			}, "item_id"),
			OutputSchema: objSchema(map[string]*jsonschema.Schema{
				"status": strSchema(""),
				"id":     strSchema(""),
			}, "status", "id"),
			Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
				itemID, err := requireStr(input, "item_id")
				if err != nil {
					return nil, err
				}
				if _, err := c.DeleteShoppingItem(ctx, itemID); err != nil {
					return nil, err
				}
				return deletedResult("id", itemID), nil
			},
		},
	}
}
