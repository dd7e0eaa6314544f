package mealie

import (
	"context"
	"net/http"
	"net/url"
)

// GetShoppingLists returns a page of shopping lists.
func (c *Client) GetShoppingLists(ctx context.Context, page, perPage int) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/households/shopping/lists", pageQuery(page, perPage), nil)
}

// GetShoppingList returns a shopping list with its items.
func (c *Client) GetShoppingList(ctx context.Context, listID string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/households/shopping/lists/"+url.PathEscape(listID), nil, nil)
}

// CreateShoppingList creates a named shopping list.
func (c *Client) CreateShoppingList(ctx context.Context, name string) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/households/shopping/lists", nil, map[string]any{
		"name": name,
	})
}

// UpdateShoppingList replaces a shopping list. The backend expects the full
// object, so callers fetch, modify and send it back.
func (c *Client) UpdateShoppingList(ctx context.Context, listID string, data map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPut, "/api/households/shopping/lists/"+url.PathEscape(listID), nil, data)
}

// DeleteShoppingList deletes a shopping list.
func (c *Client) DeleteShoppingList(ctx context.Context, listID string) (map[string]any, error) {
	return c.object(ctx, http.MethodDelete, "/api/households/shopping/lists/"+url.PathEscape(listID), nil, nil)
}

// AddRecipeToShoppingList adds all of a recipe's ingredients to a list,
// multiplied by scale. The route takes a list of recipe references.
func (c *Client) AddRecipeToShoppingList(ctx context.Context, listID, recipeID string, scale float64) (map[string]any, error) {
	path := "/api/households/shopping/lists/" + url.PathEscape(listID) + "/recipe"
	return c.object(ctx, http.MethodPost, path, nil, []map[string]any{
		{"recipeId": recipeID, "scale": scale},
	})
}

// RemoveRecipeFromShoppingList removes a recipe's ingredients from a list.
func (c *Client) RemoveRecipeFromShoppingList(ctx context.Context, listID, recipeID string) (map[string]any, error) {
	path := "/api/households/shopping/lists/" + url.PathEscape(listID) + "/recipe/" + url.PathEscape(recipeID) + "/delete"
	return c.object(ctx, http.MethodPost, path, nil, nil)
}

// ShoppingItemListParams are the query parameters for the shopping item
// listing route. QueryFilter is passed through verbatim, e.g.
// `shoppingListId="..."`.
type ShoppingItemListParams struct {
	Page        int
	PerPage     int
	OrderBy     string
	QueryFilter string
}

// GetShoppingItems returns a page of shopping items across lists.
func (c *Client) GetShoppingItems(ctx context.Context, p ShoppingItemListParams) (map[string]any, error) {
	q := pageQuery(p.Page, p.PerPage)
	if p.OrderBy != "" {
		q.Set("orderBy", p.OrderBy)
	}
	if p.QueryFilter != "" {
		q.Set("queryFilter", p.QueryFilter)
	}
	return c.object(ctx, http.MethodGet, "/api/households/shopping/items", q, nil)
}

// GetShoppingItem returns a shopping item by id.
func (c *Client) GetShoppingItem(ctx context.Context, itemID string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/households/shopping/items/"+url.PathEscape(itemID), nil, nil)
}

// ShoppingItemParams describe a new shopping item. Unit and Food are plain
// names; the backend resolves or embeds them.
type ShoppingItemParams struct {
	ShoppingListID string
	Note           string
	Quantity       float64
	Unit           string
	Food           string
	Checked        bool
}

// AddShoppingItem adds one item to a list. The backend answers with a
// change-set wrapper (createdItems/updatedItems/deletedItems).
func (c *Client) AddShoppingItem(ctx context.Context, p ShoppingItemParams) (map[string]any, error) {
	data := map[string]any{
		"shoppingListId": p.ShoppingListID,
		"note":           p.Note,
		"quantity":       p.Quantity,
		"checked":        p.Checked,
	}
	if p.Unit != "" {
		data["unit"] = map[string]any{"name": p.Unit}
	}
	if p.Food != "" {
		data["food"] = map[string]any{"name": p.Food}
	}
	return c.object(ctx, http.MethodPost, "/api/households/shopping/items", nil, data)
}

// AddShoppingItemsBulk adds multiple items in one call. Each item is sent to
// the backend as given.
func (c *Client) AddShoppingItemsBulk(ctx context.Context, items []map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/households/shopping/items/create-bulk", nil, items)
}

// UpdateShoppingItem replaces a shopping item. As with lists, the backend
// expects the full object.
func (c *Client) UpdateShoppingItem(ctx context.Context, itemID string, data map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPut, "/api/households/shopping/items/"+url.PathEscape(itemID), nil, data)
}

// DeleteShoppingItem deletes a shopping item.
func (c *Client) DeleteShoppingItem(ctx context.Context, itemID string) (map[string]any, error) {
	return c.object(ctx, http.MethodDelete, "/api/households/shopping/items/"+url.PathEscape(itemID), nil, nil)
}
