package mealie

import (
	"context"
	"net/http"
	"net/url"
)

// GetFoods returns a page of the canonical foods registry. Search is the
// backend's fuzzy food search.
func (c *Client) GetFoods(ctx context.Context, page, perPage int, search string) (map[string]any, error) {
	q := pageQuery(page, perPage)
	if search != "" {
		q.Set("search", search)
	}
	return c.object(ctx, http.MethodGet, "/api/foods", q, nil)
}

// GetFood returns a food by id.
func (c *Client) GetFood(ctx context.Context, foodID string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/foods/"+url.PathEscape(foodID), nil, nil)
}

// CreateFood adds a food to the registry. The label is optional.
func (c *Client) CreateFood(ctx context.Context, name, description, labelID string) (map[string]any, error) {
	data := map[string]any{
		"name":        name,
		"description": description,
	}
	if labelID != "" {
		data["labelId"] = labelID
	}
	return c.object(ctx, http.MethodPost, "/api/foods", nil, data)
}

// UpdateFood replaces a food. Callers fetch, modify and send the full object.
func (c *Client) UpdateFood(ctx context.Context, foodID string, data map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPut, "/api/foods/"+url.PathEscape(foodID), nil, data)
}

// DeleteFood removes a food from the registry.
func (c *Client) DeleteFood(ctx context.Context, foodID string) (map[string]any, error) {
	return c.object(ctx, http.MethodDelete, "/api/foods/"+url.PathEscape(foodID), nil, nil)
}

// MergeFoods folds fromFood into toFood, repointing every reference.
func (c *Client) MergeFoods(ctx context.Context, fromFoodID, toFoodID string) (map[string]any, error) {
	return c.object(ctx, http.MethodPut, "/api/foods/merge", nil, map[string]any{
		"fromFood": fromFoodID,
		"toFood":   toFoodID,
	})
}
