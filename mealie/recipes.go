package mealie

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// RecipeListParams are the query parameters accepted by the recipe listing
// route. Zero values are left off the request.
type RecipeListParams struct {
	Page           int
	PerPage        int
	Search         string
	OrderBy        string
	OrderDirection string
	Categories     []string
	Tags           []string
}

// GetRecipes returns a page of recipes.
func (c *Client) GetRecipes(ctx context.Context, p RecipeListParams) (map[string]any, error) {
	q := pageQuery(p.Page, p.PerPage)
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.OrderBy != "" {
		q.Set("orderBy", p.OrderBy)
	}
	if p.OrderDirection != "" {
		q.Set("orderDirection", p.OrderDirection)
	}
	for _, cat := range p.Categories {
		q.Add("categories", cat)
	}
	for _, tag := range p.Tags {
		q.Add("tags", tag)
	}
	return c.object(ctx, http.MethodGet, "/api/recipes", q, nil)
}

// GetRecipe returns a single recipe by slug or id.
func (c *Client) GetRecipe(ctx context.Context, slug string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/recipes/"+url.PathEscape(slug), nil, nil)
}

// CreateRecipe creates a recipe and returns its slug. Name is the only field
// the route requires; everything else is set via update or patch.
func (c *Client) CreateRecipe(ctx context.Context, data map[string]any) (string, error) {
	return c.text(ctx, http.MethodPost, "/api/recipes", nil, data)
}

// UpdateRecipe replaces a recipe.
func (c *Client) UpdateRecipe(ctx context.Context, slug string, data map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPut, "/api/recipes/"+url.PathEscape(slug), nil, data)
}

// PatchRecipe partially updates a recipe.
func (c *Client) PatchRecipe(ctx context.Context, slug string, data map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPatch, "/api/recipes/"+url.PathEscape(slug), nil, data)
}

// DeleteRecipe deletes a recipe. The backend echoes the deleted recipe back.
func (c *Client) DeleteRecipe(ctx context.Context, slug string) (map[string]any, error) {
	return c.object(ctx, http.MethodDelete, "/api/recipes/"+url.PathEscape(slug), nil, nil)
}

// ImportRecipeFromURL scrapes and imports a recipe, returning the new slug.
func (c *Client) ImportRecipeFromURL(ctx context.Context, recipeURL string, includeTags bool) (string, error) {
	return c.text(ctx, http.MethodPost, "/api/recipes/create/url", nil, map[string]any{
		"url":         recipeURL,
		"includeTags": includeTags,
	})
}

// TestScrapeURL scrapes a URL without importing it, returning the recipe data
// the importer would have used.
func (c *Client) TestScrapeURL(ctx context.Context, recipeURL string) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/recipes/test-scrape-url", nil, map[string]any{
		"url": recipeURL,
	})
}

// DuplicateRecipe duplicates a recipe and returns the duplicate's slug.
// Depending on the backend build the route answers with either a bare slug
// string or the full recipe object; both are handled. Some builds also reject
// a missing body, so an empty object is always sent.
func (c *Client) DuplicateRecipe(ctx context.Context, slug string) (string, error) {
	path := "/api/recipes/" + url.PathEscape(slug) + "/duplicate"
	data, err := c.do(ctx, http.MethodPost, path, nil, map[string]any{})
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err == nil {
		if s, ok := obj["slug"].(string); ok && s != "" {
			return s, nil
		}
	}
	return "", fmt.Errorf("POST %s: response carries no slug", path)
}

// SetRecipeLastMade records when a recipe was last made. The date is a plain
// YYYY-MM-DD string.
func (c *Client) SetRecipeLastMade(ctx context.Context, slug, date string) (map[string]any, error) {
	return c.object(ctx, http.MethodPatch, "/api/recipes/"+url.PathEscape(slug)+"/last-made", nil, map[string]any{
		"timestamp": date,
	})
}

// GetRecipeSuggestions returns recipe suggestions based on foods and tools on
// hand.
func (c *Client) GetRecipeSuggestions(ctx context.Context) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/recipes/suggestions", nil, nil)
}

// BulkTagRecipes adds tags to multiple recipes at once.
func (c *Client) BulkTagRecipes(ctx context.Context, recipeIDs []string, tags []map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/recipes/bulk-actions/tag", nil, map[string]any{
		"recipes": recipeIDs,
		"tags":    tags,
	})
}

// BulkCategorizeRecipes adds categories to multiple recipes at once.
func (c *Client) BulkCategorizeRecipes(ctx context.Context, recipeIDs []string, categories []map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/recipes/bulk-actions/categorize", nil, map[string]any{
		"recipes":    recipeIDs,
		"categories": categories,
	})
}

// BulkDeleteRecipes deletes multiple recipes at once.
func (c *Client) BulkDeleteRecipes(ctx context.Context, recipeIDs []string) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/recipes/bulk-actions/delete", nil, map[string]any{
		"recipes": recipeIDs,
	})
}

// BulkExportRecipes kicks off an export of multiple recipes.
func (c *Client) BulkExportRecipes(ctx context.Context, recipeIDs []string) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/recipes/bulk-actions/export", nil, map[string]any{
		"recipeIds": recipeIDs,
	})
}

// BulkUpdateRecipeSettings updates settings across multiple recipes.
func (c *Client) BulkUpdateRecipeSettings(ctx context.Context, recipeIDs []string, settings map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/recipes/bulk-actions/settings", nil, map[string]any{
		"recipeIds": recipeIDs,
		"settings":  settings,
	})
}
