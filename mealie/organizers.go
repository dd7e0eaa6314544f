package mealie

import (
	"context"
	"net/http"
	"net/url"
)

// The three organizer kinds (categories, tags, kitchen tools) share one route
// shape under /api/organizers; the per-kind methods below fan into these.

func (c *Client) listOrganizers(ctx context.Context, kind string, page, perPage int) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/organizers/"+kind, pageQuery(page, perPage), nil)
}

func (c *Client) getOrganizer(ctx context.Context, kind, id string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/organizers/"+kind+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) getOrganizerBySlug(ctx context.Context, kind, slug string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/organizers/"+kind+"/slug/"+url.PathEscape(slug), nil, nil)
}

func (c *Client) createOrganizer(ctx context.Context, kind, name string) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/organizers/"+kind, nil, map[string]any{"name": name})
}

func (c *Client) updateOrganizer(ctx context.Context, kind, id string, data map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPut, "/api/organizers/"+kind+"/"+url.PathEscape(id), nil, data)
}

func (c *Client) deleteOrganizer(ctx context.Context, kind, id string) (map[string]any, error) {
	return c.object(ctx, http.MethodDelete, "/api/organizers/"+kind+"/"+url.PathEscape(id), nil, nil)
}

// Categories

func (c *Client) GetCategories(ctx context.Context, page, perPage int) (map[string]any, error) {
	return c.listOrganizers(ctx, "categories", page, perPage)
}

func (c *Client) GetCategory(ctx context.Context, categoryID string) (map[string]any, error) {
	return c.getOrganizer(ctx, "categories", categoryID)
}

func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (map[string]any, error) {
	return c.getOrganizerBySlug(ctx, "categories", slug)
}

// GetEmptyCategories returns categories no recipe references. The route
// answers with a bare array.
func (c *Client) GetEmptyCategories(ctx context.Context) ([]map[string]any, error) {
	return c.objects(ctx, http.MethodGet, "/api/organizers/categories/empty", nil, nil)
}

func (c *Client) CreateCategory(ctx context.Context, name string) (map[string]any, error) {
	return c.createOrganizer(ctx, "categories", name)
}

func (c *Client) UpdateCategory(ctx context.Context, categoryID string, data map[string]any) (map[string]any, error) {
	return c.updateOrganizer(ctx, "categories", categoryID, data)
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID string) (map[string]any, error) {
	return c.deleteOrganizer(ctx, "categories", categoryID)
}

// Tags

func (c *Client) GetTags(ctx context.Context, page, perPage int) (map[string]any, error) {
	return c.listOrganizers(ctx, "tags", page, perPage)
}

func (c *Client) GetTag(ctx context.Context, tagID string) (map[string]any, error) {
	return c.getOrganizer(ctx, "tags", tagID)
}

func (c *Client) GetTagBySlug(ctx context.Context, slug string) (map[string]any, error) {
	return c.getOrganizerBySlug(ctx, "tags", slug)
}

// GetEmptyTags returns tags no recipe references.
func (c *Client) GetEmptyTags(ctx context.Context) ([]map[string]any, error) {
	return c.objects(ctx, http.MethodGet, "/api/organizers/tags/empty", nil, nil)
}

func (c *Client) CreateTag(ctx context.Context, name string) (map[string]any, error) {
	return c.createOrganizer(ctx, "tags", name)
}

func (c *Client) UpdateTag(ctx context.Context, tagID string, data map[string]any) (map[string]any, error) {
	return c.updateOrganizer(ctx, "tags", tagID, data)
}

func (c *Client) DeleteTag(ctx context.Context, tagID string) (map[string]any, error) {
	return c.deleteOrganizer(ctx, "tags", tagID)
}

// Kitchen tools (equipment)

func (c *Client) GetTools(ctx context.Context, page, perPage int) (map[string]any, error) {
	return c.listOrganizers(ctx, "tools", page, perPage)
}

func (c *Client) GetTool(ctx context.Context, toolID string) (map[string]any, error) {
	return c.getOrganizer(ctx, "tools", toolID)
}

func (c *Client) GetToolBySlug(ctx context.Context, slug string) (map[string]any, error) {
	return c.getOrganizerBySlug(ctx, "tools", slug)
}

func (c *Client) CreateTool(ctx context.Context, name string) (map[string]any, error) {
	return c.createOrganizer(ctx, "tools", name)
}

func (c *Client) UpdateTool(ctx context.Context, toolID string, data map[string]any) (map[string]any, error) {
	return c.updateOrganizer(ctx, "tools", toolID, data)
}

func (c *Client) DeleteTool(ctx context.Context, toolID string) (map[string]any, error) {
	return c.deleteOrganizer(ctx, "tools", toolID)
}
