package mealie

import (
	"context"
	"net/http"
	"net/url"
)

// GetLabels returns a page of multi-purpose labels.
func (c *Client) GetLabels(ctx context.Context, page, perPage int) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/groups/labels", pageQuery(page, perPage), nil)
}

// GetLabel returns a label by id.
func (c *Client) GetLabel(ctx context.Context, labelID string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/groups/labels/"+url.PathEscape(labelID), nil, nil)
}

// CreateLabel creates a label with a display color.
func (c *Client) CreateLabel(ctx context.Context, name, color string) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/groups/labels", nil, map[string]any{
		"name":  name,
		"color": color,
	})
}

// UpdateLabel replaces a label. Callers fetch, modify and send the full
// object.
func (c *Client) UpdateLabel(ctx context.Context, labelID string, data map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPut, "/api/groups/labels/"+url.PathEscape(labelID), nil, data)
}

// DeleteLabel deletes a label.
func (c *Client) DeleteLabel(ctx context.Context, labelID string) (map[string]any, error) {
	return c.object(ctx, http.MethodDelete, "/api/groups/labels/"+url.PathEscape(labelID), nil, nil)
}
