package mealie

import (
	"context"
	"net/http"
	"net/url"
)

// GetUnits returns a page of the canonical units registry.
func (c *Client) GetUnits(ctx context.Context, page, perPage int) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/units", pageQuery(page, perPage), nil)
}

// GetUnit returns a unit by id.
func (c *Client) GetUnit(ctx context.Context, unitID string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/api/units/"+url.PathEscape(unitID), nil, nil)
}

// CreateUnit adds a unit to the registry. Fraction controls whether amounts
// in this unit display as fractions.
func (c *Client) CreateUnit(ctx context.Context, name, abbreviation, description string, fraction bool) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/units", nil, map[string]any{
		"name":         name,
		"abbreviation": abbreviation,
		"description":  description,
		"fraction":     fraction,
	})
}

// UpdateUnit replaces a unit. Callers fetch, modify and send the full object.
func (c *Client) UpdateUnit(ctx context.Context, unitID string, data map[string]any) (map[string]any, error) {
	return c.object(ctx, http.MethodPut, "/api/units/"+url.PathEscape(unitID), nil, data)
}

// DeleteUnit removes a unit from the registry.
func (c *Client) DeleteUnit(ctx context.Context, unitID string) (map[string]any, error) {
	return c.object(ctx, http.MethodDelete, "/api/units/"+url.PathEscape(unitID), nil, nil)
}

// MergeUnits folds fromUnit into toUnit, repointing every reference.
func (c *Client) MergeUnits(ctx context.Context, fromUnitID, toUnitID string) (map[string]any, error) {
	return c.object(ctx, http.MethodPut, "/api/units/merge", nil, map[string]any{
		"fromUnit": fromUnitID,
		"toUnit":   toUnitID,
	})
}
