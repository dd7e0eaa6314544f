package mealie

import (
	"context"
	"net/http"
)

// ParseIngredient runs one free-text ingredient line through the backend's
// ingredient parser. The parser is a pure function of its input: the same
// text always produces the same request, and the backend is expected to
// answer deterministically.
func (c *Client) ParseIngredient(ctx context.Context, text string) (map[string]any, error) {
	return c.object(ctx, http.MethodPost, "/api/parser/ingredient", nil, map[string]any{
		"ingredient": text,
	})
}

// ParseIngredients parses a batch of ingredient lines in one call. The
// result array is index-aligned with the input.
func (c *Client) ParseIngredients(ctx context.Context, texts []string) ([]map[string]any, error) {
	return c.objects(ctx, http.MethodPost, "/api/parser/ingredients", nil, map[string]any{
		"ingredients": texts,
	})
}
