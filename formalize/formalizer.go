// Package formalize reconciles a recipe's free-text ingredient lines against
// the canonical foods and units registries. Each line is run through the
// backend parser, the parsed food and unit are matched (or optionally
// created), and the structured fields are written back. Matches commit only
// when unambiguous; everything else lands in the report instead of the
// recipe.
package formalize

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"mealiemcp/mealie"
)

const (
	registryPageSize = 250
	searchPageSize   = 25
)

// Request selects a recipe and the write policy for one formalization run.
type Request struct {
	Slug               string
	CreateMissingFoods bool
	CreateMissingUnits bool
	LinkStepReferences bool
}

const (
	StatusOK            = "ok"
	StatusPartial       = "partial"
	StatusNoIngredients = "no-ingredients"
)

const (
	ReasonNoMatch   = "no-match"
	ReasonAmbiguous = "ambiguous"
)

// Report is the outcome of a run. Status is "partial" when any ingredient
// stayed unresolved; skipped step links alone do not demote a run, skipping
// is the designed outcome for ambiguous step text.
type Report struct {
	Slug               string        `json:"slug"`
	Status             string        `json:"status"`
	UpdatedIngredients int           `json:"updated_ingredients"`
	CreatedFoods       []string      `json:"created_foods"`
	CreatedUnits       []string      `json:"created_units"`
	LinkedSteps        int           `json:"linked_steps"`
	Links              []StepLink    `json:"links,omitempty"`
	SkippedLinks       []SkippedLink `json:"skipped_links,omitempty"`
	Unresolved         []Unresolved  `json:"unresolved,omitempty"`
}

// StepLink records one committed ingredient-to-step reference.
type StepLink struct {
	Ingredient string `json:"ingredient"`
	Step       int    `json:"step"`
}

// SkippedLink records an ingredient left unlinked. For ambiguous skips Steps
// carries the candidate step indexes.
type SkippedLink struct {
	Ingredient string `json:"ingredient"`
	Reason     string `json:"reason"`
	Steps      []int  `json:"steps,omitempty"`
}

// Unresolved records an ingredient whose food or unit could not be committed.
type Unresolved struct {
	Text   string `json:"text"`
	Field  string `json:"field"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Formalizer runs ingredient formalization against one backend client.
type Formalizer struct {
	client *mealie.Client
}

func New(client *mealie.Client) *Formalizer {
	return &Formalizer{client: client}
}

// Formalize fetches the recipe, parses its ingredient lines, resolves foods
// and units, writes the structured ingredients back and optionally links
// them to instruction steps. Fetch and write failures are call errors;
// per-ingredient misses are reported, not fatal.
func (f *Formalizer) Formalize(ctx context.Context, req Request) (*Report, error) {
	slog.Info("FORMALIZE: Starting run",
		"slug", req.Slug,
		"create_foods", req.CreateMissingFoods,
		"create_units", req.CreateMissingUnits,
		"link_steps", req.LinkStepReferences)

	recipe, err := f.client.GetRecipe(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("fetch recipe: %w", err)
	}

	report := &Report{
		Slug:         req.Slug,
		CreatedFoods: []string{},
		CreatedUnits: []string{},
	}

	ingredients := getMaps(recipe, "recipeIngredient")
	if len(ingredients) == 0 {
		report.Status = StatusNoIngredients
		return report, nil
	}

	texts := make([]string, len(ingredients))
	for i, ing := range ingredients {
		text := getStr(ing, "note")
		if text == "" {
			text = getStr(ing, "display")
		}
		if text == "" {
			text = getStr(ing, "originalText")
		}
		texts[i] = text
	}

	parsed, err := f.client.ParseIngredients(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("parse ingredients: %w", err)
	}
	slog.Info("FORMALIZE: Parsed ingredient lines", "slug", req.Slug, "count", len(parsed))

	foodsPage, err := f.client.GetFoods(ctx, 1, registryPageSize, "")
	if err != nil {
		return nil, fmt.Errorf("load foods registry: %w", err)
	}
	unitsPage, err := f.client.GetUnits(ctx, 1, registryPageSize)
	if err != nil {
		return nil, fmt.Errorf("load units registry: %w", err)
	}
	foods := foodRegistry(foodsPage)
	units := unitRegistry(unitsPage)

	updated := make([]map[string]any, 0, len(ingredients))
	var tokens []refToken

	for i, original := range ingredients {
		// Shallow copy: only top-level fields are set, everything else the
		// backend stored on the ingredient rides along untouched.
		ing := maps.Clone(original)

		var parsedIng map[string]any
		if i < len(parsed) {
			parsedIng = getMap(parsed[i], "ingredient")
		}

		if q, ok := parsedIng["quantity"]; ok && q != nil {
			ing["quantity"] = q
		}
		if note := getStr(parsedIng, "note"); note != "" {
			ing["note"] = note
		}

		if err := f.resolveFood(ctx, req, ing, parsedIng, texts[i], foods, report); err != nil {
			return nil, err
		}
		if err := f.resolveUnit(ctx, req, ing, parsedIng, texts[i], units, report); err != nil {
			return nil, err
		}

		updated = append(updated, ing)

		token := normalize(getStr(getMap(ing, "food"), "name"))
		if token == "" {
			token = normalize(getStr(ing, "note"))
		}
		if refID := getStr(ing, "referenceId"); refID != "" && token != "" {
			tokens = append(tokens, refToken{token: token, refID: refID})
		}
	}

	if _, err := f.client.PatchRecipe(ctx, req.Slug, map[string]any{"recipeIngredient": updated}); err != nil {
		return nil, fmt.Errorf("write formalized ingredients: %w", err)
	}
	report.UpdatedIngredients = len(updated)
	slog.Info("FORMALIZE: Wrote formalized ingredients",
		"slug", req.Slug,
		"count", len(updated),
		"created_foods", len(report.CreatedFoods),
		"created_units", len(report.CreatedUnits))

	if req.LinkStepReferences {
		if err := f.linkSteps(ctx, req.Slug, tokens, report); err != nil {
			return nil, err
		}
	}

	report.Status = StatusOK
	if len(report.Unresolved) > 0 {
		report.Status = StatusPartial
	}
	slog.Info("FORMALIZE: Run complete",
		"slug", req.Slug,
		"status", report.Status,
		"linked_steps", report.LinkedSteps,
		"skipped_links", len(report.SkippedLinks),
		"unresolved", len(report.Unresolved))
	return report, nil
}

// resolveFood matches the parsed food name against the registry and sets
// foodId/food on the ingredient. Cache miss falls back to a backend search;
// a still-missing food is created only when the request allows it. An
// ambiguous name is never committed and never force-created.
func (f *Formalizer) resolveFood(ctx context.Context, req Request, ing, parsedIng map[string]any, source string, foods *registry, report *Report) error {
	name := getStr(getMap(parsedIng, "food"), "name")
	if normalize(name) == "" {
		return nil
	}

	item, ok, ambiguous := foods.resolve(name)

	if !ok && !ambiguous {
		page, err := f.client.GetFoods(ctx, 1, searchPageSize, name)
		if err != nil {
			return fmt.Errorf("search food %q: %w", name, err)
		}
		item, ok, ambiguous = exactMatch(getMaps(page, "items"), name)
	}

	if !ok && !ambiguous && req.CreateMissingFoods {
		created, err := f.client.CreateFood(ctx, name, "", "")
		if err != nil {
			return fmt.Errorf("create food %q: %w", name, err)
		}
		foods.add(getStr(created, "name"), rankName, created)
		report.CreatedFoods = append(report.CreatedFoods, name)
		slog.Info("FORMALIZE: Created missing food", "name", name)
		item, ok = created, true
	}

	if ok && getStr(item, "id") != "" {
		ing["foodId"] = item["id"]
		ing["food"] = map[string]any{"id": item["id"], "name": item["name"]}
		return nil
	}

	reason := ReasonNoMatch
	if ambiguous {
		reason = ReasonAmbiguous
	}
	report.Unresolved = append(report.Unresolved, Unresolved{Text: source, Field: "food", Name: name, Reason: reason})
	return nil
}

// resolveUnit matches the parsed unit by name or abbreviation and sets
// unitId/unit on the ingredient. Units have no search route; a miss is
// created only when the request allows it and the parser produced a name.
func (f *Formalizer) resolveUnit(ctx context.Context, req Request, ing, parsedIng map[string]any, source string, units *registry, report *Report) error {
	pUnit := getMap(parsedIng, "unit")
	name := getStr(pUnit, "name")
	abbr := getStr(pUnit, "abbreviation")
	key := name
	if normalize(key) == "" {
		key = abbr
	}
	if normalize(key) == "" {
		return nil
	}

	item, ok, ambiguous := units.resolve(key)

	if !ok && !ambiguous && normalize(name) != "" && req.CreateMissingUnits {
		created, err := f.client.CreateUnit(ctx, name, abbr, "", true)
		if err != nil {
			return fmt.Errorf("create unit %q: %w", name, err)
		}
		units.add(getStr(created, "name"), rankName, created)
		units.add(getStr(created, "abbreviation"), rankPlural, created)
		report.CreatedUnits = append(report.CreatedUnits, name)
		slog.Info("FORMALIZE: Created missing unit", "name", name)
		item, ok = created, true
	}

	if ok && getStr(item, "id") != "" {
		ing["unitId"] = item["id"]
		ing["unit"] = map[string]any{
			"id":           item["id"],
			"name":         item["name"],
			"abbreviation": item["abbreviation"],
		}
		return nil
	}

	reason := ReasonNoMatch
	if ambiguous {
		reason = ReasonAmbiguous
	}
	report.Unresolved = append(report.Unresolved, Unresolved{Text: source, Field: "unit", Name: key, Reason: reason})
	return nil
}

// exactMatch scans search results for entries whose name normalizes to the
// searched name. One hit resolves; several distinct hits are ambiguous.
func exactMatch(items []map[string]any, name string) (map[string]any, bool, bool) {
	key := normalize(name)
	seen := map[string]bool{}
	var found []map[string]any
	for _, it := range items {
		if normalize(getStr(it, "name")) != key {
			continue
		}
		id := getStr(it, "id")
		if id == "" {
			id = getStr(it, "name")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		found = append(found, it)
	}
	switch len(found) {
	case 0:
		return nil, false, false
	case 1:
		return found[0], true, false
	default:
		return nil, false, true
	}
}
