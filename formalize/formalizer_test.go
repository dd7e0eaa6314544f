package formalize_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"

	"mealiemcp/formalize"
	"mealiemcp/mealie"
)

const baseURL = "http://mealie.test"

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func newFormalizer() *formalize.Formalizer {
	return formalize.New(mealie.New(baseURL, "test-token", nil))
}

func pastaRecipe() map[string]any {
	return map[string]any{
		"id":   "r-1",
		"slug": "garlic-butter-pasta",
		"name": "Garlic Butter Pasta",
		"recipeIngredient": []any{
			map[string]any{"referenceId": "ref-1", "note": "2 cloves garlic, minced", "title": "For the sauce"},
			map[string]any{"referenceId": "ref-2", "note": "1 tbsp butter"},
			map[string]any{"referenceId": "ref-3", "note": "sea salt"},
		},
		"recipeInstructions": []any{
			map[string]any{"id": "s-1", "text": "Melt the butter in a wide pan.", "ingredientReferences": []any{}},
			map[string]any{"id": "s-2", "text": "Add the garlic and cook until fragrant.", "ingredientReferences": []any{}},
			map[string]any{"id": "s-3", "text": "Season with sea salt and serve."},
		},
	}
}

func pastaParsedLines() []any {
	return []any{
		map[string]any{"input": "2 cloves garlic, minced", "ingredient": map[string]any{
			"quantity": 2,
			"note":     "minced",
			"food":     map[string]any{"name": "garlic"},
			"unit":     map[string]any{"name": "clove"},
		}},
		map[string]any{"input": "1 tbsp butter", "ingredient": map[string]any{
			"quantity": 1,
			"food":     map[string]any{"name": "butter"},
			"unit":     map[string]any{"name": "tablespoon", "abbreviation": "tbsp"},
		}},
		map[string]any{"input": "sea salt", "ingredient": map[string]any{
			"food": map[string]any{"name": "sea salt"},
		}},
	}
}

func registerRegistryPages(foods, units []any) {
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/foods?page=1&perPage=250",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"items": foods}))
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/units?page=1&perPage=250",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"items": units}))
}

func capturePatches(t *testing.T, slug string, patches *[]map[string]any) {
	t.Helper()
	httpmock.RegisterResponder(http.MethodPatch, baseURL+"/api/recipes/"+slug,
		func(req *http.Request) (*http.Response, error) {
			var body map[string]any
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				return nil, err
			}
			*patches = append(*patches, body)
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"slug": slug})
		})
}

func asMaps(t *testing.T, v any) []map[string]any {
	t.Helper()
	raw, ok := v.([]any)
	must.True(t, ok, "expected a JSON array, got %T", v)
	out := make([]map[string]any, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		must.True(t, ok, "expected a JSON object at %d, got %T", i, item)
		out[i] = m
	}
	return out
}

func TestFormalizer_FullRun(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/recipes/garlic-butter-pasta",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, pastaRecipe()))
	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/parser/ingredients",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, pastaParsedLines()))
	registerRegistryPages(
		[]any{
			map[string]any{"id": "f-garlic", "name": "garlic", "pluralName": "garlics"},
			map[string]any{"id": "f-butter", "name": "butter"},
		},
		[]any{
			map[string]any{"id": "u-tbsp", "name": "tablespoon", "pluralName": "tablespoons", "abbreviation": "tbsp"},
		},
	)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/foods?page=1&perPage=25&search=sea+salt",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"items": []any{}}))
	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/foods",
		httpmock.NewJsonResponderOrPanic(http.StatusCreated, map[string]any{"id": "f-salt", "name": "sea salt"}))
	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/units",
		httpmock.NewJsonResponderOrPanic(http.StatusCreated, map[string]any{"id": "u-clove", "name": "clove", "abbreviation": ""}))

	var patches []map[string]any
	capturePatches(t, "garlic-butter-pasta", &patches)

	report, err := newFormalizer().Formalize(context.Background(), formalize.Request{
		Slug:               "garlic-butter-pasta",
		CreateMissingFoods: true,
		CreateMissingUnits: true,
		LinkStepReferences: true,
	})
	must.NoError(t, err)

	should.Equal(t, formalize.StatusOK, report.Status)
	should.Equal(t, 3, report.UpdatedIngredients)
	should.Equal(t, []string{"sea salt"}, report.CreatedFoods)
	should.Equal(t, []string{"clove"}, report.CreatedUnits)
	should.Equal(t, 3, report.LinkedSteps)
	should.Equal(t, []formalize.StepLink{
		{Ingredient: "garlic", Step: 1},
		{Ingredient: "butter", Step: 0},
		{Ingredient: "sea salt", Step: 2},
	}, report.Links)
	should.Empty(t, report.SkippedLinks)
	should.Empty(t, report.Unresolved)

	calls := httpmock.GetCallCountInfo()
	should.Equal(t, 1, calls["POST "+baseURL+"/api/parser/ingredients"], "ingredient lines should parse in one batch call")
	should.Equal(t, 2, calls["GET "+baseURL+"/api/recipes/garlic-butter-pasta"])

	must.Len(t, patches, 2)

	ings := asMaps(t, patches[0]["recipeIngredient"])
	must.Len(t, ings, 3)
	should.Equal(t, "f-garlic", ings[0]["foodId"])
	should.Equal(t, "u-clove", ings[0]["unitId"])
	should.EqualValues(t, 2, ings[0]["quantity"])
	should.Equal(t, "minced", ings[0]["note"])
	should.Equal(t, "For the sauce", ings[0]["title"], "fields outside the formalized set should ride along")
	should.Equal(t, "f-butter", ings[1]["foodId"])
	should.Equal(t, map[string]any{"id": "u-tbsp", "name": "tablespoon", "abbreviation": "tbsp"}, ings[1]["unit"])
	should.Equal(t, "f-salt", ings[2]["foodId"])
	should.NotContains(t, ings[2], "unitId")

	steps := asMaps(t, patches[1]["recipeInstructions"])
	must.Len(t, steps, 3)
	should.Equal(t, []any{map[string]any{"referenceId": "ref-2"}}, steps[0]["ingredientReferences"])
	should.Equal(t, []any{map[string]any{"referenceId": "ref-1"}}, steps[1]["ingredientReferences"])
	should.Equal(t, []any{map[string]any{"referenceId": "ref-3"}}, steps[2]["ingredientReferences"])
}

func TestFormalizer_NoCreateFlags_ReportsUnresolved(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/recipes/garlic-butter-pasta",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, pastaRecipe()))
	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/parser/ingredients",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, pastaParsedLines()))
	registerRegistryPages(
		[]any{
			map[string]any{"id": "f-garlic", "name": "garlic"},
			map[string]any{"id": "f-butter", "name": "butter"},
		},
		[]any{
			map[string]any{"id": "u-tbsp", "name": "tablespoon", "abbreviation": "tbsp"},
		},
	)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/foods?page=1&perPage=25&search=sea+salt",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"items": []any{}}))

	var patches []map[string]any
	capturePatches(t, "garlic-butter-pasta", &patches)

	report, err := newFormalizer().Formalize(context.Background(), formalize.Request{Slug: "garlic-butter-pasta"})
	must.NoError(t, err)

	should.Equal(t, formalize.StatusPartial, report.Status)
	should.Empty(t, report.CreatedFoods)
	should.Empty(t, report.CreatedUnits)
	must.Len(t, report.Unresolved, 2)
	should.Equal(t, formalize.Unresolved{Text: "2 cloves garlic, minced", Field: "unit", Name: "clove", Reason: formalize.ReasonNoMatch}, report.Unresolved[0])
	should.Equal(t, formalize.Unresolved{Text: "sea salt", Field: "food", Name: "sea salt", Reason: formalize.ReasonNoMatch}, report.Unresolved[1])

	calls := httpmock.GetCallCountInfo()
	should.Zero(t, calls["POST "+baseURL+"/api/foods"], "missing foods must not be created without the flag")
	should.Zero(t, calls["POST "+baseURL+"/api/units"], "missing units must not be created without the flag")
	should.Equal(t, 1, calls["GET "+baseURL+"/api/recipes/garlic-butter-pasta"], "no refetch when linking is off")

	must.Len(t, patches, 1)
	ings := asMaps(t, patches[0]["recipeIngredient"])
	must.Len(t, ings, 3)
	should.Equal(t, "f-garlic", ings[0]["foodId"])
	should.NotContains(t, ings[0], "unitId")
	should.NotContains(t, ings[2], "foodId")
}

func TestFormalizer_StepMentions_SingleCandidateRule(t *testing.T) {
	setupHTTPMock(t)

	recipe := map[string]any{
		"slug": "brown-butter",
		"recipeIngredient": []any{
			map[string]any{"referenceId": "ref-b", "note": "4 tbsp butter"},
			map[string]any{"referenceId": "ref-s", "note": "saffron threads"},
		},
		"recipeInstructions": []any{
			map[string]any{"id": "s-1", "text": "Melt the butter over low heat."},
			map[string]any{"id": "s-2", "text": "Whisk the browned butter into the batter."},
		},
	}
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/recipes/brown-butter",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, recipe))
	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/parser/ingredients",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, []any{
			map[string]any{"ingredient": map[string]any{
				"quantity": 4,
				"food":     map[string]any{"name": "butter"},
				"unit":     map[string]any{"name": "tablespoon", "abbreviation": "tbsp"},
			}},
			map[string]any{"ingredient": map[string]any{
				"food": map[string]any{"name": "saffron"},
			}},
		}))
	registerRegistryPages(
		[]any{
			map[string]any{"id": "f-butter", "name": "butter"},
			map[string]any{"id": "f-saffron", "name": "saffron"},
		},
		[]any{
			map[string]any{"id": "u-tbsp", "name": "tablespoon", "abbreviation": "tbsp"},
		},
	)

	var patches []map[string]any
	capturePatches(t, "brown-butter", &patches)

	report, err := newFormalizer().Formalize(context.Background(), formalize.Request{
		Slug:               "brown-butter",
		LinkStepReferences: true,
	})
	must.NoError(t, err)

	should.Equal(t, formalize.StatusOK, report.Status, "skipped links alone must not demote the run")
	should.Equal(t, 0, report.LinkedSteps)
	should.Empty(t, report.Links)
	should.Equal(t, []formalize.SkippedLink{
		{Ingredient: "butter", Reason: formalize.ReasonAmbiguous, Steps: []int{0, 1}},
		{Ingredient: "saffron", Reason: formalize.ReasonNoMatch},
	}, report.SkippedLinks)

	must.Len(t, patches, 1, "unchanged step references should not be written back")
	should.Contains(t, patches[0], "recipeIngredient")
}

func TestFormalizer_NoIngredients(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/recipes/empty-shell",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
			"slug":             "empty-shell",
			"recipeIngredient": []any{},
		}))

	report, err := newFormalizer().Formalize(context.Background(), formalize.Request{
		Slug:               "empty-shell",
		LinkStepReferences: true,
	})
	must.NoError(t, err)

	should.Equal(t, formalize.StatusNoIngredients, report.Status)
	should.Zero(t, report.UpdatedIngredients)
	should.Equal(t, 1, httpmock.GetTotalCallCount(), "an ingredient-less recipe takes no further calls")
}

func TestFormalizer_FetchError(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/recipes/missing",
		httpmock.NewJsonResponderOrPanic(http.StatusNotFound, map[string]any{"detail": "Not Found"}))

	report, err := newFormalizer().Formalize(context.Background(), formalize.Request{Slug: "missing"})
	must.Error(t, err)
	should.Nil(t, report)
	should.True(t, mealie.IsNotFound(err))
}

func TestFormalizer_AmbiguousFoodNotCreated(t *testing.T) {
	setupHTTPMock(t)

	recipe := map[string]any{
		"slug": "chili-oil",
		"recipeIngredient": []any{
			map[string]any{"referenceId": "ref-c", "note": "2 tsp chili"},
		},
	}
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/recipes/chili-oil",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, recipe))
	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/parser/ingredients",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, []any{
			map[string]any{"ingredient": map[string]any{
				"quantity": 2,
				"food":     map[string]any{"name": "chili"},
				"unit":     map[string]any{"name": "teaspoon", "abbreviation": "tsp"},
			}},
		}))
	registerRegistryPages(
		[]any{
			map[string]any{"id": "f-1", "name": "Chili"},
			map[string]any{"id": "f-2", "name": "chili"},
		},
		[]any{
			map[string]any{"id": "u-tsp", "name": "teaspoon", "abbreviation": "tsp"},
		},
	)

	var patches []map[string]any
	capturePatches(t, "chili-oil", &patches)

	report, err := newFormalizer().Formalize(context.Background(), formalize.Request{
		Slug:               "chili-oil",
		CreateMissingFoods: true,
	})
	must.NoError(t, err)

	should.Equal(t, formalize.StatusPartial, report.Status)
	must.Len(t, report.Unresolved, 1)
	should.Equal(t, formalize.ReasonAmbiguous, report.Unresolved[0].Reason)
	should.Empty(t, report.CreatedFoods)
	should.Zero(t, httpmock.GetCallCountInfo()["POST "+baseURL+"/api/foods"], "an ambiguous name must never be force-created")

	must.Len(t, patches, 1)
	ings := asMaps(t, patches[0]["recipeIngredient"])
	must.Len(t, ings, 1)
	should.NotContains(t, ings[0], "foodId")
	should.Equal(t, "u-tsp", ings[0]["unitId"])
}
