package formalize

import (
	"testing"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
)

func TestFoodRegistry_NameBeatsPlural(t *testing.T) {
	reg := foodRegistry(map[string]any{"items": []any{
		map[string]any{"id": "f-1", "name": "garlic", "pluralName": "garlics"},
		map[string]any{"id": "f-2", "name": "garlics"},
	}})

	item, ok, ambiguous := reg.resolve("garlics")
	must.True(t, ok)
	should.False(t, ambiguous)
	should.Equal(t, "f-2", item["id"])

	item, ok, _ = reg.resolve("garlic")
	must.True(t, ok)
	should.Equal(t, "f-1", item["id"])
}

func TestFoodRegistry_AliasAndNormalization(t *testing.T) {
	reg := foodRegistry(map[string]any{"items": []any{
		map[string]any{"id": "f-1", "name": "scallion", "aliases": []any{
			map[string]any{"name": "green onion"},
		}},
	}})

	item, ok, ambiguous := reg.resolve("  GREEN   Onion ")
	must.True(t, ok)
	should.False(t, ambiguous)
	should.Equal(t, "f-1", item["id"])
}

func TestFoodRegistry_DistinctIDsAreAmbiguous(t *testing.T) {
	reg := foodRegistry(map[string]any{"items": []any{
		map[string]any{"id": "f-1", "name": "Chili"},
		map[string]any{"id": "f-2", "name": "chili"},
	}})

	_, ok, ambiguous := reg.resolve("chili")
	should.False(t, ok)
	should.True(t, ambiguous)
}

func TestFoodRegistry_DuplicateAliasCollapses(t *testing.T) {
	reg := foodRegistry(map[string]any{"items": []any{
		map[string]any{"id": "f-1", "name": "chili", "aliases": []any{
			map[string]any{"name": "chili pepper"},
			map[string]any{"name": "chili pepper"},
		}},
	}})

	item, ok, ambiguous := reg.resolve("chili pepper")
	must.True(t, ok)
	should.False(t, ambiguous)
	should.Equal(t, "f-1", item["id"])
}

func TestUnitRegistry_AbbreviationResolves(t *testing.T) {
	reg := unitRegistry(map[string]any{"items": []any{
		map[string]any{"id": "u-1", "name": "tablespoon", "pluralName": "tablespoons", "abbreviation": "tbsp", "pluralAbbreviation": "tbsps"},
		map[string]any{"id": "u-2", "name": "teaspoon", "abbreviation": "tsp"},
	}})

	for _, key := range []string{"tablespoon", "tablespoons", "tbsp", "tbsps", "TBSP"} {
		item, ok, ambiguous := reg.resolve(key)
		must.True(t, ok, "key %q", key)
		should.False(t, ambiguous, "key %q", key)
		should.Equal(t, "u-1", item["id"], "key %q", key)
	}

	_, ok, _ := reg.resolve("pinch")
	should.False(t, ok)
}
