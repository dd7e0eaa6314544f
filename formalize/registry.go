package formalize

import "strings"

// registry indexes one canonical table (foods or units) by every name a
// parsed ingredient might carry for it. Exact names rank ahead of plural
// forms and abbreviations, which rank ahead of aliases, so "cup" the unit
// name always wins over "cup" the alias of something else.
type registry struct {
	entries map[string][]regEntry
}

type regEntry struct {
	rank int
	item map[string]any
}

const (
	rankName   = 0
	rankPlural = 1
	rankAlias  = 2
)

func newRegistry() *registry {
	return &registry{entries: map[string][]regEntry{}}
}

func (r *registry) add(key string, rank int, item map[string]any) {
	key = normalize(key)
	if key == "" {
		return
	}
	r.entries[key] = append(r.entries[key], regEntry{rank: rank, item: item})
}

// resolve returns the single best entry for name. When two distinct records
// tie at the best rank the match is ambiguous and nothing is returned.
func (r *registry) resolve(name string) (item map[string]any, ok, ambiguous bool) {
	cands := r.entries[normalize(name)]
	if len(cands) == 0 {
		return nil, false, false
	}

	best := cands[0].rank
	for _, c := range cands[1:] {
		if c.rank < best {
			best = c.rank
		}
	}

	seen := map[string]bool{}
	var found []map[string]any
	for _, c := range cands {
		if c.rank != best {
			continue
		}
		id := getStr(c.item, "id")
		if id == "" {
			id = getStr(c.item, "name")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		found = append(found, c.item)
	}

	if len(found) == 1 {
		return found[0], true, false
	}
	return nil, false, true
}

// foodRegistry indexes a foods page by name, plural name and aliases. An
// alias key resolves to the record that owns it.
func foodRegistry(page map[string]any) *registry {
	reg := newRegistry()
	for _, f := range getMaps(page, "items") {
		reg.add(getStr(f, "name"), rankName, f)
		reg.add(getStr(f, "pluralName"), rankPlural, f)
		for _, alias := range getMaps(f, "aliases") {
			reg.add(getStr(alias, "name"), rankAlias, f)
		}
	}
	return reg
}

// unitRegistry indexes a units page by name, plural name, abbreviations and
// aliases.
func unitRegistry(page map[string]any) *registry {
	reg := newRegistry()
	for _, u := range getMaps(page, "items") {
		reg.add(getStr(u, "name"), rankName, u)
		reg.add(getStr(u, "pluralName"), rankPlural, u)
		reg.add(getStr(u, "abbreviation"), rankPlural, u)
		reg.add(getStr(u, "pluralAbbreviation"), rankAlias, u)
		for _, alias := range getMaps(u, "aliases") {
			reg.add(getStr(alias, "name"), rankAlias, u)
		}
	}
	return reg
}

// normalize lowercases, trims and collapses inner whitespace so lookups are
// insensitive to spacing and case.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

func getStr(m map[string]any, k string) string {
	if v, ok := m[k]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getMap(m map[string]any, k string) map[string]any {
	if v, ok := m[k]; ok {
		if mm, ok := v.(map[string]any); ok {
			return mm
		}
	}
	return nil
}

func getMaps(m map[string]any, k string) []map[string]any {
	v, ok := m[k]
	if !ok {
		return nil
	}
	switch arr := v.(type) {
	case []map[string]any:
		return arr
	case []any:
		out := make([]map[string]any, 0, len(arr))
		for _, it := range arr {
			if mm, ok := it.(map[string]any); ok {
				out = append(out, mm)
			}
		}
		return out
	}
	return nil
}
