package formalize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	minTokenLen = 3
	minWordLen  = 4
)

// refToken pairs an ingredient's reference id with the text used to find it
// in instruction steps.
type refToken struct {
	token string
	refID string
}

// linkSteps rebuilds every step's ingredientReferences from the resolved
// tokens. A token links only when exactly one step mentions it; zero or
// several candidates are reported as skipped. The recipe is re-fetched so
// step texts reflect the ingredient write that just happened.
func (f *Formalizer) linkSteps(ctx context.Context, slug string, tokens []refToken, report *Report) error {
	fresh, err := f.client.GetRecipe(ctx, slug)
	if err != nil {
		return fmt.Errorf("refetch recipe for linking: %w", err)
	}

	steps := getMaps(fresh, "recipeInstructions")
	if len(steps) == 0 {
		return nil
	}

	stepTexts := make([]string, len(steps))
	for i, step := range steps {
		stepTexts[i] = strings.ToLower(getStr(step, "text"))
	}

	refsByStep := make([][]map[string]any, len(steps))
	seenByStep := make([]map[string]bool, len(steps))
	for i := range seenByStep {
		seenByStep[i] = map[string]bool{}
	}

	for _, tok := range tokens {
		if len(tok.token) < minTokenLen {
			continue
		}
		var candidates []int
		for si, text := range stepTexts {
			if stepMentions(text, tok.token) {
				candidates = append(candidates, si)
			}
		}
		switch len(candidates) {
		case 0:
			report.SkippedLinks = append(report.SkippedLinks, SkippedLink{Ingredient: tok.token, Reason: ReasonNoMatch})
		case 1:
			si := candidates[0]
			if !seenByStep[si][tok.refID] {
				seenByStep[si][tok.refID] = true
				refsByStep[si] = append(refsByStep[si], map[string]any{"referenceId": tok.refID})
			}
			report.Links = append(report.Links, StepLink{Ingredient: tok.token, Step: si})
		default:
			report.SkippedLinks = append(report.SkippedLinks, SkippedLink{Ingredient: tok.token, Reason: ReasonAmbiguous, Steps: candidates})
		}
	}

	changed := false
	for si, step := range steps {
		newRefs := refsByStep[si]
		if newRefs == nil {
			newRefs = []map[string]any{}
		}
		if !sameRefs(getMaps(step, "ingredientReferences"), newRefs) {
			changed = true
		}
		step["ingredientReferences"] = newRefs
		if len(newRefs) > 0 {
			report.LinkedSteps++
		}
	}

	if !changed {
		return nil
	}
	if _, err := f.client.PatchRecipe(ctx, slug, map[string]any{"recipeInstructions": steps}); err != nil {
		return fmt.Errorf("write step references: %w", err)
	}
	slog.Info("FORMALIZE: Linked ingredient references", "slug", slug, "steps", report.LinkedSteps)
	return nil
}

// stepMentions reports whether the step text contains the whole token or any
// of its words of minWordLen or more characters.
func stepMentions(text, token string) bool {
	if strings.Contains(text, token) {
		return true
	}
	for _, w := range strings.Fields(token) {
		if len(w) >= minWordLen && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// sameRefs compares two reference lists by their referenceId multisets.
func sameRefs(a, b []map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	ids := map[string]int{}
	for _, r := range a {
		ids[getStr(r, "referenceId")]++
	}
	for _, r := range b {
		ids[getStr(r, "referenceId")]--
	}
	for _, n := range ids {
		if n != 0 {
			return false
		}
	}
	return true
}
