// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recommend

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/phasecheck/models"
)

func TestFor_KnownPhases(t *testing.T) {
	seen := make(map[string]models.Phase)
	for _, p := range models.Phases {
		recs := For(p)
		if len(recs) < 2 || len(recs) > 3 {
			t.Errorf("%s: expected 2-3 recommendations, got %d", p, len(recs))
		}
		for _, r := range recs {
			if r == "" {
				t.Errorf("%s: empty recommendation", p)
			}
			if other, dup := seen[r]; dup {
				t.Errorf("%s: recommendation %q also used by %s", p, r, other)
			}
			seen[r] = p
		}
		if !Known(p) {
			t.Errorf("Expected %s to be known", p)
		}
	}
}

func TestFor_ExactText(t *testing.T) {
	tests := []struct {
		phase models.Phase
		index int
		want  string
	}{
		{models.PhaseMenstruation, 2, "Stay hydrated and use heat pads for cramps."},
		{models.PhaseFollicular, 0, "Try new activities; your brain is in a great learning state."},
		{models.PhaseOvulation, 1, "Socialize and schedule big meetings—confidence peaks now."},
		{models.PhaseLuteal, 0, "Eat magnesium-rich foods (dark chocolate, leafy greens) to ease PMS."},
		{models.PhaseUnknown, 0, "Unable to identify your phase. Try submitting again tomorrow."},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			recs := For(tt.phase)
			if tt.index >= len(recs) {
				t.Fatalf("Expected at least %d recommendations, got %d", tt.index+1, len(recs))
			}
			if recs[tt.index] != tt.want {
				t.Errorf("For(%s)[%d] = %q, want %q", tt.phase, tt.index, recs[tt.index], tt.want)
			}
		})
	}
}

func TestFor_Fallback(t *testing.T) {
	for _, p := range []models.Phase{models.PhaseUnknown, "", "menstruation", "Winter"} {
		if diff := cmp.Diff(fallback, For(p)); diff != "" {
			t.Errorf("For(%q) mismatch (-want +got):\n%s", p, diff)
		}
		if Known(p) {
			t.Errorf("Expected %q not to be known", p)
		}
	}
}

func TestFor_ReturnsCopy(t *testing.T) {
	recs := For(models.PhaseLuteal)
	recs[0] = "mutated"

	if For(models.PhaseLuteal)[0] == "mutated" {
		t.Error("Mutating a returned slice changed the table")
	}
}
