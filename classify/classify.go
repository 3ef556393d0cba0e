// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classify

import "github.com/danielhkuo/phasecheck/models"

// Symptom keyword sets. Matching is exact.
var (
	menstruationSymptoms = map[string]bool{
		"Cramps":               true,
		"Lower back pain":      true,
		"Headache or migraine": true,
	}
	lutealSymptoms = map[string]bool{
		"Bloating":                    true,
		"Breast tenderness":           true,
		"Breast fullness or swelling": true,
		"Digestive issues":            true,
		"Acne or skin breakouts":      true,
	}
	ovulationSymptoms = map[string]bool{
		"Feeling hot or flushed":      true,
		"Egg-white consistency mucus": true,
		"High libido":                 true,
	}
)

// Classify returns the best-matching phase for a set of answers.
func Classify(a models.AnswerSet) models.Phase {
	return Pick(Score(a))
}

// ClassifyAnswers is Classify guarded against a missing answer set:
// nil or entirely empty answers yield PhaseUnknown.
func ClassifyAnswers(a *models.AnswerSet) models.Phase {
	phase, _ := Evaluate(a)
	return phase
}

// Evaluate scores a once and returns both the phase and the scores behind
// it, with the same guard as ClassifyAnswers.
func Evaluate(a *models.AnswerSet) (models.Phase, models.ScoreVector) {
	if a == nil {
		return models.PhaseUnknown, models.ScoreVector{}
	}
	scores := Score(*a)
	if a.IsEmpty() {
		return models.PhaseUnknown, scores
	}
	return Pick(scores), scores
}

// Score accumulates heuristic points per phase. Rules whose inputs are
// absent contribute nothing.
func Score(a models.AnswerSet) models.ScoreVector {
	var s models.ScoreVector

	// Bleeding
	if a.Bleeding != nil {
		switch b := *a.Bleeding; {
		case b >= 2:
			s.Menstruation += 3
		case b == 1:
			s.Luteal++
		}
	}

	// Cervical mucus and libido
	if a.Mucus != nil || a.Libido != nil {
		switch {
		case is(a.Mucus, 4) || atLeast(a.Libido, 4):
			s.Ovulation += 2
		case is(a.Mucus, 2) || is(a.Mucus, 3):
			s.Follicular++
		}
	}

	// Energy
	if a.Energy != nil {
		switch e := *a.Energy; {
		case e == 1 || e == 2:
			s.Menstruation++
			s.Luteal++
		case e >= 4:
			s.Ovulation++
			s.Follicular++
		}
	}

	for _, symptom := range a.Symptoms.List {
		switch {
		case menstruationSymptoms[symptom]:
			s.Menstruation++
		case lutealSymptoms[symptom]:
			s.Luteal++
		case ovulationSymptoms[symptom]:
			s.Ovulation++
		}
	}

	return s
}

// Pick returns the phase with the highest score. Ties go to the phase
// listed first in models.Phases, so an all-zero vector yields
// PhaseMenstruation.
func Pick(s models.ScoreVector) models.Phase {
	best := models.Phases[0]
	for _, p := range models.Phases[1:] {
		if s.Get(p) > s.Get(best) {
			best = p
		}
	}
	return best
}

func is(v *int, want int) bool {
	return v != nil && *v == want
}

func atLeast(v *int, min int) bool {
	return v != nil && *v >= min
}
