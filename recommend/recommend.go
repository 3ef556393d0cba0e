// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package recommend maps a cycle phase to its daily recommendations.
package recommend

import "github.com/danielhkuo/phasecheck/models"

var table = map[models.Phase][]string{
	models.PhaseMenstruation: {
		"Get plenty of rest and iron-rich foods like spinach and lentils.",
		"Do gentle yoga or stretching instead of high-intensity workouts.",
		"Stay hydrated and use heat pads for cramps.",
	},
	models.PhaseFollicular: {
		"Try new activities; your brain is in a great learning state.",
		"Add lean protein and colorful vegetables to your meals.",
		"Great time for strength training or cardio workouts.",
	},
	models.PhaseOvulation: {
		"Eat zinc-rich foods like pumpkin seeds for hormone support.",
		"Socialize and schedule big meetings—confidence peaks now.",
		"Engage in high-intensity or group workouts.",
	},
	models.PhaseLuteal: {
		"Eat magnesium-rich foods (dark chocolate, leafy greens) to ease PMS.",
		"Practice mindfulness or journaling to regulate mood.",
		"Switch to moderate exercise like pilates or walking.",
	},
}

var fallback = []string{
	"Unable to identify your phase. Try submitting again tomorrow.",
	"Make sure your responses are complete and accurate.",
}

// For returns the recommendations for a phase. Unknown and unrecognized
// phases get the fallback advice. The returned slice is a copy.
func For(p models.Phase) []string {
	recs, ok := table[p]
	if !ok {
		recs = fallback
	}
	return append([]string(nil), recs...)
}

// Known reports whether p has phase-specific recommendations.
func Known(p models.Phase) bool {
	_, ok := table[p]
	return ok
}
