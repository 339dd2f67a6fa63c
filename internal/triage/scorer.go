package triage

import (
	"strconv"
	"strings"
)

// Priority tiers, highest first.
const (
	PriorityUrgent = "URGENTE"
	PriorityHigh   = "ALTA"
	PriorityMedium = "MÉDIA"
	PriorityLow    = "BAIXA"
)

// Score accumulates points from the collected answers and the vitals
// reading, then thresholds the total into a tier. Contributions are
// independent and additive.
//
// An unparseable pain level contributes nothing; the duration check is a
// plain substring match, so "2 horas e 3 dias" counts as hours. Both are
// deliberate: the protocol errs on the side of simplicity.
func Score(answers map[int]string, v Vitals) (priority string, points int) {
	// Pain level (question 3)
	if pain, err := strconv.Atoi(strings.TrimSpace(answers[3])); err == nil {
		switch {
		case pain >= 8:
			points += 40
		case pain >= 5:
			points += 25
		case pain >= 3:
			points += 10
		}
	}

	// Severe symptom flag (question 4)
	if strings.Contains(strings.ToLower(answers[4]), "sim") {
		points += 50
	}

	// Symptom duration (question 2)
	if strings.Contains(strings.ToLower(answers[2]), "hora") {
		points += 15
	}

	// Temperature
	switch {
	case v.Temperature >= 39.0:
		points += 30
	case v.Temperature >= 38.0:
		points += 15
	}

	// Heart rate
	switch {
	case v.HeartRate >= 110 || v.HeartRate <= 50:
		points += 25
	case v.HeartRate >= 100 || v.HeartRate <= 60:
		points += 10
	}

	// Systolic pressure
	if v.Systolic >= 160 || v.Systolic <= 90 {
		points += 20
	}

	switch {
	case points >= 80:
		return PriorityUrgent, points
	case points >= 50:
		return PriorityHigh, points
	case points >= 25:
		return PriorityMedium, points
	default:
		return PriorityLow, points
	}
}

// Emoji returns the colour dot shown next to a tier.
func Emoji(priority string) string {
	switch priority {
	case PriorityUrgent:
		return "🔴"
	case PriorityHigh:
		return "🟠"
	case PriorityMedium:
		return "🟡"
	case PriorityLow:
		return "🟢"
	default:
		return "⚪"
	}
}
