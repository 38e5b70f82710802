package app

import "github.com/synchromap/synchromap-go/internal/domain"

// FreePreviewRunes is how much of the long-form text a free session sees.
// The summary is never reduced; only fullInterpretation is cut to a strict
// prefix. The full text is always fetched and cached regardless of plan;
// gating is purely a view concern.
const FreePreviewRunes = 280

// GateInterpretation returns the plan-appropriate view of an interpretation
// and whether the long form was locked.
func GateInterpretation(i domain.Interpretation, plan domain.PlanState) (domain.Interpretation, bool) {
	if plan.Paid() {
		return i, false
	}
	return domain.Interpretation{
		Summary:            i.Summary,
		FullInterpretation: prefixRunes(i.FullInterpretation, FreePreviewRunes),
	}, true
}

// GateLogEntry applies GateInterpretation to an entry's attached
// interpretation, if any.
func GateLogEntry(e domain.LogEntry, plan domain.PlanState) (domain.LogEntry, bool) {
	if e.Interpretation == nil {
		return e, !plan.Paid()
	}
	gated, locked := GateInterpretation(*e.Interpretation, plan)
	e.Interpretation = &gated
	return e, locked
}

// prefixRunes cuts s to at most n runes without splitting a code point.
func prefixRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
