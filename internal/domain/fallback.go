package domain

import "fmt"

const fallbackSummary = "Interpretation unavailable."

// FallbackLogInterpretation is attached to a log entry when the oracle call
// fails. The entry itself is always kept; only the interpretation degrades.
func FallbackLogInterpretation(kind LogKind) Interpretation {
	subject := "an interpretation"
	if kind == LogDream {
		subject = "a dream interpretation"
	}
	return Interpretation{
		Summary:            fallbackSummary,
		FullInterpretation: fmt.Sprintf("Sorry, the cosmic energies are a bit fuzzy right now. We couldn't get %s. Please try again later.", subject),
	}
}

// FallbackFacetInterpretation is cached in place of a facet reading when the
// oracle call fails, so the failure is not retried for the session.
func FallbackFacetInterpretation(facet Facet) Interpretation {
	return Interpretation{
		Summary:            fallbackSummary,
		FullInterpretation: fmt.Sprintf("Sorry, the cosmic energies are a bit fuzzy right now. We couldn't get an interpretation for %s. Please try again later.", facet.Subject()),
	}
}
