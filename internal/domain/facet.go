package domain

import "fmt"

// Facet names one aspect of a blueprint eligible for its own detailed
// reading. FacetBlueprint is the holistic reading of the whole chart.
type Facet string

const (
	FacetBlueprint     Facet = "blueprint"
	FacetLifePath      Facet = "life_path"
	FacetExpression    Facet = "expression"
	FacetSoulUrge      Facet = "soul_urge"
	FacetPersonality   Facet = "personality"
	FacetSunSign       Facet = "sun_sign"
	FacetMoonSign      Facet = "moon_sign"
	FacetRisingSign    Facet = "rising_sign"
	FacetChineseZodiac Facet = "chinese_zodiac"
)

// Facets lists every facet in display order.
func Facets() []Facet {
	return []Facet{
		FacetBlueprint,
		FacetLifePath,
		FacetExpression,
		FacetSoulUrge,
		FacetPersonality,
		FacetSunSign,
		FacetMoonSign,
		FacetRisingSign,
		FacetChineseZodiac,
	}
}

// ParseFacet maps a wire value to a Facet.
func ParseFacet(raw string) (Facet, error) {
	for _, f := range Facets() {
		if Facet(raw) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFacet, raw)
}

// Subject is the human-readable name of the facet, used in fallback copy.
func (f Facet) Subject() string {
	switch f {
	case FacetBlueprint:
		return "your blueprint"
	case FacetLifePath:
		return "your Life Path"
	case FacetExpression:
		return "your Expression number"
	case FacetSoulUrge:
		return "your Soul Urge number"
	case FacetPersonality:
		return "your Personality number"
	case FacetSunSign:
		return "your Sun sign"
	case FacetMoonSign:
		return "your Moon sign"
	case FacetRisingSign:
		return "your Rising sign"
	case FacetChineseZodiac:
		return "your Chinese Zodiac sign"
	default:
		return "this reading"
	}
}
