package domain

import (
	"fmt"
	"time"
)

// BirthBlueprint is the fixed set of numerology, Western-astrology and
// Chinese-zodiac attributes derived once from a user's birth details.
// It is immutable after creation; a new onboarding run replaces it wholesale.
type BirthBlueprint struct {
	FullName             string `json:"fullName"`
	LifePathNumber       int    `json:"lifePathNumber"`
	ExpressionNumber     int    `json:"expressionNumber"`
	SoulUrgeNumber       int    `json:"soulUrgeNumber"`
	PersonalityNumber    int    `json:"personalityNumber"`
	SunSign              string `json:"sunSign"`
	MoonSign             string `json:"moonSign"`
	RisingSign           string `json:"risingSign"`
	ChineseZodiac        string `json:"chineseZodiac"`
	ChineseZodiacElement string `json:"chineseZodiacElement"`
}

// validNumerology reports whether n is a reduced digit or a master number.
func validNumerology(n int) bool {
	return (n >= 1 && n <= 9) || n == 11 || n == 22 || n == 33
}

// Validate checks that every field is populated: numbers reduced to a single
// digit or one of the master numbers 11/22/33, labels non-empty. A blueprint
// is all-or-nothing; a partially populated one is never accepted.
func (b BirthBlueprint) Validate() error {
	numbers := map[string]int{
		"lifePathNumber":    b.LifePathNumber,
		"expressionNumber":  b.ExpressionNumber,
		"soulUrgeNumber":    b.SoulUrgeNumber,
		"personalityNumber": b.PersonalityNumber,
	}
	for field, n := range numbers {
		if !validNumerology(n) {
			return fmt.Errorf("%w: %s = %d", ErrIncompleteBlueprint, field, n)
		}
	}
	labels := map[string]string{
		"fullName":             b.FullName,
		"sunSign":              b.SunSign,
		"moonSign":             b.MoonSign,
		"risingSign":           b.RisingSign,
		"chineseZodiac":        b.ChineseZodiac,
		"chineseZodiacElement": b.ChineseZodiacElement,
	}
	for field, v := range labels {
		if v == "" {
			return fmt.Errorf("%w: %s is empty", ErrIncompleteBlueprint, field)
		}
	}
	return nil
}

// Interpretation is a model-generated summary plus a markdown-formatted
// long form. Rendering the markdown is the presentation layer's problem.
type Interpretation struct {
	Summary            string `json:"summary"`
	FullInterpretation string `json:"fullInterpretation"`
}

// LogKind distinguishes the two journals.
type LogKind string

const (
	LogSynchronicity LogKind = "synchronicity"
	LogDream         LogKind = "dream"
)

// ParseLogKind maps a wire value to a LogKind.
func ParseLogKind(raw string) (LogKind, error) {
	switch LogKind(raw) {
	case LogSynchronicity, LogDream:
		return LogKind(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLogKind, raw)
	}
}

// LogEntry is a user-submitted synchronicity or dream record. The entry
// exists in its journal before its interpretation resolves; the
// interpretation (or the fallback) is attached in place exactly once.
type LogEntry struct {
	ID             string          `json:"id"`
	CreatedAt      time.Time       `json:"createdAt"`
	Kind           LogKind         `json:"kind"`
	Description    string          `json:"description"`
	Interpretation *Interpretation `json:"interpretation,omitempty"`
}
