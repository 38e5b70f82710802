package http

import (
	"time"

	"github.com/synchromap/synchromap-go/internal/app"
	"github.com/synchromap/synchromap-go/internal/domain"
)

type OnboardingRequest struct {
	FullName     string `json:"fullName"`
	DateOfBirth  string `json:"dateOfBirth"`
	TimeOfBirth  string `json:"timeOfBirth"`
	PlaceOfBirth string `json:"placeOfBirth"`
}

type BlueprintResponse struct {
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

// InterpretationResponse is the gated view of an interpretation. Locked
// means the long form was cut to the free-plan preview.
type InterpretationResponse struct {
	Summary            string `json:"summary"`
	FullInterpretation string `json:"fullInterpretation"`
	Locked             bool   `json:"locked"`
}

type SessionResponse struct {
	Onboarded bool               `json:"onboarded"`
	Plan      string             `json:"plan"`
	Blueprint *BlueprintResponse `json:"blueprint,omitempty"`
}

type AddLogRequest struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

type LogEntryResponse struct {
	ID             string                  `json:"id"`
	CreatedAt      time.Time               `json:"createdAt"`
	Kind           string                  `json:"kind"`
	Description    string                  `json:"description"`
	Interpretation *InterpretationResponse `json:"interpretation,omitempty"`
}

type JournalResponse struct {
	Kind    string             `json:"kind"`
	Entries []LogEntryResponse `json:"entries"`
}

type FacetResponse struct {
	Facet          string                 `json:"facet"`
	Interpretation InterpretationResponse `json:"interpretation"`
}

type PlanResponse struct {
	Plan string `json:"plan"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toBlueprintResponse(bp domain.BirthBlueprint) BlueprintResponse {
	return BlueprintResponse(bp)
}

func toInterpretationResponse(i domain.Interpretation, plan domain.PlanState) InterpretationResponse {
	gated, locked := app.GateInterpretation(i, plan)
	return InterpretationResponse{
		Summary:            gated.Summary,
		FullInterpretation: gated.FullInterpretation,
		Locked:             locked,
	}
}

func toLogEntryResponse(e domain.LogEntry, plan domain.PlanState) LogEntryResponse {
	gated, locked := app.GateLogEntry(e, plan)
	out := LogEntryResponse{
		ID:          gated.ID,
		CreatedAt:   gated.CreatedAt,
		Kind:        string(gated.Kind),
		Description: gated.Description,
	}
	if gated.Interpretation != nil {
		out.Interpretation = &InterpretationResponse{
			Summary:            gated.Interpretation.Summary,
			FullInterpretation: gated.Interpretation.FullInterpretation,
			Locked:             locked,
		}
	}
	return out
}
