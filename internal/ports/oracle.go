package ports

import (
	"context"
	"fmt"

	"github.com/synchromap/synchromap-go/internal/domain"
)

// BlueprintRequest holds the four onboarding fields. Date and time come from
// the caller pre-formatted; only presence is validated here.
type BlueprintRequest struct {
	FullName     string
	DateOfBirth  string
	TimeOfBirth  string
	PlaceOfBirth string
}

func (r BlueprintRequest) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"fullName", r.FullName},
		{"dateOfBirth", r.DateOfBirth},
		{"timeOfBirth", r.TimeOfBirth},
		{"placeOfBirth", r.PlaceOfBirth},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is empty", domain.ErrMissingBirthDetail, f.name)
		}
	}
	return nil
}

// Oracle is the contract with the hosted generative model. Every operation
// builds one natural-language instruction with a declared JSON reply shape
// and returns a validated domain object, or fails wrapping domain.ErrOracle.
// Operations are stateless and perform no retries; retry policy belongs to
// the caller.
type Oracle interface {
	// GenerateBlueprint derives the full ten-field blueprint from birth
	// details. It never returns a partially populated blueprint.
	GenerateBlueprint(ctx context.Context, req BlueprintRequest) (domain.BirthBlueprint, error)

	// InterpretLog reads a synchronicity or dream against the blueprint.
	InterpretLog(ctx context.Context, kind domain.LogKind, description string, bp domain.BirthBlueprint) (domain.Interpretation, error)

	// InterpretFacet produces the detailed reading for one blueprint facet.
	InterpretFacet(ctx context.Context, facet domain.Facet, bp domain.BirthBlueprint) (domain.Interpretation, error)
}
