package domain

import "errors"

var (
	// ErrOracle covers any upstream failure of the generative service:
	// transport errors, non-2xx responses, unparseable or schema-invalid
	// replies. The original cause is wrapped for logging.
	ErrOracle = errors.New("oracle service failure")

	// ErrIncompleteBlueprint marks a blueprint reply that parsed but is
	// missing or malforming one of the ten required fields.
	ErrIncompleteBlueprint = errors.New("incomplete birth blueprint")

	ErrMissingBirthDetail = errors.New("all four birth details are required")
	ErrEmptyDescription   = errors.New("description must not be empty")
	ErrNoBlueprint        = errors.New("no blueprint: complete onboarding first")
	ErrUnknownFacet       = errors.New("unknown facet")
	ErrUnknownLogKind     = errors.New("unknown log kind")
	ErrUpgradeRequired    = errors.New("paid plan required")
)
