package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBlueprint() BirthBlueprint {
	return BirthBlueprint{
		FullName:             "Ada Lovelace",
		LifePathNumber:       7,
		ExpressionNumber:     11,
		SoulUrgeNumber:       3,
		PersonalityNumber:    22,
		SunSign:              "Sagittarius",
		MoonSign:             "Pisces",
		RisingSign:           "Virgo",
		ChineseZodiac:        "Rooster",
		ChineseZodiacElement: "Wood",
	}
}

func TestBlueprintValidate(t *testing.T) {
	require.NoError(t, validBlueprint().Validate())
}

func TestBlueprintValidate_MasterNumbers(t *testing.T) {
	bp := validBlueprint()
	for _, n := range []int{11, 22, 33} {
		bp.LifePathNumber = n
		assert.NoError(t, bp.Validate(), "master number %d", n)
	}
}

func TestBlueprintValidate_RejectsPartial(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BirthBlueprint)
	}{
		{"zero life path", func(b *BirthBlueprint) { b.LifePathNumber = 0 }},
		{"negative expression", func(b *BirthBlueprint) { b.ExpressionNumber = -4 }},
		{"unreduced soul urge", func(b *BirthBlueprint) { b.SoulUrgeNumber = 14 }},
		{"non-master two digit", func(b *BirthBlueprint) { b.PersonalityNumber = 21 }},
		{"empty name", func(b *BirthBlueprint) { b.FullName = "" }},
		{"empty sun sign", func(b *BirthBlueprint) { b.SunSign = "" }},
		{"empty element", func(b *BirthBlueprint) { b.ChineseZodiacElement = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bp := validBlueprint()
			tt.mutate(&bp)
			err := bp.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIncompleteBlueprint)
		})
	}
}

func TestParseFacet(t *testing.T) {
	for _, f := range Facets() {
		got, err := ParseFacet(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFacet("tarot")
	assert.ErrorIs(t, err, ErrUnknownFacet)
}

func TestParseLogKind(t *testing.T) {
	for _, raw := range []string{"synchronicity", "dream"} {
		_, err := ParseLogKind(raw)
		assert.NoError(t, err)
	}

	_, err := ParseLogKind("omen")
	assert.ErrorIs(t, err, ErrUnknownLogKind)
}

func TestPlanStateUpgradeIsOneWay(t *testing.T) {
	p := NewPlanState(false)
	assert.False(t, p.Paid())
	assert.Equal(t, "free", p.String())

	p = p.Upgrade()
	assert.True(t, p.Paid())
	assert.Equal(t, "paid", p.String())

	// No transition leads back to free.
	assert.True(t, p.Upgrade().Paid())
}

func TestFallbackInterpretations(t *testing.T) {
	sync := FallbackLogInterpretation(LogSynchronicity)
	dream := FallbackLogInterpretation(LogDream)
	assert.Equal(t, "Interpretation unavailable.", sync.Summary)
	assert.Contains(t, dream.FullInterpretation, "dream interpretation")
	assert.NotEqual(t, sync.FullInterpretation, dream.FullInterpretation)

	for _, f := range Facets() {
		fb := FallbackFacetInterpretation(f)
		assert.Equal(t, "Interpretation unavailable.", fb.Summary)
		assert.True(t, strings.Contains(fb.FullInterpretation, f.Subject()))
	}
}
