package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateKnownProvider(t *testing.T) {
	rates := LoadRateTable()

	breakdown := rates.Calculate("MedStar Health")
	assert.Equal(t, 150.00, breakdown.TotalCost)
	assert.Equal(t, 25.00, breakdown.PatientCopay)
	assert.Equal(t, 125.00, breakdown.InsuranceClaim)
}

func TestCalculateUnknownProviderUsesDefault(t *testing.T) {
	rates := LoadRateTable()

	breakdown := rates.Calculate("Unknown Provider")
	assert.Equal(t, 200.00, breakdown.TotalCost)
	assert.Equal(t, 50.00, breakdown.PatientCopay)
	assert.Equal(t, 150.00, breakdown.InsuranceClaim)

	assert.Equal(t, rates.Calculate(DefaultRateKey), breakdown,
		"unknown provider must price identically to the default entry")
}

func TestCalculateEmptyProviderUsesDefault(t *testing.T) {
	rates := LoadRateTable()

	assert.Equal(t, rates.Calculate("Unknown Provider"), rates.Calculate(""),
		"empty provider is treated like an unknown one")
}

func TestCalculateProviderCaseInsensitive(t *testing.T) {
	rates := LoadRateTable()

	assert.Equal(t, rates.Calculate("MedStar Health"), rates.Calculate("medstar health"))
}

func TestClaimIsAlwaysTotalMinusCopay(t *testing.T) {
	rates := LoadRateTable()
	require.NotEmpty(t, rates)

	for provider := range rates {
		breakdown := rates.Calculate(provider)
		assert.Equal(t, breakdown.TotalCost-breakdown.PatientCopay, breakdown.InsuranceClaim,
			"provider %q", provider)
	}
}

func TestLoadRateTableAlwaysHasDefault(t *testing.T) {
	rates := LoadRateTable()

	_, ok := rates[DefaultRateKey]
	require.True(t, ok, "rate table must carry a default entry")
}
