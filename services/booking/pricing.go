package booking

import (
	"strings"

	"medibook/models"

	"github.com/spf13/viper"
)

// DefaultRateKey is the mandatory fallback entry in every rate table.
const DefaultRateKey = "default"

// RateTable maps an insurance provider name to its negotiated rate.
type RateTable map[string]models.Rate

// builtinRates are used when no rate table is configured.
var builtinRates = RateTable{
	"MedStar Health":         {AppointmentCost: 150.00, CoPay: 25.00},
	"Blue Cross Blue Shield": {AppointmentCost: 180.00, CoPay: 30.00},
	DefaultRateKey:           {AppointmentCost: 200.00, CoPay: 50.00},
}

// LoadRateTable reads the insurance rate table from configuration, falling
// back to the builtin table when none is configured. The result always
// contains a "default" entry.
func LoadRateTable() RateTable {
	raw := viper.GetStringMap("insurance_rates")
	if len(raw) == 0 {
		return builtinRates
	}

	table := RateTable{}
	for provider := range raw {
		var rate models.Rate
		if err := viper.UnmarshalKey("insurance_rates."+provider, &rate); err != nil {
			continue
		}
		table[provider] = rate
	}
	if _, ok := table[DefaultRateKey]; !ok {
		table[DefaultRateKey] = builtinRates[DefaultRateKey]
	}
	return table
}

// Calculate returns the cost breakdown for the given insurance provider.
// Unknown and empty providers are not errors: both use the default rate.
// InsuranceClaim is always total minus co-pay.
func (t RateTable) Calculate(provider string) models.CostBreakdown {
	rate, ok := t.lookup(provider)
	if !ok {
		rate = t[DefaultRateKey]
	}
	return models.CostBreakdown{
		TotalCost:      rate.AppointmentCost,
		PatientCopay:   rate.CoPay,
		InsuranceClaim: rate.AppointmentCost - rate.CoPay,
	}
}

// lookup matches the provider name case-insensitively, since the caller
// relays whatever spelling the patient used.
func (t RateTable) lookup(provider string) (models.Rate, bool) {
	if provider == "" {
		return models.Rate{}, false
	}
	if rate, ok := t[provider]; ok {
		return rate, true
	}
	for name, rate := range t {
		if strings.EqualFold(name, provider) {
			return rate, true
		}
	}
	return models.Rate{}, false
}
