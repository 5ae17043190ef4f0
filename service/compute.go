package service

import (
	"fmt"
	"math"

	"ahorro-energia/domain"
)

// ComputeOptions controls the optional parts of a calculation.
type ComputeOptions struct {
	IncludeCO2     bool
	EmissionFactor float64 // kg CO2 per kWh saved; zero means the default factor
}

// positive reports whether an optional user value was supplied. Zero,
// negative and non-finite values count as not supplied.
func positive(v *float64) bool {
	return v != nil && *v > 0 && !math.IsInf(*v, 1)
}

// ComputeSavings derives the savings figures for record from the optional
// consumption and cost the user entered. It performs no rounding.
//
// Consumption and cost are resolved independently: a value the user supplied
// is used as is, a missing one is derived from the other through the
// municipality rate, and when neither is supplied both fall back to the
// municipality averages.
func ComputeSavings(
	record *domain.Municipality,
	consumptionKwh, cost *float64,
	opts ComputeOptions,
) (domain.SavingsResult, error) {
	if record == nil {
		return domain.SavingsResult{}, ErrMunicipalityRequired
	}

	hasConsumption := positive(consumptionKwh)
	hasCost := positive(cost)

	needsRate := hasConsumption != hasCost
	if needsRate && !(record.RatePerKwh > 0) {
		return domain.SavingsResult{}, fmt.Errorf("%w: %s", ErrNonPositiveRate, record.Key)
	}

	var finalConsumption float64
	switch {
	case hasConsumption:
		finalConsumption = *consumptionKwh
	case hasCost:
		finalConsumption = *cost / record.RatePerKwh
	default:
		finalConsumption = record.AverageConsumptionKwh
	}

	var finalCost float64
	switch {
	case hasCost:
		finalCost = *cost
	case hasConsumption:
		finalCost = *consumptionKwh * record.RatePerKwh
	default:
		finalCost = record.AverageCost
	}

	percent := record.SavingsPercent
	monthly := finalCost * percent / 100
	kwhSaved := finalConsumption * percent / 100

	result := domain.SavingsResult{
		FinalConsumptionKwh: finalConsumption,
		FinalCost:           finalCost,
		RenewableCost:       finalCost - monthly,
		MonthlySavings:      monthly,
		AnnualSavings:       monthly * MonthsPerYear,
		SavingsPercent:      percent,
		KwhSavedPerMonth:    kwhSaved,
	}

	if opts.IncludeCO2 {
		factor := opts.EmissionFactor
		if factor == 0 {
			factor = DefaultEmissionFactorKgPerKwh
		}
		co2 := kwhSaved * factor * MonthsPerYear
		result.CO2ReducedKgPerYear = &co2
	}

	return result, nil
}
