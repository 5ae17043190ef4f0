package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"ahorro-energia/domain"
	"ahorro-energia/repository"
)

type SavingsService struct {
	municipalities *MunicipalityService
	cache          repository.CacheRepository
	benefits       *BenefitService
	opts           ComputeOptions
	logger         zerolog.Logger
}

// NewSavingsService creates a new SavingsService. cache and benefits may be nil.
func NewSavingsService(
	municipalities *MunicipalityService,
	cache repository.CacheRepository,
	benefits *BenefitService,
	opts ComputeOptions,
	logger zerolog.Logger,
) *SavingsService {
	return &SavingsService{
		municipalities: municipalities,
		cache:          cache,
		benefits:       benefits,
		opts:           opts,
		logger:         logger,
	}
}

// Compute runs ComputeSavings with the service options.
func (s *SavingsService) Compute(
	record *domain.Municipality,
	consumptionKwh, cost *float64,
) (domain.SavingsResult, error) {
	return ComputeSavings(record, consumptionKwh, cost, s.opts)
}

// Calculate resuelve el municipio por clave, calcula el ahorro y agrega el
// mensaje de beneficio y la explicación.
func (s *SavingsService) Calculate(
	ctx context.Context,
	input domain.SavingsInput,
) (domain.SavingsReport, error) {

	record, err := s.resolve(input.MunicipalityKey)
	if err != nil {
		return domain.SavingsReport{}, err
	}
	if err := validateReadings(input.ConsumptionKwh, input.Cost); err != nil {
		return domain.SavingsReport{}, err
	}

	result, err := s.computeCached(ctx, record, input.ConsumptionKwh, input.Cost)
	if err != nil {
		return domain.SavingsReport{}, err
	}

	report := domain.SavingsReport{
		Municipality: record,
		Result:       result,
	}
	if s.benefits != nil {
		report.BenefitMessage = s.benefits.RandomMessage()
		report.Explanation = s.benefits.Explain(ctx, record, result)
	}

	s.logger.Debug().
		Str("municipio", record.Key).
		Float64("ahorro_mensual", result.MonthlySavings).
		Float64("kwh_ahorrados", result.KwhSavedPerMonth).
		Msg("ahorro calculado")

	return report, nil
}

// Estimate returns the counterpart of the single value the user entered:
// cost when consumption is given, consumption when cost is given.
func (s *SavingsService) Estimate(
	key string,
	consumptionKwh, cost *float64,
) (domain.Estimate, error) {

	record, err := s.resolve(key)
	if err != nil {
		return domain.Estimate{}, err
	}
	if err := validateReadings(consumptionKwh, cost); err != nil {
		return domain.Estimate{}, err
	}
	if positive(consumptionKwh) == positive(cost) {
		return domain.Estimate{}, fmt.Errorf("%w: ingresa solo consumo o solo costo", ErrInvalidAmount)
	}
	if !(record.RatePerKwh > 0) {
		return domain.Estimate{}, fmt.Errorf("%w: %s", ErrNonPositiveRate, record.Key)
	}

	if positive(consumptionKwh) {
		return domain.Estimate{
			MunicipalityKey: record.Key,
			ConsumptionKwh:  *consumptionKwh,
			Cost:            *consumptionKwh * record.RatePerKwh,
			FromConsumption: true,
		}, nil
	}
	return domain.Estimate{
		MunicipalityKey: record.Key,
		ConsumptionKwh:  *cost / record.RatePerKwh,
		Cost:            *cost,
	}, nil
}

func (s *SavingsService) resolve(key string) (domain.Municipality, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Municipality{}, ErrMunicipalityRequired
	}
	record, ok := s.municipalities.Lookup(key)
	if !ok {
		return domain.Municipality{}, fmt.Errorf("%w: %s", ErrMunicipalityNotFound, key)
	}
	return record, nil
}

func (s *SavingsService) computeCached(
	ctx context.Context,
	record domain.Municipality,
	consumptionKwh, cost *float64,
) (domain.SavingsResult, error) {

	if s.cache == nil {
		return s.Compute(&record, consumptionKwh, cost)
	}

	key := s.cacheKey(record, consumptionKwh, cost)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.SavingsResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
		s.logger.Warn().Str("clave_cache", key).Msg("entrada de cache inválida, recalculando")
	}

	result, err := s.Compute(&record, consumptionKwh, cost)
	if err != nil {
		return domain.SavingsResult{}, err
	}

	// Guardar el resultado (no crítico si falla)
	data, err := json.Marshal(result)
	if err == nil {
		err = s.cache.Set(ctx, key, string(data))
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("clave_cache", key).Msg("no se pudo guardar el resultado en cache")
	}

	return result, nil
}

// cacheKey covers every field the result depends on, so a municipality
// registered again with other figures never hits an old entry.
func (s *SavingsService) cacheKey(
	record domain.Municipality,
	consumptionKwh, cost *float64,
) string {
	parts := []string{
		"ahorro",
		record.Key,
		formatKeyFloat(record.AverageConsumptionKwh),
		formatKeyFloat(record.AverageCost),
		formatKeyFloat(record.SavingsPercent),
		formatKeyFloat(record.RatePerKwh),
		formatOptional(consumptionKwh),
		formatOptional(cost),
	}
	if s.opts.IncludeCO2 {
		parts = append(parts, "co2", formatKeyFloat(s.opts.EmissionFactor))
	}
	return strings.Join(parts, ":")
}

func formatKeyFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatOptional(v *float64) string {
	if !positive(v) {
		return "-"
	}
	return formatKeyFloat(*v)
}

// validateReadings rejects negative or non-numeric user values. Zero is
// accepted and treated as not entered.
func validateReadings(consumptionKwh, cost *float64) error {
	if consumptionKwh != nil {
		v := *consumptionKwh
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) || v > MaxConsumptionKwh {
			return fmt.Errorf("%w: consumo_actual", ErrInvalidAmount)
		}
	}
	if cost != nil {
		v := *cost
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) || v > MaxCostPesos {
			return fmt.Errorf("%w: costo_actual", ErrInvalidAmount)
		}
	}
	return nil
}
