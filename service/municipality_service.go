package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"ahorro-energia/domain"
	"ahorro-energia/repository"
)

// LinkedField names one of the three quantities tied by cost = consumption × rate.
type LinkedField string

const (
	FieldConsumption LinkedField = "consumo_promedio_kwh"
	FieldCost        LinkedField = "costo_actual_pesos"
	FieldRate        LinkedField = "tarifa_kwh"
)

type MunicipalityService struct {
	repo   repository.MunicipalityRepository
	logger zerolog.Logger
}

// NewMunicipalityService creates a new MunicipalityService backed by repo.
func NewMunicipalityService(
	repo repository.MunicipalityRepository,
	logger zerolog.Logger,
) *MunicipalityService {
	return &MunicipalityService{repo: repo, logger: logger}
}

// Lookup returns the municipality registered under key.
func (s *MunicipalityService) Lookup(key string) (domain.Municipality, bool) {
	return s.repo.Get(key)
}

// AllKeys returns the registered keys, seed order first.
func (s *MunicipalityService) AllKeys() []string {
	return s.repo.Keys()
}

// List returns the registered municipalities in the same order as AllKeys.
func (s *MunicipalityService) List() []domain.Municipality {
	return s.repo.List()
}

// MissingLinkedField reports which linked field would be derived from input.
// It returns false unless exactly two of the three fields are filled.
func MissingLinkedField(input domain.NewMunicipalityInput) (LinkedField, bool) {
	var missing []LinkedField
	if input.ConsumptionKwh == nil {
		missing = append(missing, FieldConsumption)
	}
	if input.Cost == nil {
		missing = append(missing, FieldCost)
	}
	if input.RatePerKwh == nil {
		missing = append(missing, FieldRate)
	}
	if len(missing) != 1 {
		return "", false
	}
	return missing[0], true
}

// DeriveAndInsert registers a new municipality. Two of consumption, cost and
// rate must be given; the third is derived from them:
//
//	consumption = round(cost / rate)
//	cost        = consumption × rate
//	rate        = round(cost / consumption)
//
// Nothing is stored when validation fails or the key already exists.
func (s *MunicipalityService) DeriveAndInsert(
	input domain.NewMunicipalityInput,
) (domain.Municipality, error) {

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Municipality{}, ErrInvalidName
	}
	key := domain.NormalizeKey(name)
	if key == "" {
		return domain.Municipality{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	missing, ok := MissingLinkedField(input)
	if !ok {
		return domain.Municipality{}, ErrLinkedFieldCount
	}

	linked := []struct {
		field LinkedField
		value *float64
	}{
		{FieldConsumption, input.ConsumptionKwh},
		{FieldCost, input.Cost},
		{FieldRate, input.RatePerKwh},
	}
	for _, l := range linked {
		if l.value == nil {
			continue
		}
		if !validAmount(*l.value) {
			return domain.Municipality{}, fmt.Errorf("%w: %s", ErrInvalidAmount, l.field)
		}
		if *l.value > l.field.limit() {
			return domain.Municipality{}, fmt.Errorf("%w: %s", ErrAmountOutOfRange, l.field)
		}
	}

	if input.SavingsPercent == nil || !validPercent(*input.SavingsPercent) {
		return domain.Municipality{}, ErrInvalidSavings
	}

	record := domain.Municipality{
		Key:            key,
		Name:           name,
		SavingsPercent: *input.SavingsPercent,
	}

	var derived float64
	switch missing {
	case FieldConsumption:
		record.AverageCost = *input.Cost
		record.RatePerKwh = *input.RatePerKwh
		record.AverageConsumptionKwh = math.Round(record.AverageCost / record.RatePerKwh)
		derived = record.AverageConsumptionKwh
	case FieldCost:
		record.AverageConsumptionKwh = *input.ConsumptionKwh
		record.RatePerKwh = *input.RatePerKwh
		record.AverageCost = record.AverageConsumptionKwh * record.RatePerKwh
		derived = record.AverageCost
	case FieldRate:
		record.AverageConsumptionKwh = *input.ConsumptionKwh
		record.AverageCost = *input.Cost
		record.RatePerKwh = math.Round(record.AverageCost / record.AverageConsumptionKwh)
		derived = record.RatePerKwh
	}
	if derived > missing.limit() {
		return domain.Municipality{}, fmt.Errorf("%w: %s", ErrAmountOutOfRange, missing)
	}
	if !validAmount(derived) {
		return domain.Municipality{}, fmt.Errorf("%w: %s", ErrDerivedNotPositive, missing)
	}

	if err := s.repo.Insert(record); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return domain.Municipality{}, fmt.Errorf("%w: %s", ErrMunicipalityExists, key)
		}
		return domain.Municipality{}, err
	}

	s.logger.Info().
		Str("municipio", key).
		Str("campo_derivado", string(missing)).
		Float64("consumo_kwh", record.AverageConsumptionKwh).
		Float64("costo", record.AverageCost).
		Float64("tarifa", record.RatePerKwh).
		Msg("municipio registrado")

	return record, nil
}

// limit is the largest value accepted for the field, given or derived.
func (f LinkedField) limit() float64 {
	switch f {
	case FieldConsumption:
		return MaxConsumptionKwh
	case FieldCost:
		return MaxCostPesos
	default:
		return MaxRatePerKwh
	}
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func validPercent(v float64) bool {
	return v >= MinSavingsPercent && v <= MaxSavingsPercent
}
