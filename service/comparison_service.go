package service

import (
	"sort"

	"github.com/rs/zerolog"

	"ahorro-energia/domain"
)

type ComparisonService struct {
	municipalities *MunicipalityService
	savings        *SavingsService
	logger         zerolog.Logger
}

func NewComparisonService(
	municipalities *MunicipalityService,
	savings *SavingsService,
	logger zerolog.Logger,
) *ComparisonService {
	return &ComparisonService{
		municipalities: municipalities,
		savings:        savings,
		logger:         logger,
	}
}

// Compare calcula el ahorro de todos los municipios registrados con la misma
// entrada del usuario y los ordena por ahorro anual, de mayor a menor. Los
// empates conservan el orden del registro.
func (s *ComparisonService) Compare(
	consumptionKwh, cost *float64,
) (domain.ComparisonResult, error) {

	if err := validateReadings(consumptionKwh, cost); err != nil {
		return domain.ComparisonResult{}, err
	}

	rankings := []domain.MunicipalityComparison{}
	for _, record := range s.municipalities.List() {
		result, err := s.savings.Compute(&record, consumptionKwh, cost)
		if err != nil {
			s.logger.Warn().Err(err).Str("municipio", record.Key).Msg("municipio omitido en la comparación")
			continue
		}
		rankings = append(rankings, domain.MunicipalityComparison{
			Municipality: record,
			Result:       result,
		})
	}

	if len(rankings) == 0 {
		return domain.ComparisonResult{}, ErrNoMunicipalities
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Result.AnnualSavings > rankings[j].Result.AnnualSavings
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	return domain.ComparisonResult{
		BestMunicipality: rankings[0].Municipality.Key,
		Rankings:         rankings,
	}, nil
}
