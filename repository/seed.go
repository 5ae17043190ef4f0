package repository

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ahorro-energia/domain"
)

// DefaultMunicipalities devuelve el dataset de municipios del Caribe colombiano.
// Los promedios se conservan tal como fueron publicados; no se fuerza
// costo = consumo × tarifa sobre ellos.
func DefaultMunicipalities() []domain.Municipality {
	return []domain.Municipality{
		{
			Key:                   "riohacha",
			Name:                  "Riohacha",
			AverageConsumptionKwh: 180,
			AverageCost:           90000,
			SavingsPercent:        25,
			RatePerKwh:            500,
		},
		{
			Key:                   "barrancas",
			Name:                  "Barrancas",
			AverageConsumptionKwh: 150,
			AverageCost:           75000,
			SavingsPercent:        30,
			RatePerKwh:            500,
		},
		{
			Key:                   "valledupar",
			Name:                  "Valledupar",
			AverageConsumptionKwh: 220,
			AverageCost:           110000,
			SavingsPercent:        20,
			RatePerKwh:            500,
		},
		{
			Key:                   "santa_marta",
			Name:                  "Santa Marta",
			AverageConsumptionKwh: 170,
			AverageCost:           85000,
			SavingsPercent:        22,
			RatePerKwh:            500,
		},
		{
			Key:                   "soledad",
			Name:                  "Soledad",
			AverageConsumptionKwh: 200,
			AverageCost:           100000,
			SavingsPercent:        28,
			RatePerKwh:            500,
		},
	}
}

type seedFile struct {
	Municipalities []domain.Municipality `yaml:"municipios"`
}

// LoadSeedFile reads a yaml list of municipalities under the "municipios" key.
func LoadSeedFile(path string) ([]domain.Municipality, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(f.Municipalities) == 0 {
		return nil, fmt.Errorf("seed file %s: no municipalities", path)
	}
	return f.Municipalities, nil
}
