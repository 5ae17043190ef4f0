package domain

import (
	"strings"
	"unicode"
)

// Municipality es el registro de referencia de un municipio: consumo y costo
// promedio mensual, tarifa por kWh y el ahorro estimado con renovables.
type Municipality struct {
	Key                   string  `json:"clave" yaml:"clave,omitempty"`
	Name                  string  `json:"nombre" yaml:"nombre"`
	AverageConsumptionKwh float64 `json:"consumo_promedio_kwh" yaml:"consumo_promedio_kwh"`
	AverageCost           float64 `json:"costo_actual_pesos" yaml:"costo_actual_pesos"`
	SavingsPercent        float64 `json:"ahorro_estimado_porcentaje" yaml:"ahorro_estimado_porcentaje"`
	RatePerKwh            float64 `json:"tarifa_kwh" yaml:"tarifa_kwh"`
}

// NewMunicipalityInput carries the data for registering a municipality.
// Exactly two of ConsumptionKwh, Cost and RatePerKwh are expected; nil means
// the field was left empty.
type NewMunicipalityInput struct {
	Name           string   `json:"nombre"`
	ConsumptionKwh *float64 `json:"consumo_promedio_kwh,omitempty"`
	Cost           *float64 `json:"costo_actual_pesos,omitempty"`
	RatePerKwh     *float64 `json:"tarifa_kwh,omitempty"`
	SavingsPercent *float64 `json:"ahorro_estimado_porcentaje,omitempty"`
}

// NormalizeKey derives the registry key from a display name: lowercase,
// whitespace runs become a single underscore, anything outside [a-z0-9_] is dropped.
func NormalizeKey(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	joined := strings.Join(fields, "_")

	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		if r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
