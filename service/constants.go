package service

const (
	MonthsPerYear = 12

	// DefaultEmissionFactorKgPerKwh es el CO2 evitado por cada kWh ahorrado.
	DefaultEmissionFactorKgPerKwh = 0.5

	MinSavingsPercent = 0.0
	MaxSavingsPercent = 100.0

	MaxConsumptionKwh = 1_000_000.0     // consumo mensual máximo aceptado
	MaxCostPesos      = 1_000_000_000.0 // 1.000 millones de pesos
	MaxRatePerKwh     = 100_000.0
)
