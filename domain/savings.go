package domain

// SavingsInput es la solicitud de cálculo: el municipio seleccionado y, de
// forma opcional, el consumo o el costo que el usuario conoce.
type SavingsInput struct {
	MunicipalityKey string   `json:"municipio"`
	ConsumptionKwh  *float64 `json:"consumo_actual,omitempty"`
	Cost            *float64 `json:"costo_actual,omitempty"`
}

// SavingsResult holds every figure derived by a single calculation.
type SavingsResult struct {
	FinalConsumptionKwh float64  `json:"consumo_final_kwh"`
	FinalCost           float64  `json:"costo_actual"`
	RenewableCost       float64  `json:"costo_con_renovables"`
	MonthlySavings      float64  `json:"ahorro_mensual"`
	AnnualSavings       float64  `json:"ahorro_anual"`
	SavingsPercent      float64  `json:"porcentaje_ahorro"`
	KwhSavedPerMonth    float64  `json:"kwh_ahorrados"`
	CO2ReducedKgPerYear *float64 `json:"co2_reducido_kg_anual,omitempty"`
}

// SavingsReport is a calculation result together with the municipality it
// was computed for and the text shown alongside it.
type SavingsReport struct {
	Municipality   Municipality  `json:"municipio"`
	Result         SavingsResult `json:"resultado"`
	BenefitMessage string        `json:"mensaje_beneficio,omitempty"`
	Explanation    string        `json:"explicacion,omitempty"`
}

// Estimate is the counterpart figure shown while the user types a single
// value: cost from consumption, or consumption from cost.
type Estimate struct {
	MunicipalityKey string  `json:"municipio"`
	ConsumptionKwh  float64 `json:"consumo_estimado_kwh"`
	Cost            float64 `json:"costo_estimado"`
	FromConsumption bool    `json:"desde_consumo"`
}

// MunicipalityComparison is one municipality's place in a comparison.
type MunicipalityComparison struct {
	Rank         int           `json:"posicion"`
	Municipality Municipality  `json:"municipio"`
	Result       SavingsResult `json:"resultado"`
}

// ComparisonResult lists every municipality ranked by annual savings.
type ComparisonResult struct {
	BestMunicipality string                   `json:"mejor_municipio"`
	Rankings         []MunicipalityComparison `json:"ranking"`
}
