package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"ahorro-energia/domain"
	"ahorro-energia/service"
)

type SavingsHandler struct {
	savings    *service.SavingsService
	comparison *service.ComparisonService
	logger     zerolog.Logger
}

func NewSavingsHandler(
	savings *service.SavingsService,
	comparison *service.ComparisonService,
	logger zerolog.Logger,
) *SavingsHandler {
	return &SavingsHandler{savings: savings, comparison: comparison, logger: logger}
}

func (h *SavingsHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var input domain.SavingsInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, h.logger, err)
		return
	}

	report, err := h.savings.Calculate(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, report)
}

// Estimate answers the "Estimado: ..." hint for a single typed value.
func (h *SavingsHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var input domain.SavingsInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, h.logger, err)
		return
	}

	estimate, err := h.savings.Estimate(input.MunicipalityKey, input.ConsumptionKwh, input.Cost)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, estimate)
}

func (h *SavingsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var input domain.SavingsInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.comparison.Compare(input.ConsumptionKwh, input.Cost)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
