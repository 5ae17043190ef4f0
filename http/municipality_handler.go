package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"ahorro-energia/domain"
	"ahorro-energia/service"
)

type MunicipalityHandler struct {
	service *service.MunicipalityService
	logger  zerolog.Logger
}

type createMunicipalityResponse struct {
	Municipality domain.Municipality `json:"municipio"`
	DerivedField service.LinkedField `json:"campo_derivado"`
}

type listMunicipalitiesResponse struct {
	Keys           []string              `json:"claves"`
	Municipalities []domain.Municipality `json:"municipios"`
}

func NewMunicipalityHandler(service *service.MunicipalityService, logger zerolog.Logger) *MunicipalityHandler {
	return &MunicipalityHandler{service: service, logger: logger}
}

// Collection serves GET (list) and POST (register) on /municipios.
func (h *MunicipalityHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *MunicipalityHandler) List(w http.ResponseWriter, _ *http.Request) {
	list := h.service.List()
	keys := make([]string, 0, len(list))
	for _, m := range list {
		keys = append(keys, m.Key)
	}
	writeJSON(w, h.logger, http.StatusOK, listMunicipalitiesResponse{Keys: keys, Municipalities: list})
}

func (h *MunicipalityHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	key := r.PathValue("clave")
	m, ok := h.service.Lookup(key)
	if !ok {
		writeError(w, h.logger, service.ErrMunicipalityNotFound)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, m)
}

func (h *MunicipalityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.NewMunicipalityInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, h.logger, err)
		return
	}

	m, err := h.service.DeriveAndInsert(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	derived, _ := service.MissingLinkedField(input)
	writeJSON(w, h.logger, http.StatusCreated, createMunicipalityResponse{
		Municipality: m,
		DerivedField: derived,
	})
}
