package service

import "errors"

// ErrorKind is the stable, machine-readable category of an Error.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindArithmetic ErrorKind = "arithmetic"
	KindNotFound   ErrorKind = "not_found"
)

// Error is returned by every service operation that rejects its input.
// Reason is meant for the end user.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

var (
	ErrMunicipalityRequired = &Error{KindValidation, "por favor selecciona un municipio"}
	ErrMunicipalityNotFound = &Error{KindNotFound, "municipio no encontrado"}
	ErrMunicipalityExists   = &Error{KindValidation, "el municipio ya existe"}
	ErrInvalidName          = &Error{KindValidation, "nombre de municipio inválido"}
	ErrLinkedFieldCount     = &Error{KindValidation, "debes ingresar exactamente dos de los tres campos: consumo, costo y tarifa"}
	ErrInvalidAmount        = &Error{KindValidation, "valor inválido: debe ser un número positivo"}
	ErrInvalidSavings       = &Error{KindValidation, "el porcentaje de ahorro debe estar entre 0 y 100"}
	ErrDerivedNotPositive   = &Error{KindValidation, "el valor calculado se redondea a cero"}
	ErrAmountOutOfRange     = &Error{KindValidation, "valor fuera del rango permitido"}
	ErrNonPositiveRate      = &Error{KindArithmetic, "la tarifa por kWh debe ser mayor que cero"}
	ErrNoMunicipalities     = &Error{KindNotFound, "no hay municipios registrados"}
)

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
