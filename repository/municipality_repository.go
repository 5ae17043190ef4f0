package repository

import (
	"errors"

	"ahorro-energia/domain"
)

var (
	ErrDuplicateKey = errors.New("clave de municipio duplicada")
	ErrEmptyKey     = errors.New("clave de municipio vacía")
)

type MunicipalityRepository interface {
	Get(key string) (domain.Municipality, bool)
	Keys() []string
	List() []domain.Municipality
	Insert(m domain.Municipality) error
}
