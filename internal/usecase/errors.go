package usecase

import (
	"errors"

	"github.com/atumia/atumia-core/internal/entity"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// IsSchemaDrift diz se o erro é o sinal de banco não migrado. É a única
// condição que os usecases deixam subir sem disfarce.
func IsSchemaDrift(err error) bool {
	return errors.Is(err, entity.ErrDatabaseNotInitialized)
}
