package services

import (
	"errors"

	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
)

// persistenceFailure preserva erros de negócio e embrulha o resto como
// falha de persistência da operação op
func persistenceFailure(op string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *domainerrors.DomainError
	if errors.As(err, &domainErr) ||
		domainerrors.IsValidation(err) ||
		domainerrors.IsNotFound(err) ||
		errors.Is(err, domainerrors.ErrProtectedEntity) {
		return err
	}

	return domainerrors.NewPersistenceError(op, err)
}
