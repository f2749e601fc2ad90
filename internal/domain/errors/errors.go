package errors

import "errors"

// Erros de negócio. O texto de cada um é a chave de tradução usada na
// mensagem flash ou no problema (locales/*.json).
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrRoleNotFound       = errors.New("error.role_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrRoleNameTaken      = errors.New("error.role_name_taken")
	ErrInvalidRoleName    = errors.New("error.invalid_role_name")
	ErrUnknownPermission  = errors.New("error.unknown_permission")
	ErrUnknownRole        = errors.New("error.unknown_role")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrInactiveUser       = errors.New("error.inactive_user")
	ErrUnauthorized       = errors.New("error.unauthorized")
	ErrProtectedEntity    = errors.New("error.protected_entity")
)

// Value objects
var (
	ErrInvalidEmail   = errors.New("error.invalid_email")
	ErrInvalidAbility = errors.New("error.invalid_ability")
)

// Caminhos dos tipos de problema RFC 7807, prefixados por API_BASE_URL
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewPersistenceError embrulha uma falha do banco de dados.
// A mensagem exibida ao usuário é a do erro original.
func NewPersistenceError(op string, err error) *DomainError {
	return &DomainError{
		Type:    ProblemTypeInternal,
		Title:   "error.persistence",
		Message: op,
		Err:     err,
	}
}

// IsValidation indica se o erro é uma recusa de validação de entrada
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrRoleNameTaken) ||
		errors.Is(err, ErrInvalidRoleName) ||
		errors.Is(err, ErrUnknownPermission) ||
		errors.Is(err, ErrUnknownRole) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidAbility)
}

// IsNotFound indica se o erro é de recurso inexistente
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrRoleNotFound)
}
