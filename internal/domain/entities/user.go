package entities

import (
	"errors"
	"time"

	"github.com/rafabene/avantpro-admin/internal/domain/valueobjects"
)

// RootUserID é o usuário raiz criado pelo seed; nunca pode ser removido
const RootUserID uint = 1

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
type User struct {
	ID           uint
	Email        valueobjects.Email
	Name         string
	PasswordHash string
	Phone        string
	Address      string
	City         string
	State        string
	Country      string
	PostalCode   string
	Avatar       string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsRoot verifica se é o usuário raiz
func (u *User) IsRoot() bool {
	return u.ID == RootUserID
}

// Identity retorna a identidade do usuário para uso nas verificações de acesso
func (u *User) Identity() Identity {
	return Identity{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email.String(),
	}
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.IsZero() {
		return errors.New("email is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	if len(u.Name) < 2 {
		return errors.New("name must be at least 2 characters")
	}

	return nil
}

// IsProtectedUser indica se o usuário id não pode ser removido por actorID:
// o usuário raiz e o próprio usuário autenticado
func IsProtectedUser(id, actorID uint) bool {
	return id == RootUserID || id == actorID
}
