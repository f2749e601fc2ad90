package entities

import (
	"strings"
	"time"

	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
)

// Roles reservados pelo seed
const (
	RootRoleID  uint = 1
	AdminRoleID uint = 2
)

// NoRoleLabel é exibido na listagem de usuários sem nenhum role atribuído
const NoRoleLabel = "no role"

// Role representa um papel atribuível a usuários
type Role struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot verifica se é o role raiz, escondido das listagens e formulários
func (r *Role) IsRoot() bool {
	return r.ID == RootRoleID
}

// Validate exige nome não vazio depois de remover os espaços
func (r *Role) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return domainerrors.ErrInvalidRoleName
	}
	return nil
}

// IsProtectedRole indica se o role não pode ser removido
func IsProtectedRole(id uint) bool {
	return id == RootRoleID || id == AdminRoleID
}

// Permission representa uma habilidade verificada pelo gate.
// O nome é o próprio identificador da habilidade (ex: "user.index").
type Permission struct {
	ID                uint
	Name              string
	PermissionGroupID uint
	CreatedAt         time.Time
}

// PermissionGroup agrupa permissões para exibição nos formulários
type PermissionGroup struct {
	ID          uint
	Name        string
	Permissions []Permission
}
