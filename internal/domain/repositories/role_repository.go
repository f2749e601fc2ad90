package repositories

import (
	"context"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
)

// RoleRepository define a interface para persistência de roles
type RoleRepository interface {
	Create(ctx context.Context, role *entities.Role) error
	FindByID(ctx context.Context, id uint) (*entities.Role, error)
	FindByName(ctx context.Context, name string) (*entities.Role, error)
	FindByNames(ctx context.Context, names []string) ([]*entities.Role, error)
	Update(ctx context.Context, role *entities.Role) error
	Delete(ctx context.Context, id uint) error
	// List busca por nome, mais recentes primeiro, sem os ids de exclude
	List(ctx context.Context, query ListQuery, exclude ...uint) (Page[*entities.Role], error)
	// All retorna os roles ordenados por id, sem os ids de exclude
	All(ctx context.Context, exclude ...uint) ([]*entities.Role, error)
	Count(ctx context.Context, exclude ...uint) (int64, error)
}

// PermissionRepository lê o catálogo de permissões (populado pelo seed)
type PermissionRepository interface {
	Groups(ctx context.Context) ([]*entities.PermissionGroup, error)
	FindByNames(ctx context.Context, names []string) ([]*entities.Permission, error)
	Names(ctx context.Context) ([]string, error)
}

// AssignmentRepository mantém as tabelas de associação user_roles e
// role_permissions. Sync* substituem o conjunto inteiro.
type AssignmentRepository interface {
	SyncUserRoles(ctx context.Context, userID uint, roleIDs []uint) error
	SyncRolePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error
	RolesOfUser(ctx context.Context, userID uint) ([]*entities.Role, error)
	// RoleNamesOfUsers retorna os nomes dos roles de cada usuário, ordenados por id do role
	RoleNamesOfUsers(ctx context.Context, userIDs []uint) (map[uint][]string, error)
	PermissionNamesOfRole(ctx context.Context, roleID uint) ([]string, error)
	UsersOfRole(ctx context.Context, roleID uint) ([]*entities.User, error)
	UserIDsOfRole(ctx context.Context, roleID uint) ([]uint, error)
	CountUsersOfRoles(ctx context.Context, roleIDs []uint) (map[uint]int64, error)
	// AbilitiesOfUser une as permissões de todos os roles do usuário
	AbilitiesOfUser(ctx context.Context, userID uint) ([]string, error)
}
