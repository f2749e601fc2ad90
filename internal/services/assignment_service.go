package services

import (
	"context"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
	"github.com/rafabene/avantpro-admin/internal/domain/valueobjects"
)

// AssignmentService associa roles a usuários e permissões a roles pelo nome.
// Sync* substituem o conjunto inteiro; o que não for enviado é revogado.
type AssignmentService struct {
	roles       repositories.RoleRepository
	permissions repositories.PermissionRepository
	assignments repositories.AssignmentRepository
	cache       ports.AbilityCache
	logger      ports.Logger
}

// NewAssignmentService cria um novo AssignmentService
func NewAssignmentService(
	roles repositories.RoleRepository,
	permissions repositories.PermissionRepository,
	assignments repositories.AssignmentRepository,
	cache ports.AbilityCache,
	logger ports.Logger,
) *AssignmentService {
	return &AssignmentService{
		roles:       roles,
		permissions: permissions,
		assignments: assignments,
		cache:       cache,
		logger:      logger,
	}
}

// AssignRole acrescenta o role roleName aos roles do usuário
func (s *AssignmentService) AssignRole(ctx context.Context, userID uint, roleName string) error {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return err
	}
	if role == nil || !assignable(userID, role) {
		return domainerrors.ErrUnknownRole
	}

	current, err := s.assignments.RolesOfUser(ctx, userID)
	if err != nil {
		return err
	}

	ids := make([]uint, 0, len(current)+1)
	for _, r := range current {
		ids = append(ids, r.ID)
	}
	ids = append(ids, role.ID)

	return s.assignments.SyncUserRoles(ctx, userID, ids)
}

// SyncRoles faz os roles do usuário serem exatamente roleNames
func (s *AssignmentService) SyncRoles(ctx context.Context, userID uint, roleNames []string) error {
	names := uniqueStrings(roleNames)

	roles, err := s.roles.FindByNames(ctx, names)
	if err != nil {
		return err
	}
	if len(roles) != len(names) {
		return domainerrors.ErrUnknownRole
	}

	ids := make([]uint, len(roles))
	for i, r := range roles {
		if !assignable(userID, r) {
			return domainerrors.ErrUnknownRole
		}
		ids[i] = r.ID
	}

	return s.assignments.SyncUserRoles(ctx, userID, ids)
}

// SyncPermissions faz as permissões do role serem exatamente permissionNames
func (s *AssignmentService) SyncPermissions(ctx context.Context, roleID uint, permissionNames []string) error {
	names := uniqueStrings(permissionNames)
	for _, name := range names {
		if !valueobjects.IsValidAbility(name) {
			return domainerrors.ErrInvalidAbility
		}
	}

	permissions, err := s.permissions.FindByNames(ctx, names)
	if err != nil {
		return err
	}
	if len(permissions) != len(names) {
		return domainerrors.ErrUnknownPermission
	}

	ids := make([]uint, len(permissions))
	for i, p := range permissions {
		ids[i] = p.ID
	}

	return s.assignments.SyncRolePermissions(ctx, roleID, ids)
}

// PermissionsOf retorna os nomes das permissões do role
func (s *AssignmentService) PermissionsOf(ctx context.Context, roleID uint) ([]string, error) {
	return s.assignments.PermissionNamesOfRole(ctx, roleID)
}

// UsersOf retorna os usuários que possuem o role
func (s *AssignmentService) UsersOf(ctx context.Context, roleID uint) ([]*entities.User, error) {
	return s.assignments.UsersOfRole(ctx, roleID)
}

// RolesOf retorna os roles do usuário
func (s *AssignmentService) RolesOf(ctx context.Context, userID uint) ([]*entities.Role, error) {
	return s.assignments.RolesOfUser(ctx, userID)
}

// ForgetUsers descarta as habilidades em cache dos usuários.
// Chamado depois do commit para não repopular o cache com dados antigos.
func (s *AssignmentService) ForgetUsers(ctx context.Context, userIDs ...uint) {
	if err := s.cache.Invalidate(ctx, userIDs...); err != nil {
		s.logger.Warn("ability cache invalidation failed", "user_ids", userIDs, "error", err)
	}
}

// assignable diz se o role pode ser dado ao usuário por aqui. O role raiz
// só pertence ao usuário raiz; o seed o atribui direto no repositório.
func assignable(userID uint, role *entities.Role) bool {
	return !role.IsRoot() || userID == entities.RootUserID
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
