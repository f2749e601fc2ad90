package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
)

// AssignmentRepository implementa repositories.AssignmentRepository
// escrevendo diretamente nas tabelas de associação
type AssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository cria um novo AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// SyncUserRoles substitui todos os roles do usuário por roleIDs.
// Deve rodar dentro de uma transação para não deixar o usuário sem roles
// em caso de falha no insert.
func (r *AssignmentRepository) SyncUserRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("user_id = ?", userID).Delete(&UserRoleModel{}).Error; err != nil {
		return fmt.Errorf("clear roles of user %d: %w", userID, err)
	}

	rows := make([]UserRoleModel, 0, len(roleIDs))
	for _, roleID := range uniqueIDs(roleIDs) {
		rows = append(rows, UserRoleModel{UserID: userID, RoleID: roleID})
	}
	if len(rows) == 0 {
		return nil
	}

	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("assign roles to user %d: %w", userID, err)
	}
	return nil
}

// SyncRolePermissions substitui todas as permissões do role
func (r *AssignmentRepository) SyncRolePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("role_id = ?", roleID).Delete(&RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("clear permissions of role %d: %w", roleID, err)
	}

	rows := make([]RolePermissionModel, 0, len(permissionIDs))
	for _, permissionID := range uniqueIDs(permissionIDs) {
		rows = append(rows, RolePermissionModel{RoleID: roleID, PermissionID: permissionID})
	}
	if len(rows) == 0 {
		return nil
	}

	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("assign permissions to role %d: %w", roleID, err)
	}
	return nil
}

func (r *AssignmentRepository) RolesOfUser(ctx context.Context, userID uint) ([]*entities.Role, error) {
	var models []*RoleModel

	err := dbFromContext(ctx, r.db).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("roles of user %d: %w", userID, err)
	}

	return toRoleEntities(models), nil
}

func (r *AssignmentRepository) RoleNamesOfUsers(ctx context.Context, userIDs []uint) (map[uint][]string, error) {
	result := make(map[uint][]string, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		UserID uint
		Name   string
	}
	err := dbFromContext(ctx, r.db).
		Table("user_roles").
		Select("user_roles.user_id, roles.name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id IN ?", userIDs).
		Order("user_roles.user_id").
		Order("roles.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("role names of users: %w", err)
	}

	for _, row := range rows {
		result[row.UserID] = append(result[row.UserID], row.Name)
	}
	return result, nil
}

func (r *AssignmentRepository) PermissionNamesOfRole(ctx context.Context, roleID uint) ([]string, error) {
	names := []string{}

	err := dbFromContext(ctx, r.db).
		Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.id").
		Pluck("permissions.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("permissions of role %d: %w", roleID, err)
	}

	return names, nil
}

func (r *AssignmentRepository) UsersOfRole(ctx context.Context, roleID uint) ([]*entities.User, error) {
	var models []*UserModel

	err := dbFromContext(ctx, r.db).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role_id = ?", roleID).
		Order("users.id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("users of role %d: %w", roleID, err)
	}

	return toUserEntities(models)
}

func (r *AssignmentRepository) UserIDsOfRole(ctx context.Context, roleID uint) ([]uint, error) {
	ids := []uint{}

	if err := dbFromContext(ctx, r.db).Model(&UserRoleModel{}).Where("role_id = ?", roleID).Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("user ids of role %d: %w", roleID, err)
	}

	return ids, nil
}

func (r *AssignmentRepository) CountUsersOfRoles(ctx context.Context, roleIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(roleIDs))
	if len(roleIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		RoleID uint
		Total  int64
	}
	err := dbFromContext(ctx, r.db).
		Model(&UserRoleModel{}).
		Select("role_id, COUNT(*) AS total").
		Where("role_id IN ?", roleIDs).
		Group("role_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count users of roles: %w", err)
	}

	for _, row := range rows {
		result[row.RoleID] = row.Total
	}
	return result, nil
}

func (r *AssignmentRepository) AbilitiesOfUser(ctx context.Context, userID uint) ([]string, error) {
	names := []string{}

	err := dbFromContext(ctx, r.db).
		Table("permissions").
		Distinct("permissions.name").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("permissions.name").
		Pluck("permissions.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("abilities of user %d: %w", userID, err)
	}

	return names, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
