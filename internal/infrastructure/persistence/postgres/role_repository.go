package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
)

// RoleRepository implementa repositories.RoleRepository
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository cria um novo RoleRepository
func NewRoleRepository(db *gorm.DB) repositories.RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *entities.Role) error {
	model := &RoleModel{ID: role.ID, Name: role.Name}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrRoleNameTaken
		}
		return fmt.Errorf("create role: %w", err)
	}

	role.ID = model.ID
	role.CreatedAt = time.UnixMilli(model.CreatedAt)
	role.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id uint) (*entities.Role, error) {
	var model RoleModel

	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find role %d: %w", id, err)
	}

	return toRoleEntity(&model), nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*entities.Role, error) {
	var model RoleModel

	if err := dbFromContext(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find role by name: %w", err)
	}

	return toRoleEntity(&model), nil
}

func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]*entities.Role, error) {
	if len(names) == 0 {
		return []*entities.Role{}, nil
	}

	var models []*RoleModel
	if err := dbFromContext(ctx, r.db).Where("name IN ?", names).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find roles by name: %w", err)
	}

	return toRoleEntities(models), nil
}

func (r *RoleRepository) Update(ctx context.Context, role *entities.Role) error {
	model := &RoleModel{Name: role.Name}

	err := dbFromContext(ctx, r.db).
		Model(&RoleModel{ID: role.ID}).
		Select("name", "updated_at").
		Updates(model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrRoleNameTaken
		}
		return fmt.Errorf("update role %d: %w", role.ID, err)
	}

	role.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

// Delete remove o role e suas associações com usuários e permissões
func (r *RoleRepository) Delete(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("role_id = ?", id).Delete(&UserRoleModel{}).Error; err != nil {
		return fmt.Errorf("delete users of role %d: %w", id, err)
	}
	if err := db.Where("role_id = ?", id).Delete(&RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("delete permissions of role %d: %w", id, err)
	}

	result := db.Delete(&RoleModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete role %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) List(ctx context.Context, q repositories.ListQuery, exclude ...uint) (repositories.Page[*entities.Role], error) {
	var models []*RoleModel

	query := dbFromContext(ctx, r.db).
		Model(&RoleModel{}).
		Scopes(excludeScope(exclude), searchScope(q.Search, "name"))

	total, err := paginate(query, q, &models)
	if err != nil {
		return repositories.Page[*entities.Role]{}, fmt.Errorf("list roles: %w", err)
	}

	return repositories.Page[*entities.Role]{
		Items:       toRoleEntities(models),
		Total:       total,
		CurrentPage: q.Page,
		PerPage:     q.Limit,
	}, nil
}

func (r *RoleRepository) All(ctx context.Context, exclude ...uint) ([]*entities.Role, error) {
	var models []*RoleModel

	if err := dbFromContext(ctx, r.db).Scopes(excludeScope(exclude)).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("all roles: %w", err)
	}

	return toRoleEntities(models), nil
}

func (r *RoleRepository) Count(ctx context.Context, exclude ...uint) (int64, error) {
	var total int64

	if err := dbFromContext(ctx, r.db).Model(&RoleModel{}).Scopes(excludeScope(exclude)).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}

	return total, nil
}

func toRoleEntity(model *RoleModel) *entities.Role {
	return &entities.Role{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: time.UnixMilli(model.CreatedAt),
		UpdatedAt: time.UnixMilli(model.UpdatedAt),
	}
}

func toRoleEntities(models []*RoleModel) []*entities.Role {
	roles := make([]*entities.Role, 0, len(models))
	for _, model := range models {
		roles = append(roles, toRoleEntity(model))
	}
	return roles
}
