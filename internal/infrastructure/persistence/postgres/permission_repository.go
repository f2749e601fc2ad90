package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
)

// PermissionRepository implementa repositories.PermissionRepository
type PermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository cria um novo PermissionRepository
func NewPermissionRepository(db *gorm.DB) repositories.PermissionRepository {
	return &PermissionRepository{db: db}
}

// Groups retorna todos os grupos com suas permissões aninhadas
func (r *PermissionRepository) Groups(ctx context.Context) ([]*entities.PermissionGroup, error) {
	db := dbFromContext(ctx, r.db)

	var groupModels []*PermissionGroupModel
	if err := db.Order("id").Find(&groupModels).Error; err != nil {
		return nil, fmt.Errorf("list permission groups: %w", err)
	}

	var permissionModels []*PermissionModel
	if err := db.Order("id").Find(&permissionModels).Error; err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}

	byGroup := make(map[uint][]entities.Permission, len(groupModels))
	for _, p := range permissionModels {
		byGroup[p.PermissionGroupID] = append(byGroup[p.PermissionGroupID], *toPermissionEntity(p))
	}

	groups := make([]*entities.PermissionGroup, 0, len(groupModels))
	for _, g := range groupModels {
		permissions := byGroup[g.ID]
		if permissions == nil {
			permissions = []entities.Permission{}
		}
		groups = append(groups, &entities.PermissionGroup{
			ID:          g.ID,
			Name:        g.Name,
			Permissions: permissions,
		})
	}

	return groups, nil
}

func (r *PermissionRepository) FindByNames(ctx context.Context, names []string) ([]*entities.Permission, error) {
	if len(names) == 0 {
		return []*entities.Permission{}, nil
	}

	var models []*PermissionModel
	if err := dbFromContext(ctx, r.db).Where("name IN ?", names).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find permissions by name: %w", err)
	}

	permissions := make([]*entities.Permission, 0, len(models))
	for _, m := range models {
		permissions = append(permissions, toPermissionEntity(m))
	}
	return permissions, nil
}

func (r *PermissionRepository) Names(ctx context.Context) ([]string, error) {
	var names []string
	if err := dbFromContext(ctx, r.db).Model(&PermissionModel{}).Order("id").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list permission names: %w", err)
	}
	return names, nil
}

func toPermissionEntity(model *PermissionModel) *entities.Permission {
	return &entities.Permission{
		ID:                model.ID,
		Name:              model.Name,
		PermissionGroupID: model.PermissionGroupID,
		CreatedAt:         time.UnixMilli(model.CreatedAt),
	}
}
