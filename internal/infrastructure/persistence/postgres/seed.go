package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/domain/ports"
)

// SeedGroup é um grupo de permissões criado pelo seed
type SeedGroup struct {
	Name        string
	Permissions []string
}

// DefaultPermissionGroups é o catálogo de habilidades do módulo administrativo
var DefaultPermissionGroups = []SeedGroup{
	{Name: "Role management", Permissions: []string{"role.index", "role.create", "role.edit", "role.delete"}},
	{Name: "User management", Permissions: []string{"user.index", "user.create", "user.edit", "user.delete"}},
}

// SeedOptions configura o usuário raiz
type SeedOptions struct {
	RootName     string
	RootEmail    string
	RootPassword string
	Avatar       string
	Groups       []SeedGroup
}

// Seed popula permissões, os roles reservados (1 e 2) e o usuário raiz.
// É idempotente: registros existentes são mantidos.
func Seed(ctx context.Context, db *gorm.DB, hasher ports.PasswordHasher, opts SeedOptions) error {
	if opts.Groups == nil {
		opts.Groups = DefaultPermissionGroups
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		permissionIDs, err := seedPermissions(tx, opts.Groups)
		if err != nil {
			return err
		}

		reserved := []RoleModel{
			{ID: entities.RootRoleID, Name: "Super Admin"},
			{ID: entities.AdminRoleID, Name: "Admin"},
		}
		for i := range reserved {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&reserved[i]).Error; err != nil {
				return fmt.Errorf("seed role %s: %w", reserved[i].Name, err)
			}
			for _, permissionID := range permissionIDs {
				row := RolePermissionModel{RoleID: reserved[i].ID, PermissionID: permissionID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
					return fmt.Errorf("seed permissions of role %s: %w", reserved[i].Name, err)
				}
			}
		}

		if err := seedRootUser(tx, hasher, opts); err != nil {
			return err
		}

		return resetSequences(tx, "roles", "users")
	})
}

func seedPermissions(tx *gorm.DB, groups []SeedGroup) ([]uint, error) {
	var ids []uint

	for _, g := range groups {
		group := PermissionGroupModel{Name: g.Name}
		if err := tx.Where(PermissionGroupModel{Name: g.Name}).FirstOrCreate(&group).Error; err != nil {
			return nil, fmt.Errorf("seed permission group %s: %w", g.Name, err)
		}

		for _, name := range g.Permissions {
			permission := PermissionModel{Name: name, PermissionGroupID: group.ID}
			if err := tx.Where(PermissionModel{Name: name}).FirstOrCreate(&permission).Error; err != nil {
				return nil, fmt.Errorf("seed permission %s: %w", name, err)
			}
			ids = append(ids, permission.ID)
		}
	}

	return ids, nil
}

func seedRootUser(tx *gorm.DB, hasher ports.PasswordHasher, opts SeedOptions) error {
	var existing UserModel
	err := tx.Where("id = ?", entities.RootUserID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find root user: %w", err)
	}

	hash, err := hasher.Hash(opts.RootPassword)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	root := UserModel{
		ID:           entities.RootUserID,
		Name:         opts.RootName,
		Email:        opts.RootEmail,
		PasswordHash: hash,
		Avatar:       opts.Avatar,
		IsActive:     true,
	}
	if err := tx.Create(&root).Error; err != nil {
		return fmt.Errorf("seed root user: %w", err)
	}

	link := UserRoleModel{UserID: entities.RootUserID, RoleID: entities.RootRoleID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		return fmt.Errorf("assign root role: %w", err)
	}
	return nil
}

// resetSequences avança as sequences do PostgreSQL depois de inserir ids explícitos
func resetSequences(tx *gorm.DB, tables ...string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}

	for _, table := range tables {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
			table, table,
		)
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("reset sequence of %s: %w", table, err)
		}
	}
	return nil
}
