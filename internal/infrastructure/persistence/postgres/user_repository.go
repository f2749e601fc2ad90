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
	"github.com/rafabene/avantpro-admin/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := toUserModel(user)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	user.ID = model.ID
	user.CreatedAt = time.UnixMilli(model.CreatedAt)
	user.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var model UserModel

	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}

	return toUserEntity(&model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	if err := dbFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return toUserEntity(&model)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := toUserModel(user)

	// Select("*") grava também os campos zerados (is_active=false, telefone vazio)
	err := dbFromContext(ctx, r.db).
		Model(&UserModel{ID: user.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}

	user.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

// Delete remove o usuário e suas associações com roles
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("user_id = ?", id).Delete(&UserRoleModel{}).Error; err != nil {
		return fmt.Errorf("delete roles of user %d: %w", id, err)
	}
	if err := db.Where("user_id = ?", id).Delete(&LoginHistoryModel{}).Error; err != nil {
		return fmt.Errorf("delete login history of user %d: %w", id, err)
	}

	result := db.Delete(&UserModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, q repositories.ListQuery) (repositories.Page[*entities.User], error) {
	var models []*UserModel

	query := dbFromContext(ctx, r.db).
		Model(&UserModel{}).
		Scopes(searchScope(q.Search, "name", "email"))

	total, err := paginate(query, q, &models)
	if err != nil {
		return repositories.Page[*entities.User]{}, fmt.Errorf("list users: %w", err)
	}

	users, err := toUserEntities(models)
	if err != nil {
		return repositories.Page[*entities.User]{}, err
	}

	return repositories.Page[*entities.User]{
		Items:       users,
		Total:       total,
		CurrentPage: q.Page,
		PerPage:     q.Limit,
	}, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := dbFromContext(ctx, r.db).Model(&UserModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

// Conversores
func toUserModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email.String(),
		PasswordHash: user.PasswordHash,
		Phone:        user.Phone,
		Address:      user.Address,
		City:         user.City,
		State:        user.State,
		Country:      user.Country,
		PostalCode:   user.PostalCode,
		Avatar:       user.Avatar,
		IsActive:     user.IsActive,
	}
}

func toUserEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", model.ID, err)
	}

	return &entities.User{
		ID:           model.ID,
		Email:        email,
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		Phone:        model.Phone,
		Address:      model.Address,
		City:         model.City,
		State:        model.State,
		Country:      model.Country,
		PostalCode:   model.PostalCode,
		Avatar:       model.Avatar,
		IsActive:     model.IsActive,
		CreatedAt:    time.UnixMilli(model.CreatedAt),
		UpdatedAt:    time.UnixMilli(model.UpdatedAt),
	}, nil
}

func toUserEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		user, err := toUserEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}
