package repositories

import (
	"context"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Find* retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uint) error
	// List busca por nome ou email, mais recentes primeiro
	List(ctx context.Context, query ListQuery) (Page[*entities.User], error)
	Count(ctx context.Context) (int64, error)
}

// LoginHistoryRepository registra e consulta logins
type LoginHistoryRepository interface {
	Create(ctx context.Context, entry *entities.LoginHistory) error
	Recent(ctx context.Context, userID uint, limit int) ([]*entities.LoginHistory, error)
}
