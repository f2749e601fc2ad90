package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
)

// LoginHistoryRepository implementa repositories.LoginHistoryRepository
type LoginHistoryRepository struct {
	db *gorm.DB
}

// NewLoginHistoryRepository cria um novo LoginHistoryRepository
func NewLoginHistoryRepository(db *gorm.DB) repositories.LoginHistoryRepository {
	return &LoginHistoryRepository{db: db}
}

func (r *LoginHistoryRepository) Create(ctx context.Context, entry *entities.LoginHistory) error {
	model := &LoginHistoryModel{
		UserID:    entry.UserID,
		LoginTime: entry.LoginTime.UnixMilli(),
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("record login of user %d: %w", entry.UserID, err)
	}

	entry.ID = model.ID
	return nil
}

// Recent retorna os últimos logins do usuário, mais recente primeiro
func (r *LoginHistoryRepository) Recent(ctx context.Context, userID uint, limit int) ([]*entities.LoginHistory, error) {
	var models []*LoginHistoryModel

	err := dbFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("login_time DESC").
		Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("recent logins of user %d: %w", userID, err)
	}

	entries := make([]*entities.LoginHistory, 0, len(models))
	for _, m := range models {
		entries = append(entries, &entities.LoginHistory{
			ID:        m.ID,
			UserID:    m.UserID,
			LoginTime: time.UnixMilli(m.LoginTime),
			IPAddress: m.IPAddress,
			UserAgent: m.UserAgent,
		})
	}
	return entries, nil
}
