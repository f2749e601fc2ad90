package services

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
)

// AuthorizationService responde se uma identidade possui uma habilidade.
// As habilidades de cada usuário são a união das permissões dos seus roles.
type AuthorizationService struct {
	assignments repositories.AssignmentRepository
	permissions repositories.PermissionRepository
	cache       ports.AbilityCache
	logger      ports.Logger
}

// NewAuthorizationService cria um novo AuthorizationService
func NewAuthorizationService(
	assignments repositories.AssignmentRepository,
	permissions repositories.PermissionRepository,
	cache ports.AbilityCache,
	logger ports.Logger,
) *AuthorizationService {
	return &AuthorizationService{
		assignments: assignments,
		permissions: permissions,
		cache:       cache,
		logger:      logger,
	}
}

// Abilities retorna as habilidades do usuário, usando o cache quando possível.
// Falhas do cache não impedem a consulta ao banco.
func (s *AuthorizationService) Abilities(ctx context.Context, userID uint) ([]string, error) {
	abilities, ok, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("ability cache read failed", "user_id", userID, "error", err)
	}
	if ok {
		return abilities, nil
	}

	abilities, err = s.assignments.AbilitiesOfUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userID, abilities); err != nil {
		s.logger.Warn("ability cache write failed", "user_id", userID, "error", err)
	}

	return abilities, nil
}

// Authorize verifica se identity possui ability
func (s *AuthorizationService) Authorize(ctx context.Context, identity entities.Identity, ability string) (bool, error) {
	if identity.IsZero() {
		return false, nil
	}

	abilities, err := s.Abilities(ctx, identity.UserID)
	if err != nil {
		return false, err
	}

	return slices.Contains(abilities, ability), nil
}

// VerifyRegistered garante que todas as habilidades usadas nas rotas
// existem como permissões cadastradas
func (s *AuthorizationService) VerifyRegistered(ctx context.Context, abilities []string) error {
	names, err := s.permissions.Names(ctx)
	if err != nil {
		return err
	}

	var missing []string
	for _, ability := range abilities {
		if !slices.Contains(names, ability) {
			missing = append(missing, ability)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("abilities not registered as permissions: %v", missing)
	}
	return nil
}
