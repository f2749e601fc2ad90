package ports

import "context"

// AbilityCache guarda o conjunto de habilidades resolvido de cada usuário
type AbilityCache interface {
	// Get retorna (abilities, true, nil) em hit e (nil, false, nil) em miss
	Get(ctx context.Context, userID uint) ([]string, bool, error)
	Set(ctx context.Context, userID uint, abilities []string) error
	Invalidate(ctx context.Context, userIDs ...uint) error
	InvalidateAll(ctx context.Context) error
}
