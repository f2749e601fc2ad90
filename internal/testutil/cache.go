package testutil

import (
	"context"
	"slices"
	"sync"
)

// MemoryAbilityCache é um AbilityCache em memória que conta os acertos
type MemoryAbilityCache struct {
	mu      sync.Mutex
	entries map[uint][]string
	Hits    int
}

func NewMemoryAbilityCache() *MemoryAbilityCache {
	return &MemoryAbilityCache{entries: make(map[uint][]string)}
}

func (c *MemoryAbilityCache) Get(_ context.Context, userID uint) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	abilities, ok := c.entries[userID]
	if ok {
		c.Hits++
	}
	return slices.Clone(abilities), ok, nil
}

func (c *MemoryAbilityCache) Set(_ context.Context, userID uint, abilities []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = slices.Clone(abilities)
	return nil
}

func (c *MemoryAbilityCache) Invalidate(_ context.Context, userIDs ...uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range userIDs {
		delete(c.entries, id)
	}
	return nil
}

func (c *MemoryAbilityCache) InvalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[uint][]string)
	return nil
}

// Has indica se há entrada para o usuário
func (c *MemoryAbilityCache) Has(userID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[userID]
	return ok
}
