package repository

import (
	"context"
	"sync"
	"time"

	"github.com/set-night/sofia/internal/domain"
)

// MemorySettings keeps chat settings for the lifetime of the process. It is
// used when no database is configured.
type MemorySettings struct {
	mu   sync.RWMutex
	data map[int64]domain.ChatSettings
}

func NewMemorySettings() *MemorySettings {
	return &MemorySettings{data: make(map[int64]domain.ChatSettings)}
}

func (m *MemorySettings) Get(_ context.Context, chatID int64) (*domain.ChatSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.data[chatID]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	return &s, nil
}

func (m *MemorySettings) Upsert(_ context.Context, s *domain.ChatSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *s
	stored.UpdatedAt = time.Now()
	m.data[s.ChatID] = stored
	return nil
}
