package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/set-night/sofia/internal/domain"
)

// SettingsStore persists per-chat preferences.
type SettingsStore interface {
	Get(ctx context.Context, chatID int64) (*domain.ChatSettings, error)
	Upsert(ctx context.Context, settings *domain.ChatSettings) error
}

type SettingsService struct {
	store       SettingsStore
	defaultLang domain.Language
}

func NewSettingsService(store SettingsStore, defaultLang domain.Language) *SettingsService {
	return &SettingsService{store: store, defaultLang: defaultLang}
}

// Language returns the stored language of a chat, or the default one when the
// chat has no settings yet or the store is unavailable.
func (s *SettingsService) Language(ctx context.Context, chatID int64) domain.Language {
	settings, err := s.store.Get(ctx, chatID)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingsNotFound) {
			slog.Error("load chat settings", "chat_id", chatID, "error", err)
		}
		return s.defaultLang
	}
	return settings.Language
}

func (s *SettingsService) SetLanguage(ctx context.Context, chatID int64, lang domain.Language) error {
	if err := s.store.Upsert(ctx, &domain.ChatSettings{ChatID: chatID, Language: lang}); err != nil {
		return fmt.Errorf("save chat settings: %w", err)
	}
	return nil
}
