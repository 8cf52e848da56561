package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/set-night/sofia/internal/domain"
)

// DBTX is the subset of pgxpool.Pool used by the repositories.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SettingsRepository stores chat settings in Postgres.
type SettingsRepository struct {
	db DBTX
}

func NewSettingsRepository(db DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const getSettings = `
SELECT chat_id, language, updated_at
FROM chat_settings
WHERE chat_id = $1`

func (r *SettingsRepository) Get(ctx context.Context, chatID int64) (*domain.ChatSettings, error) {
	var (
		s    domain.ChatSettings
		lang string
	)
	err := r.db.QueryRow(ctx, getSettings, chatID).Scan(&s.ChatID, &lang, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get chat settings: %w", err)
	}

	s.Language, err = domain.ParseLanguage(lang)
	if err != nil {
		return nil, fmt.Errorf("chat %d: %w", chatID, err)
	}
	return &s, nil
}

const upsertSettings = `
INSERT INTO chat_settings (chat_id, language)
VALUES ($1, $2)
ON CONFLICT (chat_id) DO UPDATE
SET language = EXCLUDED.language, updated_at = now()`

func (r *SettingsRepository) Upsert(ctx context.Context, s *domain.ChatSettings) error {
	if _, err := r.db.Exec(ctx, upsertSettings, s.ChatID, string(s.Language)); err != nil {
		return fmt.Errorf("upsert chat settings: %w", err)
	}
	return nil
}
