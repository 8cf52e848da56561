package repository

import (
	"context"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sofiaroot "github.com/set-night/sofia"
	"github.com/set-night/sofia/internal/domain"
)

func TestMemorySettings(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySettings()

	_, err := store.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrSettingsNotFound)

	require.NoError(t, store.Upsert(ctx, &domain.ChatSettings{ChatID: 1, Language: domain.LanguageRU}))
	require.NoError(t, store.Upsert(ctx, &domain.ChatSettings{ChatID: 2, Language: domain.LanguagePL}))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageRU, got.Language)
	assert.False(t, got.UpdatedAt.IsZero())

	got.Language = domain.LanguagePL
	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageRU, again.Language, "returned settings are copies")
}

// TestSettingsRepositoryPostgres runs against a real database when
// TEST_DATABASE_URL is set.
func TestSettingsRepositoryPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	migrationsFS, err := fs.Sub(sofiaroot.MigrationsFS, "migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(url, migrationsFS))

	pool, err := NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DELETE FROM chat_settings WHERE chat_id = $1`, int64(-42))
	require.NoError(t, err)

	repo := NewSettingsRepository(pool)

	_, err = repo.Get(ctx, -42)
	assert.ErrorIs(t, err, domain.ErrSettingsNotFound)

	require.NoError(t, repo.Upsert(ctx, &domain.ChatSettings{ChatID: -42, Language: domain.LanguageRU}))
	require.NoError(t, repo.Upsert(ctx, &domain.ChatSettings{ChatID: -42, Language: domain.LanguagePL}))

	got, err := repo.Get(ctx, -42)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguagePL, got.Language)
}
