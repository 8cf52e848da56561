package handler

import (
	"context"

	"github.com/go-telegram/bot"

	"github.com/set-night/sofia/internal/config"
	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/metrics"
	"github.com/set-night/sofia/internal/middleware"
	"github.com/set-night/sofia/internal/service"
	"github.com/set-night/sofia/internal/telegram"
)

// Asker answers one prompt. Implemented by service.ChatService.
type Asker interface {
	Ask(ctx context.Context, prompt string, lang domain.Language, file *domain.InlineFile) domain.Answer
}

// Synthesizer turns text into raw PCM. Implemented by service.SpeechService.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) []byte
}

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot      *bot.Bot
	cfg      *config.Config
	sessions *service.SessionService
	chat     Asker
	speech   Synthesizer
	metrics  *metrics.Metrics
	tgLogger *telegram.TelegramLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Cfg      *config.Config
	Sessions *service.SessionService
	Chat     Asker
	Speech   Synthesizer
	Metrics  *metrics.Metrics
	TgLogger *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:      deps.Bot,
		cfg:      deps.Cfg,
		sessions: deps.Sessions,
		chat:     deps.Chat,
		speech:   deps.Speech,
		metrics:  deps.Metrics,
		tgLogger: deps.TgLogger,
	}
}

// language returns the session language loaded by the middleware, opening the
// session when the middleware did not run.
func (h *Handler) language(ctx context.Context, chatID int64) domain.Language {
	if sess := middleware.GetSession(ctx); sess != nil && sess.ChatID == chatID {
		return sess.Language
	}
	return h.sessions.Open(ctx, chatID).Language
}
