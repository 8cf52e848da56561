package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/audio"
	"github.com/set-night/sofia/internal/config"
	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/i18n"
	"github.com/set-night/sofia/internal/telegram"
)

// handleListen synthesizes an assistant message and sends it as a WAV file.
// Synthesis failures are silent: the button simply does nothing.
func (h *Handler) handleListen(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil || cq.Message.Message == nil {
		return
	}

	chatID := cq.Message.Message.Chat.ID
	messageID := strings.TrimPrefix(cq.Data, telegram.CallbackListen)

	text, err := h.sessions.BeginPlayback(chatID, messageID)
	if err != nil {
		toast := ""
		if errors.Is(err, domain.ErrPlaybackActive) {
			toast = i18n.For(h.language(ctx, chatID)).PlaybackBusy
		}
		answerCallback(ctx, b, update, toast)
		slog.Debug("listen refused", "chat_id", chatID, "message_id", messageID, "error", err)
		return
	}
	defer h.sessions.EndPlayback(chatID)
	answerCallback(ctx, b, update, "")

	stop := telegram.StartAction(ctx, b, chatID, models.ChatActionUploadVoice)
	defer stop()

	wav, err := h.renderSpeech(ctx, text)
	if err != nil {
		slog.Warn("speech unavailable", "chat_id", chatID, "error", err)
		return
	}

	title := i18n.For(h.language(ctx, chatID)).Answer
	if err := telegram.SendWAV(ctx, b, chatID, wav, title, cq.Message.Message.ID); err != nil {
		slog.Error("send speech", "chat_id", chatID, "error", err)
	}
}

var errNoAudio = errors.New("no audio returned")

// renderSpeech synthesizes text and wraps the decoded PCM into a WAV container.
func (h *Handler) renderSpeech(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	pcm := h.speech.Synthesize(ctx, text)
	if pcm == nil {
		return nil, errNoAudio
	}

	buf, err := audio.Decode(pcm, config.SpeechSampleRate, config.SpeechChannels)
	if err != nil {
		return nil, err
	}
	h.metrics.RecordDecoded(buf.FrameCount())

	return audio.EncodeWAV(buf)
}
