package middleware

import "github.com/go-telegram/bot/models"

// UpdateInfo describes where an update came from.
type UpdateInfo struct {
	Kind   string
	ChatID int64
	UserID int64
}

func Describe(update *models.Update) UpdateInfo {
	info := UpdateInfo{Kind: "unknown"}

	switch {
	case update.Message != nil:
		msg := update.Message
		info.ChatID = msg.Chat.ID
		if msg.From != nil {
			info.UserID = msg.From.ID
		}
		switch {
		case msg.Voice != nil:
			info.Kind = "voice"
		case msg.Document != nil:
			info.Kind = "document"
		case len(msg.Photo) > 0:
			info.Kind = "photo"
		default:
			info.Kind = "message"
		}
	case update.CallbackQuery != nil:
		info.Kind = "callback_query"
		info.UserID = update.CallbackQuery.From.ID
		if update.CallbackQuery.Message.Message != nil {
			info.ChatID = update.CallbackQuery.Message.Message.Chat.ID
		}
	}
	return info
}
