package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/set-night/sofia/internal/config"
	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/metrics"
)

// Session is the conversation state of one chat. It lives in memory only and
// is dropped after the idle timeout or on explicit end.
type Session struct {
	ChatID     int64
	Language   domain.Language
	Pending    *domain.AttachedFile
	Messages   []domain.ChatMessage
	Usage      domain.SessionUsage
	Busy       bool
	Playing    bool
	LastActive time.Time
}

// Submission is a user turn accepted for sending to the chat model.
type Submission struct {
	Prompt   string
	Language domain.Language
	File     *domain.InlineFile
	Message  domain.ChatMessage
}

type SessionService struct {
	mu       sync.Mutex
	sessions map[int64]*Session

	settings *SettingsService
	billing  *BillingService
	metrics  *metrics.Metrics
	idle     time.Duration
	now      func() time.Time
}

func NewSessionService(settings *SettingsService, billing *BillingService, idle time.Duration, m *metrics.Metrics) *SessionService {
	return &SessionService{
		sessions: make(map[int64]*Session),
		settings: settings,
		billing:  billing,
		metrics:  m,
		idle:     idle,
		now:      time.Now,
	}
}

// Open returns a snapshot of the chat's session, creating it when missing.
// New sessions take the stored language preference.
func (s *SessionService) Open(ctx context.Context, chatID int64) Session {
	s.mu.Lock()
	if sess, ok := s.sessions[chatID]; ok {
		sess.LastActive = s.now()
		snapshot := sess.snapshot()
		s.mu.Unlock()
		return snapshot
	}
	s.mu.Unlock()

	lang := s.settings.Language(ctx, chatID)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreate(chatID, lang)
	return sess.snapshot()
}

func (s *SessionService) getOrCreate(chatID int64, lang domain.Language) *Session {
	sess, ok := s.sessions[chatID]
	if !ok {
		if lang == "" {
			lang = s.settings.defaultLang
		}
		sess = &Session{ChatID: chatID, Language: lang}
		s.sessions[chatID] = sess
		s.metrics.SetActiveSessions(len(s.sessions))
	}
	sess.LastActive = s.now()
	return sess
}

// SetLanguage switches the session language and stores the preference.
// The session is switched even when the store fails.
func (s *SessionService) SetLanguage(ctx context.Context, chatID int64, lang domain.Language) error {
	s.mu.Lock()
	s.getOrCreate(chatID, lang).Language = lang
	s.mu.Unlock()

	return s.settings.SetLanguage(ctx, chatID, lang)
}

// Attach holds a file until the next submission, replacing any earlier one.
func (s *SessionService) Attach(ctx context.Context, chatID int64, file *domain.AttachedFile) {
	s.Open(ctx, chatID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(chatID, "").Pending = file
}

// Detach discards the pending attachment and reports whether there was one.
func (s *SessionService) Detach(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok || sess.Pending == nil {
		return false
	}
	sess.Pending = nil
	return true
}

// Begin accepts a user turn. A non-nil file is sent instead of the pending
// attachment; otherwise the pending attachment is consumed. Text that is
// blank while a file is present is replaced by the default file prompt.
func (s *SessionService) Begin(ctx context.Context, chatID int64, text string, file *domain.AttachedFile) (*Submission, error) {
	s.Open(ctx, chatID)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreate(chatID, "")
	if sess.Busy {
		return nil, domain.ErrActiveRequest
	}

	if file == nil {
		file = sess.Pending
	}
	blank := strings.TrimSpace(text) == ""
	if blank && file == nil {
		return nil, domain.ErrEmptySubmission
	}

	prompt := text
	if blank {
		prompt = config.DefaultFilePrompt
	}

	msg := domain.NewUserMessage(text, file)
	sess.Messages = append(sess.Messages, msg)
	sess.Pending = nil
	sess.Busy = true

	return &Submission{
		Prompt:   prompt,
		Language: sess.Language,
		File:     file.Inline(),
		Message:  msg,
	}, nil
}

// Complete records the answer to the turn started by Begin and releases the
// session for the next submission.
func (s *SessionService) Complete(chatID int64, answer domain.Answer) domain.ChatMessage {
	msg := domain.NewAssistantMessage(answer)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The session may have been ended while the request was in flight.
	sess, ok := s.sessions[chatID]
	if !ok {
		return msg
	}
	sess.Messages = append(sess.Messages, msg)
	sess.Busy = false
	sess.LastActive = s.now()

	if !answer.IsFallback() {
		sess.Usage.Requests++
		sess.Usage.PromptTokens += answer.Usage.PromptTokens
		sess.Usage.CompletionTokens += answer.Usage.CompletionTokens
		sess.Usage.Cost = sess.Usage.Cost.Add(s.billing.Cost(answer.Usage))
	}
	return msg
}

// BeginPlayback marks the session as playing the given assistant message and
// returns its text. Only one playback per session may be active.
func (s *SessionService) BeginPlayback(chatID int64, messageID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	if sess.Playing {
		return "", domain.ErrPlaybackActive
	}

	for _, m := range sess.Messages {
		if m.ID == messageID && m.Role == domain.RoleAssistant {
			sess.Playing = true
			sess.LastActive = s.now()
			return m.Content, nil
		}
	}
	return "", domain.ErrMessageNotFound
}

func (s *SessionService) EndPlayback(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[chatID]; ok {
		sess.Playing = false
	}
}

// Usage returns the accumulated usage of the chat's session.
func (s *SessionService) Usage(chatID int64) (domain.SessionUsage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return domain.SessionUsage{}, domain.ErrSessionNotFound
	}
	return sess.Usage, nil
}

// End discards the session with its log and pending attachment.
func (s *SessionService) End(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[chatID]; !ok {
		return false
	}
	delete(s.sessions, chatID)
	s.metrics.SetActiveSessions(len(s.sessions))
	return true
}

// Cleanup evicts sessions idle for longer than the timeout. Sessions with a
// request or playback in flight are kept.
func (s *SessionService) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idle)
	removed := 0
	for id, sess := range s.sessions {
		if sess.Busy || sess.Playing {
			continue
		}
		if sess.LastActive.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.metrics.SetActiveSessions(len(s.sessions))
	}
	return removed
}

// RunCleanup calls Cleanup on every tick until ctx is done.
func (s *SessionService) RunCleanup(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				slog.Info("idle sessions evicted", "count", n)
			}
		}
	}
}

func (sess *Session) snapshot() Session {
	out := *sess
	out.Messages = append([]domain.ChatMessage(nil), sess.Messages...)
	return out
}
