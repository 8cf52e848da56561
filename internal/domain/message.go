package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// GroundingSource is a web citation returned with a search-augmented answer.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// DisplayTitle falls back to a generic label for untitled sources.
func (s GroundingSource) DisplayTitle() string {
	if s.Title == "" {
		return "Source"
	}
	return s.Title
}

// ChatMessage is one entry of a session's conversation log.
// Messages are never modified after they are appended.
type ChatMessage struct {
	ID        string
	Role      Role
	Content   string
	File      *AttachedFile
	Sources   []GroundingSource
	CreatedAt time.Time
}

func NewUserMessage(content string, file *AttachedFile) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		File:      file,
		CreatedAt: time.Now(),
	}
}

func NewAssistantMessage(answer Answer) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   answer.Text,
		Sources:   answer.Sources,
		CreatedAt: time.Now(),
	}
}
