package entity

import (
	"context"
	"time"
)

// Entidade: Conversation — um turno da conversa de WhatsApp. Cada linha
// tem OU bot_message OU user_message preenchido, nunca os dois.
type Conversation struct {
	ID          int64     `json:"id"`
	Phone       string    `json:"phone"`
	Name        string    `json:"nomewpp"`
	BotMessage  string    `json:"bot_message,omitempty"`
	UserMessage string    `json:"user_message,omitempty"`
	MessageType string    `json:"message_type"`
	Active      bool      `json:"active"`
	OrgID       string    `json:"org_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type ConversationRepositoryInterface interface {
	SaveUserMessage(ctx context.Context, orgID, phone, name, message, messageType string) error
	SaveBotMessage(ctx context.Context, orgID, phone, name, message string) error
	RecentByPhone(ctx context.Context, orgID, phone string, limit int) ([]Conversation, error)
	CountByOrg(ctx context.Context, orgID string) (int, error)
}
