package database

import (
	"context"
	"database/sql"

	"github.com/atumia/atumia-core/internal/entity"
)

type ConversationRepository struct {
	DB *sql.DB
}

func NewConversationRepository(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

func (r *ConversationRepository) SaveUserMessage(ctx context.Context, orgID, phone, name, message, messageType string) error {
	query := `
		INSERT INTO conversations (phone, nomewpp, user_message, message_type, active, org_id, created_at)
		VALUES ($1, $2, $3, $4, true, $5, NOW())
	`
	if messageType == "" {
		messageType = "text"
	}
	_, err := r.DB.ExecContext(ctx, query, phone, name, message, messageType, orgID)
	if err != nil {
		return wrapStoreError("gravar mensagem do lead", err)
	}
	return nil
}

func (r *ConversationRepository) SaveBotMessage(ctx context.Context, orgID, phone, name, message string) error {
	query := `
		INSERT INTO conversations (phone, nomewpp, bot_message, message_type, active, org_id, created_at)
		VALUES ($1, $2, $3, 'text', true, $4, NOW())
	`
	_, err := r.DB.ExecContext(ctx, query, phone, name, message, orgID)
	if err != nil {
		return wrapStoreError("gravar resposta do bot", err)
	}
	return nil
}

// RecentByPhone devolve os últimos turnos em ordem cronológica, para
// virar contexto do oráculo.
func (r *ConversationRepository) RecentByPhone(ctx context.Context, orgID, phone string, limit int) ([]entity.Conversation, error) {
	query := `
		SELECT id, COALESCE(phone, ''), COALESCE(nomewpp, ''), COALESCE(bot_message, ''),
		       COALESCE(user_message, ''), COALESCE(message_type, 'text'), active, COALESCE(org_id, ''), created_at
		FROM conversations
		WHERE org_id = $1 AND phone = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.DB.QueryContext(ctx, query, orgID, phone, limit)
	if err != nil {
		return nil, wrapStoreError("buscar conversas", err)
	}
	defer rows.Close()

	var conversations []entity.Conversation
	for rows.Next() {
		var c entity.Conversation
		var createdAt sql.NullTime
		if err := rows.Scan(
			&c.ID, &c.Phone, &c.Name, &c.BotMessage,
			&c.UserMessage, &c.MessageType, &c.Active, &c.OrgID, &createdAt,
		); err != nil {
			return nil, wrapStoreError("ler conversa", err)
		}
		c.CreatedAt = createdAt.Time
		conversations = append(conversations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("buscar conversas", err)
	}

	// Veio DESC do banco; o oráculo quer a ordem em que a conversa rolou
	for i, j := 0, len(conversations)-1; i < j; i, j = i+1, j-1 {
		conversations[i], conversations[j] = conversations[j], conversations[i]
	}

	return conversations, nil
}

func (r *ConversationRepository) CountByOrg(ctx context.Context, orgID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM conversations WHERE org_id = $1`, orgID,
	).Scan(&count)
	if err != nil {
		return 0, wrapStoreError("contar conversas", err)
	}
	return count, nil
}
