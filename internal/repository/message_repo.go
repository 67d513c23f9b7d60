package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"gemchat-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// ListByConversation returns the thread in display order, oldest first.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	query := `SELECT id, conversation_id, role, content, timestamp
		FROM messages WHERE conversation_id = $1 ORDER BY timestamp ASC`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (r *MessageRepo) Create(ctx context.Context, conversationID uuid.UUID, role, content string) (*models.Message, error) {
	m := &models.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	err := r.pool.QueryRow(ctx,
		"INSERT INTO messages (id, conversation_id, role, content) VALUES ($1, $2, $3, $4) RETURNING timestamp",
		m.ID, m.ConversationID, m.Role, m.Content,
	).Scan(&m.Timestamp)
	if err != nil {
		return nil, err
	}
	return m, nil
}
