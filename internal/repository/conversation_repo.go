package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gemchat-backend/internal/models"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// List returns every conversation, newest first, with its message count.
func (r *ConversationRepo) List(ctx context.Context) ([]models.Conversation, error) {
	query := `SELECT c.id, c.title, c.created_at, COUNT(m.id)
		FROM conversations c
		LEFT JOIN messages m ON m.conversation_id = c.id
		GROUP BY c.id, c.title, c.created_at
		ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.MessageCount); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}

	return conversations, rows.Err()
}

// GetByID returns (nil, nil) when the conversation does not exist; the fetch
// contract treats an unknown id as a null conversation, not an error.
func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	c := &models.Conversation{}
	err := r.pool.QueryRow(ctx,
		"SELECT id, title, created_at FROM conversations WHERE id = $1", id,
	).Scan(&c.ID, &c.Title, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ConversationRepo) Create(ctx context.Context, title string) (*models.Conversation, error) {
	c := &models.Conversation{ID: uuid.New(), Title: title}
	err := r.pool.QueryRow(ctx,
		"INSERT INTO conversations (id, title) VALUES ($1, $2) RETURNING created_at",
		c.ID, c.Title,
	).Scan(&c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Rename updates only the title. A missing id is a no-op, not an error.
func (r *ConversationRepo) Rename(ctx context.Context, id uuid.UUID, title string) error {
	_, err := r.pool.Exec(ctx, "UPDATE conversations SET title = $1 WHERE id = $2", title, id)
	return err
}

// Delete removes the conversation; its messages go with it via the FK
// cascade. A missing id is a no-op, not an error.
func (r *ConversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM conversations WHERE id = $1", id)
	return err
}
