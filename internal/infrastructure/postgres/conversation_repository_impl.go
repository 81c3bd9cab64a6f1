package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
)

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

func (r *ConversationRepository) Create(ctx context.Context, c *entity.Conversation) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO conversations (user_id, company_id, title)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING id, created_at
	`, c.UserID, c.CompanyID, c.Title)
	return row.Scan(&c.ID, &c.CreatedAt)
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	c := &entity.Conversation{}
	var companyID *string
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, company_id, title, created_at
		FROM conversations
		WHERE id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.UserID, &companyID, &c.Title, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if companyID != nil {
		c.CompanyID = *companyID
	}
	return c, nil
}

func (r *ConversationRepository) GetByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, company_id, title, created_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*entity.Conversation
	for rows.Next() {
		c := &entity.Conversation{}
		var companyID *string
		if err := rows.Scan(&c.ID, &c.UserID, &companyID, &c.Title, &c.CreatedAt); err != nil {
			return nil, err
		}
		if companyID != nil {
			c.CompanyID = *companyID
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

var _ repository.ConversationRepository = (*ConversationRepository)(nil)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, user_id, content, role, category, tokens_used, redirect_url)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at
	`, m.ConversationID, m.UserID, m.Content, m.Role, m.Category, m.TokensUsed, m.RedirectURL)
	return row.Scan(&m.ID, &m.CreatedAt)
}

func (r *MessageRepository) GetByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, user_id, content, role, category, tokens_used, redirect_url, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*entity.Message
	for rows.Next() {
		m := &entity.Message{}
		var redirect *string
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Content, &m.Role,
			&m.Category, &m.TokensUsed, &redirect, &m.CreatedAt); err != nil {
			return nil, err
		}
		if redirect != nil {
			m.RedirectURL = *redirect
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
