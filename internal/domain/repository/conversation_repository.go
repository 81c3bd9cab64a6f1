package repository

import (
	"context"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, c *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	GetByUser(ctx context.Context, userID string) ([]*entity.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	GetByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error)
}
