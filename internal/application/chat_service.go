package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/llm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyReply           = errors.New("no reply from assistant")
)

// ChatCompleter is the slice of the LLM client the chat service depends on.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, system, userMessage string) (llm.Completion, error)
	ExternalToolURL() string
}

// ChatService persists a user message, asks the assistant for a reply and
// persists that too. Each route is a direct pass-through on top of these two
// stores and the completion API.
type ChatService struct {
	Conversations repository.ConversationRepository
	Messages      repository.MessageRepository
	LLM           ChatCompleter
	Logger        *logrus.Logger
}

func NewChatService(convs repository.ConversationRepository, msgs repository.MessageRepository, completer ChatCompleter, logger *logrus.Logger) *ChatService {
	return &ChatService{Conversations: convs, Messages: msgs, LLM: completer, Logger: logger}
}

// SendMessageResult is what the frontend renders after a chat turn.
type SendMessageResult struct {
	ConversationID string
	UserMessage    *entity.Message
	AssistantReply *entity.Message
}

const conversationTitleLimit = 50

func conversationTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= conversationTitleLimit {
		return content
	}
	return string(runes[:conversationTitleLimit]) + "..."
}

func systemPrompt(companyID string) string {
	return fmt.Sprintf(`Vous êtes un assistant IA spécialisé dans le domaine des assurances.
Vous aidez les utilisateurs de la compagnie %s avec bienveillance et professionnalisme.
Répondez toujours en français sauf demande contraire.`, companyID)
}

// SendMessage stores the user message (creating a conversation when none is
// given), obtains the assistant reply and stores it with its token usage and
// an optional external-tool redirect hint.
func (s *ChatService) SendMessage(ctx context.Context, u *entity.User, conversationID, content string, category entity.Category) (*SendMessageResult, error) {
	if category == "" {
		category = entity.CategoryTechnicalSupport
	}

	if conversationID == "" {
		conv := &entity.Conversation{
			UserID:    u.ID,
			CompanyID: u.CompanyID,
			Title:     conversationTitle(content),
		}
		if err := s.Conversations.Create(ctx, conv); err != nil {
			return nil, fmt.Errorf("create conversation: %w", err)
		}
		conversationID = conv.ID
	} else {
		conv, err := s.Conversations.GetByID(ctx, conversationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrConversationNotFound
			}
			return nil, fmt.Errorf("load conversation: %w", err)
		}
		if conv.UserID != u.ID {
			return nil, ErrConversationNotFound
		}
	}

	userMsg := &entity.Message{
		ConversationID: conversationID,
		UserID:         u.ID,
		Content:        content,
		Role:           entity.MessageRoleUser,
		Category:       category,
	}
	if err := s.Messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("store user message: %w", err)
	}

	completion, err := s.LLM.ChatCompletion(ctx, systemPrompt(u.CompanyID), content)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	reply := completion.Content
	if reply == "" {
		return nil, ErrEmptyReply
	}

	var redirectURL string
	if llm.ShouldRedirectToExternalTool(reply) {
		redirectURL = s.LLM.ExternalToolURL()
	}

	assistantMsg := &entity.Message{
		ConversationID: conversationID,
		UserID:         u.ID,
		Content:        reply,
		Role:           entity.MessageRoleAssistant,
		Category:       category,
		TokensUsed:     completion.TokensUsed,
		RedirectURL:    redirectURL,
	}
	if err := s.Messages.Create(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("store assistant message: %w", err)
	}

	return &SendMessageResult{
		ConversationID: conversationID,
		UserMessage:    userMsg,
		AssistantReply: assistantMsg,
	}, nil
}

func (s *ChatService) GetConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	return s.Conversations.GetByUser(ctx, userID)
}

// GetMessages returns the messages of a conversation owned by u.
func (s *ChatService) GetMessages(ctx context.Context, u *entity.User, conversationID string) ([]*entity.Message, error) {
	conv, err := s.Conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conv.UserID != u.ID {
		return nil, ErrConversationNotFound
	}
	return s.Messages.GetByConversation(ctx, conversationID)
}
