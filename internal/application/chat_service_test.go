package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/llm"
)

type memConversationRepo struct {
	mu     sync.Mutex
	m      map[string]*entity.Conversation
	nextID int
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{m: map[string]*entity.Conversation{}}
}

func (r *memConversationRepo) Create(ctx context.Context, c *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = fmt.Sprintf("conv-%d", r.nextID)
	r.m[c.ID] = c
	return nil
}

func (r *memConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.m[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memConversationRepo) GetByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Conversation
	for _, c := range r.m {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memMessageRepo struct {
	mu     sync.Mutex
	msgs   []*entity.Message
	nextID int
}

func (r *memMessageRepo) Create(ctx context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = fmt.Sprintf("msg-%d", r.nextID)
	cp := *m
	r.msgs = append(r.msgs, &cp)
	return nil
}

func (r *memMessageRepo) GetByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.msgs {
		if m.ConversationID == conversationID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type stubCompleter struct {
	reply      string
	tokens     int
	err        error
	gotSystem  string
	gotMessage string
}

func (s *stubCompleter) ChatCompletion(ctx context.Context, system, userMessage string) (llm.Completion, error) {
	s.gotSystem = system
	s.gotMessage = userMessage
	if s.err != nil {
		return llm.Completion{}, s.err
	}
	return llm.Completion{Content: s.reply, TokensUsed: s.tokens}, nil
}

func (s *stubCompleter) ExternalToolURL() string { return "https://chat.openai.com" }

func chatUser() *entity.User {
	return &entity.User{ID: "u-1", CompanyID: "c-1", Role: entity.RoleUser, Status: entity.StatusActive}
}

func TestSendMessageCreatesConversation(t *testing.T) {
	convs := newMemConversationRepo()
	msgs := &memMessageRepo{}
	completer := &stubCompleter{reply: "Votre contrat couvre cela.", tokens: 42}
	svc := NewChatService(convs, msgs, completer, nil)

	res, err := svc.SendMessage(context.Background(), chatUser(), "", "Que couvre mon contrat ?", "")
	require.NoError(t, err)

	assert.NotEmpty(t, res.ConversationID)
	conv, err := convs.GetByID(context.Background(), res.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "Que couvre mon contrat ?", conv.Title)
	assert.Equal(t, "c-1", conv.CompanyID)

	assert.Equal(t, entity.MessageRoleUser, res.UserMessage.Role)
	assert.Equal(t, entity.CategoryTechnicalSupport, res.UserMessage.Category)
	assert.Equal(t, entity.MessageRoleAssistant, res.AssistantReply.Role)
	assert.Equal(t, 42, res.AssistantReply.TokensUsed)
	assert.Empty(t, res.AssistantReply.RedirectURL)
	assert.Contains(t, completer.gotSystem, "c-1")
}

func TestSendMessageTruncatesTitle(t *testing.T) {
	convs := newMemConversationRepo()
	svc := NewChatService(convs, &memMessageRepo{}, &stubCompleter{reply: "ok"}, nil)

	long := strings.Repeat("a", 80)
	res, err := svc.SendMessage(context.Background(), chatUser(), "", long, "")
	require.NoError(t, err)

	conv, err := convs.GetByID(context.Background(), res.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50)+"...", conv.Title)
}

func TestSendMessageRedirectHint(t *testing.T) {
	svc := NewChatService(newMemConversationRepo(), &memMessageRepo{},
		&stubCompleter{reply: "Désolé, je ne sais pas."}, nil)

	res, err := svc.SendMessage(context.Background(), chatUser(), "", "question", "")
	require.NoError(t, err)
	assert.Equal(t, "https://chat.openai.com", res.AssistantReply.RedirectURL)
}

func TestSendMessageExistingConversation(t *testing.T) {
	convs := newMemConversationRepo()
	msgs := &memMessageRepo{}
	svc := NewChatService(convs, msgs, &stubCompleter{reply: "ok"}, nil)
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, chatUser(), "", "premier", "")
	require.NoError(t, err)

	second, err := svc.SendMessage(ctx, chatUser(), first.ConversationID, "deuxième", entity.CategoryQuoteAnalysis)
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, entity.CategoryQuoteAnalysis, second.UserMessage.Category)

	all, err := msgs.GetByConversation(ctx, first.ConversationID)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSendMessageForeignConversationRejected(t *testing.T) {
	convs := newMemConversationRepo()
	svc := NewChatService(convs, &memMessageRepo{}, &stubCompleter{reply: "ok"}, nil)
	ctx := context.Background()

	mine, err := svc.SendMessage(ctx, chatUser(), "", "bonjour", "")
	require.NoError(t, err)

	other := &entity.User{ID: "u-2", Role: entity.RoleUser, Status: entity.StatusActive}
	_, err = svc.SendMessage(ctx, other, mine.ConversationID, "intrusion", "")
	assert.ErrorIs(t, err, ErrConversationNotFound)

	_, err = svc.GetMessages(ctx, other, mine.ConversationID)
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestSendMessageEmptyReply(t *testing.T) {
	svc := NewChatService(newMemConversationRepo(), &memMessageRepo{}, &stubCompleter{reply: ""}, nil)

	_, err := svc.SendMessage(context.Background(), chatUser(), "", "question", "")
	assert.ErrorIs(t, err, ErrEmptyReply)
}
