package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/container"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	handlers "github.com/mirak2305/hilfe-entreprise-backend/internal/interface/http"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/interface/middleware"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/helpers"
)

type ChatModule struct {
	Handler *handlers.ChatHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewChatModule(h *handlers.ChatHandler, users repository.UserRepository, jwt *helpers.JWTManager) *ChatModule {
	return &ChatModule{Handler: h, Users: users, JWT: jwt}
}

func (m *ChatModule) Register(rg *gin.RouterGroup) {
	chat := rg.Group("/chat")
	chat.Use(middleware.Auth(m.Users, m.JWT))
	{
		// Completion calls are priced per token, keep a per-user ceiling
		sendLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserID(), nil)
		chat.POST("/message", sendLimiter, m.Handler.SendMessage)
		chat.GET("/conversations", m.Handler.GetConversations)
		chat.GET("/conversations/:conversationId/messages", m.Handler.GetConversationMessages)
	}
}
