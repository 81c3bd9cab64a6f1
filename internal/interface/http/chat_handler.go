package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/application"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/interface/middleware"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/response"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/validation"
)

type ChatHandler struct {
	Svc    *application.ChatService
	Logger *logrus.Logger
}

func NewChatHandler(svc *application.ChatService, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger}
}

type sendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message" binding:"required"`
	Category       string `json:"category" binding:"omitempty,oneof=technical_support weather_confirmation quote_analysis email_generation other"`
}

func messageJSON(m *entity.Message) gin.H {
	out := gin.H{
		"id":        m.ID,
		"content":   m.Content,
		"role":      m.Role,
		"createdAt": m.CreatedAt,
	}
	if m.Role == entity.MessageRoleAssistant {
		out["tokensUsed"] = m.TokensUsed
		if m.RedirectURL != "" {
			out["redirectUrl"] = m.RedirectURL
		}
	}
	return out
}

// SendMessage POST /api/chat/message
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithFields(logrus.Fields{"details": validation.ToDetails(err)}).Debug("chat payload rejected")
		response.Err(c, http.StatusBadRequest, "message required")
		return
	}

	u := middleware.CurrentUser(c)
	res, err := h.Svc.SendMessage(c.Request.Context(), u, req.ConversationID, req.Message, entity.Category(req.Category))
	if err != nil {
		if errors.Is(err, application.ErrConversationNotFound) {
			response.Err(c, http.StatusNotFound, "conversation not found")
			return
		}
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("chat message failed")
		response.Err(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversationId": res.ConversationID,
		"userMessage":    messageJSON(res.UserMessage),
		"aiMessage":      messageJSON(res.AssistantReply),
	})
}

// GetConversations GET /api/chat/conversations
func (h *ChatHandler) GetConversations(c *gin.Context) {
	u := middleware.CurrentUser(c)
	convs, err := h.Svc.GetConversations(c.Request.Context(), u.ID)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("list conversations failed")
		response.Err(c, http.StatusInternalServerError, "internal server error")
		return
	}
	out := make([]gin.H, 0, len(convs))
	for _, conv := range convs {
		out = append(out, gin.H{
			"id":         conv.ID,
			"title":      conv.Title,
			"created_at": conv.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetConversationMessages GET /api/chat/conversations/:conversationId/messages
func (h *ChatHandler) GetConversationMessages(c *gin.Context) {
	u := middleware.CurrentUser(c)
	msgs, err := h.Svc.GetMessages(c.Request.Context(), u, c.Param("conversationId"))
	if err != nil {
		if errors.Is(err, application.ErrConversationNotFound) {
			response.Err(c, http.StatusNotFound, "conversation not found")
			return
		}
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("list messages failed")
		response.Err(c, http.StatusInternalServerError, "internal server error")
		return
	}
	out := make([]gin.H, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageJSON(m))
	}
	c.JSON(http.StatusOK, out)
}
