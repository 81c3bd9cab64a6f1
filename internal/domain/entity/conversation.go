package entity

import "time"

// MessageRole mirrors the chat-completion API roles.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// Category classifies what the user asked for; defaults to technical support.
type Category string

const (
	CategoryTechnicalSupport    Category = "technical_support"
	CategoryWeatherConfirmation Category = "weather_confirmation"
	CategoryQuoteAnalysis       Category = "quote_analysis"
	CategoryEmailGeneration     Category = "email_generation"
	CategoryOther               Category = "other"
)

// Conversation groups the messages a user exchanged with the assistant.
type Conversation struct {
	ID        string
	UserID    string
	CompanyID string
	Title     string
	CreatedAt time.Time
}

// Message is one turn of a conversation. RedirectURL is set on assistant
// messages when the reply warranted pointing the user at an external tool.
type Message struct {
	ID             string
	ConversationID string
	UserID         string
	Content        string
	Role           MessageRole
	Category       Category
	TokensUsed     int
	RedirectURL    string
	CreatedAt      time.Time
}
