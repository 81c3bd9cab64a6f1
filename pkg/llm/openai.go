package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the API answers with no choices.
var ErrEmptyCompletion = errors.New("no completion returned")

// Completion is the reduced view of a chat completion the application cares about.
type Completion struct {
	Content    string
	TokensUsed int
}

// Client wraps the OpenAI chat-completions API behind the minimal surface the
// chat service needs.
type Client struct {
	api             *openai.Client
	model           string
	maxTokens       int
	externalToolURL string
}

func NewClient(apiKey, model string, maxTokens int, externalToolURL string) *Client {
	return &Client{
		api:             openai.NewClient(apiKey),
		model:           model,
		maxTokens:       maxTokens,
		externalToolURL: externalToolURL,
	}
}

// ChatCompletion sends the conversation to the model and returns the first choice.
func (c *Client) ChatCompletion(ctx context.Context, system string, userMessage string) (Completion, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		return Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return Completion{}, ErrEmptyCompletion
	}
	return Completion{
		Content:    resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// ExternalToolURL returns the tool users are redirected to when the assistant
// cannot answer.
func (c *Client) ExternalToolURL() string {
	return c.externalToolURL
}

// redirectKeywords mark a reply as a non-answer. The assistant speaks French
// by default, so the list is mostly French.
var redirectKeywords = []string{
	"je ne sais pas", "je ne peux pas", "désolé", "sorry",
	"je ne suis pas capable", "je ne suis pas sûr", "incapable",
}

// ShouldRedirectToExternalTool reports whether the assistant's reply reads as
// a refusal or non-answer, in which case the frontend shows a redirect hint.
func ShouldRedirectToExternalTool(reply string) bool {
	lower := strings.ToLower(reply)
	for _, kw := range redirectKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
