// Package claude provides Anthropic Claude API integration for the local
// chat path. The embedded browser surface talks to the hosted site itself;
// this client only serves offline-style chats kept in the local store.
package claude

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/claudedesk/claudedesk/internal/conversation"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-sonnet-4-20250514"
	// MaxTokens is the maximum number of tokens for responses.
	MaxTokens = 8192
)

// Client wraps the Anthropic SDK client.
type Client struct {
	client anthropic.Client
	model  string
}

// NewClient creates a new Claude API client.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		client: client,
		model:  model,
	}
}

// Complete sends the conversation history plus the new user message and
// returns Claude's reply text.
func (c *Client) Complete(ctx context.Context, history []conversation.Message, userMessage string) (string, error) {
	messages := buildHistory(history)
	messages = append(messages, buildUserMessage(userMessage))

	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: MaxTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}
	return extractTextContent(response), nil
}

// buildHistory converts stored messages to API params. Messages with roles
// the API does not know are left out of the request but stay in the store.
func buildHistory(history []conversation.Message) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case conversation.RoleUser:
			messages = append(messages, buildUserMessage(msg.Content))
		case conversation.RoleAssistant:
			messages = append(messages, buildAssistantMessage(msg.Content))
		}
	}
	return messages
}

func buildUserMessage(content string) anthropic.MessageParam {
	return anthropic.MessageParam{
		Role: anthropic.MessageParamRoleUser,
		Content: []anthropic.ContentBlockParamUnion{
			anthropic.NewTextBlock(content),
		},
	}
}

func buildAssistantMessage(content string) anthropic.MessageParam {
	return anthropic.MessageParam{
		Role: anthropic.MessageParamRoleAssistant,
		Content: []anthropic.ContentBlockParamUnion{
			anthropic.NewTextBlock(content),
		},
	}
}

// extractTextContent extracts text content from a message.
func extractTextContent(msg *anthropic.Message) string {
	var text string
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			text += b.Text
		}
	}
	return text
}
