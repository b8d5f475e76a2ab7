package service

import (
	"context"
	"strings"

	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

// Assistant covers the chatbot endpoint.
type Assistant interface {
	Query(ctx context.Context, question string) (*platform.ChatReply, error)
}

// ChatbotService forwards operator questions to the platform chatbot.
type ChatbotService struct {
	assistant Assistant
}

// NewChatbotService constructs the service.
func NewChatbotService(assistant Assistant) *ChatbotService {
	return &ChatbotService{assistant: assistant}
}

// Ask validates and forwards a question.
func (s *ChatbotService) Ask(ctx context.Context, question string) (*platform.ChatReply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apierr.NewValidation("question is required", nil)
	}
	return s.assistant.Query(ctx, question)
}
