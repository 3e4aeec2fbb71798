package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ironlog/workout-app/internal/advisor"
	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// chatContextMessages bounds how much of the conversation is replayed to the
// advisor on every turn.
const chatContextMessages = 5

const chatSystemPromptHeader = "You are a knowledgeable fitness trainer. Provide concise, accurate workout advice."

// ChatService runs the free-form advisory conversation. Unlike plan
// generation, replies are plain text and are never parsed.
type ChatService interface {
	// SendMessage appends the user's message, asks the advisor for a reply
	// and appends that reply. When the advisor call fails the user's message
	// is retained, so a retry keeps the conversation context.
	SendMessage(ctx context.Context, userID primitive.ObjectID, content string) (*domain.ChatMessage, error)
	// Conversation returns the user's full message log, oldest first.
	Conversation(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatMessage, error)
}

type chatService struct {
	chatLog     *ChatLog
	profileRepo repository.ProfileRepository
	planRepo    repository.PlanRepository
	advisor     advisor.Advisor
	log         *logrus.Entry
}

// NewChatService creates a new instance of chatService.
func NewChatService(chatLog *ChatLog, profileRepo repository.ProfileRepository, planRepo repository.PlanRepository, adv advisor.Advisor) ChatService {
	return &chatService{
		chatLog:     chatLog,
		profileRepo: profileRepo,
		planRepo:    planRepo,
		advisor:     adv,
		log:         logrus.WithField("service", "chat"),
	}
}

func (s *chatService) SendMessage(ctx context.Context, userID primitive.ObjectID, content string) (*domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidationFailed)
	}

	key := userID.Hex()
	s.chatLog.Append(key, domain.ChatMessage{
		Role:    domain.ChatRoleUser,
		Content: content,
	})

	systemPrompt, err := s.buildSystemPrompt(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := s.chatLog.Messages(key)
	if len(history) > chatContextMessages {
		history = history[len(history)-chatContextMessages:]
	}
	messages := make([]advisor.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, advisor.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := s.advisor.Complete(ctx, systemPrompt, messages)
	if err != nil {
		s.log.WithError(err).Warn("advisor chat call failed")
		return nil, fmt.Errorf("%w: %v", ErrAdvisorFailed, err)
	}

	assistantMessage := domain.ChatMessage{
		Role:    domain.ChatRoleAssistant,
		Content: reply,
	}
	s.chatLog.Append(key, assistantMessage)
	return &assistantMessage, nil
}

func (s *chatService) Conversation(_ context.Context, userID primitive.ObjectID) ([]domain.ChatMessage, error) {
	return s.chatLog.Messages(userID.Hex()), nil
}

// buildSystemPrompt folds the user's profile and most recent plan into the
// advisor instruction so advice stays grounded in their actual program.
func (s *chatService) buildSystemPrompt(ctx context.Context, userID primitive.ObjectID) (string, error) {
	var b strings.Builder
	b.WriteString(chatSystemPromptHeader)

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		encoded, err := json.Marshal(profile)
		if err != nil {
			return "", fmt.Errorf("encoding profile: %w", err)
		}
		b.WriteString("\nThe user's profile is: ")
		b.Write(encoded)
	case errors.Is(err, repository.ErrNotFound):
		b.WriteString("\nThe user has not filled in a profile yet.")
	default:
		return "", fmt.Errorf("%w: loading profile: %v", ErrPersistenceFailed, err)
	}

	plans, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: loading plans: %v", ErrPersistenceFailed, err)
	}
	if len(plans) > 0 {
		encoded, err := json.Marshal(plans[0])
		if err != nil {
			return "", fmt.Errorf("encoding plan: %w", err)
		}
		b.WriteString("\nTheir most recent workout plan is: ")
		b.Write(encoded)
	} else {
		b.WriteString("\nNo workout plans have been generated yet.")
	}

	b.WriteString("\nConsider this context when providing advice. If the user mentions injuries or limitations, remember them for future plan generations.")
	return b.String(), nil
}
