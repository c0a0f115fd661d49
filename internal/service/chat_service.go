// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/transformerAnt/orange-fitness-backend/internal/config"
	"github.com/transformerAnt/orange-fitness-backend/internal/dto"
	"github.com/transformerAnt/orange-fitness-backend/internal/entity"
	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/logger"
	"github.com/transformerAnt/orange-fitness-backend/internal/repository/memory"
	"github.com/transformerAnt/orange-fitness-backend/pkg/llm"
	"github.com/transformerAnt/orange-fitness-backend/pkg/llm/mistral"
	"github.com/transformerAnt/orange-fitness-backend/pkg/rag"
)

const chatSystemPrompt = "You are a friendly fitness and nutrition coach. Give practical, concise advice about training, recovery and diet. When context notes are provided, ground your answer in them."

type IChatService interface {
	Send(ctx context.Context, userID string, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	History(userID string) []entity.ChatTurn
	Reset(userID string)
}

type chatService struct {
	cfg       config.MistralConfig
	provider  llm.Provider
	history   *memory.HistoryRepository
	documents []rag.Document
	logger    logger.ILogger
}

func NewChatService(
	cfg config.MistralConfig,
	provider llm.Provider,
	history *memory.HistoryRepository,
	documents []rag.Document,
	log logger.ILogger,
) IChatService {
	return &chatService{
		cfg:       cfg,
		provider:  provider,
		history:   history,
		documents: documents,
		logger:    log,
	}
}

// Send runs one conversational turn: rank the document set for context,
// assemble the message sequence, call the text model, then record both
// turns in the user's history.
func (s *chatService) Send(ctx context.Context, userID string, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if strings.TrimSpace(request.Message) == "" {
		return nil, &HTTPError{Code: fiber.StatusBadRequest, Message: "message is required."}
	}
	if s.cfg.APIKey == "" {
		return nil, &HTTPError{Code: fiber.StatusBadRequest, Message: "Mistral API key is not configured."}
	}

	ragQuery := request.RagQuery
	if ragQuery == "" {
		ragQuery = request.Message
	}
	matches := rag.Rank(s.documents, ragQuery)

	messages := []llm.Message{
		{Role: entity.ChatRoleSystem, Content: chatSystemPrompt},
	}
	if len(matches) > 0 {
		messages = append(messages, llm.Message{
			Role:    entity.ChatRoleSystem,
			Content: contextPrompt(matches),
		})
	}
	// Caller-supplied history is trusted verbatim.
	for _, turn := range request.History {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: entity.ChatRoleUser, Content: request.Message})

	reply, err := s.provider.Chat(ctx, messages,
		llm.WithModel(s.cfg.TextModel),
		llm.WithTemperature(0.3),
	)
	if err != nil {
		var statusErr *mistral.StatusError
		if errors.As(err, &statusErr) {
			message := statusErr.Body
			if message == "" {
				message = "Mistral error."
			}
			return nil, &HTTPError{Code: statusErr.Code, Message: message}
		}
		s.logger.Error("chat", "chat request failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, &HTTPError{Code: fiber.StatusInternalServerError, Message: "Chat failed."}
	}

	s.history.Append(userID, entity.ChatTurn{
		Id:        uuid.New(),
		Role:      entity.ChatRoleUser,
		Content:   request.Message,
		CreatedAt: time.Now(),
	})
	s.history.Append(userID, entity.ChatTurn{
		Id:        uuid.New(),
		Role:      entity.ChatRoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	})

	if matches == nil {
		matches = []rag.Document{}
	}
	return &dto.SendChatResponse{Reply: reply, Rag: matches}, nil
}

func (s *chatService) History(userID string) []entity.ChatTurn {
	return s.history.Get(userID)
}

func (s *chatService) Reset(userID string) {
	s.history.Reset(userID)
}

// contextPrompt lists the matched document texts as a system context turn.
func contextPrompt(matches []rag.Document) string {
	var b strings.Builder
	b.WriteString("Relevant notes:\n")
	for _, match := range matches {
		fmt.Fprintf(&b, "- %s\n", match.Text)
	}
	return b.String()
}
