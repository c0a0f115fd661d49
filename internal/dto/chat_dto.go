package dto

import (
	"github.com/transformerAnt/orange-fitness-backend/internal/entity"
	"github.com/transformerAnt/orange-fitness-backend/pkg/rag"
)

// HistoryTurnDTO is a caller-supplied prior turn, forwarded to the model
// verbatim.
type HistoryTurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SendChatRequest struct {
	Message  string           `json:"message" validate:"required"`
	History  []HistoryTurnDTO `json:"history,omitempty"`
	RagQuery string           `json:"ragQuery,omitempty"`
	UserId   string           `json:"userId,omitempty"`
}

type SendChatResponse struct {
	Reply string         `json:"reply"`
	Rag   []rag.Document `json:"rag"`
}

type GetChatHistoryResponse struct {
	History []entity.ChatTurn `json:"history"`
}
