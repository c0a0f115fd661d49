package dto

import (
	"github.com/transformerAnt/orange-fitness-backend/pkg/rag"
)

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

type SearchResponse struct {
	Matches []rag.Document `json:"matches"`
}
