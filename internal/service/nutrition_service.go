// FILE: internal/service/nutrition_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/transformerAnt/orange-fitness-backend/internal/config"
	"github.com/transformerAnt/orange-fitness-backend/internal/dto"
	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/logger"
	"github.com/transformerAnt/orange-fitness-backend/pkg/llm"
	"github.com/transformerAnt/orange-fitness-backend/pkg/llm/mistral"
)

const (
	nutritionSystemPrompt = "You are a nutrition analyst. Return ONLY JSON with keys: items (array of {name, calories, protein_g, carbs_g, fat_g}), totalCalories, protein_g, carbs_g, fat_g."
	nutritionUserPrompt   = "Estimate macros and calories for this meal."
)

// extraction outcomes for the model's free-form text output
var (
	errNoStructure = errors.New("no json structure in model output")
	errInvalidJSON = errors.New("model output contains braces but no parseable json")
)

type INutritionService interface {
	Analyze(ctx context.Context, request *dto.AnalyzeFoodRequest) (json.RawMessage, error)
}

type nutritionService struct {
	cfg      config.MistralConfig
	provider llm.Provider
	logger   logger.ILogger
}

func NewNutritionService(cfg config.MistralConfig, provider llm.Provider, log logger.ILogger) INutritionService {
	return &nutritionService{
		cfg:      cfg,
		provider: provider,
		logger:   log,
	}
}

// Analyze asks the vision model for a macro breakdown of the meal photo and
// returns the JSON payload recovered from its answer. The payload is relayed
// as parsed, without schema validation.
func (s *nutritionService) Analyze(ctx context.Context, request *dto.AnalyzeFoodRequest) (json.RawMessage, error) {
	image := request.ImageUrl
	if image == "" {
		image = request.ImageUrlAlt
	}
	isBase64 := false
	if image == "" && request.ImageBase64 != "" {
		image = request.ImageBase64
		isBase64 = true
	}
	if image == "" {
		return nil, &HTTPError{Code: fiber.StatusBadRequest, Message: "imageUrl is required."}
	}
	if s.cfg.APIKey == "" {
		return nil, &HTTPError{Code: fiber.StatusBadRequest, Message: "Mistral API key is not configured."}
	}

	imageRef := mistral.NormalizeImageRef(image, isBase64)

	content, err := s.provider.ChatWithImage(ctx, nutritionSystemPrompt, nutritionUserPrompt, imageRef,
		llm.WithModel(s.cfg.VisionModel),
		llm.WithTemperature(0.2),
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
		s.logger.Error("nutrition", "vision request failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, &HTTPError{Code: fiber.StatusInternalServerError, Message: "Food analysis failed."}
	}

	payload, err := extractJSON(content)
	if errors.Is(err, errNoStructure) {
		// No braces at all: hand the raw text back for inspection.
		fallback := dto.AnalyzeFoodResponse{Items: []dto.MacroItem{}, Raw: content}
		raw, _ := json.Marshal(fallback)
		return raw, nil
	}
	if err != nil {
		s.logger.Error("nutrition", "model output was not parseable json", map[string]interface{}{
			"content": content,
		})
		return nil, &HTTPError{Code: fiber.StatusInternalServerError, Message: "Food analysis failed."}
	}

	return payload, nil
}

// extractJSON tries an ordered sequence of strategies against the model's
// text output and stops at the first success:
//  1. a fenced ```json code block
//  2. the substring from the first '{' to the last '}'
//
// errNoStructure means neither brace exists; errInvalidJSON means braces are
// present but nothing parseable sits between them.
func extractJSON(content string) (json.RawMessage, error) {
	if block, ok := fencedJSONBlock(content); ok {
		candidate := []byte(strings.TrimSpace(block))
		if json.Valid(candidate) {
			return json.RawMessage(candidate), nil
		}
		// invalid fenced block: fall through to the brace scan
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 {
		return nil, errNoStructure
	}
	if end < start {
		return nil, errInvalidJSON
	}
	candidate := []byte(content[start : end+1])
	if !json.Valid(candidate) {
		return nil, errInvalidJSON
	}
	return json.RawMessage(candidate), nil
}

// fencedJSONBlock returns the contents of the first ```json fence, if any.
func fencedJSONBlock(content string) (string, bool) {
	const fence = "```json"
	start := strings.Index(content, fence)
	if start == -1 {
		return "", false
	}
	rest := content[start+len(fence):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return rest[:end], true
}
