package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transformerAnt/orange-fitness-backend/internal/config"
	"github.com/transformerAnt/orange-fitness-backend/internal/dto"
	"github.com/transformerAnt/orange-fitness-backend/pkg/llm"
	"github.com/transformerAnt/orange-fitness-backend/pkg/llm/mistral"
)

// stubProvider replays a canned answer and records what it was asked.
type stubProvider struct {
	content   string
	err       error
	messages  []llm.Message
	imageRefs []string
	options   []llm.Option
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.messages = history
	s.options = options
	return s.content, s.err
}

func (s *stubProvider) ChatWithImage(ctx context.Context, system, instruction, imageRef string, options ...llm.Option) (string, error) {
	s.imageRefs = append(s.imageRefs, imageRef)
	s.options = options
	return s.content, s.err
}

func mistralCfg() config.MistralConfig {
	return config.MistralConfig{
		APIKey:      "key",
		VisionModel: "vision-model",
		TextModel:   "text-model",
	}
}

func TestAnalyzeValidation(t *testing.T) {
	t.Run("missing image", func(t *testing.T) {
		provider := &stubProvider{}
		svc := NewNutritionService(mistralCfg(), provider, nopLogger{})

		_, err := svc.Analyze(context.Background(), &dto.AnalyzeFoodRequest{})
		httpErr, ok := err.(*HTTPError)
		assert.True(t, ok)
		assert.Equal(t, 400, httpErr.Code)
		assert.Equal(t, "imageUrl is required.", httpErr.Message)
		assert.Empty(t, provider.imageRefs)
	})

	t.Run("missing api key", func(t *testing.T) {
		provider := &stubProvider{}
		svc := NewNutritionService(config.MistralConfig{}, provider, nopLogger{})

		_, err := svc.Analyze(context.Background(), &dto.AnalyzeFoodRequest{ImageUrl: "https://x/a.jpg"})
		httpErr, ok := err.(*HTTPError)
		assert.True(t, ok)
		assert.Equal(t, 400, httpErr.Code)
		assert.Equal(t, "Mistral API key is not configured.", httpErr.Message)
		assert.Empty(t, provider.imageRefs)
	})
}

func TestAnalyzeImageNormalization(t *testing.T) {
	tests := []struct {
		name    string
		request dto.AnalyzeFoodRequest
		wantRef string
	}{
		{"camelCase url", dto.AnalyzeFoodRequest{ImageUrl: "https://x/a.jpg"}, "https://x/a.jpg"},
		{"snake_case url", dto.AnalyzeFoodRequest{ImageUrlAlt: "https://x/b.jpg"}, "https://x/b.jpg"},
		{"raw base64 wrapped", dto.AnalyzeFoodRequest{ImageBase64: "AAAA"}, "data:image/jpeg;base64,AAAA"},
		{"data uri untouched", dto.AnalyzeFoodRequest{ImageUrl: "data:image/png;base64,BBBB"}, "data:image/png;base64,BBBB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{content: `{"items":[],"totalCalories":0}`}
			svc := NewNutritionService(mistralCfg(), provider, nopLogger{})

			_, err := svc.Analyze(context.Background(), &tt.request)
			assert.NoError(t, err)
			assert.Equal(t, []string{tt.wantRef}, provider.imageRefs)
		})
	}
}

func TestAnalyzeExtractsFencedBlock(t *testing.T) {
	content := "Here is the breakdown:\n```json\n{\"items\":[{\"name\":\"rice\",\"calories\":200,\"protein_g\":4,\"carbs_g\":45,\"fat_g\":1}],\"totalCalories\":200}\n```\nEnjoy your meal!"
	provider := &stubProvider{content: content}
	svc := NewNutritionService(mistralCfg(), provider, nopLogger{})

	payload, err := svc.Analyze(context.Background(), &dto.AnalyzeFoodRequest{ImageUrl: "https://x/a.jpg"})
	assert.NoError(t, err)

	var parsed map[string]interface{}
	assert.NoError(t, json.Unmarshal(payload, &parsed))
	assert.Equal(t, float64(200), parsed["totalCalories"])
	items := parsed["items"].([]interface{})
	assert.Len(t, items, 1)
}

func TestAnalyzeBraceSliceFallback(t *testing.T) {
	content := `The macros are {"items":[],"totalCalories":410,"protein_g":22,"carbs_g":40,"fat_g":18} approximately.`
	provider := &stubProvider{content: content}
	svc := NewNutritionService(mistralCfg(), provider, nopLogger{})

	payload, err := svc.Analyze(context.Background(), &dto.AnalyzeFoodRequest{ImageUrl: "https://x/a.jpg"})
	assert.NoError(t, err)

	var parsed map[string]interface{}
	assert.NoError(t, json.Unmarshal(payload, &parsed))
	assert.Equal(t, float64(410), parsed["totalCalories"])
}

func TestAnalyzeNoBracesReturnsRaw(t *testing.T) {
	provider := &stubProvider{content: "I cannot see any food in this image."}
	svc := NewNutritionService(mistralCfg(), provider, nopLogger{})

	payload, err := svc.Analyze(context.Background(), &dto.AnalyzeFoodRequest{ImageUrl: "https://x/a.jpg"})
	assert.NoError(t, err)

	var parsed dto.AnalyzeFoodResponse
	assert.NoError(t, json.Unmarshal(payload, &parsed))
	assert.Empty(t, parsed.Items)
	assert.Equal(t, "I cannot see any food in this image.", parsed.Raw)
}

func TestAnalyzeInvalidJSONBetweenBraces(t *testing.T) {
	provider := &stubProvider{content: "estimate: {calories: lots, protein: some}"}
	svc := NewNutritionService(mistralCfg(), provider, nopLogger{})

	_, err := svc.Analyze(context.Background(), &dto.AnalyzeFoodRequest{ImageUrl: "https://x/a.jpg"})
	httpErr, ok := err.(*HTTPError)
	assert.True(t, ok)
	assert.Equal(t, 500, httpErr.Code)
	assert.Equal(t, "Food analysis failed.", httpErr.Message)
}

func TestAnalyzeUpstreamErrorRelay(t *testing.T) {
	provider := &stubProvider{err: &mistral.StatusError{Code: 401, Body: "invalid api key"}}
	svc := NewNutritionService(mistralCfg(), provider, nopLogger{})

	_, err := svc.Analyze(context.Background(), &dto.AnalyzeFoodRequest{ImageUrl: "https://x/a.jpg"})
	httpErr, ok := err.(*HTTPError)
	assert.True(t, ok)
	assert.Equal(t, 401, httpErr.Code)
	assert.Equal(t, "invalid api key", httpErr.Message)
}

func TestAnalyzeTransportFailureIsGeneric500(t *testing.T) {
	provider := &stubProvider{err: errors.New("dial tcp: connection refused")}
	svc := NewNutritionService(mistralCfg(), provider, nopLogger{})

	_, err := svc.Analyze(context.Background(), &dto.AnalyzeFoodRequest{ImageUrl: "https://x/a.jpg"})
	httpErr, ok := err.(*HTTPError)
	assert.True(t, ok)
	assert.Equal(t, 500, httpErr.Code)
	assert.Equal(t, "Food analysis failed.", httpErr.Message)
}

func TestExtractJSONStrategies(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "fenced block wins over surrounding braces",
			content: "{ignore this} ```json\n{\"a\":1}\n``` {and this}",
			want:    `{"a":1}`,
		},
		{
			name:    "invalid fenced block falls through to brace scan",
			content: "```json\nnot json\n``` but {\"b\":2} is here",
			want:    `{"b":2}`,
		},
		{
			name:    "no structure at all",
			content: "plain prose",
			wantErr: errNoStructure,
		},
		{
			name:    "closing brace before opening brace",
			content: "} weird {",
			wantErr: errInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
