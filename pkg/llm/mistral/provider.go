package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/transformerAnt/orange-fitness-backend/pkg/llm"
)

const dataURIPrefix = "data:"

type Provider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// Request Payload Structure (OpenAI Compatible)
type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

// chatMessage content is either a plain string or a list of content parts
// for multimodal turns.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string      `json:"type"`
	Text     string      `json:"text,omitempty"`
	ImageURL interface{} `json:"image_url,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// StatusError carries a non-2xx upstream response so callers can relay the
// exact status code and body text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mistral api error (status %d): %s", e.Code, e.Body)
}

func NewProvider(apiKey, baseURL, model string) *Provider {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai/v1"
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := p.buildOptions(options)

	messages := make([]chatMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	return p.complete(ctx, chatRequest{
		Model:       opts.Model,
		Temperature: opts.Temperature,
		Messages:    messages,
	})
}

// ChatWithImage sends a multimodal chat completion. The accepted shape of
// the image reference is ambiguous across API versions (bare string vs.
// {"url": ...} object), so the bare string is tried first and the object
// shape exactly once more when that attempt is rejected. This is shape
// disambiguation, not a transient-fault retry.
func (p *Provider) ChatWithImage(ctx context.Context, system, instruction, imageRef string, options ...llm.Option) (string, error) {
	opts := p.buildOptions(options)

	build := func(image interface{}) chatRequest {
		return chatRequest{
			Model:       opts.Model,
			Temperature: opts.Temperature,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: []contentPart{
					{Type: "text", Text: instruction},
					{Type: "image_url", ImageURL: image},
				}},
			},
		}
	}

	content, err := p.complete(ctx, build(imageRef))
	if err == nil {
		return content, nil
	}
	if _, rejected := err.(*StatusError); !rejected {
		return "", err
	}

	return p.complete(ctx, build(map[string]string{"url": imageRef}))
}

func (p *Provider) buildOptions(options []llm.Option) *llm.Options {
	opts := &llm.Options{Model: p.model}
	for _, o := range options {
		o(opts)
	}
	return opts
}

func (p *Provider) complete(ctx context.Context, reqBody chatRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode, Body: string(bodyBytes)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty choices from mistral api")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// NormalizeImageRef converts an accepted image input into a single
// reference: data URIs pass through, raw base64 is wrapped into a jpeg data
// URI, anything else is treated as a URL.
func NormalizeImageRef(ref string, isBase64 bool) string {
	if strings.HasPrefix(ref, dataURIPrefix) {
		return ref
	}
	if isBase64 {
		return "data:image/jpeg;base64," + ref
	}
	return ref
}
