// FILE: internal/service/exercise_service.go
package service

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/transformerAnt/orange-fitness-backend/internal/config"
	"github.com/transformerAnt/orange-fitness-backend/internal/dto"
	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/logger"
)

type IExerciseService interface {
	List(ctx context.Context, query *dto.ListExercisesQuery) ([]byte, error)
	BodyParts(ctx context.Context) ([]byte, error)
	ByID(ctx context.Context, id string) ([]byte, error)
}

type exerciseService struct {
	cfg    config.ExerciseDBConfig
	client *http.Client
	logger logger.ILogger
}

func NewExerciseService(cfg config.ExerciseDBConfig, client *http.Client, log logger.ILogger) IExerciseService {
	if client == nil {
		client = &http.Client{}
	}
	return &exerciseService{
		cfg:    cfg,
		client: client,
		logger: log,
	}
}

// List proxies the catalog listing, optionally scoped to a body part.
func (s *exerciseService) List(ctx context.Context, query *dto.ListExercisesQuery) ([]byte, error) {
	base, err := s.baseURL()
	if err != nil {
		return nil, err
	}

	queryString := buildQuery(query)
	endpoint := base + "/exercises" + queryString
	if query.BodyPart != "" {
		endpoint = base + "/exercises/bodyPart/" + url.PathEscape(query.BodyPart) + queryString
	}

	return s.fetch(ctx, endpoint, "Failed to fetch exercises.")
}

func (s *exerciseService) BodyParts(ctx context.Context) ([]byte, error) {
	base, err := s.baseURL()
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, base+"/exercises/bodyPartList", "Failed to fetch body parts.")
}

func (s *exerciseService) ByID(ctx context.Context, id string) ([]byte, error) {
	base, err := s.baseURL()
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, base+"/exercises/exercise/"+url.PathEscape(id), "Failed to fetch exercise.")
}

// baseURL validates configuration before any network attempt.
func (s *exerciseService) baseURL() (string, error) {
	if s.cfg.BaseURL == "" || s.cfg.APIKey == "" {
		return "", &HTTPError{Code: fiber.StatusBadRequest, Message: "ExerciseDB is not configured."}
	}
	return strings.TrimSuffix(s.cfg.BaseURL, "/"), nil
}

// buildQuery keeps only the filters that are present; absent ones are
// omitted entirely rather than sent as empty values.
func buildQuery(query *dto.ListExercisesQuery) string {
	params := url.Values{}
	if query.Offset != "" {
		params.Set("offset", query.Offset)
	}
	if query.Limit != "" {
		params.Set("limit", query.Limit)
	}
	if query.SortMethod != "" {
		params.Set("sortMethod", query.SortMethod)
	}
	if query.SortOrder != "" {
		params.Set("sortOrder", query.SortOrder)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// fetch relays the upstream response verbatim: 2xx bodies pass through,
// non-2xx become an HTTPError with the same status and the upstream's own
// error text, and transport failures collapse into failMsg.
func (s *exerciseService) fetch(ctx context.Context, endpoint, failMsg string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, &HTTPError{Code: fiber.StatusInternalServerError, Message: failMsg}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", s.cfg.APIKey)
	if s.cfg.Host != "" {
		req.Header.Set("X-RapidAPI-Host", s.cfg.Host)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("exercise", "upstream request failed", map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return nil, &HTTPError{Code: fiber.StatusInternalServerError, Message: failMsg}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error("exercise", "reading upstream body failed", map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return nil, &HTTPError{Code: fiber.StatusInternalServerError, Message: failMsg}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := string(body)
		if message == "" {
			message = "ExerciseDB error."
		}
		return nil, &HTTPError{Code: resp.StatusCode, Message: message}
	}

	return body, nil
}
