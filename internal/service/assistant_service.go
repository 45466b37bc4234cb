package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/pkg/assistant"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
	"github.com/ivaschool/portal-api/pkg/validation"
)

// AssistantFallbackReply replaces an empty model answer.
const AssistantFallbackReply = "Sorry, I'm having trouble thinking right now. Could you ask again?"

type contentGenerator interface {
	Generate(ctx context.Context, systemPrompt string, history []assistant.Turn, message string) (string, error)
}

// AssistantConfig tunes the study assistant proxy.
type AssistantConfig struct {
	SystemPrompt string
	Timeout      time.Duration
}

// AssistantService proxies study questions to the conversational model.
type AssistantService struct {
	generator contentGenerator
	config    AssistantConfig
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssistantService constructs the proxy. A nil generator leaves the
// assistant unconfigured.
func NewAssistantService(generator contentGenerator, config AssistantConfig, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AssistantService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &AssistantService{generator: generator, config: config, metrics: metrics, validator: validate, logger: logger}
}

// Chat forwards the conversation and returns the model's reply.
func (s *AssistantService) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if s.generator == nil {
		s.metrics.RecordAssistantRequest("unconfigured")
		return nil, appErrors.Clone(appErrors.ErrServiceUnavailable, "assistant is not configured")
	}
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordAssistantRequest("invalid")
		return nil, appErrors.Validation(err, "invalid chat payload")
	}

	history := make([]assistant.Turn, 0, len(req.History))
	for _, msg := range req.History {
		history = append(history, assistant.Turn{Role: string(msg.Role), Text: msg.Content})
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	reply, err := s.generator.Generate(ctx, s.config.SystemPrompt, history, req.Message)
	if err != nil {
		s.metrics.RecordAssistantRequest("upstream_error")
		s.logger.Error("assistant upstream failed", zap.Int("history", len(history)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, http.StatusBadGateway, "assistant is unavailable")
	}
	if strings.TrimSpace(reply) == "" {
		s.metrics.RecordAssistantRequest("empty")
		return &dto.ChatResponse{Response: AssistantFallbackReply}, nil
	}
	s.metrics.RecordAssistantRequest("ok")
	return &dto.ChatResponse{Response: reply}, nil
}
