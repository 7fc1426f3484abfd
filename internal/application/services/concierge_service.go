package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/llm"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/ratelimit"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/security"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

// Concierge error categories surfaced to the presentation layer.
var (
	ErrInvalidMessage     = errors.New("invalid message")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrUpstreamDown       = errors.New("ai service temporarily unavailable")
	ErrGuideLimitExceeded = errors.New("download limit reached")
)

// ConciergeRequest is one question to the AI concierge.
type ConciergeRequest struct {
	Message  string `json:"message"`
	Mode     string `json:"mode"`
	Language string `json:"language"`
}

// ConciergeService proxies concierge questions to the upstream model,
// enforcing the per-client quota and sanitizing every reply.
type ConciergeService struct {
	client      *llm.Client
	limiter     *ratelimit.Limiter
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewConciergeService creates the concierge proxy service.
func NewConciergeService(client *llm.Client, limiter *ratelimit.Limiter, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ConciergeService {
	return &ConciergeService{
		client:      client,
		limiter:     limiter,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Ask validates, rate limits, and forwards one concierge question. The reply
// is sanitized before it reaches the caller.
func (s *ConciergeService) Ask(ctx context.Context, clientKey string, req ConciergeRequest) (string, error) {
	marker := s.perfTracker.StartOperation("concierge_ask", "")
	defer marker.Complete()

	message := strings.TrimSpace(req.Message)
	if message == "" || len(req.Message) > config.ConciergeMaxMessageLen {
		marker.SetError(ErrInvalidMessage)
		return "", ErrInvalidMessage
	}

	allowed, _ := s.limiter.Allow(ctx, "concierge", clientKey, config.ConciergeRateLimit, config.ConciergeRateWindow)
	if !allowed {
		marker.SetError(ErrRateLimited)
		return "", ErrRateLimited
	}

	mode := req.Mode
	if mode == "" || !llm.IsValidMode(mode) {
		mode = llm.ModeRoute
	}
	lang := req.Language
	if lang == "" {
		lang = "en"
	}

	reply, err := s.client.Complete(ctx, llm.GetSystemPrompt(mode, lang), message)
	if err != nil {
		var upstream *llm.UpstreamError
		if errors.As(err, &upstream) {
			marker.SetError(ErrUpstreamDown)
			return "", ErrUpstreamDown
		}
		marker.SetError(err)
		return "", err
	}

	marker.SetSuccess(true)
	s.logger.Concierge().Info("Concierge reply served", "mode", mode, "language", lang)
	return security.SanitizeHTML(reply), nil
}

// GuideURL returns the guide redirect target after consuming one download
// from the per-client daily quota.
func (s *ConciergeService) GuideURL(ctx context.Context, clientKey string) (string, error) {
	allowed, _ := s.limiter.Allow(ctx, "guide", clientKey, config.GuideRateLimit, config.GuideRateWindow)
	if !allowed {
		return "", ErrGuideLimitExceeded
	}
	if config.GuideURL == "" {
		return "", errors.New("guide url not configured")
	}
	s.logger.Concierge().Info("Guide download granted", "clientKey", clientKey)
	return config.GuideURL, nil
}
