package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/careerforge/interview-backend/internal/config"
	"github.com/careerforge/interview-backend/internal/entity"
	"github.com/careerforge/interview-backend/internal/integration/common"
	pkghttp "github.com/careerforge/interview-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.GeneratorConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GeneratorConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Generate produces the next interviewer message for the given directive.
func (c *Connector) Generate(ctx context.Context, directive string, cfg entity.InterviewConfig) (string, error) {
	ctxzap.Info(ctx, "generating interviewer message via LLM service")

	req := &entity.GenerateRequest{
		Directive: directive,
		Config:    cfg,
	}

	var resp entity.GenerateResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", classifyGenerationError(err)
	}

	if resp.Message == "" {
		return "", fmt.Errorf("%w: empty message in generation response", entity.ErrGenerationFailure)
	}

	ctxzap.Info(ctx, "interviewer message generated", zap.Int("message_length", len(resp.Message)))

	return resp.Message, nil
}

// Evaluate scores a full interview transcript and returns the raw
// evaluation text as produced by the service.
func (c *Connector) Evaluate(ctx context.Context, transcript string) (string, error) {
	ctxzap.Info(ctx, "evaluating interview transcript via LLM service",
		zap.Int("transcript_length", len(transcript)),
	)

	req := &entity.EvaluateRequest{Transcript: transcript}

	var resp entity.EvaluateResponse
	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.EvaluateEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", classifyGenerationError(err)
	}

	if resp.Result == "" {
		return "", fmt.Errorf("%w: empty result in evaluation response", entity.ErrGenerationFailure)
	}

	ctxzap.Info(ctx, "transcript evaluated", zap.Int("result_length", len(resp.Result)))

	return resp.Result, nil
}

// classifyGenerationError maps transport failures onto the domain error
// set so callers can distinguish timeouts from hard failures.
func classifyGenerationError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", entity.ErrGenerationTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", entity.ErrGenerationTimeout, err)
	}

	return fmt.Errorf("%w: %v", entity.ErrGenerationFailure, err)
}
