package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/halo-bridge/internal/logging"
	"go.uber.org/zap"
)

// FunctionTool exposes a plain function as a Tool. Arguments are validated against
// the schema before fn runs, and any error fn returns is mapped to a *ToolError.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(ctx context.Context, args map[string]any) (any, error)
	logger      *zap.Logger
}

func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (any, error),
	logger *zap.Logger,
) *FunctionTool {
	logger = logging.OrNop(logger)
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
		logger:      logger,
	}
}

func (t *FunctionTool) Name() string { return t.name }

func (t *FunctionTool) Description() string { return t.description }

func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

func (t *FunctionTool) Call(ctx context.Context, args map[string]any) (any, error) {
	logger := t.logger.With(zap.String("tool", t.name))
	start := time.Now()

	logger.Debug("tool call started")

	if err := validateParameters(args, t.parameters); err != nil {
		logger.Warn("tool call rejected", zap.Error(err))
		return nil, &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("parameter validation failed: %v", err),
			Code:    CodeValidationError,
			Details: err,
		}
	}

	result, err := t.fn(ctx, args)
	if err != nil {
		var toolErr *ToolError
		if !errors.As(err, &toolErr) {
			toolErr = toolErrorFrom(t.name, err)
		}
		logger.Error("tool call failed", zap.String("code", toolErr.Code), zap.String("error", toolErr.Message))
		return nil, toolErr
	}

	logger.Info("tool call succeeded", zap.Duration("elapsed", time.Since(start)))
	return result, nil
}
