package upstream

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Strategy is one named call shape for an operation whose true upstream
// contract is uncertain.
type Strategy[T any] struct {
	Name string
	Call func(ctx context.Context) (T, error)
}

// ProbeFirst tries the strategies in order and returns the result of the
// first one that succeeds, along with its name. A 404/405 means the shape is
// not supported on this deployment and is logged at debug; anything else is a
// genuine failure and is logged as a warning. When every strategy fails the
// last error is returned. This is shape negotiation, not a retry policy: a
// failed strategy is never re-attempted.
func ProbeFirst[T any](ctx context.Context, logger *zap.Logger, op string, strategies []Strategy[T]) (T, string, error) {
	var zero T
	var lastErr error

	for _, s := range strategies {
		out, err := s.Call(ctx)
		if err == nil {
			logger.Debug("endpoint probe succeeded",
				zap.String("op", op),
				zap.String("strategy", s.Name))
			return out, s.Name, nil
		}
		// A dead session fails every shape the same way; stop immediately.
		if errors.Is(err, ErrUnauthorized) {
			return zero, "", err
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.NotSupported() {
			logger.Debug("endpoint shape not supported here",
				zap.String("op", op),
				zap.String("strategy", s.Name),
				zap.Int("status", apiErr.StatusCode))
		} else {
			logger.Warn("endpoint probe failed",
				zap.String("op", op),
				zap.String("strategy", s.Name),
				zap.Error(err))
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%s: no strategies configured", op)
	}
	return zero, "", lastErr
}
