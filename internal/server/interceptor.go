package server

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// NewLoggingInterceptor tags every request with an id and logs its outcome.
func NewLoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			requestID := req.Header().Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			logger := slog.Default().With(
				"requestId", requestID,
				"procedure", req.Spec().Procedure,
			)

			start := time.Now()
			res, err := next(ctx, req)
			if err != nil {
				logger.Warn("request failed",
					"code", connect.CodeOf(err).String(),
					"duration", time.Since(start),
					"error", err,
				)
				return nil, err
			}

			res.Header().Set(requestIDHeader, requestID)
			logger.Info("request completed", "duration", time.Since(start))
			return res, nil
		}
	}
}
