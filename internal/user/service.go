package user

import (
	"context"
	"errors"

	"ostocare-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	CheckUsername(ctx context.Context, session, username string) (Availability, error)
}

type service struct {
	checkers *Checkers
}

func NewService(checkers *Checkers) Service {
	return &service{checkers: checkers}
}

// CheckUsername validates username and, when valid, runs a debounced lookup
// on the session's checker. Validation errors are returned without a lookup.
func (s *service) CheckUsername(ctx context.Context, session, username string) (Availability, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CheckUsername"),
	)

	username = NormalizeUsername(username)
	result := Availability{Username: username}

	if err := ValidateUsername(username); err != nil {
		return result, err
	}

	available, err := s.checkers.For(session).Check(ctx, username)
	if err != nil {
		if errors.Is(err, ErrSuperseded) {
			log.Debug("username check superseded", zap.String("username", username))
		} else if !errors.Is(err, context.Canceled) {
			log.Error("username check failed", zap.String("username", username), zap.Error(err))
		}
		return result, err
	}

	result.Available = available
	return result, nil
}
