package user

import (
	"context"
	"database/sql"

	"ostocare-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UsernameExists"),
	)

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM profiles WHERE username = $1
		)
	`, username).Scan(&exists)
	if err != nil {
		log.Error("failed to look up username", zap.String("username", username), zap.Error(err))
		return false, err
	}

	return exists, nil
}
