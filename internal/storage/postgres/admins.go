package postgres

import (
	"context"
	"fmt"

	"vacancy-bot/internal/models"

	"go.uber.org/zap"
)

func (s *Store) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("admins").
		Where("telegram_id = ?", userID).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check admin",
			zap.Int64("telegram_id", userID),
			zap.Error(err),
		)
		return false, fmt.Errorf("check admin: %w", err)
	}

	return count > 0, nil
}

func (s *Store) GetAdmins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin

	_, err := s.sess.
		Select("*").
		From("admins").
		OrderBy("id").
		LoadContext(ctx, &admins)

	if err != nil {
		s.logger.Error("failed to get admins", zap.Error(err))
		return nil, fmt.Errorf("get admins: %w", err)
	}

	return admins, nil
}
