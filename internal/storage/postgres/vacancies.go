package postgres

import (
	"context"
	"fmt"
	"time"

	"vacancy-bot/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) GetVacancies(ctx context.Context) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy

	_, err := s.sess.
		Select("*").
		From("vacancies").
		OrderBy("id").
		LoadContext(ctx, &vacancies)

	if err != nil {
		s.logger.Error("failed to get vacancies", zap.Error(err))
		return nil, fmt.Errorf("get vacancies: %w", err)
	}

	return vacancies, nil
}

func (s *Store) GetVacancy(ctx context.Context, id int64) (*models.Vacancy, error) {
	var vacancy models.Vacancy

	err := s.sess.
		Select("*").
		From("vacancies").
		Where("id = ?", id).
		LoadOneContext(ctx, &vacancy)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get vacancy",
			zap.Int64("vacancy_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get vacancy: %w", err)
	}

	return &vacancy, nil
}

// SaveVacancy inserts the vacancy when its id is zero and updates the stored
// record otherwise.
func (s *Store) SaveVacancy(ctx context.Context, vacancy *models.Vacancy) error {
	if vacancy.ID == 0 {
		_, err := s.sess.
			InsertInto("vacancies").
			Columns("title", "description", "requirements", "image_path", "created_at").
			Values(vacancy.Title, vacancy.Description, vacancy.Requirements, vacancy.ImagePath, time.Now()).
			ExecContext(ctx)

		if err != nil {
			s.logger.Error("failed to create vacancy",
				zap.String("title", vacancy.Title),
				zap.Error(err),
			)
			return fmt.Errorf("create vacancy: %w", err)
		}

		s.logger.Info("vacancy created", zap.String("title", vacancy.Title))
		return nil
	}

	_, err := s.sess.
		Update("vacancies").
		Set("title", vacancy.Title).
		Set("description", vacancy.Description).
		Set("requirements", vacancy.Requirements).
		Set("image_path", vacancy.ImagePath).
		Where("id = ?", vacancy.ID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update vacancy",
			zap.Int64("vacancy_id", vacancy.ID),
			zap.Error(err),
		)
		return fmt.Errorf("update vacancy: %w", err)
	}

	s.logger.Info("vacancy updated", zap.Int64("vacancy_id", vacancy.ID))
	return nil
}

func (s *Store) DeleteVacancy(ctx context.Context, id int64) error {
	_, err := s.sess.
		DeleteFrom("vacancies").
		Where("id = ?", id).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete vacancy",
			zap.Int64("vacancy_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("delete vacancy: %w", err)
	}

	s.logger.Info("vacancy deleted", zap.Int64("vacancy_id", id))
	return nil
}
