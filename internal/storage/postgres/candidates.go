package postgres

import (
	"context"
	"fmt"

	"vacancy-bot/internal/models"

	"go.uber.org/zap"
)

func (s *Store) SaveCandidate(ctx context.Context, candidate *models.Candidate) error {
	_, err := s.sess.
		InsertInto("candidates").
		Columns("telegram_id", "username", "full_name", "phone_number",
			"work_experience", "email", "resume_path", "vacancy_id", "applied_at").
		Values(candidate.TelegramID, candidate.Username, candidate.FullName,
			candidate.PhoneNumber, candidate.WorkExperience, candidate.Email,
			candidate.ResumePath, candidate.VacancyID, candidate.AppliedAt).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save candidate",
			zap.Int64("telegram_id", candidate.TelegramID),
			zap.Int64("vacancy_id", candidate.VacancyID),
			zap.Error(err),
		)
		return fmt.Errorf("save candidate: %w", err)
	}

	s.logger.Info("candidate saved",
		zap.Int64("telegram_id", candidate.TelegramID),
		zap.Int64("vacancy_id", candidate.VacancyID),
	)

	return nil
}

func (s *Store) GetCandidatesByVacancy(ctx context.Context, vacancyID int64) ([]models.Candidate, error) {
	var candidates []models.Candidate

	_, err := s.sess.
		Select("*").
		From("candidates").
		Where("vacancy_id = ?", vacancyID).
		OrderBy("applied_at").
		LoadContext(ctx, &candidates)

	if err != nil {
		s.logger.Error("failed to get candidates",
			zap.Int64("vacancy_id", vacancyID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get candidates by vacancy: %w", err)
	}

	return candidates, nil
}
