package dialog

import (
	"context"

	"vacancy-bot/internal/models"
)

// Store is the persistence gateway the dialog core depends on.
type Store interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	GetVacancies(ctx context.Context) ([]models.Vacancy, error)
	GetVacancy(ctx context.Context, id int64) (*models.Vacancy, error)
	SaveVacancy(ctx context.Context, v *models.Vacancy) error
	DeleteVacancy(ctx context.Context, id int64) error
	SaveCandidate(ctx context.Context, c *models.Candidate) error
	GetCandidatesByVacancy(ctx context.Context, vacancyID int64) ([]models.Candidate, error)
}

// Notifier fans a freshly persisted application out to the admins.
// Best-effort: implementations report nothing back to the dialog.
type Notifier interface {
	CandidateApplied(ctx context.Context, c *models.Candidate)
}
