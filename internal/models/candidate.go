package models

import "time"

// Candidate is a submitted application. Created once when the application
// dialog completes, never mutated afterwards.
type Candidate struct {
	ID             int64     `db:"id"`
	TelegramID     int64     `db:"telegram_id"`
	Username       *string   `db:"username"`
	FullName       string    `db:"full_name"`
	PhoneNumber    string    `db:"phone_number"`
	WorkExperience string    `db:"work_experience"`
	Email          *string   `db:"email"`
	ResumePath     *string   `db:"resume_path"`
	VacancyID      int64     `db:"vacancy_id"`
	AppliedAt      time.Time `db:"applied_at"`
}
