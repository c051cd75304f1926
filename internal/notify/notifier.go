// Package notify fans a new application out to every admin, over chat and,
// when an admin has an email on file, over email. Delivery is best-effort:
// a failure for one admin or one channel never blocks the others.
package notify

import (
	"context"
	"fmt"
	"strings"

	"vacancy-bot/internal/chat"
	"vacancy-bot/internal/files"
	"vacancy-bot/internal/models"

	"go.uber.org/zap"
)

type Store interface {
	GetAdmins(ctx context.Context) ([]models.Admin, error)
	GetVacancy(ctx context.Context, id int64) (*models.Vacancy, error)
}

type Email struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

type EmailSender interface {
	Send(ctx context.Context, m Email) error
}

type Dispatcher struct {
	store  Store
	msgr   chat.Messenger
	email  EmailSender // nil when SMTP is not configured
	logger *zap.Logger
}

func NewDispatcher(store Store, msgr chat.Messenger, email EmailSender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		msgr:   msgr,
		email:  email,
		logger: logger,
	}
}

// CandidateApplied notifies every admin about a freshly persisted candidate.
func (d *Dispatcher) CandidateApplied(ctx context.Context, c *models.Candidate) {
	title := fmt.Sprintf("#%d", c.VacancyID)
	vacancy, err := d.store.GetVacancy(ctx, c.VacancyID)
	if err != nil {
		d.logger.Error("failed to load vacancy for notification",
			zap.Int64("vacancy_id", c.VacancyID),
			zap.Error(err),
		)
	} else if vacancy != nil {
		title = vacancy.Title
	}

	admins, err := d.store.GetAdmins(ctx)
	if err != nil {
		d.logger.Error("failed to load admins for notification", zap.Error(err))
		return
	}

	summary := formatSummary(c, title)

	for _, admin := range admins {
		d.notifyChat(ctx, admin, c, summary)

		if admin.Email != nil && *admin.Email != "" {
			d.notifyEmail(ctx, *admin.Email, c, summary)
		}
	}
}

func (d *Dispatcher) notifyChat(ctx context.Context, admin models.Admin, c *models.Candidate, summary string) {
	if err := d.msgr.SendText(ctx, admin.TelegramID, summary, nil); err != nil {
		d.logger.Error("failed to notify admin",
			zap.Int64("admin_id", admin.TelegramID),
			zap.Error(err),
		)
		return
	}

	if c.ResumePath == nil || *c.ResumePath == "" {
		if err := d.msgr.SendText(ctx, admin.TelegramID, "Кандидат не надав резюме.", nil); err != nil {
			d.logger.Error("failed to send resume notice",
				zap.Int64("admin_id", admin.TelegramID),
				zap.Error(err),
			)
		}
		return
	}

	path := *c.ResumePath
	var err error
	if files.IsImage(path) {
		err = d.msgr.SendPhoto(ctx, admin.TelegramID, path, "Резюме кандидата", nil)
	} else {
		err = d.msgr.SendDocument(ctx, admin.TelegramID, path, "Резюме кандидата")
	}

	if err != nil {
		d.logger.Error("failed to send resume file",
			zap.Int64("admin_id", admin.TelegramID),
			zap.String("path", path),
			zap.Error(err),
		)
		fallback := fmt.Sprintf("Не вдалося надіслати файл резюме: %s", path)
		if err := d.msgr.SendText(ctx, admin.TelegramID, fallback, nil); err != nil {
			d.logger.Error("failed to send resume fallback",
				zap.Int64("admin_id", admin.TelegramID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) notifyEmail(ctx context.Context, to string, c *models.Candidate, summary string) {
	if d.email == nil {
		d.logger.Debug("email sender not configured, skipping", zap.String("to", to))
		return
	}

	m := Email{
		To:      to,
		Subject: fmt.Sprintf("Новий кандидат: %s", c.FullName),
		Body:    summary,
	}
	if c.ResumePath != nil {
		m.AttachmentPath = *c.ResumePath
	}

	if err := d.email.Send(ctx, m); err != nil {
		d.logger.Error("failed to email admin",
			zap.String("to", to),
			zap.Error(err),
		)
	}
}

func formatSummary(c *models.Candidate, vacancyTitle string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Нова заявка на вакансію «%s»\n\n", vacancyTitle))
	sb.WriteString(fmt.Sprintf("👤 ПІБ: %s\n", c.FullName))
	sb.WriteString(fmt.Sprintf("📞 Телефон: %s\n", c.PhoneNumber))
	sb.WriteString(fmt.Sprintf("💼 Досвід роботи: %s\n", c.WorkExperience))
	sb.WriteString(fmt.Sprintf("📧 Email: %s\n", orNA(c.Email)))
	sb.WriteString(fmt.Sprintf("📎 Резюме: %s\n", orNA(c.ResumePath)))
	sb.WriteString(fmt.Sprintf("🔗 Username: %s", usernameOrNA(c.Username)))

	return sb.String()
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func usernameOrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return "@" + *s
}
