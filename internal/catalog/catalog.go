// Package catalog renders the vacancy list and vacancy details for chat.
package catalog

import (
	"context"
	"fmt"
	"html"

	"vacancy-bot/internal/chat"
	"vacancy-bot/internal/models"

	"go.uber.org/zap"
)

type Store interface {
	GetVacancies(ctx context.Context) ([]models.Vacancy, error)
	GetVacancy(ctx context.Context, id int64) (*models.Vacancy, error)
}

type Service struct {
	store  Store
	msgr   chat.Messenger
	logger *zap.Logger
}

func New(store Store, msgr chat.Messenger, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		msgr:   msgr,
		logger: logger,
	}
}

// ShowList sends the catalog as one inline button per vacancy.
func (s *Service) ShowList(ctx context.Context, chatID int64) error {
	vacancies, err := s.store.GetVacancies(ctx)
	if err != nil {
		return fmt.Errorf("list vacancies: %w", err)
	}

	if len(vacancies) == 0 {
		return s.msgr.SendText(ctx, chatID, "Наразі немає доступних вакансій.", nil)
	}

	buttons := make([]chat.Button, 0, len(vacancies))
	for _, v := range vacancies {
		buttons = append(buttons, chat.Button{
			Label: v.Title,
			Token: chat.Token(chat.ActionVacancyDetails, v.ID),
		})
	}

	return s.msgr.SendText(ctx, chatID, "Доступні вакансії:", chat.InlineColumn(buttons...))
}

// ShowDetails sends the full vacancy description with an apply button; the
// vacancy image, when present, carries the details as its caption.
func (s *Service) ShowDetails(ctx context.Context, chatID int64, vacancyID int64) error {
	vacancy, err := s.store.GetVacancy(ctx, vacancyID)
	if err != nil {
		return fmt.Errorf("get vacancy: %w", err)
	}

	if vacancy == nil {
		return s.msgr.SendText(ctx, chatID, "Вакансію не знайдено.", nil)
	}

	// fields are admin-authored free text; escape them so HTML parse mode
	// does not reject titles like "C++ <senior>"
	text := fmt.Sprintf("<b>%s</b>\n\n%s\n\nВимоги:\n%s",
		html.EscapeString(vacancy.Title),
		html.EscapeString(vacancy.Description),
		html.EscapeString(vacancy.Requirements))

	kb := &chat.Keyboard{
		Inline: [][]chat.Button{
			{{Label: "Подати заявку", Token: chat.Token(chat.ActionApply, vacancy.ID)}},
			{{Label: "◀️ Назад", Token: string(chat.ActionBackToCatalog)}},
		},
	}

	if vacancy.ImagePath != nil {
		err := s.msgr.SendPhoto(ctx, chatID, *vacancy.ImagePath, text, kb)
		if err == nil {
			return nil
		}
		s.logger.Warn("failed to send vacancy image, falling back to text",
			zap.Int64("vacancy_id", vacancy.ID),
			zap.Stringp("path", vacancy.ImagePath),
			zap.Error(err),
		)
	}

	return s.msgr.SendHTML(ctx, chatID, text, kb)
}
