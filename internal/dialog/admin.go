package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vacancy-bot/internal/chat"
	"vacancy-bot/internal/models"

	"go.uber.org/zap"
)

// AdminEngine drives the vacancy management flows: add and edit share the
// title → description → requirements → image step sequence, delete and
// view-candidates resolve in a single inline selection.
type AdminEngine struct {
	store  Store
	states *Manager
	msgr   chat.Messenger
	files  chat.Files
	logger *zap.Logger
}

func NewAdminEngine(store Store, states *Manager, msgr chat.Messenger, files chat.Files, logger *zap.Logger) *AdminEngine {
	return &AdminEngine{
		store:  store,
		states: states,
		msgr:   msgr,
		files:  files,
		logger: logger,
	}
}

// StartAdd begins the add-vacancy flow, overwriting any prior dialog.
func (e *AdminEngine) StartAdd(ctx context.Context, ev chat.Event) error {
	e.states.Put(ev.UserID, &State{
		Role: RoleAdmin,
		Flow: FlowAddVacancy,
		Step: StepTitle,
	})

	e.logger.Info("add vacancy started", zap.Int64("user_id", ev.UserID))

	return e.msgr.SendText(ctx, ev.ChatID, "Введіть назву вакансії:", nil)
}

// PromptEdit lists vacancies for inline selection; the flow itself starts
// once the admin picks one.
func (e *AdminEngine) PromptEdit(ctx context.Context, ev chat.Event) error {
	return e.promptSelection(ctx, ev.ChatID, chat.ActionEdit,
		"Оберіть вакансію для редагування:",
		"Наразі немає доступних вакансій для редагування.")
}

func (e *AdminEngine) PromptDelete(ctx context.Context, ev chat.Event) error {
	return e.promptSelection(ctx, ev.ChatID, chat.ActionDelete,
		"Оберіть вакансію для видалення:",
		"Наразі немає доступних вакансій для видалення.")
}

func (e *AdminEngine) PromptViewCandidates(ctx context.Context, ev chat.Event) error {
	return e.promptSelection(ctx, ev.ChatID, chat.ActionCandidates,
		"Оберіть вакансію для перегляду кандидатів:",
		"Наразі немає доступних вакансій для перегляду кандидатів.")
}

func (e *AdminEngine) promptSelection(ctx context.Context, chatID int64, action chat.Action, prompt, empty string) error {
	vacancies, err := e.store.GetVacancies(ctx)
	if err != nil {
		return fmt.Errorf("list vacancies: %w", err)
	}

	if len(vacancies) == 0 {
		return e.msgr.SendText(ctx, chatID, empty, nil)
	}

	buttons := make([]chat.Button, 0, len(vacancies))
	for _, v := range vacancies {
		buttons = append(buttons, chat.Button{
			Label: v.Title,
			Token: chat.Token(action, v.ID),
		})
	}

	return e.msgr.SendText(ctx, chatID, prompt, chat.InlineColumn(buttons...))
}

// HandleCallback processes inline selections for the admin flows. Tokens
// outside the admin vocabulary are ignored: admin users cannot hold a
// candidate dialog.
func (e *AdminEngine) HandleCallback(ctx context.Context, ev chat.Event, action chat.Action, vacancyID int64) error {
	switch action {
	case chat.ActionEdit:
		e.states.Put(ev.UserID, &State{
			Role:      RoleAdmin,
			Flow:      FlowEditVacancy,
			Step:      StepTitle,
			VacancyID: vacancyID,
		})
		e.logger.Info("edit vacancy started",
			zap.Int64("user_id", ev.UserID),
			zap.Int64("vacancy_id", vacancyID),
		)
		return e.msgr.SendText(ctx, ev.ChatID, "Введіть нову назву вакансії:", nil)

	case chat.ActionDelete:
		return e.deleteVacancy(ctx, ev, vacancyID)

	case chat.ActionCandidates:
		// transient state exists only to feed the shared rendering path
		st := &State{Role: RoleAdmin, Flow: FlowViewCandidates, VacancyID: vacancyID}
		e.states.Put(ev.UserID, st)
		err := e.renderCandidates(ctx, ev.ChatID, st)
		e.states.Delete(ev.UserID)
		return err

	default:
		return nil
	}
}

func (e *AdminEngine) deleteVacancy(ctx context.Context, ev chat.Event, vacancyID int64) error {
	vacancy, err := e.store.GetVacancy(ctx, vacancyID)
	if err != nil {
		return fmt.Errorf("get vacancy: %w", err)
	}
	if vacancy == nil {
		return e.msgr.SendText(ctx, ev.ChatID, "Вакансію не знайдено.", nil)
	}

	if err := e.store.DeleteVacancy(ctx, vacancyID); err != nil {
		return fmt.Errorf("delete vacancy: %w", err)
	}

	e.logger.Info("vacancy deleted",
		zap.Int64("user_id", ev.UserID),
		zap.Int64("vacancy_id", vacancyID),
	)

	return e.msgr.SendText(ctx, ev.ChatID, "Вакансію видалено.", nil)
}

func (e *AdminEngine) renderCandidates(ctx context.Context, chatID int64, st *State) error {
	candidates, err := e.store.GetCandidatesByVacancy(ctx, st.VacancyID)
	if err != nil {
		return fmt.Errorf("list candidates: %w", err)
	}

	if len(candidates) == 0 {
		return e.msgr.SendText(ctx, chatID, "На цю вакансію ще немає кандидатів.", nil)
	}

	for _, c := range candidates {
		if err := e.msgr.SendText(ctx, chatID, formatCandidate(&c), nil); err != nil {
			return fmt.Errorf("send candidate summary: %w", err)
		}
	}

	return nil
}

func formatCandidate(c *models.Candidate) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("👤 ПІБ: %s\n", c.FullName))
	sb.WriteString(fmt.Sprintf("📞 Телефон: %s\n", c.PhoneNumber))
	sb.WriteString(fmt.Sprintf("💼 Досвід роботи: %s\n", c.WorkExperience))
	sb.WriteString(fmt.Sprintf("📧 Email: %s\n", orNA(c.Email)))
	sb.WriteString(fmt.Sprintf("📎 Резюме: %s\n", orNA(c.ResumePath)))
	sb.WriteString(fmt.Sprintf("🔗 Username: %s", atOrNA(c.Username)))

	return sb.String()
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func atOrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return "@" + *s
}

// HandleInput feeds one message into the active admin dialog.
func (e *AdminEngine) HandleInput(ctx context.Context, ev chat.Event, st *State) error {
	in := Input{Text: strings.TrimSpace(ev.Text), Photo: ev.Photo, Document: ev.Document}

	switch st.Flow {
	case FlowAddVacancy:
		return advance(ctx, e.msgr, e.states, ev, e.addFlow(ev), st, in)
	case FlowEditVacancy:
		err := advance(ctx, e.msgr, e.states, ev, e.editFlow(ev), st, in)
		if errors.Is(err, errTargetGone) {
			e.states.Delete(ev.UserID)
			e.logger.Warn("edit target vanished",
				zap.Int64("user_id", ev.UserID),
				zap.Int64("vacancy_id", st.VacancyID),
			)
			return e.msgr.SendText(ctx, ev.ChatID, "Вакансію не знайдено.", nil)
		}
		return err
	default:
		e.states.Delete(ev.UserID)
		return nil
	}
}

func (e *AdminEngine) addFlow(ev chat.Event) flowDef {
	return flowDef{
		steps: []stepDef{
			{
				step: StepTitle,
				apply: func(ctx context.Context, st *State, in Input) error {
					st.Title = in.Text
					return nil
				},
			},
			{
				step:   StepDescription,
				prompt: "Введіть опис вакансії:",
				apply: func(ctx context.Context, st *State, in Input) error {
					st.Description = in.Text
					return nil
				},
			},
			{
				step:   StepRequirements,
				prompt: "Введіть вимоги до посади:",
				apply: func(ctx context.Context, st *State, in Input) error {
					st.Requirements = in.Text
					return nil
				},
			},
			{
				step:   StepImage,
				prompt: "Надішліть зображення вакансії (або введіть skip, щоб пропустити):",
				apply: func(ctx context.Context, st *State, in Input) error {
					switch {
					case in.Photo != nil:
						path, err := e.files.Save(ctx, in.Photo.FileID, in.Photo.Name)
						if err != nil {
							return fmt.Errorf("save vacancy image: %w", err)
						}
						st.ImagePath = path
					case strings.EqualFold(in.Text, "skip"):
						st.ImagePath = ""
					default:
						return &retryError{prompt: "Надішліть зображення або введіть skip, щоб пропустити цей крок."}
					}
					return nil
				},
			},
		},
		finish: func(ctx context.Context, chatID int64, st *State) error {
			return e.completeAdd(ctx, ev, chatID, st)
		},
	}
}

func (e *AdminEngine) completeAdd(ctx context.Context, ev chat.Event, chatID int64, st *State) error {
	vacancy := &models.Vacancy{
		Title:        st.Title,
		Description:  st.Description,
		Requirements: st.Requirements,
		ImagePath:    optional(st.ImagePath),
	}

	if err := e.store.SaveVacancy(ctx, vacancy); err != nil {
		return fmt.Errorf("save vacancy: %w", err)
	}

	e.states.Delete(ev.UserID)

	e.logger.Info("vacancy added",
		zap.Int64("user_id", ev.UserID),
		zap.String("title", st.Title),
	)

	return e.msgr.SendText(ctx, chatID, "Вакансію успішно додано.", nil)
}

// editFlow overwrites one field per step on the stored vacancy, fetching it
// fresh each time so a concurrent delete is caught at the next input.
func (e *AdminEngine) editFlow(ev chat.Event) flowDef {
	return flowDef{
		steps: []stepDef{
			{
				step: StepTitle,
				apply: func(ctx context.Context, st *State, in Input) error {
					return e.updateTarget(ctx, st, func(v *models.Vacancy) {
						v.Title = in.Text
					})
				},
			},
			{
				step:   StepDescription,
				prompt: "Введіть новий опис вакансії:",
				apply: func(ctx context.Context, st *State, in Input) error {
					return e.updateTarget(ctx, st, func(v *models.Vacancy) {
						v.Description = in.Text
					})
				},
			},
			{
				step:   StepRequirements,
				prompt: "Введіть нові вимоги до посади:",
				apply: func(ctx context.Context, st *State, in Input) error {
					return e.updateTarget(ctx, st, func(v *models.Vacancy) {
						v.Requirements = in.Text
					})
				},
			},
			{
				step:   StepImage,
				prompt: "Надішліть нове зображення вакансії (або введіть skip, щоб залишити поточне):",
				apply: func(ctx context.Context, st *State, in Input) error {
					switch {
					case in.Photo != nil:
						path, err := e.files.Save(ctx, in.Photo.FileID, in.Photo.Name)
						if err != nil {
							return fmt.Errorf("save vacancy image: %w", err)
						}
						return e.updateTarget(ctx, st, func(v *models.Vacancy) {
							v.ImagePath = &path
						})
					case strings.EqualFold(in.Text, "skip"):
						// keep the existing image
						return e.updateTarget(ctx, st, func(v *models.Vacancy) {})
					default:
						return &retryError{prompt: "Надішліть зображення або введіть skip, щоб залишити поточне."}
					}
				},
			},
		},
		finish: func(ctx context.Context, chatID int64, st *State) error {
			e.states.Delete(ev.UserID)
			e.logger.Info("vacancy updated",
				zap.Int64("user_id", ev.UserID),
				zap.Int64("vacancy_id", st.VacancyID),
			)
			return e.msgr.SendText(ctx, chatID, "Вакансію успішно оновлено.", nil)
		},
	}
}

func (e *AdminEngine) updateTarget(ctx context.Context, st *State, set func(*models.Vacancy)) error {
	vacancy, err := e.store.GetVacancy(ctx, st.VacancyID)
	if err != nil {
		return fmt.Errorf("get vacancy: %w", err)
	}
	if vacancy == nil {
		return errTargetGone
	}

	set(vacancy)

	if err := e.store.SaveVacancy(ctx, vacancy); err != nil {
		return fmt.Errorf("save vacancy: %w", err)
	}

	return nil
}
