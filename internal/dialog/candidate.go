package dialog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"vacancy-bot/internal/chat"
	"vacancy-bot/internal/models"

	"go.uber.org/zap"
)

var phoneRegexp = regexp.MustCompile(`^\+380\d{9}$`)

func validPhoneNumber(s string) bool {
	return phoneRegexp.MatchString(s)
}

const emailSkipWord = "ні"

// CandidateEngine drives the multi-step application flow:
// full name → phone → experience → email → resume.
type CandidateEngine struct {
	store    Store
	states   *Manager
	msgr     chat.Messenger
	files    chat.Files
	notifier Notifier
	logger   *zap.Logger
}

func NewCandidateEngine(store Store, states *Manager, msgr chat.Messenger, files chat.Files, notifier Notifier, logger *zap.Logger) *CandidateEngine {
	return &CandidateEngine{
		store:    store,
		states:   states,
		msgr:     msgr,
		files:    files,
		notifier: notifier,
		logger:   logger,
	}
}

// Start begins an application for the given vacancy, overwriting any prior
// dialog of this user. The vacancy id is not verified here; it is stored as
// submitted when the flow completes.
func (e *CandidateEngine) Start(ctx context.Context, ev chat.Event, vacancyID int64) error {
	e.states.Put(ev.UserID, &State{
		Role:      RoleCandidate,
		Flow:      FlowApplication,
		Step:      StepFullName,
		VacancyID: vacancyID,
	})

	e.logger.Info("application started",
		zap.Int64("user_id", ev.UserID),
		zap.Int64("vacancy_id", vacancyID),
	)

	return e.msgr.SendText(ctx, ev.ChatID, "Введіть ваше повне ім'я:", nil)
}

// HandleInput feeds one free-text or attachment message into the active
// application dialog.
func (e *CandidateEngine) HandleInput(ctx context.Context, ev chat.Event, st *State) error {
	in := Input{Text: strings.TrimSpace(ev.Text), Photo: ev.Photo, Document: ev.Document}
	return advance(ctx, e.msgr, e.states, ev, e.applicationFlow(ev), st, in)
}

func (e *CandidateEngine) applicationFlow(ev chat.Event) flowDef {
	return flowDef{
		steps: []stepDef{
			{
				step: StepFullName,
				apply: func(ctx context.Context, st *State, in Input) error {
					st.FullName = in.Text
					return nil
				},
			},
			{
				step:   StepPhoneNumber,
				prompt: "Введіть ваш номер телефону (у форматі +380XXXXXXXXX):",
				apply: func(ctx context.Context, st *State, in Input) error {
					if !validPhoneNumber(in.Text) {
						return &retryError{prompt: "Некоректний формат номера телефону. Спробуйте ще раз:"}
					}
					st.PhoneNumber = in.Text
					return nil
				},
			},
			{
				step:   StepWorkExperience,
				prompt: "Опишіть ваш досвід роботи:",
				apply: func(ctx context.Context, st *State, in Input) error {
					st.WorkExperience = in.Text
					return nil
				},
			},
			{
				step:   StepEmail,
				prompt: "Введіть ваш email (або напишіть ні, щоб пропустити):",
				apply: func(ctx context.Context, st *State, in Input) error {
					if strings.EqualFold(in.Text, emailSkipWord) {
						st.Email = ""
						return nil
					}
					st.Email = in.Text
					return nil
				},
			},
			{
				step:   StepResume,
				prompt: "Надішліть ваше резюме файлом або фото (або введіть skip, щоб пропустити):",
				apply: func(ctx context.Context, st *State, in Input) error {
					switch {
					case in.Document != nil:
						path, err := e.files.Save(ctx, in.Document.FileID, in.Document.Name)
						if err != nil {
							return fmt.Errorf("save resume document: %w", err)
						}
						st.ResumePath = path
					case in.Photo != nil:
						path, err := e.files.Save(ctx, in.Photo.FileID, in.Photo.Name)
						if err != nil {
							return fmt.Errorf("save resume photo: %w", err)
						}
						st.ResumePath = path
					case strings.EqualFold(in.Text, "skip"):
						st.ResumePath = ""
					default:
						return &retryError{prompt: "Надішліть файл резюме або введіть skip, щоб пропустити цей крок."}
					}
					return nil
				},
			},
		},
		finish: func(ctx context.Context, chatID int64, st *State) error {
			return e.complete(ctx, ev, chatID, st)
		},
	}
}

// complete persists the candidate exactly once, removes the dialog state and
// triggers the admin notification pass. A failed write keeps the state at
// the resume step so the user can retry.
func (e *CandidateEngine) complete(ctx context.Context, ev chat.Event, chatID int64, st *State) error {
	candidate := &models.Candidate{
		TelegramID:     ev.UserID,
		Username:       optional(ev.Username),
		FullName:       st.FullName,
		PhoneNumber:    st.PhoneNumber,
		WorkExperience: st.WorkExperience,
		Email:          optional(st.Email),
		ResumePath:     optional(st.ResumePath),
		VacancyID:      st.VacancyID,
		AppliedAt:      time.Now().UTC(),
	}

	if err := e.store.SaveCandidate(ctx, candidate); err != nil {
		return fmt.Errorf("save candidate: %w", err)
	}

	e.states.Delete(ev.UserID)

	e.logger.Info("application submitted",
		zap.Int64("user_id", ev.UserID),
		zap.Int64("vacancy_id", st.VacancyID),
	)

	if err := e.msgr.SendText(ctx, chatID, "Ваша заявка успішно надіслана!", nil); err != nil {
		e.logger.Warn("failed to send confirmation", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	e.notifier.CandidateApplied(ctx, candidate)

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
