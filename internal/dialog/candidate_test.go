package dialog

import (
	"context"
	"strings"
	"testing"
	"time"

	"vacancy-bot/internal/chat"

	"go.uber.org/zap"
)

func newCandidateFixture() (*CandidateEngine, *fakeStore, *fakeMessenger, *fakeFiles, *fakeNotifier, *Manager) {
	store := newFakeStore()
	states := NewManager(30 * time.Minute)
	msgr := &fakeMessenger{}
	files := &fakeFiles{}
	notifier := &fakeNotifier{}
	engine := NewCandidateEngine(store, states, msgr, files, notifier, zap.NewNop())
	return engine, store, msgr, files, notifier, states
}

func candidateEvent(text string) chat.Event {
	return chat.Event{UserID: 100, ChatID: 100, Username: "applicant", Text: text}
}

func feed(t *testing.T, engine *CandidateEngine, states *Manager, ev chat.Event) {
	t.Helper()
	st, ok := states.Get(ev.UserID)
	if !ok {
		t.Fatalf("no active dialog for user %d", ev.UserID)
	}
	if err := engine.HandleInput(context.Background(), ev, st); err != nil {
		t.Fatalf("HandleInput(%q): %v", ev.Text, err)
	}
}

func TestValidPhoneNumber(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+380501234567", true},
		{"0501234567", false},
		{"+38050123", false},
		{"+3805012345678", false},
		{"+380abcdefghi", false},
		{"", false},
		{" +380501234567", false},
	}

	for _, tc := range cases {
		if got := validPhoneNumber(tc.phone); got != tc.want {
			t.Errorf("validPhoneNumber(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestApplicationFlowCompletes(t *testing.T) {
	engine, store, msgr, _, notifier, states := newCandidateFixture()
	ctx := context.Background()

	v := store.addVacancy("Go розробник")

	if err := engine.Start(ctx, candidateEvent(""), v.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := msgr.last().text; got != "Введіть ваше повне ім'я:" {
		t.Fatalf("start prompt = %q", got)
	}

	feed(t, engine, states, candidateEvent("Іван Петренко"))
	feed(t, engine, states, candidateEvent("+380501234567"))
	feed(t, engine, states, candidateEvent("5 років розробки"))
	feed(t, engine, states, candidateEvent("ivan@example.com"))
	feed(t, engine, states, candidateEvent("skip"))

	if got := msgr.last().text; got != "Ваша заявка успішно надіслана!" {
		t.Fatalf("confirmation = %q", got)
	}

	if len(store.candidates) != 1 {
		t.Fatalf("candidates persisted = %d, want 1", len(store.candidates))
	}
	c := store.candidates[0]
	if c.FullName != "Іван Петренко" || c.PhoneNumber != "+380501234567" || c.VacancyID != v.ID {
		t.Errorf("unexpected candidate record: %+v", c)
	}
	if c.Email == nil || *c.Email != "ivan@example.com" {
		t.Errorf("email not recorded: %v", c.Email)
	}
	if c.ResumePath != nil {
		t.Errorf("resume path should be nil after skip, got %v", *c.ResumePath)
	}

	if notifier.count() != 1 {
		t.Errorf("notifications = %d, want 1", notifier.count())
	}

	if _, ok := states.Get(100); ok {
		t.Error("dialog state not removed after completion")
	}
}

func TestApplicationInvalidPhoneRetries(t *testing.T) {
	engine, store, msgr, _, _, states := newCandidateFixture()
	ctx := context.Background()

	v := store.addVacancy("Тестувальник")

	if err := engine.Start(ctx, candidateEvent(""), v.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	feed(t, engine, states, candidateEvent("Ольга"))

	for i := 0; i < 3; i++ {
		feed(t, engine, states, candidateEvent("0501234567"))
		if got := msgr.last().text; got != "Некоректний формат номера телефону. Спробуйте ще раз:" {
			t.Fatalf("retry prompt = %q", got)
		}
		st, _ := states.Get(100)
		if st.Step != StepPhoneNumber {
			t.Fatalf("step advanced on invalid input: %v", st.Step)
		}
	}

	feed(t, engine, states, candidateEvent("+380671112233"))
	st, _ := states.Get(100)
	if st.Step != StepWorkExperience {
		t.Fatalf("step after valid phone = %v, want StepWorkExperience", st.Step)
	}
	if st.PhoneNumber != "+380671112233" {
		t.Errorf("phone recorded = %q", st.PhoneNumber)
	}
}

func TestApplicationEmailSkipCaseInsensitive(t *testing.T) {
	for _, skip := range []string{"ні", "НІ", "Ні"} {
		t.Run(skip, func(t *testing.T) {
			engine, store, _, _, _, states := newCandidateFixture()
			ctx := context.Background()

			v := store.addVacancy("Дизайнер")
			if err := engine.Start(ctx, candidateEvent(""), v.ID); err != nil {
				t.Fatalf("Start: %v", err)
			}

			feed(t, engine, states, candidateEvent("Марія"))
			feed(t, engine, states, candidateEvent("+380501234567"))
			feed(t, engine, states, candidateEvent("2 роки"))
			feed(t, engine, states, candidateEvent(skip))
			feed(t, engine, states, candidateEvent("skip"))

			if len(store.candidates) != 1 {
				t.Fatalf("candidates persisted = %d", len(store.candidates))
			}
			if store.candidates[0].Email != nil {
				t.Errorf("email should be nil after %q, got %v", skip, *store.candidates[0].Email)
			}
		})
	}
}

func TestApplicationResumeDocument(t *testing.T) {
	engine, store, _, files, _, states := newCandidateFixture()
	ctx := context.Background()

	v := store.addVacancy("Аналітик")
	if err := engine.Start(ctx, candidateEvent(""), v.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	feed(t, engine, states, candidateEvent("Петро"))
	feed(t, engine, states, candidateEvent("+380501234567"))
	feed(t, engine, states, candidateEvent("рік"))
	feed(t, engine, states, candidateEvent("ні"))

	ev := candidateEvent("")
	ev.Document = &chat.Attachment{FileID: "doc42", Name: "resume.pdf"}
	feed(t, engine, states, ev)

	if len(files.saved) != 1 {
		t.Fatalf("files saved = %d, want 1", len(files.saved))
	}
	if len(store.candidates) != 1 {
		t.Fatalf("candidates persisted = %d", len(store.candidates))
	}
	got := store.candidates[0].ResumePath
	if got == nil || !strings.Contains(*got, "resume.pdf") {
		t.Errorf("resume path = %v", got)
	}
}

func TestApplicationResumeUnexpectedTextRetries(t *testing.T) {
	engine, store, msgr, _, notifier, states := newCandidateFixture()
	ctx := context.Background()

	v := store.addVacancy("Менеджер")
	if err := engine.Start(ctx, candidateEvent(""), v.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	feed(t, engine, states, candidateEvent("Олена"))
	feed(t, engine, states, candidateEvent("+380501234567"))
	feed(t, engine, states, candidateEvent("3 роки"))
	feed(t, engine, states, candidateEvent("ні"))
	feed(t, engine, states, candidateEvent("ось моє резюме"))

	if got := msgr.last().text; got != "Надішліть файл резюме або введіть skip, щоб пропустити цей крок." {
		t.Fatalf("retry prompt = %q", got)
	}
	if len(store.candidates) != 0 {
		t.Errorf("candidate persisted before resume step resolved")
	}
	if notifier.count() != 0 {
		t.Errorf("notified before completion")
	}
}

func TestApplicationSaveFailureKeepsState(t *testing.T) {
	engine, store, _, _, notifier, states := newCandidateFixture()
	ctx := context.Background()

	v := store.addVacancy("Юрист")
	if err := engine.Start(ctx, candidateEvent(""), v.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	feed(t, engine, states, candidateEvent("Андрій"))
	feed(t, engine, states, candidateEvent("+380501234567"))
	feed(t, engine, states, candidateEvent("4 роки"))
	feed(t, engine, states, candidateEvent("ні"))

	store.saveCandidateErr = context.DeadlineExceeded

	st, _ := states.Get(100)
	if err := engine.HandleInput(ctx, candidateEvent("skip"), st); err == nil {
		t.Fatal("expected error from failed persist")
	}

	if _, ok := states.Get(100); !ok {
		t.Error("state dropped on failed persist, retry impossible")
	}
	if notifier.count() != 0 {
		t.Error("notified despite failed persist")
	}

	// retry succeeds after the store recovers
	store.saveCandidateErr = nil
	feed(t, engine, states, candidateEvent("skip"))

	if len(store.candidates) != 1 {
		t.Fatalf("candidates persisted = %d, want 1", len(store.candidates))
	}
	if notifier.count() != 1 {
		t.Errorf("notifications = %d, want 1", notifier.count())
	}
}

func TestStartOverwritesPreviousDialog(t *testing.T) {
	engine, store, _, _, _, states := newCandidateFixture()
	ctx := context.Background()

	first := store.addVacancy("Перша")
	second := store.addVacancy("Друга")

	if err := engine.Start(ctx, candidateEvent(""), first.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	feed(t, engine, states, candidateEvent("Ім'я"))

	if err := engine.Start(ctx, candidateEvent(""), second.ID); err != nil {
		t.Fatalf("restart: %v", err)
	}

	st, ok := states.Get(100)
	if !ok {
		t.Fatal("no state after restart")
	}
	if st.VacancyID != second.ID || st.Step != StepFullName || st.FullName != "" {
		t.Errorf("restart did not reset the dialog: %+v", st)
	}
}
