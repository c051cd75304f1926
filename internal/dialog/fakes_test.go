package dialog

import (
	"context"
	"fmt"
	"sync"

	"vacancy-bot/internal/chat"
	"vacancy-bot/internal/models"
)

type fakeStore struct {
	mu sync.Mutex

	admins     map[int64]bool
	adminErr   error
	vacancies  map[int64]*models.Vacancy
	nextID     int64
	candidates []models.Candidate

	saveCandidateErr error
	saveVacancyErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		admins:    make(map[int64]bool),
		vacancies: make(map[int64]*models.Vacancy),
		nextID:    1,
	}
}

func (s *fakeStore) addVacancy(title string) *models.Vacancy {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := &models.Vacancy{
		ID:           s.nextID,
		Title:        title,
		Description:  "опис",
		Requirements: "вимоги",
	}
	s.vacancies[v.ID] = v
	s.nextID++
	return v
}

func (s *fakeStore) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adminErr != nil {
		return false, s.adminErr
	}
	return s.admins[userID], nil
}

func (s *fakeStore) GetVacancies(ctx context.Context) ([]models.Vacancy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Vacancy
	for id := int64(1); id < s.nextID; id++ {
		if v, ok := s.vacancies[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *fakeStore) GetVacancy(ctx context.Context, id int64) (*models.Vacancy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vacancies[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (s *fakeStore) SaveVacancy(ctx context.Context, v *models.Vacancy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveVacancyErr != nil {
		return s.saveVacancyErr
	}
	if v.ID == 0 {
		v.ID = s.nextID
		s.nextID++
	}
	cp := *v
	s.vacancies[v.ID] = &cp
	return nil
}

func (s *fakeStore) DeleteVacancy(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vacancies, id)
	return nil
}

func (s *fakeStore) SaveCandidate(ctx context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveCandidateErr != nil {
		return s.saveCandidateErr
	}
	cp := *c
	cp.ID = int64(len(s.candidates) + 1)
	s.candidates = append(s.candidates, cp)
	return nil
}

func (s *fakeStore) GetCandidatesByVacancy(ctx context.Context, vacancyID int64) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Candidate
	for _, c := range s.candidates {
		if c.VacancyID == vacancyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func modelsCandidate(vacancyID int64, fullName string, email, username *string) models.Candidate {
	return models.Candidate{
		TelegramID:     100,
		Username:       username,
		FullName:       fullName,
		PhoneNumber:    "+380501234567",
		WorkExperience: "5 років",
		Email:          email,
		VacancyID:      vacancyID,
	}
}

type sentMessage struct {
	chatID  int64
	text    string
	kb      *chat.Keyboard
	path    string
	caption string
	kind    string
}

type fakeMessenger struct {
	mu   sync.Mutex
	sent []sentMessage

	photoErr error
}

func (m *fakeMessenger) SendText(ctx context.Context, chatID int64, text string, kb *chat.Keyboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: text, kb: kb, kind: "text"})
	return nil
}

func (m *fakeMessenger) SendHTML(ctx context.Context, chatID int64, text string, kb *chat.Keyboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: text, kb: kb, kind: "html"})
	return nil
}

func (m *fakeMessenger) SendPhoto(ctx context.Context, chatID int64, path, caption string, kb *chat.Keyboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.photoErr != nil {
		return m.photoErr
	}
	m.sent = append(m.sent, sentMessage{chatID: chatID, path: path, caption: caption, kb: kb, kind: "photo"})
	return nil
}

func (m *fakeMessenger) SendDocument(ctx context.Context, chatID int64, path, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{chatID: chatID, path: path, caption: caption, kind: "document"})
	return nil
}

func (m *fakeMessenger) last() sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMessage{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *fakeMessenger) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.text)
	}
	return out
}

type fakeFiles struct {
	mu    sync.Mutex
	saved []string
	err   error
}

func (f *fakeFiles) Save(ctx context.Context, fileID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	path := fmt.Sprintf("uploads/%s-%s", fileID, name)
	f.saved = append(f.saved, path)
	return path, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	notified []*models.Candidate
}

func (n *fakeNotifier) CandidateApplied(ctx context.Context, c *models.Candidate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, c)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notified)
}
