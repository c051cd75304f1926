package dialog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Role int

const (
	RoleCandidate Role = iota
	RoleAdmin
)

type FlowKind int

const (
	FlowApplication FlowKind = iota
	FlowAddVacancy
	FlowEditVacancy
	FlowViewCandidates
)

type Step int

const (
	// candidate application steps
	StepFullName Step = iota
	StepPhoneNumber
	StepWorkExperience
	StepEmail
	StepResume

	// admin vacancy steps
	StepTitle
	StepDescription
	StepRequirements
	StepImage
)

// State is the transient per-user dialog record. It lives only in process
// memory; a restart drops all in-flight dialogs.
type State struct {
	Role      Role
	Flow      FlowKind
	Step      Step
	VacancyID int64

	// partially collected fields, filled step by step
	FullName       string
	PhoneNumber    string
	WorkExperience string
	Email          string
	ResumePath     string
	Title          string
	Description    string
	Requirements   string
	ImagePath      string

	touched time.Time
}

// Manager owns the per-user state map. Users are independent: operations on
// different user ids never block each other beyond the map lock itself, and
// the transport delivers a single user's events sequentially, so per-state
// field access needs no extra locking.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*State
	ttl    time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		states: make(map[int64]*State),
		ttl:    ttl,
	}
}

func (m *Manager) Get(userID int64) (*State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.states[userID]
	return st, ok
}

// Put installs the state for a user, overwriting any previous dialog.
func (m *Manager) Put(userID int64, st *State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st.touched = time.Now()
	m.states[userID] = st
}

// Touch refreshes the staleness clock after a qualifying input.
func (m *Manager) Touch(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.states[userID]; ok {
		st.touched = time.Now()
	}
}

func (m *Manager) Delete(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, userID)
}

// Janitor periodically evicts dialogs that have been idle longer than the
// configured TTL. Abandoned flows would otherwise stay resident forever.
func (m *Manager) Janitor(ctx context.Context, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := m.evict(time.Now())
			if evicted > 0 {
				log.Info("stale dialogs evicted", zap.Int("count", evicted))
			}
		}
	}
}

func (m *Manager) evict(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for userID, st := range m.states {
		if now.Sub(st.touched) > m.ttl {
			delete(m.states, userID)
			evicted++
		}
	}

	return evicted
}
