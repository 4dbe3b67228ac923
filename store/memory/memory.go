// Package memory provides an in-memory schedule.Store for tests and dev.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aidalis/care-engine/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Store keeps everything in maps behind one RWMutex. Writes are serialized
// per handle, which satisfies the engine's consistent-snapshot contract.
type Store struct {
	mu        sync.RWMutex
	employees map[string]schedule.Employee
	contracts map[string]schedule.Contract // keyed by employee ID
	shifts    map[string]schedule.Shift
	absences  map[string]schedule.Absence
}

func New() *Store {
	return &Store{
		employees: make(map[string]schedule.Employee),
		contracts: make(map[string]schedule.Contract),
		shifts:    make(map[string]schedule.Shift),
		absences:  make(map[string]schedule.Absence),
	}
}

var _ schedule.Store = (*Store)(nil)

func (m *Store) SaveEmployee(_ context.Context, e schedule.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.employees[e.ID] = e
	return nil
}

func (m *Store) GetEmployee(_ context.Context, id string) (*schedule.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, schedule.ErrEmployeeNotFound
	}
	return &e, nil
}

func (m *Store) ListEmployees(_ context.Context) ([]schedule.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]schedule.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Store) SaveContract(_ context.Context, c schedule.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m.contracts[c.EmployeeID] = c
	return nil
}

func (m *Store) ActiveContract(_ context.Context, employeeID string) (*schedule.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.contracts[employeeID]
	if !ok {
		return nil, schedule.ErrContractNotFound
	}
	return &c, nil
}

func (m *Store) SaveShift(_ context.Context, s schedule.Shift) (schedule.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.shifts[s.ID] = s
	return s, nil
}

func (m *Store) DeleteShift(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shifts[id]; !ok {
		return schedule.ErrShiftNotFound
	}
	delete(m.shifts, id)
	return nil
}

func (m *Store) ShiftsForEmployee(_ context.Context, employeeID string, from, to time.Time) ([]schedule.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.Shift
	for _, s := range m.shifts {
		if s.EmployeeID != employeeID {
			continue
		}
		d := schedule.DateOf(s.Date)
		if d.Before(schedule.DateOf(from)) || d.After(schedule.DateOf(to)) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (m *Store) SaveAbsence(_ context.Context, a schedule.Absence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.absences[a.ID] = a
	return nil
}

func (m *Store) ApprovedAbsences(_ context.Context, employeeID string, from, to time.Time) ([]schedule.Absence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.Absence
	for _, a := range m.absences {
		if a.EmployeeID != employeeID || a.Status != schedule.AbsenceApproved {
			continue
		}
		if schedule.DateOf(a.EndDate).Before(schedule.DateOf(from)) ||
			schedule.DateOf(a.StartDate).After(schedule.DateOf(to)) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}
