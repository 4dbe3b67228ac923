/*
Package sqlite provides a SQLite-backed implementation of schedule.Store.

PURPOSE:
  The persistence collaborator: supplies the candidate's context (the
  employee's other shifts, approved absences, active contract) and persists
  shifts once validated. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  employees:  entity records
  contracts:  weekly hours and hourly rate per employee
  shifts:     one row per shift; guard segments JSON-encoded in place
  absences:   inclusive day ranges with approval status

CONCURRENCY:
  Writes are serialized behind a sync.RWMutex, so a snapshot read for
  validation stays consistent until the validated shift is persisted -
  the serialization the engine recommends but does not implement.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/care.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - schedule/store.go: interface definition
  - store/memory: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/aidalis/care-engine/schedule"
)

const dayFormat = "2006-01-02"

// Store implements schedule.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		weekly_hours TEXT NOT NULL,
		hourly_rate TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_contracts_employee ON contracts(employee_id);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		contract_id TEXT,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		shift_type TEXT NOT NULL,
		has_night_action INTEGER NOT NULL DEFAULT 0,
		night_interventions INTEGER NOT NULL DEFAULT 0,
		segments TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_shifts_employee_date ON shifts(employee_id, date);

	CREATE TABLE IF NOT EXISTS absences (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		absence_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_absences_employee ON absences(employee_id, start_date, end_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

var _ schedule.Store = (*Store)(nil)

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, e schedule.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		e.ID, e.Name)
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*schedule.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var e schedule.Employee
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM employees WHERE id = ?`, id).Scan(&e.ID, &e.Name)
	if err == sql.ErrNoRows {
		return nil, schedule.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]schedule.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Employee
	for rows.Next() {
		var e schedule.Employee
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// CONTRACTS
// =============================================================================

func (s *Store) SaveContract(ctx context.Context, c schedule.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contracts (id, employee_id, weekly_hours, hourly_rate)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(employee_id) DO UPDATE SET
		   weekly_hours = excluded.weekly_hours,
		   hourly_rate = excluded.hourly_rate`,
		c.ID, c.EmployeeID, c.WeeklyHours.String(), c.HourlyRate.String())
	return err
}

func (s *Store) ActiveContract(ctx context.Context, employeeID string) (*schedule.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c schedule.Contract
	var weekly, rate string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, employee_id, weekly_hours, hourly_rate
		 FROM contracts WHERE employee_id = ?`, employeeID).
		Scan(&c.ID, &c.EmployeeID, &weekly, &rate)
	if err == sql.ErrNoRows {
		return nil, schedule.ErrContractNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.WeeklyHours, err = decimal.NewFromString(weekly); err != nil {
		return nil, fmt.Errorf("corrupt weekly_hours for contract %s: %w", c.ID, err)
	}
	if c.HourlyRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("corrupt hourly_rate for contract %s: %w", c.ID, err)
	}
	return &c, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

func (s *Store) SaveShift(ctx context.Context, sh schedule.Shift) (schedule.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh.ID == "" {
		sh.ID = uuid.NewString()
	}

	var segments any
	if len(sh.Segments) > 0 {
		data, err := json.Marshal(sh.Segments)
		if err != nil {
			return schedule.Shift{}, fmt.Errorf("failed to encode segments: %w", err)
		}
		segments = string(data)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shifts
		   (id, employee_id, contract_id, date, start_time, end_time,
		    break_minutes, shift_type, has_night_action, night_interventions, segments)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   date = excluded.date,
		   start_time = excluded.start_time,
		   end_time = excluded.end_time,
		   break_minutes = excluded.break_minutes,
		   shift_type = excluded.shift_type,
		   has_night_action = excluded.has_night_action,
		   night_interventions = excluded.night_interventions,
		   segments = excluded.segments`,
		sh.ID, sh.EmployeeID, sh.ContractID, schedule.DateOf(sh.Date).Format(dayFormat),
		sh.StartTime, sh.EndTime, sh.BreakMinutes, string(sh.Type),
		boolToInt(sh.HasNightAction), sh.NightInterventions, segments)
	if err != nil {
		return schedule.Shift{}, err
	}
	return sh, nil
}

func (s *Store) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return schedule.ErrShiftNotFound
	}
	return nil
}

func (s *Store) ShiftsForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, contract_id, date, start_time, end_time,
		        break_minutes, shift_type, has_night_action, night_interventions, segments
		 FROM shifts
		 WHERE employee_id = ? AND date >= ? AND date <= ?
		 ORDER BY date, start_time`,
		employeeID, schedule.DateOf(from).Format(dayFormat), schedule.DateOf(to).Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

func scanShift(rows *sql.Rows) (schedule.Shift, error) {
	var sh schedule.Shift
	var date, shiftType string
	var contractID, segments sql.NullString
	var nightAction int
	if err := rows.Scan(&sh.ID, &sh.EmployeeID, &contractID, &date, &sh.StartTime,
		&sh.EndTime, &sh.BreakMinutes, &shiftType, &nightAction,
		&sh.NightInterventions, &segments); err != nil {
		return schedule.Shift{}, err
	}
	sh.ContractID = contractID.String
	sh.Type = schedule.ShiftType(shiftType)
	sh.HasNightAction = nightAction != 0

	parsed, err := time.ParseInLocation(dayFormat, date, time.UTC)
	if err != nil {
		return schedule.Shift{}, fmt.Errorf("corrupt date for shift %s: %w", sh.ID, err)
	}
	sh.Date = parsed

	if segments.Valid && segments.String != "" {
		if err := json.Unmarshal([]byte(segments.String), &sh.Segments); err != nil {
			return schedule.Shift{}, fmt.Errorf("corrupt segments for shift %s: %w", sh.ID, err)
		}
	}
	return sh, nil
}

// =============================================================================
// ABSENCES
// =============================================================================

func (s *Store) SaveAbsence(ctx context.Context, a schedule.Absence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO absences (id, employee_id, absence_type, start_date, end_date, status)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   absence_type = excluded.absence_type,
		   start_date = excluded.start_date,
		   end_date = excluded.end_date,
		   status = excluded.status`,
		a.ID, a.EmployeeID, a.Type,
		schedule.DateOf(a.StartDate).Format(dayFormat),
		schedule.DateOf(a.EndDate).Format(dayFormat),
		string(a.Status))
	return err
}

func (s *Store) ApprovedAbsences(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.Absence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, absence_type, start_date, end_date, status
		 FROM absences
		 WHERE employee_id = ? AND status = ? AND end_date >= ? AND start_date <= ?
		 ORDER BY start_date`,
		employeeID, string(schedule.AbsenceApproved),
		schedule.DateOf(from).Format(dayFormat), schedule.DateOf(to).Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Absence
	for rows.Next() {
		var a schedule.Absence
		var start, end, status string
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Type, &start, &end, &status); err != nil {
			return nil, err
		}
		if a.StartDate, err = time.ParseInLocation(dayFormat, start, time.UTC); err != nil {
			return nil, fmt.Errorf("corrupt start_date for absence %s: %w", a.ID, err)
		}
		if a.EndDate, err = time.ParseInLocation(dayFormat, end, time.UTC); err != nil {
			return nil, fmt.Errorf("corrupt end_date for absence %s: %w", a.ID, err)
		}
		a.Status = schedule.AbsenceStatus(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
