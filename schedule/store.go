/*
store.go - Persistence collaborator interface

PURPOSE:
  Defines the interface between the engine and the datastore. The engine
  itself never writes: validation and pay calculation are pure functions of
  snapshots the store supplies. Different implementations can use SQLite or
  in-memory storage.

CONSISTENT SNAPSHOTS:
  Two concurrent validations against a stale shift list could both pass and
  jointly violate a rule. Implementations must serialize writes per store
  handle (or per employee) so a snapshot read for validation stays
  consistent until the validated shift is persisted.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - store/memory: in-memory store for tests and dev

SEE ALSO:
  - types.go: the entities being stored
*/
package schedule

import (
	"context"
	"time"
)

// Store supplies the snapshots validation and pay calculation run against,
// and persists shifts once validated.
type Store interface {
	// SaveEmployee inserts or updates an employee record.
	SaveEmployee(ctx context.Context, e Employee) error

	// GetEmployee returns an employee, or ErrEmployeeNotFound.
	GetEmployee(ctx context.Context, id string) (*Employee, error)

	// ListEmployees returns all employees.
	ListEmployees(ctx context.Context) ([]Employee, error)

	// SaveContract inserts or updates a contract.
	SaveContract(ctx context.Context, c Contract) error

	// ActiveContract returns the employee's contract, or ErrContractNotFound.
	ActiveContract(ctx context.Context, employeeID string) (*Contract, error)

	// SaveShift persists a shift, minting an ID when empty, and returns the
	// stored value.
	SaveShift(ctx context.Context, s Shift) (Shift, error)

	// DeleteShift removes a shift, or returns ErrShiftNotFound.
	DeleteShift(ctx context.Context, id string) error

	// ShiftsForEmployee returns the employee's shifts whose date falls in
	// [from, to] inclusive, ordered by date then start time.
	ShiftsForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Shift, error)

	// SaveAbsence inserts or updates an absence.
	SaveAbsence(ctx context.Context, a Absence) error

	// ApprovedAbsences returns the employee's approved absences intersecting
	// [from, to] inclusive. Pending and rejected absences are excluded.
	ApprovedAbsences(ctx context.Context, employeeID string, from, to time.Time) ([]Absence, error)
}
