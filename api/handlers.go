/*
handlers.go - HTTP API handlers for the care scheduling engine

PURPOSE:
  Exposes the compliance validator and payroll calculators via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to
  domain logic.

ENDPOINTS:
  Validation:
    POST   /api/shifts/validate          Full compliance report
    POST   /api/shifts/quick-validate    Fast-path messages only
    POST   /api/shifts/suggestions       Alternative slots after failure
    GET    /api/employees/{id}/compliance?date=  Remaining budgets

  Pay:
    POST   /api/pay/shift                Price one shift at a given rate
    POST   /api/pay/week                 Price an employee's week from store
    POST   /api/pay/cotisations          Social contributions on gross pay

  Entities:
    GET    /api/employees                List employees
    POST   /api/employees                Create employee
    GET    /api/employees/{id}           Get employee
    PUT    /api/employees/{id}/contract  Set active contract
    GET    /api/employees/{id}/contract  Get active contract
    GET    /api/employees/{id}/shifts    Shifts in a date range
    POST   /api/employees/{id}/absences  Declare an absence
    POST   /api/shifts                   Validate then persist a shift
    DELETE /api/shifts/{id}              Delete a shift

CONTEXT WINDOW:
  Validation endpoints load the employee's surrounding shifts from the
  store over candidate date +/- 8 days. That window covers every rule's
  reach: the weekly rest scan (week start - 1 day through + 8 days) and
  the consecutive-nights lookback.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed input (unparseable clocks, unknown types, bad JSON)
  - 404: Employee/contract/shift not found
  - 500: Store failures

  A NON-COMPLIANT shift is not an HTTP error: POST /api/shifts answers
  409 with the full report so the client can render the violations.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidalis/care-engine/compliance"
	"github.com/aidalis/care-engine/convention"
	"github.com/aidalis/care-engine/cotisations"
	"github.com/aidalis/care-engine/payroll"
	"github.com/aidalis/care-engine/schedule"
)

// contextWindowDays on each side of the candidate date covers the reach of
// every rule (weekly rest, consecutive nights).
const contextWindowDays = 8

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     schedule.Store
	Validator *compliance.Validator
	Pay       *payroll.Calculator
	Cotis     *cotisations.Calculator
}

// NewHandler creates a new handler with the given store and convention.
func NewHandler(store schedule.Store, cc convention.Convention) *Handler {
	return &Handler{
		Store:     store,
		Validator: compliance.NewValidator(cc),
		Pay:       payroll.NewCalculator(cc),
		Cotis:     cotisations.NewCalculator(cc.Bareme),
	}
}

// shiftContext loads the employee's shifts and approved absences around the
// candidate's date.
func (h *Handler) shiftContext(r *http.Request, candidate schedule.Shift) ([]schedule.Shift, []schedule.Absence, error) {
	from := candidate.Date.AddDate(0, 0, -contextWindowDays)
	to := candidate.Date.AddDate(0, 0, contextWindowDays)

	existing, err := h.Store.ShiftsForEmployee(r.Context(), candidate.EmployeeID, from, to)
	if err != nil {
		return nil, nil, err
	}
	absences, err := h.Store.ApprovedAbsences(r.Context(), candidate.EmployeeID, from, to)
	if err != nil {
		return nil, nil, err
	}
	return existing, absences, nil
}

// =============================================================================
// VALIDATION HANDLERS
// =============================================================================

// ValidateShift runs the full rule set against a candidate shift.
// POST /api/shifts/validate
func (h *Handler) ValidateShift(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeCandidate(w, r)
	if !ok {
		return
	}

	existing, absences, err := h.shiftContext(r, candidate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule context", err)
		return
	}

	report, err := h.Validator.Validate(candidate, existing, absences)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// QuickValidateShift runs only the fast rules and returns plain messages.
// POST /api/shifts/quick-validate
func (h *Handler) QuickValidateShift(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeCandidate(w, r)
	if !ok {
		return
	}

	existing, _, err := h.shiftContext(r, candidate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule context", err)
		return
	}

	messages, err := h.Validator.QuickValidate(candidate, existing)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if messages == nil {
		messages = []string{}
	}
	writeJSON(w, http.StatusOK, QuickValidateDTO{Valid: len(messages) == 0, Messages: messages})
}

// SuggestShift proposes corrected slots for a failing candidate.
// POST /api/shifts/suggestions
func (h *Handler) SuggestShift(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeCandidate(w, r)
	if !ok {
		return
	}

	existing, absences, err := h.shiftContext(r, candidate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule context", err)
		return
	}

	suggestions, err := h.Validator.SuggestAlternatives(candidate, existing, absences)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]SuggestionDTO, len(suggestions))
	for i, s := range suggestions {
		dtos[i] = SuggestionDTO{
			Date:      s.Date.Format(dayFormat),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Reason:    s.Reason,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCompliance returns the remaining hour budgets for a date.
// GET /api/employees/{id}/compliance?date=YYYY-MM-DD
func (h *Handler) GetCompliance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	date, err := time.ParseInLocation(dayFormat, r.URL.Query().Get("date"), time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	from := date.AddDate(0, 0, -contextWindowDays)
	to := date.AddDate(0, 0, contextWindowDays)
	shifts, err := h.Store.ShiftsForEmployee(r.Context(), employeeID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}

	summary, err := h.Validator.Summarize(shifts, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryDTO{
		Date:                 summary.Date.Format(dayFormat),
		DailyHoursUsed:       summary.DailyHoursUsed.String(),
		DailyHoursRemaining:  summary.DailyHoursRemaining.String(),
		WeeklyHoursUsed:      summary.WeeklyHoursUsed.String(),
		WeeklyHoursRemaining: summary.WeeklyHoursRemaining.String(),
		WeeklyRestSatisfied:  summary.WeeklyRestSatisfied,
		LongestRestHours:     summary.LongestRestHours.String(),
		Recommendations:      summary.Recommendations,
	})
}

// =============================================================================
// PAY HANDLERS
// =============================================================================

// PayShift prices one shift at an explicit hourly rate.
// POST /api/pay/shift
func (h *Handler) PayShift(w http.ResponseWriter, r *http.Request) {
	var req PayShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	shift, err := req.Shift.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift date (use YYYY-MM-DD)", err)
		return
	}
	rate, err := parseDecimal(req.HourlyRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hourly_rate", err)
		return
	}
	tier1, err := parseDecimal(req.OvertimeTier1Hours)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid overtime_tier1_hours", err)
		return
	}
	tier2, err := parseDecimal(req.OvertimeTier2Hours)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid overtime_tier2_hours", err)
		return
	}

	pay, err := h.Pay.PayShift(shift, rate, payroll.PayOptions{
		HolidayExceptional: req.HolidayExceptional,
		Overtime:           payroll.OvertimeShare{Tier1Hours: tier1, Tier2Hours: tier2},
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toComputedPayDTO(pay))
}

// PayWeek prices an employee's week from the store, attributing overtime.
// POST /api/pay/week
func (h *Handler) PayWeek(w http.ResponseWriter, r *http.Request) {
	var req PayWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	weekOf, err := time.ParseInLocation(dayFormat, req.WeekOf, time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid week_of (use YYYY-MM-DD)", err)
		return
	}

	contract, err := h.Store.ActiveContract(r.Context(), req.EmployeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	weekStart := schedule.WeekStart(weekOf)
	weekEnd := schedule.WeekEnd(weekOf)
	shifts, err := h.Store.ShiftsForEmployee(r.Context(), req.EmployeeID, weekStart, weekEnd)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}

	paid, err := h.Pay.PayWeek(shifts, *contract, req.HolidayExceptional)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	breakdown, err := h.Pay.BreakdownPeriod(shifts, *contract)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := PayWeekDTO{
		Shifts: make([]ShiftPayDTO, len(paid)),
		Breakdown: BreakdownDTO{
			Normal:   breakdown.Normal.StringFixed(2),
			Sunday:   breakdown.Sunday.StringFixed(2),
			Holiday:  breakdown.Holiday.StringFixed(2),
			Night:    breakdown.Night.StringFixed(2),
			Overtime: breakdown.Overtime.StringFixed(2),
		},
	}
	weekTotal := decimal.Zero
	for i, p := range paid {
		out.Shifts[i] = ShiftPayDTO{
			Shift:              toShiftDTO(p.Shift),
			OvertimeTier1Hours: p.Overtime.Tier1Hours.Round(2).String(),
			OvertimeTier2Hours: p.Overtime.Tier2Hours.Round(2).String(),
			Pay:                toComputedPayDTO(&p.Pay),
		}
		weekTotal = weekTotal.Add(p.Pay.Total)
	}
	out.Total = weekTotal.Round(2).StringFixed(2)
	writeJSON(w, http.StatusOK, out)
}

// PayCotisations computes social contributions on a gross monthly pay.
// POST /api/pay/cotisations
func (h *Handler) PayCotisations(w http.ResponseWriter, r *http.Request) {
	var req CotisationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	gross, err := parseDecimal(req.Gross)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid gross", err)
		return
	}
	rate, err := parseDecimal(req.WithholdingRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid withholding_rate", err)
		return
	}

	res := h.Cotis.Calculate(gross, cotisations.Options{
		WithholdingRate:  rate,
		ExemptEmployerSS: req.ExemptEmployerSS,
	})
	writeJSON(w, http.StatusOK, CotisationsDTO{
		Gross:         res.Gross.StringFixed(2),
		EmployeeLines: toCotisationLineDTOs(res.EmployeeLines),
		EmployerLines: toCotisationLineDTOs(res.EmployerLines),
		TotalEmployee: res.TotalEmployee.StringFixed(2),
		TotalEmployer: res.TotalEmployer.StringFixed(2),
		Taxable:       res.Taxable.StringFixed(2),
		Withholding:   res.Withholding.StringFixed(2),
		Net:           res.Net.StringFixed(2),
	})
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = EmployeeDTO{ID: e.ID, Name: e.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a new employee.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	e := schedule.Employee{ID: req.ID, Name: req.Name}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := h.Store.SaveEmployee(r.Context(), e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, EmployeeDTO{ID: e.ID, Name: e.Name})
}

// GetEmployee returns a single employee.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EmployeeDTO{ID: e.ID, Name: e.Name})
}

// =============================================================================
// CONTRACT HANDLERS
// =============================================================================

// SetContract creates or replaces the employee's active contract.
// PUT /api/employees/{id}/contract
func (h *Handler) SetContract(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	var req ContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	weekly, err := parseDecimal(req.WeeklyHours)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid weekly_hours", err)
		return
	}
	rate, err := parseDecimal(req.HourlyRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hourly_rate", err)
		return
	}

	c := schedule.Contract{EmployeeID: employeeID, WeeklyHours: weekly, HourlyRate: rate}
	if err := h.Store.SaveContract(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save contract", err)
		return
	}
	saved, err := h.Store.ActiveContract(r.Context(), employeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ContractDTO{
		ID:          saved.ID,
		EmployeeID:  saved.EmployeeID,
		WeeklyHours: saved.WeeklyHours.String(),
		HourlyRate:  saved.HourlyRate.String(),
	})
}

// GetContract returns the employee's active contract.
// GET /api/employees/{id}/contract
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.ActiveContract(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ContractDTO{
		ID:          c.ID,
		EmployeeID:  c.EmployeeID,
		WeeklyHours: c.WeeklyHours.String(),
		HourlyRate:  c.HourlyRate.String(),
	})
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// CreateShift validates the candidate against the employee's schedule and
// persists it only when no blocking rule fails. A non-compliant candidate
// answers 409 with the full report.
// POST /api/shifts
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeCandidate(w, r)
	if !ok {
		return
	}

	existing, absences, err := h.shiftContext(r, candidate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule context", err)
		return
	}

	report, err := h.Validator.Validate(candidate, existing, absences)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !report.Valid {
		writeJSON(w, http.StatusConflict, toReportDTO(report))
		return
	}

	saved, err := h.Store.SaveShift(r.Context(), candidate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(saved))
}

// DeleteShift removes a shift.
// DELETE /api/shifts/{id}
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListShifts returns the employee's shifts over an inclusive date range.
// GET /api/employees/{id}/shifts?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	from, err := time.ParseInLocation(dayFormat, r.URL.Query().Get("from"), time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
		return
	}
	to, err := time.ParseInLocation(dayFormat, r.URL.Query().Get("to"), time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
		return
	}

	shifts, err := h.Store.ShiftsForEmployee(r.Context(), chi.URLParam(r, "id"), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}
	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// ABSENCE HANDLERS
// =============================================================================

// CreateAbsence declares an absence for the employee.
// POST /api/employees/{id}/absences
func (h *Handler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	var req AbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, err := time.ParseInLocation(dayFormat, req.StartDate, time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := time.ParseInLocation(dayFormat, req.EndDate, time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end_date before start_date", nil)
		return
	}
	status := schedule.AbsenceStatus(req.Status)
	if status == "" {
		status = schedule.AbsencePending
	}

	a := schedule.Absence{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Type:       req.Type,
		StartDate:  start,
		EndDate:    end,
		Status:     status,
	}
	if err := h.Store.SaveAbsence(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save absence", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAbsenceDTO(a))
}

// =============================================================================
// HELPERS
// =============================================================================

// decodeCandidate parses the validation request body into a domain shift.
func (h *Handler) decodeCandidate(w http.ResponseWriter, r *http.Request) (schedule.Shift, bool) {
	var req ValidateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return schedule.Shift{}, false
	}
	candidate, err := req.Shift.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift date (use YYYY-MM-DD)", err)
		return schedule.Shift{}, false
	}
	if candidate.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return schedule.Shift{}, false
	}
	return candidate, true
}

// writeDomainError maps engine and store errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case schedule.IsMalformedInput(err):
		writeError(w, http.StatusBadRequest, "Malformed shift", err)
	case errors.Is(err, schedule.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, "Employee not found", nil)
	case errors.Is(err, schedule.ErrContractNotFound):
		writeError(w, http.StatusNotFound, "Contract not found", nil)
	case errors.Is(err, schedule.ErrShiftNotFound):
		writeError(w, http.StatusNotFound, "Shift not found", nil)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
