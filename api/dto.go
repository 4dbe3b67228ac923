/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Shift:
    ShiftDTO, SegmentDTO, ValidateShiftRequest

  Compliance:
    OutcomeDTO, ReportDTO, QuickValidateDTO, SuggestionDTO, SummaryDTO

  Pay:
    PayShiftRequest, ComputedPayDTO, PayWeekRequest, ShiftPayDTO,
    BreakdownDTO

  Cotisations:
    CotisationsRequest, CotisationLineDTO, CotisationsDTO

  Entities:
    EmployeeDTO, ContractRequest, ContractDTO, AbsenceRequest, AbsenceDTO

MONEY IN JSON:
  Decimal amounts serialize as strings ("123.45"), never floats. The
  figures feed legal declarations; a client must be able to round-trip
  them losslessly.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/types.go: the domain model these mirror
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aidalis/care-engine/compliance"
	"github.com/aidalis/care-engine/cotisations"
	"github.com/aidalis/care-engine/payroll"
	"github.com/aidalis/care-engine/schedule"
)

const dayFormat = "2006-01-02"

// =============================================================================
// SHIFT TYPES
// =============================================================================

// SegmentDTO is one typed slice of a guard duty cycle.
type SegmentDTO struct {
	StartTime    string `json:"start_time"`
	Type         string `json:"type"`
	BreakMinutes int    `json:"break_minutes,omitempty"`
}

// ShiftDTO represents a shift in requests and responses.
type ShiftDTO struct {
	ID                 string       `json:"id,omitempty"`
	EmployeeID         string       `json:"employee_id"`
	ContractID         string       `json:"contract_id,omitempty"`
	Date               string       `json:"date"` // YYYY-MM-DD
	StartTime          string       `json:"start_time"`
	EndTime            string       `json:"end_time"`
	BreakMinutes       int          `json:"break_minutes,omitempty"`
	Type               string       `json:"type"`
	HasNightAction     bool         `json:"has_night_action,omitempty"`
	NightInterventions int          `json:"night_interventions,omitempty"`
	Segments           []SegmentDTO `json:"segments,omitempty"`
}

// ValidateShiftRequest wraps the candidate shift for the validation
// endpoints. The employee's existing shifts and absences come from the
// store, not the request.
type ValidateShiftRequest struct {
	Shift ShiftDTO `json:"shift"`
}

// =============================================================================
// COMPLIANCE TYPES
// =============================================================================

// OutcomeDTO is one failed rule in a validation report.
type OutcomeDTO struct {
	Code     string         `json:"code"`
	Rule     string         `json:"rule"`
	Severity string         `json:"severity"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
}

// ReportDTO is the full validation result.
type ReportDTO struct {
	Valid    bool         `json:"valid"`
	Errors   []OutcomeDTO `json:"errors"`
	Warnings []OutcomeDTO `json:"warnings"`
}

// QuickValidateDTO is the fast-path validation result.
type QuickValidateDTO struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
}

// SuggestionDTO is one corrected time window for a failed candidate.
type SuggestionDTO struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// SummaryDTO reports remaining daily/weekly hour budgets for a date.
type SummaryDTO struct {
	Date                 string   `json:"date"`
	DailyHoursUsed       string   `json:"daily_hours_used"`
	DailyHoursRemaining  string   `json:"daily_hours_remaining"`
	WeeklyHoursUsed      string   `json:"weekly_hours_used"`
	WeeklyHoursRemaining string   `json:"weekly_hours_remaining"`
	WeeklyRestSatisfied  bool     `json:"weekly_rest_satisfied"`
	LongestRestHours     string   `json:"longest_rest_hours"`
	Recommendations      []string `json:"recommendations,omitempty"`
}

// =============================================================================
// PAY TYPES
// =============================================================================

// PayShiftRequest prices one shift at an explicit rate.
type PayShiftRequest struct {
	Shift              ShiftDTO `json:"shift"`
	HourlyRate         string   `json:"hourly_rate"`
	HolidayExceptional bool     `json:"holiday_exceptional,omitempty"`
	OvertimeTier1Hours string   `json:"overtime_tier1_hours,omitempty"`
	OvertimeTier2Hours string   `json:"overtime_tier2_hours,omitempty"`
}

// ComputedPayDTO is the gross pay of one shift, one line per premium.
type ComputedPayDTO struct {
	BasePay                string `json:"base_pay"`
	SundayPremium          string `json:"sunday_premium"`
	HolidayPremium         string `json:"holiday_premium"`
	NightPremium           string `json:"night_premium"`
	OvertimePremium        string `json:"overtime_premium"`
	PresenceDayPay         string `json:"presence_day_pay"`
	NightPresenceAllowance string `json:"night_presence_allowance"`
	Total                  string `json:"total"`
}

// PayWeekRequest prices one employee's week from the store.
type PayWeekRequest struct {
	EmployeeID         string `json:"employee_id"`
	WeekOf             string `json:"week_of"` // any date inside the week
	HolidayExceptional bool   `json:"holiday_exceptional,omitempty"`
}

// ShiftPayDTO pairs a shift with its overtime share and computed pay.
type ShiftPayDTO struct {
	Shift              ShiftDTO       `json:"shift"`
	OvertimeTier1Hours string         `json:"overtime_tier1_hours"`
	OvertimeTier2Hours string         `json:"overtime_tier2_hours"`
	Pay                ComputedPayDTO `json:"pay"`
}

// PayWeekDTO is the priced week plus its hours-by-category totals.
type PayWeekDTO struct {
	Shifts    []ShiftPayDTO `json:"shifts"`
	Total     string        `json:"total"`
	Breakdown BreakdownDTO  `json:"breakdown"`
}

// BreakdownDTO totals worked hours by pay category.
type BreakdownDTO struct {
	Normal   string `json:"normal"`
	Sunday   string `json:"sunday"`
	Holiday  string `json:"holiday"`
	Night    string `json:"night"`
	Overtime string `json:"overtime"`
}

// =============================================================================
// COTISATIONS TYPES
// =============================================================================

// CotisationsRequest computes contributions for a gross monthly pay.
type CotisationsRequest struct {
	Gross            string `json:"gross"`
	WithholdingRate  string `json:"withholding_rate,omitempty"`
	ExemptEmployerSS bool   `json:"exempt_employer_ss,omitempty"`
}

// CotisationLineDTO is one contribution line of the payslip.
type CotisationLineDTO struct {
	Label    string `json:"label"`
	Base     string `json:"base"`
	Rate     string `json:"rate"`
	Amount   string `json:"amount"`
	Exempted bool   `json:"exempted,omitempty"`
}

// CotisationsDTO is the full contribution computation.
type CotisationsDTO struct {
	Gross         string              `json:"gross"`
	EmployeeLines []CotisationLineDTO `json:"employee_lines"`
	EmployerLines []CotisationLineDTO `json:"employer_lines"`
	TotalEmployee string              `json:"total_employee"`
	TotalEmployer string              `json:"total_employer"`
	Taxable       string              `json:"taxable"`
	Withholding   string              `json:"withholding"`
	Net           string              `json:"net"`
}

// =============================================================================
// ENTITY TYPES
// =============================================================================

// EmployeeDTO represents an employee in API requests and responses.
type EmployeeDTO struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// ContractRequest sets an employee's active contract.
type ContractRequest struct {
	WeeklyHours string `json:"weekly_hours"`
	HourlyRate  string `json:"hourly_rate"`
}

// ContractDTO represents a contract in API responses.
type ContractDTO struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	WeeklyHours string `json:"weekly_hours"`
	HourlyRate  string `json:"hourly_rate"`
}

// AbsenceRequest declares an absence for an employee.
type AbsenceRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// AbsenceDTO represents an absence in API responses.
type AbsenceDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func (d ShiftDTO) toDomain() (schedule.Shift, error) {
	date, err := time.ParseInLocation(dayFormat, d.Date, time.UTC)
	if err != nil {
		return schedule.Shift{}, err
	}
	s := schedule.Shift{
		ID:                 d.ID,
		EmployeeID:         d.EmployeeID,
		ContractID:         d.ContractID,
		Date:               date,
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		BreakMinutes:       d.BreakMinutes,
		Type:               schedule.ShiftType(d.Type),
		HasNightAction:     d.HasNightAction,
		NightInterventions: d.NightInterventions,
	}
	for _, seg := range d.Segments {
		s.Segments = append(s.Segments, schedule.Segment{
			StartTime:    seg.StartTime,
			Type:         schedule.SegmentType(seg.Type),
			BreakMinutes: seg.BreakMinutes,
		})
	}
	return s, nil
}

func toShiftDTO(s schedule.Shift) ShiftDTO {
	d := ShiftDTO{
		ID:                 s.ID,
		EmployeeID:         s.EmployeeID,
		ContractID:         s.ContractID,
		Date:               s.Date.Format(dayFormat),
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		BreakMinutes:       s.BreakMinutes,
		Type:               string(s.Type),
		HasNightAction:     s.HasNightAction,
		NightInterventions: s.NightInterventions,
	}
	for _, seg := range s.Segments {
		d.Segments = append(d.Segments, SegmentDTO{
			StartTime:    seg.StartTime,
			Type:         string(seg.Type),
			BreakMinutes: seg.BreakMinutes,
		})
	}
	return d
}

func toOutcomeDTOs(outcomes []compliance.Outcome) []OutcomeDTO {
	dtos := make([]OutcomeDTO, len(outcomes))
	for i, o := range outcomes {
		dtos[i] = OutcomeDTO{
			Code:     string(o.Code),
			Rule:     o.Rule,
			Severity: string(o.Severity),
			Message:  o.Message,
			Details:  o.Details,
		}
	}
	return dtos
}

func toReportDTO(r *compliance.Report) ReportDTO {
	return ReportDTO{
		Valid:    r.Valid,
		Errors:   toOutcomeDTOs(r.Errors),
		Warnings: toOutcomeDTOs(r.Warnings),
	}
}

func toComputedPayDTO(p *payroll.ComputedPay) ComputedPayDTO {
	return ComputedPayDTO{
		BasePay:                p.BasePay.StringFixed(2),
		SundayPremium:          p.SundayPremium.StringFixed(2),
		HolidayPremium:         p.HolidayPremium.StringFixed(2),
		NightPremium:           p.NightPremium.StringFixed(2),
		OvertimePremium:        p.OvertimePremium.StringFixed(2),
		PresenceDayPay:         p.PresenceDayPay.StringFixed(2),
		NightPresenceAllowance: p.NightPresenceAllowance.StringFixed(2),
		Total:                  p.Total.StringFixed(2),
	}
}

func toCotisationLineDTOs(lines []cotisations.Line) []CotisationLineDTO {
	dtos := make([]CotisationLineDTO, len(lines))
	for i, l := range lines {
		dtos[i] = CotisationLineDTO{
			Label:    l.Label,
			Base:     l.Base.StringFixed(2),
			Rate:     l.Rate.String(),
			Amount:   l.Amount.StringFixed(2),
			Exempted: l.Exempted,
		}
	}
	return dtos
}

func toAbsenceDTO(a schedule.Absence) AbsenceDTO {
	return AbsenceDTO{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Type:       a.Type,
		StartDate:  a.StartDate.Format(dayFormat),
		EndDate:    a.EndDate.Format(dayFormat),
		Status:     string(a.Status),
	}
}

// parseDecimal treats an empty string as zero; the optional fields default
// that way.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
