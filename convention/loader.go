/*
loader.go - JSON overrides for convention constants

PURPOSE:
  Converts a JSON document into a Convention, starting from the defaults and
  overriding only the fields the document names. This enables year-over-year
  bareme updates (and threshold tweaks after legal review) without code
  changes - an operator edits a JSON file, the engine logic stays untouched.

JSON SCHEMA (all fields optional):
  {
    "rules": {
      "daily_rest_hours": 11,
      "weekly_rest_hours": 35,
      "daily_max_hours": 10,
      "weekly_max_hours": 48,
      "weekly_warning_hours": 44
    },
    "premiums": {
      "sunday": 0.30,
      "holiday_habitual": 0.60,
      "holiday_exceptional": 1.00,
      "night": 0.20,
      "overtime_tier1": 0.25,
      "overtime_tier2": 0.50
    },
    "bareme": {
      "year": 2025,
      "monthly_ceiling": 3925.00,
      "monthly_min_wage": 1801.80
    }
  }

USAGE:
  cc, err := convention.Parse(jsonBytes)

SEE ALSO:
  - convention.go, bareme.go: the defaults being overridden
*/
package convention

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

type conventionJSON struct {
	Rules    *rulesJSON    `json:"rules,omitempty"`
	Premiums *premiumsJSON `json:"premiums,omitempty"`
	Bareme   *baremeJSON   `json:"bareme,omitempty"`
}

type rulesJSON struct {
	DailyRestHours         *int `json:"daily_rest_hours,omitempty"`
	WeeklyRestHours        *int `json:"weekly_rest_hours,omitempty"`
	DailyMaxHours          *int `json:"daily_max_hours,omitempty"`
	WeeklyMaxHours         *int `json:"weekly_max_hours,omitempty"`
	WeeklyWarningHours     *int `json:"weekly_warning_hours,omitempty"`
	BreakRequiredOverHours *int `json:"break_required_over_hours,omitempty"`
	BreakMinMinutes        *int `json:"break_min_minutes,omitempty"`
	NightPresenceMaxHours  *int `json:"night_presence_max_hours,omitempty"`
	ConsecutiveNightsMax   *int `json:"consecutive_nights_max,omitempty"`
	GuardAmplitudeMaxHours *int `json:"guard_amplitude_max_hours,omitempty"`
	GuardChainGapHours     *int `json:"guard_chain_gap_hours,omitempty"`
	GuardEffectiveMaxHours *int `json:"guard_effective_max_hours,omitempty"`
}

type premiumsJSON struct {
	Sunday             *float64 `json:"sunday,omitempty"`
	HolidayHabitual    *float64 `json:"holiday_habitual,omitempty"`
	HolidayExceptional *float64 `json:"holiday_exceptional,omitempty"`
	Night              *float64 `json:"night,omitempty"`
	OvertimeTier1      *float64 `json:"overtime_tier1,omitempty"`
	OvertimeTier2      *float64 `json:"overtime_tier2,omitempty"`
	OvertimeTier1Cap   *float64 `json:"overtime_tier1_cap,omitempty"`
}

type baremeJSON struct {
	Year           *int     `json:"year,omitempty"`
	MonthlyCeiling *float64 `json:"monthly_ceiling,omitempty"`
	MonthlyMinWage *float64 `json:"monthly_min_wage,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse builds a Convention from JSON overrides layered on Default2025.
func Parse(data []byte) (Convention, error) {
	cc := Default2025()
	if len(data) == 0 {
		return cc, nil
	}

	var doc conventionJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return Convention{}, fmt.Errorf("invalid convention JSON: %w", err)
	}

	if doc.Rules != nil {
		applyRules(&cc.Rules, doc.Rules)
	}
	if doc.Premiums != nil {
		applyPremiums(&cc.Premiums, doc.Premiums)
	}
	if doc.Bareme != nil {
		applyBareme(&cc.Bareme, doc.Bareme)
	}
	return cc, nil
}

func applyRules(r *Rules, j *rulesJSON) {
	setInt(&r.DailyRestHours, j.DailyRestHours)
	setInt(&r.WeeklyRestHours, j.WeeklyRestHours)
	setInt(&r.DailyMaxHours, j.DailyMaxHours)
	setInt(&r.WeeklyMaxHours, j.WeeklyMaxHours)
	setInt(&r.WeeklyWarningHours, j.WeeklyWarningHours)
	setInt(&r.BreakRequiredOverHours, j.BreakRequiredOverHours)
	setInt(&r.BreakMinMinutes, j.BreakMinMinutes)
	setInt(&r.NightPresenceMaxHours, j.NightPresenceMaxHours)
	setInt(&r.ConsecutiveNightsMax, j.ConsecutiveNightsMax)
	setInt(&r.GuardAmplitudeMaxHours, j.GuardAmplitudeMaxHours)
	setInt(&r.GuardChainGapHours, j.GuardChainGapHours)
	setInt(&r.GuardEffectiveMaxHours, j.GuardEffectiveMaxHours)
}

func applyPremiums(p *Premiums, j *premiumsJSON) {
	setDec(&p.Sunday, j.Sunday)
	setDec(&p.HolidayHabitual, j.HolidayHabitual)
	setDec(&p.HolidayExceptional, j.HolidayExceptional)
	setDec(&p.Night, j.Night)
	setDec(&p.OvertimeTier1, j.OvertimeTier1)
	setDec(&p.OvertimeTier2, j.OvertimeTier2)
	setDec(&p.OvertimeTier1Cap, j.OvertimeTier1Cap)
}

func applyBareme(b *Bareme, j *baremeJSON) {
	setInt(&b.Year, j.Year)
	setDec(&b.MonthlyCeiling, j.MonthlyCeiling)
	setDec(&b.MonthlyMinWage, j.MonthlyMinWage)
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setDec(dst *decimal.Decimal, src *float64) {
	if src != nil {
		*dst = decimal.NewFromFloat(*src)
	}
}
