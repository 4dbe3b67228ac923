/*
Package convention holds the legal constants of the collective bargaining
agreement for home-care workers, plus the statutory figures they combine with.

PURPOSE:
  Every threshold and premium rate the engine applies lives here, in one
  immutable configuration struct injected into the validators and the
  calculators. Nothing in the engine hard-codes a legal figure: updating
  the agreement (or the yearly statutory bareme) means constructing a new
  Convention, not editing rule code.

KEY CONCEPTS:
  - Rules:    scheduling constraints (rest spans, hour caps, chain limits)
  - Premiums: wage premium rates (Sunday, holiday, night, overtime tiers)
  - Bareme:   statutory monthly figures and contribution rates (see bareme.go)

USAGE:
  cc := convention.Default2025()
  validator := compliance.NewValidator(cc)
  calc := payroll.NewCalculator(cc)

SEE ALSO:
  - bareme.go: 2025 social-contribution schedule
  - loader.go: JSON overrides for year-over-year updates
*/
package convention

import "github.com/shopspring/decimal"

// =============================================================================
// SCHEDULING RULES - Rest, hour caps, chain limits
// =============================================================================

// Rules are the scheduling constraints of the agreement. Durations are in
// the unit their name states; they are compared against exact minute counts
// derived from clock strings, never against wall-clock "now".
type Rules struct {
	DailyRestHours         int // minimum rest between two shifts
	WeeklyRestHours        int // single uninterrupted weekly rest span
	DailyMaxHours          int // effective hours per calendar day
	WeeklyMaxHours         int // effective hours per ISO week (blocking)
	WeeklyWarningHours     int // effective hours per ISO week (warning floor)
	BreakRequiredOverHours int // worked span beyond which a break is due
	BreakMinMinutes        int // minimum break duration when due
	NightPresenceMaxHours  int // consecutive presence_night cap
	ConsecutiveNightsMax   int // chained presence_night calendar days
	GuardAmplitudeMaxHours int // end-to-end span of a chained guard sequence
	GuardChainGapHours     int // max gap linking shifts into one chain
	GuardEffectiveMaxHours int // effective-typed minutes inside one guard_24h

	// Night window boundaries, minutes from midnight. The window wraps:
	// [NightStartMinute, 1440) + [0, NightEndMinute).
	NightStartMinute int
	NightEndMinute   int
}

// DefaultRules returns the agreement's scheduling constraints.
//
// GuardChainGapHours is a documented policy choice, not a figure quoted by
// the agreement text; it is flagged for legal review and must not be changed
// speculatively.
func DefaultRules() Rules {
	return Rules{
		DailyRestHours:         11,
		WeeklyRestHours:        35,
		DailyMaxHours:          10,
		WeeklyMaxHours:         48,
		WeeklyWarningHours:     44,
		BreakRequiredOverHours: 6,
		BreakMinMinutes:        20,
		NightPresenceMaxHours:  12,
		ConsecutiveNightsMax:   5,
		GuardAmplitudeMaxHours: 24,
		GuardChainGapHours:     2,
		GuardEffectiveMaxHours: 12,
		NightStartMinute:       21 * 60,
		NightEndMinute:         6 * 60,
	}
}

// =============================================================================
// PREMIUMS - Wage premium and reduced-pay rates
// =============================================================================

// Premiums are the wage premium rates and the reduced-pay factors for
// responsible presence. Rates are fractions of the base they apply to.
type Premiums struct {
	Sunday             decimal.Decimal // on base pay
	HolidayHabitual    decimal.Decimal // holiday worked habitually
	HolidayExceptional decimal.Decimal // holiday worked exceptionally
	Night              decimal.Decimal // on night hours x rate, gated by night action

	OvertimeTier1     decimal.Decimal // first tier premium
	OvertimeTier2     decimal.Decimal // beyond the tier boundary
	OvertimeTier1Cap  decimal.Decimal // cumulative overtime hours priced at tier 1

	PresenceDayFactor   decimal.Decimal // responsible presence, day
	PresenceNightFactor decimal.Decimal // responsible presence, night

	// RequalifyInterventions is the night-intervention count at which a
	// presence_night block is re-paid as full effective work.
	RequalifyInterventions int
}

// DefaultPremiums returns the agreement's premium rates.
func DefaultPremiums() Premiums {
	return Premiums{
		Sunday:             decimal.NewFromFloat(0.30),
		HolidayHabitual:    decimal.NewFromFloat(0.60),
		HolidayExceptional: decimal.NewFromFloat(1.00),
		Night:              decimal.NewFromFloat(0.20),

		OvertimeTier1:    decimal.NewFromFloat(0.25),
		OvertimeTier2:    decimal.NewFromFloat(0.50),
		OvertimeTier1Cap: decimal.NewFromInt(8),

		PresenceDayFactor:   decimal.NewFromInt(2).Div(decimal.NewFromInt(3)),
		PresenceNightFactor: decimal.NewFromFloat(0.25),

		RequalifyInterventions: 4,
	}
}

// =============================================================================
// CONVENTION - The complete injected configuration
// =============================================================================

// Convention bundles everything the engine needs to apply the agreement.
// Treat values as immutable once constructed.
type Convention struct {
	Rules    Rules
	Premiums Premiums
	Bareme   Bareme
}

// Default2025 returns the agreement constants with the 2025 statutory bareme.
func Default2025() Convention {
	return Convention{
		Rules:    DefaultRules(),
		Premiums: DefaultPremiums(),
		Bareme:   Bareme2025(),
	}
}
