/*
bareme.go - Statutory monthly figures and contribution rates (2025 schedule)

PURPOSE:
  Groups the figures the social-contributions calculator applies: the monthly
  Social-Security ceiling (PASS), the monthly gross minimum wage (SMIC), and
  every employee/employer contribution rate of the fixed 2025 schedule.

RATE SELECTION:
  Two employer lines carry a reduced rate under a gross-pay threshold:
  - sickness/maternity: reduced below 2.5 x SMIC, full above
  - family allowance:   reduced below 3.5 x SMIC, full above

CSG/CRDS BASE:
  CSG and CRDS apply to 98.25% of gross (the statutory abatement), not to
  gross itself. The abatement factor is part of the bareme.

SEE ALSO:
  - convention.go: Convention bundle
  - cotisations package: the calculator consuming this schedule
*/
package convention

import "github.com/shopspring/decimal"

// Bareme is the statutory schedule for one year. All rates are fractions.
type Bareme struct {
	Year            int
	MonthlyCeiling  decimal.Decimal // PASS, monthly
	MonthlyMinWage  decimal.Decimal // gross SMIC, monthly, 35h

	CSGCRDSBaseFactor decimal.Decimal // 0.9825

	// Employee rates
	CSGDeductible        decimal.Decimal
	CSGNonDeductible     decimal.Decimal
	CRDS                 decimal.Decimal
	OldAgeCappedEmployee decimal.Decimal // on min(gross, ceiling)
	PensionT1Employee    decimal.Decimal // supplementary pension tier 1

	// Employer rates
	SicknessReduced      decimal.Decimal // gross <= 2.5 x SMIC
	SicknessFull         decimal.Decimal
	SicknessThreshold    decimal.Decimal // multiple of SMIC
	OldAgeCappedEmployer decimal.Decimal
	OldAgeUncapped       decimal.Decimal
	FamilyReduced        decimal.Decimal // gross <= 3.5 x SMIC
	FamilyFull           decimal.Decimal
	FamilyThreshold      decimal.Decimal // multiple of SMIC
	WorkAccident         decimal.Decimal // flat, always due
	Unemployment         decimal.Decimal
	Solidarity           decimal.Decimal // CSA
	HousingFNAL          decimal.Decimal // capped base
	PensionT1Employer    decimal.Decimal
}

// Bareme2025 returns the fixed 2025 schedule.
func Bareme2025() Bareme {
	return Bareme{
		Year:           2025,
		MonthlyCeiling: decimal.NewFromFloat(3925.00),
		MonthlyMinWage: decimal.NewFromFloat(1801.80),

		CSGCRDSBaseFactor: decimal.NewFromFloat(0.9825),

		CSGDeductible:        decimal.NewFromFloat(0.0680),
		CSGNonDeductible:     decimal.NewFromFloat(0.0240),
		CRDS:                 decimal.NewFromFloat(0.0050),
		OldAgeCappedEmployee: decimal.NewFromFloat(0.0690),
		PensionT1Employee:    decimal.NewFromFloat(0.0315),

		SicknessReduced:      decimal.NewFromFloat(0.0700),
		SicknessFull:         decimal.NewFromFloat(0.1300),
		SicknessThreshold:    decimal.NewFromFloat(2.5),
		OldAgeCappedEmployer: decimal.NewFromFloat(0.0855),
		OldAgeUncapped:       decimal.NewFromFloat(0.0202),
		FamilyReduced:        decimal.NewFromFloat(0.0345),
		FamilyFull:           decimal.NewFromFloat(0.0525),
		FamilyThreshold:      decimal.NewFromFloat(3.5),
		WorkAccident:         decimal.NewFromFloat(0.0050),
		Unemployment:         decimal.NewFromFloat(0.0405),
		Solidarity:           decimal.NewFromFloat(0.0030),
		HousingFNAL:          decimal.NewFromFloat(0.0010),
		PensionT1Employer:    decimal.NewFromFloat(0.0472),
	}
}
