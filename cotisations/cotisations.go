/*
Package cotisations computes French social contributions on gross monthly
pay under the fixed 2025 schedule.

PURPOSE:
  Produces the employee and employer contribution lines, their totals, the
  taxable income, the withholding tax and the net pay for one gross monthly
  amount. The calculator never fails on well-typed numeric input; it
  saturates at domain boundaries instead of erroring.

LINE STRUCTURE:
  Every line carries its label, base, rate and amount plus two flags:
  whether the employer owes it and whether an exemption zeroed it. Zeroed
  lines stay in the result with their base and rate intact - declarations
  must show what was exempted, not hide it.

EXEMPTION MODE:
  Certain employer categories are exempt from the four core Social-Security
  employer lines (sickness, both old-age lines, family allowance). Work
  accident, unemployment, the solidarity contributions and supplementary
  pension remain payable.

ROUNDING:
  Every line amount and every aggregate rounds half-up at 2 decimals, so
  repeated computation from identical inputs is bit-for-bit identical.

SEE ALSO:
  - convention/bareme.go: the injected 2025 schedule
*/
package cotisations

import (
	"github.com/shopspring/decimal"

	"github.com/aidalis/care-engine/convention"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// Line is one contribution line of the payslip.
type Line struct {
	Label    string
	Base     decimal.Decimal
	Rate     decimal.Decimal
	Amount   decimal.Decimal
	Employer bool
	Exempted bool
}

// Result is the full contribution computation for one gross monthly pay.
type Result struct {
	Gross decimal.Decimal

	EmployeeLines []Line
	EmployerLines []Line

	TotalEmployee decimal.Decimal
	TotalEmployer decimal.Decimal

	Taxable         decimal.Decimal // gross minus deductible employee contributions
	WithholdingRate decimal.Decimal
	Withholding     decimal.Decimal
	Net             decimal.Decimal
}

// Options selects the withholding rate (default zero) and the employer
// Social-Security exemption mode.
type Options struct {
	WithholdingRate  decimal.Decimal
	ExemptEmployerSS bool
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator applies an injected bareme. Stateless, safe for concurrent use.
type Calculator struct {
	bareme convention.Bareme
}

func NewCalculator(b convention.Bareme) *Calculator {
	return &Calculator{bareme: b}
}

// Calculate computes all contribution lines for one gross monthly pay.
func (c *Calculator) Calculate(gross decimal.Decimal, opts Options) *Result {
	b := c.bareme
	gross = decimal.Max(decimal.Zero, gross).Round(2)

	csgBase := gross.Mul(b.CSGCRDSBaseFactor).Round(2)
	capped := decimal.Min(gross, b.MonthlyCeiling)

	// Employee side.
	csgDeductible := line("CSG deductible", csgBase, b.CSGDeductible, false)
	csgNonDeductible := line("CSG non deductible", csgBase, b.CSGNonDeductible, false)
	crds := line("CRDS", csgBase, b.CRDS, false)
	oldAgeEmployee := line("Old-age insurance (capped)", capped, b.OldAgeCappedEmployee, false)
	pensionEmployee := line("Supplementary pension T1", capped, b.PensionT1Employee, false)

	employeeLines := []Line{
		csgDeductible, csgNonDeductible, crds, oldAgeEmployee, pensionEmployee,
	}

	// Employer side. Two lines carry reduced rates under a SMIC multiple.
	sicknessRate := b.SicknessFull
	if gross.LessThanOrEqual(b.MonthlyMinWage.Mul(b.SicknessThreshold)) {
		sicknessRate = b.SicknessReduced
	}
	familyRate := b.FamilyFull
	if gross.LessThanOrEqual(b.MonthlyMinWage.Mul(b.FamilyThreshold)) {
		familyRate = b.FamilyReduced
	}

	sickness := line("Sickness-maternity", gross, sicknessRate, true)
	oldAgeCapped := line("Old-age insurance (capped)", capped, b.OldAgeCappedEmployer, true)
	oldAgeUncapped := line("Old-age insurance (uncapped)", gross, b.OldAgeUncapped, true)
	family := line("Family allowance", gross, familyRate, true)
	workAccident := line("Work accident", gross, b.WorkAccident, true)
	unemployment := line("Unemployment insurance", gross, b.Unemployment, true)
	solidarity := line("Autonomy solidarity", gross, b.Solidarity, true)
	fnal := line("Housing fund (FNAL)", capped, b.HousingFNAL, true)
	pensionEmployer := line("Supplementary pension T1", capped, b.PensionT1Employer, true)

	if opts.ExemptEmployerSS {
		// The four core Social-Security lines are zeroed; work accident,
		// unemployment, solidarity and pension stay due.
		exempt(&sickness)
		exempt(&oldAgeCapped)
		exempt(&oldAgeUncapped)
		exempt(&family)
	}

	employerLines := []Line{
		sickness, oldAgeCapped, oldAgeUncapped, family,
		workAccident, unemployment, solidarity, fnal, pensionEmployer,
	}

	totalEmployee := sumLines(employeeLines)
	totalEmployer := sumLines(employerLines)

	// Taxable income excludes the non-deductible CSG and CRDS.
	deductible := csgDeductible.Amount.
		Add(oldAgeEmployee.Amount).
		Add(pensionEmployee.Amount)
	taxable := gross.Sub(deductible).Round(2)

	withholding := taxable.Mul(opts.WithholdingRate).Round(2)
	net := taxable.
		Sub(csgNonDeductible.Amount).
		Sub(crds.Amount).
		Sub(withholding).
		Round(2)

	return &Result{
		Gross:           gross,
		EmployeeLines:   employeeLines,
		EmployerLines:   employerLines,
		TotalEmployee:   totalEmployee,
		TotalEmployer:   totalEmployer,
		Taxable:         taxable,
		WithholdingRate: opts.WithholdingRate,
		Withholding:     withholding,
		Net:             net,
	}
}

func line(label string, base, rate decimal.Decimal, employer bool) Line {
	return Line{
		Label:    label,
		Base:     base.Round(2),
		Rate:     rate,
		Amount:   base.Mul(rate).Round(2),
		Employer: employer,
	}
}

func exempt(l *Line) {
	l.Amount = decimal.Zero
	l.Exempted = true
}

func sumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total.Round(2)
}
