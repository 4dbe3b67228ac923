package cotisations_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidalis/care-engine/convention"
	"github.com/aidalis/care-engine/cotisations"
)

func newCalculator() *cotisations.Calculator {
	return cotisations.NewCalculator(convention.Bareme2025())
}

func findLine(lines []cotisations.Line, label string) *cotisations.Line {
	for i := range lines {
		if lines[i].Label == label {
			return &lines[i]
		}
	}
	return nil
}

// =============================================================================
// NOMINAL COMPUTATION
// =============================================================================

func TestCalculate_StandardGross(t *testing.T) {
	// GIVEN: 2000 gross under the 2025 schedule
	// THEN: every line matches the hand-computed payslip

	r := newCalculator().Calculate(decimal.NewFromInt(2000), cotisations.Options{})

	// CSG/CRDS apply to 98.25% of gross.
	csg := findLine(r.EmployeeLines, "CSG deductible")
	require.NotNil(t, csg)
	assert.Equal(t, "1965.00", csg.Base.StringFixed(2))
	assert.Equal(t, "133.62", csg.Amount.StringFixed(2))

	assert.Equal(t, "47.16", findLine(r.EmployeeLines, "CSG non deductible").Amount.StringFixed(2))
	assert.Equal(t, "9.83", findLine(r.EmployeeLines, "CRDS").Amount.StringFixed(2))
	assert.Equal(t, "138.00", findLine(r.EmployeeLines, "Old-age insurance (capped)").Amount.StringFixed(2))
	assert.Equal(t, "63.00", findLine(r.EmployeeLines, "Supplementary pension T1").Amount.StringFixed(2))
	assert.Equal(t, "391.61", r.TotalEmployee.StringFixed(2))

	// 2000 sits under both SMIC thresholds: reduced sickness and family rates.
	assert.Equal(t, "140.00", findLine(r.EmployerLines, "Sickness-maternity").Amount.StringFixed(2))
	assert.Equal(t, "171.00", findLine(r.EmployerLines, "Old-age insurance (capped)").Amount.StringFixed(2))
	assert.Equal(t, "40.40", findLine(r.EmployerLines, "Old-age insurance (uncapped)").Amount.StringFixed(2))
	assert.Equal(t, "69.00", findLine(r.EmployerLines, "Family allowance").Amount.StringFixed(2))
	assert.Equal(t, "10.00", findLine(r.EmployerLines, "Work accident").Amount.StringFixed(2))
	assert.Equal(t, "81.00", findLine(r.EmployerLines, "Unemployment insurance").Amount.StringFixed(2))
	assert.Equal(t, "6.00", findLine(r.EmployerLines, "Autonomy solidarity").Amount.StringFixed(2))
	assert.Equal(t, "2.00", findLine(r.EmployerLines, "Housing fund (FNAL)").Amount.StringFixed(2))
	assert.Equal(t, "94.40", findLine(r.EmployerLines, "Supplementary pension T1").Amount.StringFixed(2))
	assert.Equal(t, "613.80", r.TotalEmployer.StringFixed(2))

	// Taxable excludes only the deductible employee contributions.
	assert.Equal(t, "1665.38", r.Taxable.StringFixed(2))
	assert.Equal(t, "1608.39", r.Net.StringFixed(2))
}

func TestCalculate_CappedBaseAboveCeiling(t *testing.T) {
	// Above the 3925 ceiling the capped lines stop growing.
	r := newCalculator().Calculate(decimal.NewFromInt(5000), cotisations.Options{})

	oldAge := findLine(r.EmployeeLines, "Old-age insurance (capped)")
	assert.Equal(t, "3925.00", oldAge.Base.StringFixed(2))

	uncapped := findLine(r.EmployerLines, "Old-age insurance (uncapped)")
	assert.Equal(t, "5000.00", uncapped.Base.StringFixed(2))

	// 5000 > 2.5 x SMIC: the sickness line carries the full 13% rate.
	assert.Equal(t, "650.00", findLine(r.EmployerLines, "Sickness-maternity").Amount.StringFixed(2))
}

func TestCalculate_Withholding(t *testing.T) {
	r := newCalculator().Calculate(decimal.NewFromInt(2000), cotisations.Options{
		WithholdingRate: decimal.NewFromFloat(0.05),
	})

	assert.Equal(t, "83.27", r.Withholding.StringFixed(2), "5% of 1665.38 taxable")
	assert.Equal(t, "1525.12", r.Net.StringFixed(2))
}

// =============================================================================
// EXEMPTION MODE
// =============================================================================

func TestCalculate_ExemptionZeroesTheFourCoreLines(t *testing.T) {
	r := newCalculator().Calculate(decimal.NewFromInt(2000), cotisations.Options{
		ExemptEmployerSS: true,
	})

	var exempted int
	for _, l := range r.EmployerLines {
		if l.Exempted {
			exempted++
			assert.True(t, l.Amount.IsZero(), l.Label)
			assert.False(t, l.Base.IsZero(), "base survives exemption on %s", l.Label)
			assert.False(t, l.Rate.IsZero(), "rate survives exemption on %s", l.Label)
		}
	}
	assert.Equal(t, 4, exempted)

	// Work accident, unemployment, solidarity, FNAL and pension remain due.
	assert.Equal(t, "193.40", r.TotalEmployer.StringFixed(2))

	// The employee side is untouched.
	assert.Equal(t, "391.61", r.TotalEmployee.StringFixed(2))
}

// =============================================================================
// BOUNDARIES AND DETERMINISM
// =============================================================================

func TestCalculate_NegativeGrossSaturatesToZero(t *testing.T) {
	r := newCalculator().Calculate(decimal.NewFromInt(-500), cotisations.Options{})

	assert.True(t, r.Gross.IsZero())
	assert.True(t, r.TotalEmployee.IsZero())
	assert.True(t, r.TotalEmployer.IsZero())
	assert.True(t, r.Net.IsZero())
}

func TestCalculate_Deterministic(t *testing.T) {
	gross := decimal.RequireFromString("2347.89")
	opts := cotisations.Options{WithholdingRate: decimal.NewFromFloat(0.072)}

	a := newCalculator().Calculate(gross, opts)
	b := newCalculator().Calculate(gross, opts)

	assert.True(t, a.Net.Equal(b.Net))
	assert.True(t, a.TotalEmployee.Equal(b.TotalEmployee))
	assert.True(t, a.TotalEmployer.Equal(b.TotalEmployer))
	require.Equal(t, len(a.EmployerLines), len(b.EmployerLines))
	for i := range a.EmployerLines {
		assert.True(t, a.EmployerLines[i].Amount.Equal(b.EmployerLines[i].Amount))
	}
}
