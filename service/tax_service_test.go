package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calc-hub/domain"
	"calc-hub/reference"
)

func newTaxService(t *testing.T) *TaxService {
	tables, err := reference.Default()
	require.NoError(t, err)
	return NewTaxService(tables)
}

func TestCalculateIncomeTax_Single2024(t *testing.T) {
	service := newTaxService(t)

	result, err := service.CalculateIncomeTax(domain.IncomeTaxInput{
		TaxYear:             2024,
		FilingStatus:        domain.FilingSingle,
		Wages:               60000,
		Withholding:         6000,
		IncludePayrollTaxes: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 14600.0, result.Deduction)
	assert.Equal(t, "standard", result.DeductionType)
	assert.Equal(t, 45400.0, result.TaxableIncome)
	assert.Equal(t, 5216.0, result.IncomeTax)
	assert.Equal(t, 12.0, result.MarginalRate)
	assert.Equal(t, 3720.0, result.SocialSecurityTax)
	assert.Equal(t, 870.0, result.MedicareTax)
	assert.Equal(t, 9806.0, result.TotalTax)
	assert.Equal(t, 50194.0, result.AfterTaxIncome)
	assert.Equal(t, 784.0, result.RefundOrOwed)

	require.Len(t, result.Brackets, 2)
	assert.Equal(t, 1160.0, result.Brackets[0].Tax)
	assert.Equal(t, 4056.0, result.Brackets[1].Tax)
}

func TestCalculateIncomeTax_MarriedJoint2025(t *testing.T) {
	service := newTaxService(t)

	result, err := service.CalculateIncomeTax(domain.IncomeTaxInput{
		TaxYear:             2025,
		FilingStatus:        domain.FilingMarriedJoint,
		Wages:               500000,
		IncludePayrollTaxes: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 468500.0, result.TaxableIncome)
	assert.Equal(t, 104046.0, result.IncomeTax)
	assert.Equal(t, 32.0, result.MarginalRate)
	assert.Equal(t, 10918.2, result.SocialSecurityTax)
	assert.Equal(t, 9500.0, result.MedicareTax, "includes the additional 0.9% above 250k")
	assert.Len(t, result.Brackets, 5)
}

func TestCalculateIncomeTax_ItemizedAndCredits(t *testing.T) {
	service := newTaxService(t)

	itemized, err := service.CalculateIncomeTax(domain.IncomeTaxInput{
		TaxYear:            2024,
		FilingStatus:       domain.FilingSingle,
		Wages:              100000,
		PreTaxDeductions:   10000,
		ItemizedDeductions: 20000,
	})
	require.NoError(t, err)
	assert.Equal(t, 90000.0, itemized.AdjustedGross)
	assert.Equal(t, "itemized", itemized.DeductionType)
	assert.Equal(t, 70000.0, itemized.TaxableIncome)
	assert.Zero(t, itemized.SocialSecurityTax)

	credits, err := service.CalculateIncomeTax(domain.IncomeTaxInput{
		TaxYear:      2024,
		FilingStatus: domain.FilingSingle,
		Wages:        20000,
		TaxCredits:   1000,
		Withholding:  300,
	})
	require.NoError(t, err)
	assert.Equal(t, 540.0, credits.IncomeTax)
	assert.Equal(t, 540.0, credits.CreditsApplied, "credits never exceed the tax")
	assert.Zero(t, credits.IncomeTaxAfterCredits)
	assert.Equal(t, 300.0, credits.RefundOrOwed)
}

func TestCalculateIncomeTax_NoIncome(t *testing.T) {
	service := newTaxService(t)

	result, err := service.CalculateIncomeTax(domain.IncomeTaxInput{
		TaxYear:      2025,
		FilingStatus: domain.FilingHeadOfHousehold,
	})
	require.NoError(t, err)
	assert.Zero(t, result.TotalTax)
	assert.Zero(t, result.EffectiveRate)
	assert.Empty(t, result.Brackets)
}

func TestCalculateIncomeTax_UnknownYear(t *testing.T) {
	service := newTaxService(t)

	_, err := service.CalculateIncomeTax(domain.IncomeTaxInput{
		TaxYear:      2019,
		FilingStatus: domain.FilingSingle,
		Wages:        50000,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tax_year", verr.Fields[0].Field)
}
