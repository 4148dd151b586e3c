package service

import (
	"math"

	"calc-hub/domain"
	"calc-hub/reference"
)

type TaxService struct {
	tables *reference.Tables
}

func NewTaxService(tables *reference.Tables) *TaxService {
	return &TaxService{tables: tables}
}

// CalculateIncomeTax computes federal income tax through the progressive
// brackets of the tax year, plus payroll taxes when requested.
func (s *TaxService) CalculateIncomeTax(input domain.IncomeTaxInput) (domain.IncomeTaxResult, error) {
	if err := validateStruct(input); err != nil {
		return domain.IncomeTaxResult{}, err
	}
	if s.tables == nil {
		return domain.IncomeTaxResult{}, domain.ErrDataUnavailable
	}
	year, ok := s.tables.TaxYear(input.TaxYear)
	if !ok {
		return domain.IncomeTaxResult{}, domain.Invalid("tax_year",
			"no tax tables for %d (available: %v)", input.TaxYear, s.tables.TaxYears())
	}
	brackets := year.Brackets[input.FilingStatus]
	if len(brackets) == 0 {
		return domain.IncomeTaxResult{}, domain.ErrDataUnavailable
	}

	gross := input.Wages + input.OtherIncome
	agi := math.Max(0, gross-input.PreTaxDeductions)

	deduction := year.StandardDeduction[input.FilingStatus]
	deductionType := "standard"
	if input.ItemizedDeductions > deduction {
		deduction = input.ItemizedDeductions
		deductionType = "itemized"
	}
	taxable := math.Max(0, agi-deduction)

	var incomeTax, marginal float64
	breakdown := []domain.BracketTax{}
	lower := 0.0
	for _, b := range brackets {
		upper := b.UpTo
		if upper == 0 {
			upper = math.Inf(1)
		}
		taxed := math.Min(taxable, upper) - lower
		if taxed <= 0 {
			break
		}
		tax := taxed * b.Rate
		incomeTax += tax
		marginal = b.Rate
		breakdown = append(breakdown, domain.BracketTax{
			Rate:        roundTo(b.Rate*100, 2),
			From:        lower,
			To:          b.UpTo,
			TaxedIncome: roundTo2Decimals(taxed),
			Tax:         roundTo2Decimals(tax),
		})
		lower = upper
	}

	credits := math.Min(input.TaxCredits, incomeTax)
	afterCredits := incomeTax - credits

	var socialSecurity, medicare float64
	if input.IncludePayrollTaxes {
		socialSecurity = math.Min(input.Wages, year.SocialSecurity.WageBase) * year.SocialSecurity.Rate
		medicare = input.Wages * year.Medicare.Rate
		if threshold := year.Medicare.AdditionalThreshold[input.FilingStatus]; threshold > 0 && input.Wages > threshold {
			medicare += (input.Wages - threshold) * year.Medicare.AdditionalRate
		}
	}

	total := afterCredits + socialSecurity + medicare
	effective := 0.0
	if gross > 0 {
		effective = total / gross * 100
	}

	return domain.IncomeTaxResult{
		TaxYear:               input.TaxYear,
		FilingStatus:          input.FilingStatus,
		GrossIncome:           roundTo2Decimals(gross),
		AdjustedGross:         roundTo2Decimals(agi),
		Deduction:             roundTo2Decimals(deduction),
		DeductionType:         deductionType,
		TaxableIncome:         roundTo2Decimals(taxable),
		IncomeTax:             roundTo2Decimals(incomeTax),
		CreditsApplied:        roundTo2Decimals(credits),
		IncomeTaxAfterCredits: roundTo2Decimals(afterCredits),
		SocialSecurityTax:     roundTo2Decimals(socialSecurity),
		MedicareTax:           roundTo2Decimals(medicare),
		TotalTax:              roundTo2Decimals(total),
		MarginalRate:          roundTo(marginal*100, 2),
		EffectiveRate:         roundTo(effective, 2),
		AfterTaxIncome:        roundTo2Decimals(gross - total),
		RefundOrOwed:          roundTo2Decimals(input.Withholding - afterCredits),
		Brackets:              breakdown,
	}, nil
}
