package checkout

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRequest = errors.New("invalid payment request")
	ErrInvalidBilling = errors.New("invalid billing info")
)

func ValidateRequest(r PaymentRequest) error {
	if r.Amount < 0 || strings.TrimSpace(r.Currency) == "" {
		return ErrInvalidRequest
	}
	switch r.BillingPeriod {
	case PeriodOneTime, PeriodMonthly, PeriodQuarterly, PeriodYearly:
	default:
		return ErrInvalidRequest
	}
	switch r.PayerCategory {
	case PayerIndividual, PayerCommunity, PayerCorporate, PayerGovernment:
	default:
		return ErrInvalidRequest
	}
	return nil
}

// ValidateBilling requires name and email always; non-individual payers
// must identify their organization or tax id.
func ValidateBilling(b BillingInfo, payer PayerCategory) error {
	if strings.TrimSpace(b.FullName) == "" || strings.TrimSpace(b.Email) == "" {
		return ErrInvalidBilling
	}
	if payer != PayerIndividual && strings.TrimSpace(b.Organization) == "" && strings.TrimSpace(b.TaxID) == "" {
		return ErrInvalidBilling
	}
	return nil
}
