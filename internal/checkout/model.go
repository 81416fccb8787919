package checkout

type BillingPeriod string

const (
	PeriodOneTime   BillingPeriod = "one-time"
	PeriodMonthly   BillingPeriod = "monthly"
	PeriodQuarterly BillingPeriod = "quarterly"
	PeriodYearly    BillingPeriod = "yearly"
)

type PayerCategory string

const (
	PayerIndividual PayerCategory = "individual"
	PayerCommunity  PayerCategory = "community"
	PayerCorporate  PayerCategory = "corporate"
	PayerGovernment PayerCategory = "government"
)

// PaymentRequest is the normalized charge intent handed over by the UI.
// Amount is pre-conversion, in the request currency. Zero is a valid
// amount (free tier) and never reaches a processor.
type PaymentRequest struct {
	Amount        float64
	Currency      string
	TierID        string
	TierName      string
	BillingPeriod BillingPeriod
	PayerCategory PayerCategory
}

// BillingInfo is opaque to routing except for presence checks.
type BillingInfo struct {
	FullName     string
	Email        string
	Phone        string
	Organization string
	TaxID        string
	Country      string
	City         string
	Address      string
}

// PaymentOutcome is created fresh per attempt and never mutated after
// return; callers persist it verbatim.
type PaymentOutcome struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// Failure taxonomy. Every failed outcome carries exactly one of these,
// never a raw internal error string.
const (
	ReasonProviderUnavailable = "provider_unavailable"
	ReasonInsufficientFunds   = "insufficient_funds"
	ReasonCardDeclined        = "card_declined"
	ReasonNetworkTimeout      = "network_timeout"
	ReasonInvalidDetails      = "invalid_details"
	ReasonUnsupportedMethod   = "unsupported_method"
	ReasonLimitExceeded       = "limit_exceeded"
	ReasonProcessingFailed    = "processing_failed"
)

var knownReasons = map[string]struct{}{
	ReasonProviderUnavailable: {},
	ReasonInsufficientFunds:   {},
	ReasonCardDeclined:        {},
	ReasonNetworkTimeout:      {},
	ReasonInvalidDetails:      {},
	ReasonUnsupportedMethod:   {},
	ReasonLimitExceeded:       {},
	ReasonProcessingFailed:    {},
}

func KnownReason(reason string) bool {
	_, ok := knownReasons[reason]
	return ok
}

func failure(reason string) PaymentOutcome {
	if !KnownReason(reason) {
		reason = ReasonProcessingFailed
	}
	return PaymentOutcome{Success: false, ErrorMessage: reason}
}
