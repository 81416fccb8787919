package catalog

import "strings"

type Region string

const (
	RegionAfrica    Region = "africa"
	RegionEurope    Region = "europe"
	RegionAmerica   Region = "america"
	RegionAustralia Region = "australia"
	RegionGlobal    Region = "global"
)

type Flow string

const (
	// FlowDirect completes synchronously in the charge call.
	FlowDirect Flow = "direct"
	// FlowRedirect confirms out-of-band at a processor-hosted URL.
	FlowRedirect Flow = "redirect"
)

// Processor describes one payment rail. Every processor belongs to exactly
// one region; global processors are eligible everywhere.
type Processor struct {
	ID         string
	Name       string
	Region     Region
	Flow       Flow
	Currencies []string
}

var processors = []Processor{
	{ID: "mpesa", Name: "M-Pesa", Region: RegionAfrica, Flow: FlowRedirect, Currencies: []string{"KES"}},
	{ID: "airtel", Name: "Airtel Money", Region: RegionAfrica, Flow: FlowRedirect, Currencies: []string{"KES", "UGX", "TZS"}},
	{ID: "flutterwave", Name: "Flutterwave", Region: RegionAfrica, Flow: FlowDirect, Currencies: []string{"NGN", "KES", "GHS", "ZAR", "USD"}},
	{ID: "paystack", Name: "Paystack", Region: RegionAfrica, Flow: FlowDirect, Currencies: []string{"NGN", "ZAR", "GHS"}},
	{ID: "mollie", Name: "Mollie", Region: RegionEurope, Flow: FlowRedirect, Currencies: []string{"EUR"}},
	{ID: "klarna", Name: "Klarna", Region: RegionEurope, Flow: FlowRedirect, Currencies: []string{"EUR", "SEK", "GBP"}},
	{ID: "plaid", Name: "Plaid", Region: RegionAmerica, Flow: FlowRedirect, Currencies: []string{"USD"}},
	{ID: "interac", Name: "Interac e-Transfer", Region: RegionAmerica, Flow: FlowRedirect, Currencies: []string{"CAD"}},
	{ID: "bpay", Name: "BPAY", Region: RegionAustralia, Flow: FlowRedirect, Currencies: []string{"AUD"}},
	{ID: "poli", Name: "POLi", Region: RegionAustralia, Flow: FlowRedirect, Currencies: []string{"AUD", "NZD"}},
	{ID: "stripe", Name: "Stripe", Region: RegionGlobal, Flow: FlowDirect, Currencies: []string{"USD", "EUR", "GBP", "CAD", "AUD", "KES"}},
	{ID: "paypal", Name: "PayPal", Region: RegionGlobal, Flow: FlowDirect, Currencies: []string{"USD", "EUR", "GBP", "CAD", "AUD"}},
}

var aliases = map[string]string{
	"safaricom":   "mpesa",
	"airtelmoney": "airtel",
	"flw":         "flutterwave",
	"etransfer":   "interac",
}

// Resolve returns the canonical processor id for a raw id or alias,
// case-insensitive. Unknown ids pass through lowercased.
func Resolve(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if canonical, ok := aliases[id]; ok {
		return canonical
	}
	return id
}

// Processors returns all known processors in catalog order
// (regional rails first, global last).
func Processors() []Processor {
	return append([]Processor(nil), processors...)
}

// Find returns the descriptor for an id or alias.
func Find(id string) (Processor, bool) {
	id = Resolve(id)
	for _, p := range processors {
		if p.ID == id {
			return p, true
		}
	}
	return Processor{}, false
}

// Eligible returns processors usable for a region: those tagged with the
// region plus every global processor. Regional rails come first so UIs can
// present local options without re-sorting.
func Eligible(region Region) []Processor {
	var out []Processor
	for _, p := range processors {
		if p.Region == region && p.Region != RegionGlobal {
			out = append(out, p)
		}
	}
	for _, p := range processors {
		if p.Region == RegionGlobal {
			out = append(out, p)
		}
	}
	return out
}

// SupportedCurrencies returns the currency list for an id or alias,
// empty for unknown processors.
func SupportedCurrencies(id string) []string {
	p, ok := Find(id)
	if !ok {
		return nil
	}
	return append([]string(nil), p.Currencies...)
}

// SupportsCurrency reports whether the processor accepts the currency code.
func (p Processor) SupportsCurrency(code string) bool {
	code = strings.ToUpper(code)
	for _, c := range p.Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// RegionFromContinent maps a coarse continent code to a region tag.
// Any lookup failure falls back to global; geography detection must never
// block checkout.
func RegionFromContinent(code string) Region {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "AF":
		return RegionAfrica
	case "EU":
		return RegionEurope
	case "NA", "SA":
		return RegionAmerica
	case "OC":
		return RegionAustralia
	default:
		return RegionGlobal
	}
}
