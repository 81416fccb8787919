package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/currency"
)

// ProviderConfig is the credential/settings bundle for one processor.
// Only fields with a value are present; absence never errors, it only
// affects the configured predicate.
type ProviderConfig map[string]string

// Config holds every environment-sourced setting, loaded once at process
// start and read-only thereafter. Safe for concurrent reads.
type Config struct {
	BaseAPIURL     string
	WebhookBaseURL string
	SuccessPath    string
	CancelPath     string

	SimulationEnabled     bool
	SimulationSuccessRate float64
	SimulatedDelay        time.Duration

	RedisAddr string

	providers map[string]ProviderConfig
}

type Validation struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// providerEnv maps each processor's field names to env variables.
var providerEnv = map[string]map[string]string{
	"stripe": {
		"public_key":     "STRIPE_PUBLIC_KEY",
		"secret_key":     "STRIPE_SECRET_KEY",
		"webhook_secret": "STRIPE_WEBHOOK_SECRET",
	},
	"paypal": {
		"public_key": "PAYPAL_CLIENT_ID",
		"secret_key": "PAYPAL_CLIENT_SECRET",
		"webhook_id": "PAYPAL_WEBHOOK_ID",
	},
	"mpesa": {
		"consumer_key":    "MPESA_CONSUMER_KEY",
		"consumer_secret": "MPESA_CONSUMER_SECRET",
		"shortcode":       "MPESA_SHORTCODE",
		"passkey":         "MPESA_PASSKEY",
		"callback_url":    "MPESA_CALLBACK_URL",
	},
	"airtel": {
		"consumer_key":    "AIRTEL_CONSUMER_KEY",
		"consumer_secret": "AIRTEL_CONSUMER_SECRET",
		"shortcode":       "AIRTEL_SHORTCODE",
	},
	"flutterwave": {
		"public_key":  "FLW_PUBLIC_KEY",
		"secret_key":  "FLW_SECRET_KEY",
		"secret_hash": "FLW_SECRET_HASH",
	},
	"paystack": {
		"public_key": "PAYSTACK_PUBLIC_KEY",
		"secret_key": "PAYSTACK_SECRET_KEY",
	},
	"mollie": {
		"profile_id": "MOLLIE_PROFILE_ID",
		"api_key":    "MOLLIE_API_KEY",
	},
	"klarna": {
		"username":    "KLARNA_USERNAME",
		"password":    "KLARNA_PASSWORD",
		"sandbox_url": "KLARNA_SANDBOX_URL",
	},
	"plaid": {
		"public_key":  "PLAID_PUBLIC_KEY",
		"secret_key":  "PLAID_SECRET",
		"client_id":   "PLAID_CLIENT_ID",
		"environment": "PLAID_ENV",
	},
	"interac": {
		"merchant_id": "INTERAC_MERCHANT_ID",
		"secret_key":  "INTERAC_SECRET",
	},
	"bpay": {
		"biller_code":      "BPAY_BILLER_CODE",
		"reference_prefix": "BPAY_REFERENCE_PREFIX",
	},
	"poli": {
		"merchant_code": "POLI_MERCHANT_CODE",
		"auth_code":     "POLI_AUTH_CODE",
	},
}

// requiredFields is the per-processor configured predicate. Processors
// without an entry fall back to "at least one field set".
var requiredFields = map[string][]string{
	"stripe":      {"public_key"},
	"paypal":      {"public_key"},
	"mpesa":       {"consumer_key", "shortcode"},
	"airtel":      {"consumer_key", "shortcode"},
	"flutterwave": {"public_key"},
	"paystack":    {"public_key"},
	"mollie":      {"profile_id"},
	"klarna":      {"username", "password"},
	"plaid":       {"client_id"},
	"interac":     {"merchant_id"},
	"bpay":        {"biller_code"},
	"poli":        {"merchant_code"},
}

// globalProcessors are the two rails whose absence fails validation even
// when regional rails are configured.
var globalProcessors = []string{"stripe", "paypal"}

// Load reads the process environment. Call once at startup.
func Load() *Config {
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config from an arbitrary lookup, so tests can
// fabricate environments without touching the process env.
func LoadFrom(getenv func(string) string) *Config {
	c := &Config{
		BaseAPIURL:            getenv("BASE_API_URL"),
		WebhookBaseURL:        getenv("WEBHOOK_BASE_URL"),
		SuccessPath:           getenv("PAYMENT_SUCCESS_PATH"),
		CancelPath:            getenv("PAYMENT_CANCEL_PATH"),
		RedisAddr:             getenv("REDIS_ADDR"),
		SimulationSuccessRate: 0.95,
		providers:             make(map[string]ProviderConfig, len(providerEnv)),
	}
	if c.SuccessPath == "" {
		c.SuccessPath = "/payments/success"
	}
	if c.CancelPath == "" {
		c.CancelPath = "/payments/cancel"
	}
	if v := getenv("PAYMENT_SIMULATION"); v != "" {
		c.SimulationEnabled, _ = strconv.ParseBool(v)
	}
	if v := getenv("PAYMENT_SIMULATION_SUCCESS_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			c.SimulationSuccessRate = rate
		}
	}
	if v := getenv("PAYMENT_SIMULATION_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			c.SimulatedDelay = time.Duration(ms) * time.Millisecond
		}
	}

	for id, fields := range providerEnv {
		bundle := make(ProviderConfig)
		for field, envKey := range fields {
			if v := getenv(envKey); v != "" {
				bundle[field] = v
			}
		}
		c.providers[id] = bundle
	}
	return c
}

// ProviderConfig returns the field bundle for a processor id or alias,
// case-insensitive. Nil for unknown ids; never panics.
func (c *Config) ProviderConfig(id string) ProviderConfig {
	bundle, ok := c.providers[catalog.Resolve(id)]
	if !ok {
		return nil
	}
	return bundle
}

// IsProviderConfigured applies the processor's required-field rule.
// False whenever the processor is unknown.
func (c *Config) IsProviderConfigured(id string) bool {
	id = catalog.Resolve(id)
	bundle, ok := c.providers[id]
	if !ok {
		return false
	}
	required, ok := requiredFields[id]
	if !ok {
		return len(bundle) > 0
	}
	for _, field := range required {
		if bundle[field] == "" {
			return false
		}
	}
	return true
}

// ConfiguredProviders filters the known-processor list through
// IsProviderConfigured, in stable catalog order.
func (c *Config) ConfiguredProviders() []string {
	var out []string
	for _, p := range catalog.Processors() {
		if c.IsProviderConfigured(p.ID) {
			out = append(out, p.ID)
		}
	}
	return out
}

// Validate is the startup health report, not a per-request gate. It never
// aborts the process; callers decide what to do with the errors.
func (c *Config) Validate() Validation {
	v := Validation{Valid: true}

	configured := c.ConfiguredProviders()
	if len(configured) == 0 {
		v.Errors = append(v.Errors, "no payment providers configured")
	}
	if c.BaseAPIURL == "" {
		v.Errors = append(v.Errors, "BASE_API_URL is not set")
	}
	globalOK := false
	for _, id := range globalProcessors {
		if c.IsProviderConfigured(id) {
			globalOK = true
			break
		}
	}
	if !globalOK {
		v.Errors = append(v.Errors, fmt.Sprintf("no global processor configured (need one of %s)", strings.Join(globalProcessors, ", ")))
	}
	if c.SimulationSuccessRate < 0 || c.SimulationSuccessRate > 1 {
		v.Errors = append(v.Errors, fmt.Sprintf("simulation success rate %v outside [0,1]", c.SimulationSuccessRate))
	}

	// Conversion table misses degrade silently to 1:1 at charge time, so
	// flag them here for operators instead.
	for _, id := range configured {
		if missing := currency.MissingRates("USD", catalog.SupportedCurrencies(id)); len(missing) > 0 {
			v.Warnings = append(v.Warnings, fmt.Sprintf("processor %s: no USD conversion rate for %s (1:1 fallback applies)", id, strings.Join(missing, ", ")))
		}
	}

	v.Valid = len(v.Errors) == 0
	return v
}

var secretFieldMarkers = []string{"secret", "passkey", "password", "hash", "auth", "api_key"}

// Redacted returns a copy safe for logging: secret-bearing fields are
// masked, public fields pass through.
func (b ProviderConfig) Redacted() map[string]string {
	out := make(map[string]string, len(b))
	for field, value := range b {
		masked := false
		for _, marker := range secretFieldMarkers {
			if strings.Contains(field, marker) {
				masked = true
				break
			}
		}
		if masked {
			out[field] = "***"
		} else {
			out[field] = value
		}
	}
	return out
}
