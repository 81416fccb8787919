package checkout

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/kit/gateway"
	"storefront/kit/observability"
)

func testConfig(vars map[string]string) *config.Config {
	return config.LoadFrom(func(key string) string { return vars[key] })
}

func mustFind(t *testing.T, id string) catalog.Processor {
	t.Helper()
	p, ok := catalog.Find(id)
	require.True(t, ok)
	return p
}

func validBilling() BillingInfo {
	return BillingInfo{FullName: "Amina Otieno", Email: "amina@example.org"}
}

func TestService_ProcessPayment_FreeTier(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	metricsKit := observability.NewMetrics()

	sim := new(SimulatorMock)
	// Fully unconfigured registry: the free tier must not care.
	svc := NewService(testConfig(nil), nil, sim, nil, metricsKit, Options{Simulate: true})

	start := time.Now()
	out := svc.ProcessPayment(ctx, mustFind(t, "stripe"), PaymentRequest{
		Amount:        0,
		Currency:      "USD",
		TierID:        "free",
		BillingPeriod: PeriodOneTime,
		PayerCategory: PayerIndividual,
	}, BillingInfo{})

	require.True(t, out.Success)
	require.True(t, strings.HasPrefix(out.TransactionID, "STR-"), "transaction id %q", out.TransactionID)
	require.Empty(t, out.RedirectURL)
	require.Empty(t, out.ErrorMessage)
	require.Less(t, time.Since(start), time.Second, "free tier must not await simulated delay")
	sim.AssertNotCalled(t, "Simulate", mock.Anything)
	require.Equal(t, int64(1), metricsKit.FreeTierGrants.Load())
	require.Equal(t, int64(1), metricsKit.ChargesSucceeded.Load())
}

func TestService_ProcessPayment_MobileMoneySimulated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := testConfig(map[string]string{
		"MPESA_CONSUMER_KEY": "ck",
		"MPESA_SHORTCODE":    "174379",
	})
	pub := new(PublisherMock)
	pub.On("Publish", ctx, mock.Anything).Return(nil)

	svc := NewService(cfg, nil, NewSimulator(1, 0, rand.New(rand.NewSource(1))), pub, observability.NewMetrics(), Options{
		Simulate:   true,
		SuccessURL: "https://donate.example.org/payments/success",
	})

	out := svc.ProcessPayment(ctx, mustFind(t, "mpesa"), PaymentRequest{
		Amount:        500,
		Currency:      "KES",
		TierID:        "supporter",
		BillingPeriod: PeriodMonthly,
		PayerCategory: PayerIndividual,
	}, validBilling())

	require.True(t, out.Success)
	require.True(t, strings.HasPrefix(out.TransactionID, "MPE-"), "transaction id %q", out.TransactionID)
	require.Contains(t, out.RedirectURL, "provider=mpesa")
	require.Contains(t, out.RedirectURL, "transaction_id=")

	// One requested event, then one succeeded event.
	pub.AssertNumberOfCalls(t, "Publish", 2)
	reqEvt, ok := pub.Calls[0].Arguments.Get(1).(events.ChargeRequested)
	require.True(t, ok)
	require.Equal(t, out.TransactionID, reqEvt.TransactionID)
	evt, ok := pub.Calls[1].Arguments.Get(1).(events.ChargeSucceeded)
	require.True(t, ok)
	require.Equal(t, out.TransactionID, evt.TransactionID)
	require.Equal(t, "KES", evt.Currency)
	require.Equal(t, "supporter", evt.TierID)
	require.True(t, evt.Simulated)
}

func TestService_ProcessPayment_UnconfiguredProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Shortcode without consumer key: recognized but unusable.
	cfg := testConfig(map[string]string{"MPESA_SHORTCODE": "174379"})
	sim := new(SimulatorMock)
	svc := NewService(cfg, nil, sim, nil, observability.NewMetrics(), Options{Simulate: true})

	out := svc.ProcessPayment(ctx, mustFind(t, "mpesa"), PaymentRequest{
		Amount:        500,
		Currency:      "KES",
		BillingPeriod: PeriodMonthly,
		PayerCategory: PayerIndividual,
	}, validBilling())

	require.False(t, out.Success)
	require.Equal(t, ReasonProviderUnavailable, out.ErrorMessage)
	require.Empty(t, out.TransactionID)
	sim.AssertNotCalled(t, "Simulate", mock.Anything)
}

func TestService_ProcessPayment_Validation(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(map[string]string{"STRIPE_PUBLIC_KEY": "pk_test_1"})

	var tests = []struct {
		name    string
		req     PaymentRequest
		billing BillingInfo
	}{
		{
			name:    "negative amount",
			req:     PaymentRequest{Amount: -1, Currency: "USD", BillingPeriod: PeriodOneTime, PayerCategory: PayerIndividual},
			billing: validBilling(),
		},
		{
			name:    "unknown billing period",
			req:     PaymentRequest{Amount: 10, Currency: "USD", BillingPeriod: "weekly", PayerCategory: PayerIndividual},
			billing: validBilling(),
		},
		{
			name:    "unknown payer category",
			req:     PaymentRequest{Amount: 10, Currency: "USD", BillingPeriod: PeriodOneTime, PayerCategory: "ngo"},
			billing: validBilling(),
		},
		{
			name:    "missing email",
			req:     PaymentRequest{Amount: 10, Currency: "USD", BillingPeriod: PeriodOneTime, PayerCategory: PayerIndividual},
			billing: BillingInfo{FullName: "Amina Otieno"},
		},
		{
			name:    "corporate payer without organization or tax id",
			req:     PaymentRequest{Amount: 10, Currency: "USD", BillingPeriod: PeriodOneTime, PayerCategory: PayerCorporate},
			billing: validBilling(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sim := new(SimulatorMock)
			svc := NewService(cfg, nil, sim, nil, observability.NewMetrics(), Options{Simulate: true})
			out := svc.ProcessPayment(ctx, mustFind(t, "stripe"), tt.req, tt.billing)
			require.False(t, out.Success)
			require.Equal(t, ReasonInvalidDetails, out.ErrorMessage)
			sim.AssertNotCalled(t, "Simulate", mock.Anything)
		})
	}
}

func TestService_ProcessPayment_SimulatedDecline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testConfig(map[string]string{"STRIPE_PUBLIC_KEY": "pk_test_1"})

	sim := new(SimulatorMock)
	sim.On("Simulate", ctx).Return(false, ReasonCardDeclined)
	svc := NewService(cfg, nil, sim, nil, observability.NewMetrics(), Options{Simulate: true})

	out := svc.ProcessPayment(ctx, mustFind(t, "stripe"), PaymentRequest{
		Amount:        25,
		Currency:      "USD",
		BillingPeriod: PeriodOneTime,
		PayerCategory: PayerIndividual,
	}, validBilling())

	require.False(t, out.Success)
	require.Equal(t, ReasonCardDeclined, out.ErrorMessage)
	require.True(t, KnownReason(out.ErrorMessage))
	require.Empty(t, out.TransactionID)
}

func TestService_ProcessPayment_ConvertsToSupportedCurrency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testConfig(map[string]string{
		"MPESA_CONSUMER_KEY": "ck",
		"MPESA_SHORTCODE":    "174379",
	})

	pub := new(PublisherMock)
	pub.On("Publish", ctx, mock.Anything).Return(nil)
	svc := NewService(cfg, nil, NewSimulator(1, 0, rand.New(rand.NewSource(1))), pub, observability.NewMetrics(), Options{Simulate: true})

	out := svc.ProcessPayment(ctx, mustFind(t, "mpesa"), PaymentRequest{
		Amount:        100,
		Currency:      "USD",
		BillingPeriod: PeriodOneTime,
		PayerCategory: PayerIndividual,
	}, validBilling())

	require.True(t, out.Success)
	evt, ok := pub.Calls[len(pub.Calls)-1].Arguments.Get(1).(events.ChargeSucceeded)
	require.True(t, ok)
	require.Equal(t, "KES", evt.Currency)
	require.Equal(t, 12900.00, evt.Amount)
}

func TestService_ProcessPayment_Live(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(map[string]string{"STRIPE_PUBLIC_KEY": "pk_test_1"})
	proc := mustFind(t, "stripe")

	var tests = []struct {
		name           string
		adapters       func() AdapterDirectoryContract
		expectSuccess  bool
		expectedReason string
	}{
		{
			name: "adapter success",
			adapters: func() AdapterDirectoryContract {
				dir := new(AdapterDirectoryMock)
				dir.On("Adapter", "stripe").Return(adapterFunc(func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
					return &gateway.ChargeResult{Reference: "gw_" + req.TransactionID}, nil
				}), true)
				return dir
			},
			expectSuccess: true,
		},
		{
			name: "adapter timeout",
			adapters: func() AdapterDirectoryContract {
				dir := new(AdapterDirectoryMock)
				dir.On("Adapter", "stripe").Return(adapterFunc(func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
					return nil, gateway.ErrTimeout
				}), true)
				return dir
			},
			expectedReason: ReasonNetworkTimeout,
		},
		{
			name: "breaker open",
			adapters: func() AdapterDirectoryContract {
				dir := new(AdapterDirectoryMock)
				dir.On("Adapter", "stripe").Return(adapterFunc(func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
					return nil, gateway.ErrUnavailable
				}), true)
				return dir
			},
			expectedReason: ReasonProviderUnavailable,
		},
		{
			name: "no adapter registered",
			adapters: func() AdapterDirectoryContract {
				dir := new(AdapterDirectoryMock)
				dir.On("Adapter", "stripe").Return(nil, false)
				return dir
			},
			expectedReason: ReasonUnsupportedMethod,
		},
		{
			name: "adapter panic",
			adapters: func() AdapterDirectoryContract {
				dir := new(AdapterDirectoryMock)
				dir.On("Adapter", "stripe").Return(adapterFunc(func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
					panic("wire decode blew up")
				}), true)
				return dir
			},
			expectedReason: ReasonProcessingFailed,
		},
		{
			name: "unknown adapter error degrades",
			adapters: func() AdapterDirectoryContract {
				dir := new(AdapterDirectoryMock)
				dir.On("Adapter", "stripe").Return(adapterFunc(func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
					return nil, errors.New("HTTP 502 from rail")
				}), true)
				return dir
			},
			expectedReason: ReasonProcessingFailed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService(cfg, tt.adapters(), nil, nil, observability.NewMetrics(), Options{})
			out := svc.ProcessPayment(ctx, proc, PaymentRequest{
				Amount:        12.34,
				Currency:      "USD",
				BillingPeriod: PeriodOneTime,
				PayerCategory: PayerIndividual,
			}, validBilling())

			if tt.expectSuccess {
				require.True(t, out.Success)
				require.True(t, strings.HasPrefix(out.TransactionID, "STR-"))
				require.Empty(t, out.ErrorMessage)
				return
			}
			require.False(t, out.Success)
			require.Equal(t, tt.expectedReason, out.ErrorMessage)
			require.True(t, KnownReason(out.ErrorMessage))
			require.NotEmpty(t, out.ErrorMessage)
		})
	}
}

func TestService_ProcessPayment_LiveRedirectFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := testConfig(map[string]string{"MOLLIE_PROFILE_ID": "pfl_1"})

	dir := new(AdapterDirectoryMock)
	dir.On("Adapter", "mollie").Return(adapterFunc(func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
		return &gateway.ChargeResult{Reference: "tr_123"}, nil
	}), true)

	svc := NewService(cfg, dir, nil, nil, observability.NewMetrics(), Options{
		SuccessURL: "https://donate.example.org/payments/success",
	})

	out := svc.ProcessPayment(ctx, mustFind(t, "mollie"), PaymentRequest{
		Amount:        20,
		Currency:      "EUR",
		BillingPeriod: PeriodYearly,
		PayerCategory: PayerIndividual,
	}, validBilling())

	require.True(t, out.Success)
	require.Contains(t, out.RedirectURL, "provider=mollie")
	require.Contains(t, out.RedirectURL, "transaction_id="+out.TransactionID)
}

func TestNewTransactionID(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTransactionID("mpesa")
		require.True(t, strings.HasPrefix(id, "MPE-"), "id %q", id)
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
	require.True(t, strings.HasPrefix(NewTransactionID("safaricom"), "MPE-"))
	require.True(t, strings.HasPrefix(NewTransactionID("bp"), "BP-"))
}
