package checkout

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/catalog"
	"storefront/internal/currency"
	"storefront/internal/events"
	"storefront/kit/broker"
	"storefront/kit/gateway"
	"storefront/kit/observability"
)

type Options struct {
	// Simulate routes every configured charge through the simulator
	// instead of a live adapter.
	Simulate   bool
	SuccessURL string
	CancelURL  string
}

type Service struct {
	registry RegistryContract
	adapters AdapterDirectoryContract
	sim      SimulatorContract
	bus      PublisherContract
	metrics  *observability.Metrics
	opts     Options
}

func NewService(registry RegistryContract, adapters AdapterDirectoryContract, sim SimulatorContract, bus PublisherContract, metrics *observability.Metrics, opts Options) *Service {
	return &Service{
		registry: registry,
		adapters: adapters,
		sim:      sim,
		bus:      bus,
		metrics:  metrics,
		opts:     opts,
	}
}

// NewTransactionID composes a processor-derived prefix, a millisecond
// timestamp and a random suffix. Unique in practice per attempt.
func NewTransactionID(processorID string) string {
	prefix := strings.ToUpper(catalog.Resolve(processorID))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}

// ProcessPayment drives one charge attempt end to end and always returns
// a normalized outcome; no fault escapes to the caller.
func (s *Service) ProcessPayment(ctx context.Context, proc catalog.Processor, req PaymentRequest, billing BillingInfo) (out PaymentOutcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("layer=service component=checkout method=ProcessPayment processor=%s err=panic detail=%v", proc.ID, r)
			if s.metrics != nil {
				s.metrics.ChargesFailed.Add(1)
			}
			out = failure(ReasonProcessingFailed)
		}
	}()

	if s.metrics != nil {
		s.metrics.ChargesAttempted.Add(1)
	}

	if err := ValidateRequest(req); err != nil {
		log.Printf("layer=service component=checkout method=ProcessPayment processor=%s tier=%s err=%v", proc.ID, req.TierID, err)
		return failure(ReasonInvalidDetails)
	}

	// Free tier: immediate success, no processor contacted, no simulated
	// delay, no success draw consumed.
	if req.Amount == 0 {
		txID := NewTransactionID(proc.ID)
		s.publish(ctx, events.ChargeSucceeded{
			TransactionID: txID,
			ProcessorID:   proc.ID,
			Currency:      strings.ToUpper(req.Currency),
			FreeTier:      true,
			At:            time.Now().UTC(),
		})
		if s.metrics != nil {
			s.metrics.FreeTierGrants.Add(1)
			s.metrics.ChargesSucceeded.Add(1)
		}
		return PaymentOutcome{Success: true, TransactionID: txID}
	}

	if err := ValidateBilling(billing, req.PayerCategory); err != nil {
		log.Printf("layer=service component=checkout method=ProcessPayment processor=%s tier=%s err=%v", proc.ID, req.TierID, err)
		return failure(ReasonInvalidDetails)
	}

	// Gate on configuration before any network or timing simulation.
	if s.registry == nil || !s.registry.IsProviderConfigured(proc.ID) {
		log.Printf("layer=service component=checkout method=ProcessPayment processor=%s err=provider not configured", proc.ID)
		s.publish(ctx, events.ChargeFailed{
			ProcessorID: proc.ID,
			Reason:      ReasonProviderUnavailable,
			At:          time.Now().UTC(),
		})
		if s.metrics != nil {
			s.metrics.ChargesFailed.Add(1)
		}
		return failure(ReasonProviderUnavailable)
	}

	amount := req.Amount
	curr := strings.ToUpper(req.Currency)
	if !proc.SupportsCurrency(curr) && len(proc.Currencies) > 0 {
		target := proc.Currencies[0]
		amount = currency.Convert(amount, curr, target)
		curr = target
	}

	txID := NewTransactionID(proc.ID)
	settings := s.registry.ProviderConfig(proc.ID)
	log.Printf("layer=service component=checkout method=ProcessPayment processor=%s transaction_id=%s amount=%.2f currency=%s settings=%v",
		proc.ID, txID, amount, curr, settings.Redacted())

	s.publish(ctx, events.ChargeRequested{
		TransactionID: txID,
		ProcessorID:   proc.ID,
		Amount:        amount,
		Currency:      curr,
		TierID:        req.TierID,
		At:            time.Now().UTC(),
	})

	if s.opts.Simulate {
		return s.simulate(ctx, proc, txID, amount, curr, req.TierID)
	}
	return s.live(ctx, proc, txID, amount, curr, billing, settings)
}

func (s *Service) simulate(ctx context.Context, proc catalog.Processor, txID string, amount float64, curr, tierID string) PaymentOutcome {
	if s.metrics != nil {
		s.metrics.ChargesSimulated.Add(1)
	}

	ok, reason := s.sim.Simulate(ctx)
	if !ok {
		s.publish(ctx, events.ChargeFailed{
			TransactionID: txID,
			ProcessorID:   proc.ID,
			Reason:        reason,
			Simulated:     true,
			At:            time.Now().UTC(),
		})
		if s.metrics != nil {
			s.metrics.ChargesFailed.Add(1)
		}
		return failure(reason)
	}

	out := PaymentOutcome{Success: true, TransactionID: txID}
	if proc.Flow == catalog.FlowRedirect {
		out.RedirectURL = s.redirectURL(proc.ID, txID)
	}
	s.publish(ctx, events.ChargeSucceeded{
		TransactionID: txID,
		ProcessorID:   proc.ID,
		Amount:        amount,
		Currency:      curr,
		TierID:        tierID,
		Simulated:     true,
		At:            time.Now().UTC(),
	})
	if s.metrics != nil {
		s.metrics.ChargesSucceeded.Add(1)
	}
	return out
}

func (s *Service) live(ctx context.Context, proc catalog.Processor, txID string, amount float64, curr string, billing BillingInfo, settings map[string]string) PaymentOutcome {
	adapter, ok := s.adapters.Adapter(proc.ID)
	if !ok {
		log.Printf("layer=service component=checkout method=live processor=%s err=no adapter registered", proc.ID)
		if s.metrics != nil {
			s.metrics.ChargesFailed.Add(1)
		}
		return failure(ReasonUnsupportedMethod)
	}

	res, err := adapter.Charge(ctx, gateway.ChargeRequest{
		TransactionID: txID,
		ProcessorID:   proc.ID,
		Amount:        amount,
		Currency:      curr,
		CustomerName:  billing.FullName,
		CustomerEmail: billing.Email,
		Settings:      settings,
		SuccessURL:    s.redirectURL(proc.ID, txID),
		CancelURL:     s.opts.CancelURL,
	})
	if err != nil {
		reason := Classify(err)
		// Full detail stays server-side; the caller only sees the reason.
		log.Printf("layer=service component=checkout method=live processor=%s transaction_id=%s reason=%s err=%v", proc.ID, txID, reason, err)
		s.publish(ctx, events.ChargeFailed{
			TransactionID: txID,
			ProcessorID:   proc.ID,
			Reason:        reason,
			At:            time.Now().UTC(),
		})
		if s.metrics != nil {
			s.metrics.ChargesFailed.Add(1)
		}
		return failure(reason)
	}

	out := PaymentOutcome{Success: true, TransactionID: txID}
	if res.RedirectURL != "" {
		out.RedirectURL = res.RedirectURL
	} else if proc.Flow == catalog.FlowRedirect {
		out.RedirectURL = s.redirectURL(proc.ID, txID)
	}
	if res.Reference != "" {
		log.Printf("layer=service component=checkout method=live processor=%s transaction_id=%s gateway_ref=%s", proc.ID, txID, res.Reference)
	}
	s.publish(ctx, events.ChargeSucceeded{
		TransactionID: txID,
		ProcessorID:   proc.ID,
		Amount:        amount,
		Currency:      curr,
		At:            time.Now().UTC(),
	})
	if s.metrics != nil {
		s.metrics.ChargesSucceeded.Add(1)
	}
	return out
}

func (s *Service) redirectURL(processorID, txID string) string {
	if s.opts.SuccessURL == "" {
		return ""
	}
	return fmt.Sprintf("%s?provider=%s&transaction_id=%s",
		s.opts.SuccessURL, url.QueryEscape(processorID), url.QueryEscape(txID))
}

func (s *Service) publish(ctx context.Context, evt broker.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, evt)
	}
}
