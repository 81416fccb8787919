package audit

import (
	"context"

	"storefront/internal/events"
	"storefront/kit/broker"
	"storefront/kit/observability"
)

type LoggerContract interface {
	Info(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// Service records every charge outcome through the logger. Durable audit
// storage lives behind the caller's data store; this trail is for
// operators.
type Service struct {
	logger LoggerContract
}

func NewService(logger LoggerContract) *Service {
	if logger == nil {
		logger = observability.NewLogger()
	}
	return &Service{logger: logger}
}

func (s *Service) HandleAny(ctx context.Context, evt broker.Event) error {
	switch e := evt.(type) {
	case events.ChargeSucceeded:
		s.logger.Info("charge succeeded",
			"transaction_id", e.TransactionID,
			"processor", e.ProcessorID,
			"amount", e.Amount,
			"currency", e.Currency,
			"simulated", e.Simulated,
			"free_tier", e.FreeTier,
		)
	case events.ChargeFailed:
		s.logger.Info("charge failed",
			"transaction_id", e.TransactionID,
			"processor", e.ProcessorID,
			"reason", e.Reason,
			"simulated", e.Simulated,
		)
	default:
		s.logger.Info("event", "name", evt.Name())
	}
	return nil
}
