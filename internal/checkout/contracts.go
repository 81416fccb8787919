package checkout

import (
	"context"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/kit/broker"
	"storefront/kit/gateway"
)

// RegistryContract define configuration-readiness responsibility.
type RegistryContract interface {
	ProviderConfig(id string) config.ProviderConfig
	IsProviderConfigured(id string) bool
}

// AdapterDirectoryContract define live adapter lookup responsibility.
type AdapterDirectoryContract interface {
	Adapter(processorID string) (gateway.Adapter, bool)
}

// SimulatorContract define simulated round-trip responsibility.
type SimulatorContract interface {
	Simulate(ctx context.Context) (ok bool, reason string)
}

// PublisherContract define publish responsibility (broker).
type PublisherContract interface {
	Publish(ctx context.Context, evt broker.Event) []error
}

// ServiceContract define checkout execution responsibility.
type ServiceContract interface {
	ProcessPayment(ctx context.Context, proc catalog.Processor, req PaymentRequest, billing BillingInfo) PaymentOutcome
}
