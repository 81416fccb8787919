package checkout

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/config"
	"storefront/kit/broker"
	"storefront/kit/gateway"
)

type RegistryMock struct {
	mock.Mock
	RegistryContract
}

func (m *RegistryMock) ProviderConfig(id string) config.ProviderConfig {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(config.ProviderConfig)
}

func (m *RegistryMock) IsProviderConfigured(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

type AdapterDirectoryMock struct {
	mock.Mock
	AdapterDirectoryContract
}

func (m *AdapterDirectoryMock) Adapter(processorID string) (gateway.Adapter, bool) {
	args := m.Called(processorID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(gateway.Adapter), args.Bool(1)
}

type SimulatorMock struct {
	mock.Mock
	SimulatorContract
}

func (m *SimulatorMock) Simulate(ctx context.Context) (bool, string) {
	args := m.Called(ctx)
	return args.Bool(0), args.String(1)
}

type PublisherMock struct {
	mock.Mock
	PublisherContract
}

func (m *PublisherMock) Publish(ctx context.Context, evt broker.Event) []error {
	args := m.Called(ctx, evt)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]error)
}

// adapterFunc lets tests drop in arbitrary adapter behavior, including
// panics, without a mock type per case.
type adapterFunc func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error)

func (f adapterFunc) Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	return f(ctx, req)
}
