package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/kit/idempotency"
)

type CheckoutMock struct {
	mock.Mock
	CheckoutContract
}

func (m *CheckoutMock) ProcessPayment(ctx context.Context, proc catalog.Processor, req checkout.PaymentRequest, billing checkout.BillingInfo) checkout.PaymentOutcome {
	args := m.Called(ctx, proc, req, billing)
	return args.Get(0).(checkout.PaymentOutcome)
}

type RegistryMock struct {
	mock.Mock
	RegistryContract
}

func (m *RegistryMock) IsProviderConfigured(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

type IdempotencyMock struct {
	mock.Mock
	IdempotencyContract
}

func (m *IdempotencyMock) Begin(ctx context.Context, key string) (*idempotency.Entry, error) {
	args := m.Called(ctx, key)
	entry, _ := args.Get(0).(*idempotency.Entry)
	return entry, args.Error(1)
}

func (m *IdempotencyMock) Complete(ctx context.Context, key string, statusCode int, response []byte) error {
	args := m.Called(ctx, key, statusCode, response)
	return args.Error(0)
}

func (m *IdempotencyMock) Abandon(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
