package gateway

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrTimeout           = errors.New("gateway: timeout")
	ErrDeclined          = errors.New("gateway: declined")
	ErrInsufficientFunds = errors.New("gateway: insufficient funds")
	ErrInvalidDetails    = errors.New("gateway: invalid details")
	ErrUnsupported       = errors.New("gateway: unsupported method")
	ErrLimitExceeded     = errors.New("gateway: limit exceeded")
	ErrUnavailable       = errors.New("gateway: unavailable")
)

// ChargeRequest carries everything a processor adapter needs for one
// attempt. Settings is the processor's field bundle; adapters must not log
// it unredacted.
type ChargeRequest struct {
	TransactionID string
	ProcessorID   string
	Amount        float64
	Currency      string
	CustomerName  string
	CustomerEmail string
	Settings      map[string]string
	SuccessURL    string
	CancelURL     string
}

type ChargeResult struct {
	Reference   string
	RedirectURL string
}

// Adapter is the capability a processor integration implements. Adding a
// processor means registering another Adapter, never touching executor
// control flow.
type Adapter interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

func (r *Registry) Register(processorID string, a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[processorID] = a
}

func (r *Registry) Adapter(processorID string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[processorID]
	return a, ok
}
