package checkout

import (
	"context"
	"errors"

	"storefront/kit/gateway"
)

// Classify maps adapter faults into the outcome taxonomy. Anything
// unrecognized degrades to processing_failed; raw errors never reach the
// caller.
func Classify(err error) string {
	switch {
	case errors.Is(err, gateway.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return ReasonNetworkTimeout
	case errors.Is(err, gateway.ErrDeclined):
		return ReasonCardDeclined
	case errors.Is(err, gateway.ErrInsufficientFunds):
		return ReasonInsufficientFunds
	case errors.Is(err, gateway.ErrInvalidDetails):
		return ReasonInvalidDetails
	case errors.Is(err, gateway.ErrUnsupported):
		return ReasonUnsupportedMethod
	case errors.Is(err, gateway.ErrLimitExceeded):
		return ReasonLimitExceeded
	case errors.Is(err, gateway.ErrUnavailable):
		return ReasonProviderUnavailable
	default:
		return ReasonProcessingFailed
	}
}
