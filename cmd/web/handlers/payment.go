package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront/cmd/web/validator"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/kit/idempotency"
	"storefront/kit/observability"
)

type CheckoutContract interface {
	ProcessPayment(ctx context.Context, proc catalog.Processor, req checkout.PaymentRequest, billing checkout.BillingInfo) checkout.PaymentOutcome
}

type IdempotencyContract interface {
	Begin(ctx context.Context, key string) (*idempotency.Entry, error)
	Complete(ctx context.Context, key string, statusCode int, response []byte) error
	Abandon(ctx context.Context, key string) error
}

type Payment struct {
	json     *validator.JSON
	checkout CheckoutContract
	idem     IdempotencyContract
	metrics  *observability.Metrics
}

func NewPayment(jsonV *validator.JSON, checkoutSvc CheckoutContract, idem IdempotencyContract, metrics *observability.Metrics) *Payment {
	return &Payment{json: jsonV, checkout: checkoutSvc, idem: idem, metrics: metrics}
}

type billingReq struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
	TaxID        string `json:"tax_id"`
	Country      string `json:"country"`
	City         string `json:"city"`
	Address      string `json:"address"`
}

type createPaymentReq struct {
	ProcessorID   string     `json:"processor_id"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	TierID        string     `json:"tier_id"`
	TierName      string     `json:"tier_name"`
	BillingPeriod string     `json:"billing_period"`
	PayerCategory string     `json:"payer_category"`
	Billing       billingReq `json:"billing"`
}

// Create executes one checkout attempt. The response status is 200 for
// every processed attempt; success or failure lives in the outcome body.
func (h *Payment) Create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentReq
	if err := h.json.Decode(w, r, &req); err != nil {
		log.Printf("layer=handler component=payment method=Create err=%v", err)
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	proc, ok := catalog.Find(req.ProcessorID)
	if !ok {
		log.Printf("layer=handler component=payment method=Create processor=%s err=unknown processor", req.ProcessorID)
		http.Error(w, "unknown processor", http.StatusNotFound)
		return
	}

	key := r.Header.Get("Idempotency-Key")
	if key != "" && h.idem != nil {
		entry, err := h.idem.Begin(r.Context(), key)
		if errors.Is(err, idempotency.ErrInProgress) {
			http.Error(w, "request in progress", http.StatusConflict)
			return
		}
		if err != nil {
			log.Printf("layer=handler component=payment method=Create idempotency_key=%s err=%v", key, err)
			http.Error(w, "try again later", http.StatusServiceUnavailable)
			return
		}
		if entry != nil {
			if h.metrics != nil {
				h.metrics.IdempotentHits.Add(1)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(entry.StatusCode)
			_, _ = w.Write(entry.Response)
			return
		}
	}

	outcome := h.checkout.ProcessPayment(r.Context(), proc, checkout.PaymentRequest{
		Amount:        req.Amount,
		Currency:      req.Currency,
		TierID:        req.TierID,
		TierName:      req.TierName,
		BillingPeriod: checkout.BillingPeriod(req.BillingPeriod),
		PayerCategory: checkout.PayerCategory(req.PayerCategory),
	}, checkout.BillingInfo{
		FullName:     req.Billing.FullName,
		Email:        req.Billing.Email,
		Phone:        req.Billing.Phone,
		Organization: req.Billing.Organization,
		TaxID:        req.Billing.TaxID,
		Country:      req.Billing.Country,
		City:         req.Billing.City,
		Address:      req.Billing.Address,
	})

	body, err := json.Marshal(outcome)
	if err != nil {
		log.Printf("layer=handler component=payment method=Create processor=%s err=%v", proc.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if key != "" && h.idem != nil {
		if err := h.idem.Complete(r.Context(), key, http.StatusOK, body); err != nil {
			log.Printf("layer=handler component=payment method=Create idempotency_key=%s err=%v", key, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
