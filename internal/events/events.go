package events

import "time"

type ChargeRequested struct {
	TransactionID string    `json:"transaction_id"`
	ProcessorID   string    `json:"processor_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TierID        string    `json:"tier_id"`
	At            time.Time `json:"at"`
}

func (ChargeRequested) Name() string { return "charge.requested" }

func (e ChargeRequested) PartitionKey() string { return e.TransactionID }

type ChargeSucceeded struct {
	TransactionID string    `json:"transaction_id"`
	ProcessorID   string    `json:"processor_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TierID        string    `json:"tier_id"`
	Simulated     bool      `json:"simulated"`
	FreeTier      bool      `json:"free_tier"`
	At            time.Time `json:"at"`
}

func (ChargeSucceeded) Name() string { return "charge.succeeded" }

func (e ChargeSucceeded) PartitionKey() string { return e.TransactionID }

type ChargeFailed struct {
	TransactionID string    `json:"transaction_id"`
	ProcessorID   string    `json:"processor_id"`
	Reason        string    `json:"reason"`
	Simulated     bool      `json:"simulated"`
	At            time.Time `json:"at"`
}

func (ChargeFailed) Name() string { return "charge.failed" }

func (e ChargeFailed) PartitionKey() string { return e.TransactionID }
