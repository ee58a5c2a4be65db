package model

import (
	"github.com/google/uuid"
)

// PriceResult is the outcome of one successful price calculation. Tier is nil
// on flat-rate, rental and storage calculations.
type PriceResult struct {
	Price        float64      `json:"price"`
	PricePerHour float64      `json:"pricePerHour"`
	TotalHours   float64      `json:"totalHours"`
	Tier         *PricingTier `json:"tier,omitempty"`
}

// Outcome records what happened to a single order inside a batch or cascade
// run. Err is empty on success.
type Outcome struct {
	OrderID uuid.UUID `json:"orderId"`
	Err     string    `json:"error,omitempty"`
}

// BatchResult summarises a batch recalculation. Processed counts successful
// orders only; failed orders appear in Outcomes with their message.
type BatchResult struct {
	Processed int       `json:"processed"`
	Outcomes  []Outcome `json:"outcomes"`
}
