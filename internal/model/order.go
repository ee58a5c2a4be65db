package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderKind is the order's variant, resolved once from whichever detail
// record exists for it.
type OrderKind string

const (
	KindLesson  OrderKind = "lesson"
	KindRental  OrderKind = "rental"
	KindStorage OrderKind = "storage"
	KindUnknown OrderKind = "unknown"
)

// Order represents a booking of one service by one customer. The Calculated*
// fields are outputs of the pricing engine and are nil until it has run.
type Order struct {
	ID                     uuid.UUID  `json:"id" db:"id"`
	CustomerID             uuid.UUID  `json:"customerId" db:"customer_id"`
	ServiceID              uuid.UUID  `json:"serviceId" db:"service_id"`
	GroupID                *uuid.UUID `json:"groupId,omitempty" db:"group_id"`
	Cancelled              bool       `json:"cancelled" db:"cancelled"`
	CalculatedPrice        *float64   `json:"calculatedPrice,omitempty" db:"calculated_price"`
	CalculatedPricePerHour *float64   `json:"calculatedPricePerHour,omitempty" db:"calculated_price_per_hour"`
	Hours                  *float64   `json:"hours,omitempty" db:"hours"`
	CalculatedAt           *time.Time `json:"calculatedAt,omitempty" db:"calculated_at"`
	CreatedAt              time.Time  `json:"createdAt" db:"created_at"`
}

// LessonDetail is the 1:1 detail record of a lesson order.
type LessonDetail struct {
	OrderID  uuid.UUID `json:"orderId" db:"order_id"`
	Starting time.Time `json:"starting" db:"starting"`
	Ending   time.Time `json:"ending" db:"ending"`
}

// RentalDetail is the 1:1 detail record of a rental order. The billing-unit
// flags record how the customer asked to be billed; the engine still needs a
// matching rate on the service before a unit applies.
type RentalDetail struct {
	OrderID  uuid.UUID  `json:"orderId" db:"order_id"`
	Starting *time.Time `json:"starting,omitempty" db:"starting"`
	Ending   *time.Time `json:"ending,omitempty" db:"ending"`
	Hourly   bool       `json:"hourly" db:"hourly"`
	Daily    bool       `json:"daily" db:"daily"`
	Weekly   bool       `json:"weekly" db:"weekly"`
}

// StorageDetail is the 1:1 detail record of a storage order.
type StorageDetail struct {
	OrderID  uuid.UUID  `json:"orderId" db:"order_id"`
	Starting *time.Time `json:"starting,omitempty" db:"starting"`
	Ending   *time.Time `json:"ending,omitempty" db:"ending"`
	Daily    bool       `json:"daily" db:"daily"`
	Weekly   bool       `json:"weekly" db:"weekly"`
	Monthly  bool       `json:"monthly" db:"monthly"`
}

// OrderGroup buckets a customer's orders for joint tier aggregation.
type OrderGroup struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CustomerID uuid.UUID `json:"customerId" db:"customer_id"`
	Name       string    `json:"name" db:"name"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// ScopedOrder is a sibling order included in a tier-aggregation scope,
// carrying just enough to sum billable hours and fan the rate back out.
type ScopedOrder struct {
	OrderID  uuid.UUID `db:"order_id"`
	Starting time.Time `db:"starting"`
	Ending   time.Time `db:"ending"`
}

// PendingOrder identifies an order still missing a calculated price.
type PendingOrder struct {
	OrderID    uuid.UUID `db:"order_id"`
	ServiceID  uuid.UUID `db:"service_id"`
	CustomerID uuid.UUID `db:"customer_id"`
}
