package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCategory identifies what kind of offering a service is.
type ServiceCategory string

const (
	CategoryLessons ServiceCategory = "lessons"
	CategoryRentals ServiceCategory = "rentals"
	CategoryStorage ServiceCategory = "storage"
)

// TierScope selects which sibling orders are aggregated together when a
// lesson service uses package pricing.
type TierScope string

const (
	// ScopeServiceOnly aggregates the customer's orders for this service only.
	ScopeServiceOnly TierScope = "service_only"
	// ScopeOrderGroup aggregates lesson orders sharing the order's group.
	ScopeOrderGroup TierScope = "order_group"
	// ScopeCustomerAll aggregates every lesson order of the customer.
	ScopeCustomerAll TierScope = "customer_all"
)

// Service represents a sellable offering (a lesson type, a rental item class
// or a storage slot).
type Service struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Category  ServiceCategory `json:"category" db:"category"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// LessonConfig holds the lesson-specific pricing configuration of a service.
type LessonConfig struct {
	ServiceID              uuid.UUID `json:"serviceId" db:"service_id"`
	RequiresPackagePricing bool      `json:"requiresPackagePricing" db:"requires_package_pricing"`
	TierScope              TierScope `json:"tierScope" db:"tier_scope"`
	BasePricePerHour       float64   `json:"basePricePerHour" db:"base_price_per_hour"`
	DefaultDurationHours   float64   `json:"defaultDurationHours" db:"default_duration_hours"`
}

// RentalConfig holds per-unit rates for rental services. A nil rate means the
// service is not billed at that unit.
type RentalConfig struct {
	ServiceID  uuid.UUID `json:"serviceId" db:"service_id"`
	HourlyRate *float64  `json:"hourlyRate,omitempty" db:"hourly_rate"`
	DailyRate  *float64  `json:"dailyRate,omitempty" db:"daily_rate"`
	WeeklyRate *float64  `json:"weeklyRate,omitempty" db:"weekly_rate"`
}

// StorageConfig holds per-unit rates for storage services.
type StorageConfig struct {
	ServiceID   uuid.UUID `json:"serviceId" db:"service_id"`
	DailyRate   *float64  `json:"dailyRate,omitempty" db:"daily_rate"`
	WeeklyRate  *float64  `json:"weeklyRate,omitempty" db:"weekly_rate"`
	MonthlyRate *float64  `json:"monthlyRate,omitempty" db:"monthly_rate"`
}

// PricingTier is a priced interval of cumulative hours. The interval is
// half-open: FromHours is inclusive, ToHours exclusive. A nil ToHours means
// the tier is unbounded above.
type PricingTier struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ServiceID    uuid.UUID `json:"serviceId" db:"service_id"`
	FromHours    float64   `json:"fromHours" db:"from_hours"`
	ToHours      *float64  `json:"toHours,omitempty" db:"to_hours"`
	PricePerHour float64   `json:"pricePerHour" db:"price_per_hour"`
}
