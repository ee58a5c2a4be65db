package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeServiceConfigMissing = "SERVICE_CONFIG_MISSING"
	ErrCodeOrderDetailMissing   = "ORDER_DETAIL_MISSING"
	ErrCodeOrderTypeUnknown     = "ORDER_TYPE_UNKNOWN"
	ErrCodeRentalWindowMissing  = "RENTAL_WINDOW_MISSING"
	ErrCodeStorageWindowMissing = "STORAGE_WINDOW_MISSING"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside the human-readable message so
// handlers can map pricing failures to response statuses without string
// matching.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrServiceConfigNotFound = NewDomainError(ErrCodeServiceConfigMissing, "Service has no pricing configuration for this order type")
	ErrOrderDetailNotFound   = NewDomainError(ErrCodeOrderDetailMissing, "Order has no detail record of the expected type")
	ErrOrderTypeUnknown      = NewDomainError(ErrCodeOrderTypeUnknown, "Order has no lesson, rental or storage detail record")
	ErrOrderNotFound         = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrRentalWindowMissing   = NewDomainError(ErrCodeRentalWindowMissing, "Rental order needs both a start and an end time")
	ErrStorageWindowMissing  = NewDomainError(ErrCodeStorageWindowMissing, "Storage order needs both a start and an end time")
)
