package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto the
// response envelope.
var (
	ErrOrderCreateFailed      = errors.New("order could not be created")
	ErrInvalidOrderInput      = errors.New("invalid order input")
	ErrOrderNotFound          = errors.New("order not found")
	ErrCartItemNotFound       = errors.New("cart item not found")
	ErrProductNotAvailable    = errors.New("product not available")
	ErrQuantityInvalid        = errors.New("quantity invalid")
	ErrCouponRejected         = errors.New("coupon rejected")
	ErrStockUnavailable       = errors.New("stock unavailable")
	ErrPromotionInvalid       = errors.New("promotion invalid")
	ErrPromotionQuotaExceeded = errors.New("promotion quota exceeded")
	ErrBrandCapExceeded       = errors.New("brand cap exceeded")
	ErrQueueUnavailable       = errors.New("queue unavailable")
)

// ValidationError carries the exact message shown to the caller. It
// unwraps to one of the category sentinels above so callers can still
// branch with errors.Is.
type ValidationError struct {
	Category error
	Message  string
}

// Error returns the caller-visible message.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes the category sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Category
}

func rejectCoupon(message string) error {
	return &ValidationError{Category: ErrCouponRejected, Message: message}
}

func rejectStock(message string) error {
	return &ValidationError{Category: ErrStockUnavailable, Message: message}
}

func rejectPromotion(message string) error {
	return &ValidationError{Category: ErrPromotionInvalid, Message: message}
}

func rejectPromotionQuota(message string) error {
	return &ValidationError{Category: ErrPromotionQuotaExceeded, Message: message}
}

func rejectBrandCap(message string) error {
	return &ValidationError{Category: ErrBrandCapExceeded, Message: message}
}
