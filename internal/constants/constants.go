package constants

// Order status constants
const (
	OrderStatusInitiated = "initiated"
	OrderStatusVerified  = "verified"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Ledger entry source constants
const (
	LedgerSourceGateway = "gateway"
	LedgerSourceCoupon  = "coupon"
)

// Ledger entry type constants
const (
	LedgerTypeDebit  = "debit"
	LedgerTypeCredit = "credit"
)

// Ledger entry status constants
const (
	LedgerStatusInitiated = "initiated"
	LedgerStatusCompleted = "completed"
)

// Promotion offer kind constants
const (
	OfferKindPercentOff  = "percent_off"
	OfferKindCombo       = "combo"
	OfferKindAbsoluteOff = "absolute_off"
)

// Display channel constants
const (
	ChannelAll     = "all"
	ChannelWebsite = "website"
	ChannelWeb     = "web"
	ChannelMobile  = "mobile"
	ChannelApp     = "app"
	ChannelGame    = "game"
)

// Queue constants
const (
	QueueDefault     = "default"
	TaskCouponRedeem = "coupon:redeem"
)

// Cache default configuration constants
const (
	RedisPrefixDefault = "db"
)

// Order GUID constants. Order GUIDs embed seconds elapsed since this
// fixed epoch plus the order row id, so they stay unique and sortable.
const (
	OrderGUIDPrefix      = "DBS"
	OrderGUIDEpochOffset = 1483452128
)

// High-value brand guard constants. Orders against this brand are
// capped per order and per calendar month.
const (
	HighValueBrandID       = 4
	HighValueOrderCap      = 10000
	HighValueMonthlyCap    = 10000
	DefaultPerUserCoupons  = 1
	DefaultPerUserPromoUse = 1
)
