package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/dealbees/voucher-api/internal/logger"
	"github.com/dealbees/voucher-api/internal/models"
	"github.com/dealbees/voucher-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService validates and redeems single-use coupons.
type CouponService struct {
	couponRepo repository.CouponRepository
	cartRepo   repository.CartRepository
	orderRepo  repository.OrderRepository
}

// NewCouponService creates a coupon service.
func NewCouponService(couponRepo repository.CouponRepository, cartRepo repository.CartRepository, orderRepo repository.OrderRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		cartRepo:   cartRepo,
		orderRepo:  orderRepo,
	}
}

// Validate resolves a coupon code against the user's history and a
// preliminary order total. Checks run cheapest first so the caller gets
// the most specific rejection. Read-only; the coupon is never mutated
// here.
func (s *CouponService) Validate(code string, userID uint, preliminaryTotal decimal.Decimal, checkoutCartIDs []uint) (*models.Coupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, rejectCoupon("Coupon not found")
	}

	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, rejectCoupon("Coupon not found")
	}

	if coupon.IsUsed {
		return nil, rejectCoupon("Coupon already used")
	}

	if !coupon.IsActive {
		return nil, rejectCoupon("Coupon is inactive")
	}

	now := time.Now()
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return nil, rejectCoupon("Coupon is inactive")
	}
	if coupon.ValidTill != nil {
		// valid_till names the last valid day, compare against its end.
		endOfDay := time.Date(coupon.ValidTill.Year(), coupon.ValidTill.Month(), coupon.ValidTill.Day(),
			23, 59, 59, 0, coupon.ValidTill.Location())
		if now.After(endOfDay) {
			return nil, rejectCoupon("Coupon has expired")
		}
	}

	inCart, err := s.cartRepo.CountWithCouponForUser(coupon.ID, userID, checkoutCartIDs)
	if err != nil {
		return nil, err
	}
	if inCart > 0 {
		return nil, rejectCoupon("Coupon already exists in your cart")
	}

	userOrders, err := s.couponRepo.CountOrdersByUser(coupon.ID, userID)
	if err != nil {
		return nil, err
	}
	if coupon.PerUserLimit > 0 && int(userOrders) >= coupon.PerUserLimit {
		return nil, rejectCoupon("Coupon already used in a previous order")
	}

	if coupon.UsageLimit > 0 {
		totalOrders, err := s.couponRepo.CountOrders(coupon.ID)
		if err != nil {
			return nil, err
		}
		if int(totalOrders) >= coupon.UsageLimit {
			return nil, rejectCoupon("Coupon already used")
		}
	}

	if coupon.MinOrderValue.Decimal.GreaterThan(decimal.Zero) &&
		preliminaryTotal.LessThan(coupon.MinOrderValue.Decimal) {
		return nil, rejectCoupon(fmt.Sprintf("Minimum order value of ₹%s not met", coupon.MinOrderValue.Decimal.String()))
	}

	return coupon, nil
}

// Redeem flips the used flag for the coupon of a fully covered order.
// Keyed by order id and safe to run more than once: the latch only
// fires when the order exists, carries a coupon, and owes nothing.
func (s *CouponService) Redeem(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.CouponID == nil {
		return nil
	}
	if !order.AmountDue.Decimal.IsZero() {
		return nil
	}

	latched, err := s.couponRepo.MarkUsed(*order.CouponID)
	if err != nil {
		return err
	}
	if latched {
		logger.Infow("coupon_marked_used",
			"coupon_id", *order.CouponID,
			"order_id", order.ID,
			"order_guid", order.GUID,
		)
	}
	return nil
}
