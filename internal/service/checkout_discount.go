package service

import (
	"github.com/dealbees/voucher-api/internal/constants"

	"github.com/shopspring/decimal"
)

// AllocatedLine is a normalized line with its discount shares settled.
// AmountDue is what the line still owes in cash.
type AllocatedLine struct {
	NormalizedLine
	CouponDiscount    decimal.Decimal
	PromotionDiscount decimal.Decimal
	AmountDue         decimal.Decimal
}

// allocationTotals aggregates the settled lines for the order header.
type allocationTotals struct {
	NominalTotal   decimal.Decimal
	CouponTotal    decimal.Decimal
	PromotionTotal decimal.Decimal
	AmountDue      decimal.Decimal
}

// allocateDiscounts settles both discount sources over the lines.
//
// The coupon budget drains greedily in line order: each line takes
// min(remaining budget, line amount) until the budget is gone. The
// promotion discount is computed per line afterwards, each kind off its
// own base: percent_off takes its cut of the post-coupon cash, combo
// and absolute_off work off the nominal amount. A line's promotion
// discount is clamped so it never owes negative cash.
func allocateDiscounts(lines []NormalizedLine, couponBudget decimal.Decimal) ([]AllocatedLine, allocationTotals) {
	allocated := make([]AllocatedLine, 0, len(lines))
	totals := allocationTotals{
		NominalTotal:   decimal.Zero,
		CouponTotal:    decimal.Zero,
		PromotionTotal: decimal.Zero,
		AmountDue:      decimal.Zero,
	}

	remaining := couponBudget
	for _, line := range lines {
		couponShare := decimal.Zero
		if remaining.GreaterThan(decimal.Zero) {
			couponShare = decimal.Min(remaining, line.NominalAmount)
			remaining = remaining.Sub(couponShare)
		}
		afterCoupon := line.NominalAmount.Sub(couponShare)

		promotionShare := promotionDiscount(line, afterCoupon)
		if promotionShare.GreaterThan(afterCoupon) {
			promotionShare = afterCoupon
		}

		due := afterCoupon.Sub(promotionShare).Round(2)
		allocated = append(allocated, AllocatedLine{
			NormalizedLine:    line,
			CouponDiscount:    couponShare.Round(2),
			PromotionDiscount: promotionShare.Round(2),
			AmountDue:         due,
		})

		totals.NominalTotal = totals.NominalTotal.Add(line.NominalAmount).Round(2)
		totals.CouponTotal = totals.CouponTotal.Add(couponShare).Round(2)
		totals.PromotionTotal = totals.PromotionTotal.Add(promotionShare).Round(2)
		totals.AmountDue = totals.AmountDue.Add(due).Round(2)
	}

	return allocated, totals
}

func promotionDiscount(line NormalizedLine, afterCoupon decimal.Decimal) decimal.Decimal {
	if line.Promotion == nil {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	switch line.Promotion.OfferKind {
	case constants.OfferKindPercentOff:
		return afterCoupon.Mul(line.Promotion.Value.Decimal).Div(hundred).Round(2)
	case constants.OfferKindCombo:
		perUnit := line.Product.Price.Decimal.Mul(line.Promotion.Value.Decimal).Div(hundred)
		return perUnit.Mul(decimal.NewFromInt(int64(line.CartItem.Quantity))).Round(2)
	case constants.OfferKindAbsoluteOff:
		return line.Promotion.Value.Decimal.Round(2)
	}
	return decimal.Zero
}
