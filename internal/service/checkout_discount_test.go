package service

import (
	"testing"

	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/models"

	"github.com/shopspring/decimal"
)

func plainLine(price int64, qty int) NormalizedLine {
	return NormalizedLine{
		CartItem:      models.CartItem{Quantity: qty},
		Product:       models.Product{Price: models.NewMoneyFromInt(price)},
		NominalAmount: decimal.NewFromInt(price).Mul(decimal.NewFromInt(int64(qty))),
	}
}

func promoLine(price int64, qty int, kind string, value int64) NormalizedLine {
	line := plainLine(price, qty)
	line.Promotion = &models.Promotion{
		OfferKind: kind,
		Value:     models.NewMoneyFromInt(value),
		IsActive:  true,
	}
	return line
}

func TestAllocateDiscountsDrainsCouponInLineOrder(t *testing.T) {
	lines := []NormalizedLine{
		plainLine(500, 1),
		plainLine(300, 1),
		plainLine(200, 1),
	}

	allocated, totals := allocateDiscounts(lines, decimal.NewFromInt(600))

	wantShares := []int64{500, 100, 0}
	for i, want := range wantShares {
		if !allocated[i].CouponDiscount.Equal(decimal.NewFromInt(want)) {
			t.Fatalf("line %d coupon share want %d got %s", i, want, allocated[i].CouponDiscount)
		}
	}
	if !totals.CouponTotal.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("coupon total want 600 got %s", totals.CouponTotal)
	}
	if !totals.AmountDue.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("amount due want 400 got %s", totals.AmountDue)
	}
	if !totals.NominalTotal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("nominal total want 1000 got %s", totals.NominalTotal)
	}
}

func TestAllocateDiscountsCouponBudgetBeyondOrder(t *testing.T) {
	lines := []NormalizedLine{plainLine(100, 2)}

	allocated, totals := allocateDiscounts(lines, decimal.NewFromInt(500))

	if !allocated[0].CouponDiscount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("coupon share want 200 got %s", allocated[0].CouponDiscount)
	}
	if !totals.AmountDue.IsZero() {
		t.Fatalf("amount due want 0 got %s", totals.AmountDue)
	}
}

func TestAllocateDiscountsPercentOffUsesPostCouponBase(t *testing.T) {
	// 1000 nominal, 400 coupon, then 10 percent off the remaining 600.
	lines := []NormalizedLine{promoLine(1000, 1, constants.OfferKindPercentOff, 10)}

	allocated, totals := allocateDiscounts(lines, decimal.NewFromInt(400))

	if !allocated[0].PromotionDiscount.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("promotion share want 60 got %s", allocated[0].PromotionDiscount)
	}
	if !totals.AmountDue.Equal(decimal.NewFromInt(540)) {
		t.Fatalf("amount due want 540 got %s", totals.AmountDue)
	}
}

func TestAllocateDiscountsComboUsesNominalBase(t *testing.T) {
	// Combo keeps its base at unit price x quantity even under a coupon.
	lines := []NormalizedLine{promoLine(1000, 2, constants.OfferKindCombo, 5)}

	allocated, totals := allocateDiscounts(lines, decimal.NewFromInt(400))

	if !allocated[0].PromotionDiscount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("promotion share want 100 got %s", allocated[0].PromotionDiscount)
	}
	if !totals.AmountDue.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("amount due want 1500 got %s", totals.AmountDue)
	}
}

func TestAllocateDiscountsClampsPromotionToRemainingCash(t *testing.T) {
	// Flat 300 off a 200 line already halved by the coupon.
	lines := []NormalizedLine{promoLine(200, 1, constants.OfferKindAbsoluteOff, 300)}

	allocated, totals := allocateDiscounts(lines, decimal.NewFromInt(100))

	if !allocated[0].PromotionDiscount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("promotion share should clamp to 100, got %s", allocated[0].PromotionDiscount)
	}
	if !allocated[0].AmountDue.IsZero() {
		t.Fatalf("amount due want 0 got %s", allocated[0].AmountDue)
	}
	if totals.AmountDue.IsNegative() {
		t.Fatalf("amount due must never go negative, got %s", totals.AmountDue)
	}
}

func TestAllowedChannels(t *testing.T) {
	if !channelAllowed(constants.ChannelWebsite, constants.ChannelAll) {
		t.Fatalf("catch-all order channel should see website products")
	}
	if !channelAllowed(constants.ChannelAll, constants.ChannelMobile) {
		t.Fatalf("catch-all display channel should sell on mobile")
	}
	if channelAllowed(constants.ChannelGame, constants.ChannelMobile) {
		t.Fatalf("game-only product should not sell on mobile")
	}
}
