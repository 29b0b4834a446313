package service

import (
	"fmt"
	"time"

	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/models"

	"github.com/shopspring/decimal"
)

// NormalizedLine is a cart line resolved against current catalog state.
// Promotion is nil when the line carries none.
type NormalizedLine struct {
	CartItem      models.CartItem
	Product       models.Product
	Brand         models.Brand
	Promotion     *models.Promotion
	NominalAmount decimal.Decimal
}

// allowedChannels expands an ordering channel into the display channels
// it may sell from. The catch-all channel sees everything.
func allowedChannels(channel string) []string {
	if channel == constants.ChannelAll {
		return []string{
			constants.ChannelAll,
			constants.ChannelWebsite,
			constants.ChannelWeb,
			constants.ChannelMobile,
			constants.ChannelApp,
			constants.ChannelGame,
		}
	}
	return []string{constants.ChannelAll, channel}
}

func channelAllowed(displayChannel, orderChannel string) bool {
	for _, allowed := range allowedChannels(orderChannel) {
		if displayChannel == allowed {
			return true
		}
	}
	return false
}

// preliminaryCartTotal is the raw cart value the coupon validator
// judges minimum order thresholds against: unit price times quantity,
// summed over the lines whose product still resolves, before any
// per-line validation.
func preliminaryCartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil || item.Quantity <= 0 {
			continue
		}
		total = total.Add(item.Product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// normalizeLines verifies each fetched cart line is sellable right now:
// product and brand live and visible on the ordering channel, stock
// covers the quantity, and any attached promotion is valid and under
// its usage quotas. Lines arrive newest first, the order the discount
// allocator expects.
func (s *OrderService) normalizeLines(userID uint, items []models.CartItem, cartItemIDs []uint, channel string) ([]NormalizedLine, error) {
	if len(items) != len(cartItemIDs) {
		return nil, rejectStock("One or more products in your cart are out of stock.")
	}

	now := time.Now()
	lines := make([]NormalizedLine, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrQuantityInvalid
		}

		product := item.Product
		if product == nil || product.Brand == nil {
			return nil, rejectStock("One or more products in your cart are out of stock.")
		}
		brand := product.Brand

		if !product.IsActive || !brand.IsActive ||
			product.AvailableQty < item.Quantity ||
			(product.ExpiryDate != nil && now.After(*product.ExpiryDate)) ||
			!channelAllowed(product.DisplayChannel, channel) ||
			!channelAllowed(brand.DisplayChannel, channel) {
			return nil, rejectStock("One or more products in your cart are out of stock.")
		}

		var promotion *models.Promotion
		if item.PromotionID != nil {
			promotion = item.Promotion
			if promotion == nil || !promotionApplies(promotion, product.ID, now) {
				return nil, rejectPromotion("Promotion is not valid.")
			}
			if err := s.checkPromotionQuota(promotion, product, userID); err != nil {
				return nil, err
			}
		}

		lines = append(lines, NormalizedLine{
			CartItem:      item,
			Product:       *product,
			Brand:         *brand,
			Promotion:     promotion,
			NominalAmount: product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2),
		})
	}
	return lines, nil
}

func promotionApplies(promotion *models.Promotion, productID uint, now time.Time) bool {
	if !promotion.IsActive || promotion.ProductID != productID {
		return false
	}
	if promotion.StartsAt != nil && now.Before(*promotion.StartsAt) {
		return false
	}
	if promotion.EndsAt != nil && now.After(*promotion.EndsAt) {
		return false
	}
	return true
}

// checkPromotionQuota enforces the promotion's global and per-user
// usage caps against the user's whole cart quantity for the product,
// not just the lines being checked out.
func (s *OrderService) checkPromotionQuota(promotion *models.Promotion, product *models.Product, userID uint) error {
	cartQty, err := s.cartRepo.SumQuantityByProduct(userID, product.ID)
	if err != nil {
		return err
	}

	if promotion.UsageLimit > 0 {
		totalUsage, err := s.promotionRepo.CountUsage(promotion.ID)
		if err != nil {
			return err
		}
		if int64(promotion.UsageLimit) < totalUsage+int64(cartQty) {
			remaining := int64(promotion.UsageLimit) - totalUsage
			if remaining > 0 {
				return rejectPromotionQuota(fmt.Sprintf(
					"Only %d quantity is available for the promotion of %s. Please remove %d quantity from the cart.",
					remaining, product.Name, int64(cartQty)-remaining))
			}
			return rejectPromotionQuota(fmt.Sprintf(
				"The promotion is no more available for %s. Please delete the item from the cart.",
				product.Name))
		}
	}

	if promotion.PerUserLimit > 0 {
		userUsage, err := s.promotionRepo.CountUsageByUser(promotion.ID, userID)
		if err != nil {
			return err
		}
		if int64(promotion.PerUserLimit) < userUsage+int64(cartQty) {
			return rejectPromotionQuota(fmt.Sprintf(
				"You can buy / redeem a maximum of %d %s using this PROMOCODE. Please remove the excess items from your cart.",
				promotion.PerUserLimit, product.Name))
		}
	}
	return nil
}
