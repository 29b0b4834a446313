package service

import (
	"time"

	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/models"

	"github.com/shopspring/decimal"
)

// BonusLine is an extra order line granted by a promotion. Combo
// bonuses owe cash at a discount; every other kind ships one free
// unit.
type BonusLine struct {
	Source            AllocatedLine
	Product           models.Product
	Brand             models.Brand
	Quantity          int
	PromotionDiscount decimal.Decimal
	AmountDue         decimal.Decimal
	FreeOffer         bool
}

// deriveBonusLines walks the settled lines and grants the bonus product
// of each promotion that names one. A bonus product that is not
// sellable right now is skipped without failing the order.
func (s *OrderService) deriveBonusLines(allocated []AllocatedLine, channel string) ([]BonusLine, error) {
	now := time.Now()
	var bonuses []BonusLine
	for _, line := range allocated {
		if line.Promotion == nil || line.Promotion.BonusProductID == nil {
			continue
		}

		product, err := s.productRepo.GetByID(*line.Promotion.BonusProductID)
		if err != nil {
			return nil, err
		}
		if !bonusProductAvailable(product, channel, now) {
			continue
		}

		bonus := BonusLine{
			Source:    line,
			Product:   *product,
			Brand:     *product.Brand,
			Quantity:  1,
			FreeOffer: true,
		}
		if line.Promotion.OfferKind == constants.OfferKindCombo {
			qty := decimal.NewFromInt(int64(line.CartItem.Quantity))
			nominal := product.Price.Decimal.Mul(qty)
			discount := product.Price.Decimal.
				Mul(line.Promotion.BonusDiscount.Decimal).
				Div(decimal.NewFromInt(100)).
				Mul(qty).
				Round(2)
			bonus.Quantity = line.CartItem.Quantity
			bonus.FreeOffer = false
			bonus.PromotionDiscount = discount
			bonus.AmountDue = nominal.Sub(discount).Round(2)
		}
		bonuses = append(bonuses, bonus)
	}
	return bonuses, nil
}

func bonusProductAvailable(product *models.Product, channel string, now time.Time) bool {
	if product == nil || product.Brand == nil {
		return false
	}
	if !product.IsActive || !product.Brand.IsActive || product.AvailableQty <= 0 {
		return false
	}
	if product.ExpiryDate != nil && now.After(*product.ExpiryDate) {
		return false
	}
	return channelAllowed(product.DisplayChannel, channel) &&
		channelAllowed(product.Brand.DisplayChannel, channel)
}
