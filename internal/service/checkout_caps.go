package service

import (
	"fmt"
	"time"

	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/models"

	"github.com/shopspring/decimal"
)

// brandSpend accumulates this order's nominal value per brand.
type brandSpend struct {
	Brand  models.Brand
	Amount decimal.Decimal
}

// capStatuses are the order statuses whose nominal value counts toward
// monthly spend caps.
var capStatuses = []string{
	constants.OrderStatusInitiated,
	constants.OrderStatusVerified,
	constants.OrderStatusCompleted,
}

// enforceBrandCaps checks per-brand monthly spend ceilings before the
// order is persisted. Two guards apply: brands with a configured
// monthly cap, and the high-value brand from config which is also
// capped per order. This order contributes its cart lines only, not
// its derived bonus lines; historical spend counts every persisted
// line, bonus included.
func (s *OrderService) enforceBrandCaps(userID uint, lines []AllocatedLine) error {
	spends := map[uint]*brandSpend{}
	order := make([]uint, 0, len(lines))
	for _, line := range lines {
		entry, ok := spends[line.Brand.ID]
		if !ok {
			entry = &brandSpend{Brand: line.Brand, Amount: decimal.Zero}
			spends[line.Brand.ID] = entry
			order = append(order, line.Brand.ID)
		}
		entry.Amount = entry.Amount.Add(line.NominalAmount)
	}

	monthStart := monthStart(time.Now())
	for _, brandID := range order {
		entry := spends[brandID]
		brand := entry.Brand

		if brand.MonthlyCapEnabled && brand.MonthlyCapAmount.Decimal.GreaterThan(decimal.Zero) {
			history, err := s.orderRepo.MonthlyBrandSpend(userID, brand.ID, monthStart, capStatuses)
			if err != nil {
				return err
			}
			if history.Decimal.Add(entry.Amount).GreaterThan(brand.MonthlyCapAmount.Decimal) {
				return rejectBrandCap(capMessage(brand.MonthlyCapAmount.Decimal.String(), brand.Name))
			}
		}

		if brand.ID == s.orderCfg.HighValueBrandID {
			orderCap := decimal.NewFromInt(s.orderCfg.HighValueOrderCap)
			if entry.Amount.GreaterThan(orderCap) {
				return rejectBrandCap(capMessage(orderCap.String(), brand.Name))
			}
			monthCap := decimal.NewFromInt(s.orderCfg.HighValueMonthCap)
			history, err := s.orderRepo.MonthlyBrandSpend(userID, brand.ID, monthStart, capStatuses)
			if err != nil {
				return err
			}
			if history.Decimal.Add(entry.Amount).GreaterThan(monthCap) {
				return rejectBrandCap(capMessage(monthCap.String(), brand.Name))
			}
		}
	}
	return nil
}

func capMessage(amount, brandName string) string {
	return fmt.Sprintf("Sorry, You cannot place order amount more than INR %s worth of %s Gift Vouchers in this month.", amount, brandName)
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
