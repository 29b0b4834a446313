package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newOrderRepoTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestMonthlyBrandSpendCountsBonusLines(t *testing.T) {
	db := newOrderRepoTestDB(t, "monthly_spend_bonus")
	repo := NewOrderRepository(db)

	order := models.Order{GUID: "DBS-10-10", UserID: 7, Status: constants.OrderStatusVerified}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	lines := []models.OrderLine{
		{
			OrderID:   order.ID,
			GUID:      "DBS-10-10-1",
			OrderGUID: "DBS-10-10",
			BrandID:   3,
			ProductID: 1,
			UnitPrice: models.NewMoneyFromInt(500),
			Quantity:  2,
		},
		{
			OrderID:   order.ID,
			GUID:      "DBS-10-10-2",
			OrderGUID: "DBS-10-10",
			BrandID:   3,
			ProductID: 2,
			UnitPrice: models.NewMoneyFromInt(100),
			Quantity:  1,
			Bonus:     true,
		},
	}
	if err := repo.CreateLines(lines); err != nil {
		t.Fatalf("create lines failed: %v", err)
	}

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	spend, err := repo.MonthlyBrandSpend(7, 3, monthStart, []string{constants.OrderStatusVerified})
	if err != nil {
		t.Fatalf("monthly brand spend failed: %v", err)
	}
	// 500 x 2 plus the bonus line's 100 x 1.
	if !spend.Decimal.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("spend want 1100 got %s", spend.Decimal)
	}
}

func TestMonthlyBrandSpendFiltersUserBrandAndStatus(t *testing.T) {
	db := newOrderRepoTestDB(t, "monthly_spend_filters")
	repo := NewOrderRepository(db)

	orders := []models.Order{
		{GUID: "DBS-20-20", UserID: 7, Status: constants.OrderStatusVerified},
		{GUID: "DBS-21-21", UserID: 7, Status: constants.OrderStatusFailed},
		{GUID: "DBS-22-22", UserID: 8, Status: constants.OrderStatusVerified},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}
	lines := []models.OrderLine{
		{OrderID: orders[0].ID, GUID: "DBS-20-20-1", OrderGUID: "DBS-20-20", BrandID: 3, ProductID: 1, UnitPrice: models.NewMoneyFromInt(400), Quantity: 1},
		{OrderID: orders[0].ID, GUID: "DBS-20-20-2", OrderGUID: "DBS-20-20", BrandID: 9, ProductID: 2, UnitPrice: models.NewMoneyFromInt(400), Quantity: 1},
		{OrderID: orders[1].ID, GUID: "DBS-21-21-1", OrderGUID: "DBS-21-21", BrandID: 3, ProductID: 1, UnitPrice: models.NewMoneyFromInt(400), Quantity: 1},
		{OrderID: orders[2].ID, GUID: "DBS-22-22-1", OrderGUID: "DBS-22-22", BrandID: 3, ProductID: 1, UnitPrice: models.NewMoneyFromInt(400), Quantity: 1},
	}
	if err := repo.CreateLines(lines); err != nil {
		t.Fatalf("create lines failed: %v", err)
	}

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	spend, err := repo.MonthlyBrandSpend(7, 3, monthStart, []string{
		constants.OrderStatusInitiated,
		constants.OrderStatusVerified,
		constants.OrderStatusCompleted,
	})
	if err != nil {
		t.Fatalf("monthly brand spend failed: %v", err)
	}
	// Only user 7's verified order against brand 3 counts.
	if !spend.Decimal.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("spend want 400 got %s", spend.Decimal)
	}
}
