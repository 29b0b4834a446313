package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/models"
	"github.com/dealbees/voucher-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newCartTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.Product{},
		&models.Promotion{},
		&models.Coupon{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewPromotionRepository(db),
		repository.NewCouponRepository(db),
	)
}

func seedCatalog(t *testing.T, db *gorm.DB, qty int) (models.Brand, models.Product) {
	t.Helper()
	brand := models.Brand{Name: "Lifestyle", DisplayChannel: constants.ChannelAll, IsActive: true}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	product := models.Product{
		BrandID:        brand.ID,
		Name:           "Lifestyle Gift Voucher",
		Price:          models.NewMoneyFromInt(1000),
		AvailableQty:   qty,
		DisplayChannel: constants.ChannelAll,
		IsActive:       true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return brand, product
}

func TestUpsertItemCreatesAndRefreshes(t *testing.T) {
	db := newCartTestDB(t, "cart_upsert")
	_, product := seedCatalog(t, db, 10)
	svc := newCartService(db)

	item, err := svc.UpsertItem(UpsertCartItemInput{
		UserID:        1,
		ProductID:     product.ID,
		Quantity:      2,
		RecipientName: "Ravi",
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if item.ID == 0 {
		t.Fatalf("expected a persisted cart line")
	}

	again, err := svc.UpsertItem(UpsertCartItemInput{
		UserID:    1,
		ProductID: product.ID,
		Quantity:  5,
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if again.ID != item.ID {
		t.Fatalf("same product should refresh the existing line, got id %d vs %d", again.ID, item.ID)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("cart line count want 1 got %d", count)
	}
	var stored models.CartItem
	if err := db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if stored.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", stored.Quantity)
	}
}

func TestUpsertItemRejectsBadQuantityAndStock(t *testing.T) {
	db := newCartTestDB(t, "cart_qty")
	_, product := seedCatalog(t, db, 3)
	svc := newCartService(db)

	if _, err := svc.UpsertItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("zero quantity want ErrQuantityInvalid got: %v", err)
	}
	if _, err := svc.UpsertItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 4}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("over stock want ErrProductNotAvailable got: %v", err)
	}
	if _, err := svc.UpsertItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID + 99, Quantity: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("unknown product want ErrProductNotAvailable got: %v", err)
	}
}

func TestUpsertItemRejectsInactiveOrExpiredProduct(t *testing.T) {
	db := newCartTestDB(t, "cart_inactive")
	_, product := seedCatalog(t, db, 10)
	svc := newCartService(db)

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.UpsertItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("inactive product want ErrProductNotAvailable got: %v", err)
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"is_active":   true,
		"expiry_date": yesterday,
	}).Error; err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	if _, err := svc.UpsertItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expired product want ErrProductNotAvailable got: %v", err)
	}
}

func TestUpsertItemRejectsForeignPromotion(t *testing.T) {
	db := newCartTestDB(t, "cart_promo")
	brand, product := seedCatalog(t, db, 10)
	other := models.Product{
		BrandID:        brand.ID,
		Name:           "Other Voucher",
		Price:          models.NewMoneyFromInt(500),
		AvailableQty:   10,
		DisplayChannel: constants.ChannelAll,
		IsActive:       true,
	}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	promotion := models.Promotion{
		Code:         "OTHER10",
		Name:         "other",
		OfferKind:    constants.OfferKindPercentOff,
		Value:        models.NewMoneyFromInt(10),
		ProductID:    other.ID,
		PerUserLimit: 10,
		IsActive:     true,
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	svc := newCartService(db)

	_, err := svc.UpsertItem(UpsertCartItemInput{
		UserID:      1,
		ProductID:   product.ID,
		Quantity:    1,
		PromotionID: &promotion.ID,
	})
	if !errors.Is(err, ErrPromotionInvalid) {
		t.Fatalf("promotion scoped to another product want ErrPromotionInvalid got: %v", err)
	}
	if err.Error() != "Promotion is not valid." {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	_, err = svc.UpsertItem(UpsertCartItemInput{
		UserID:      1,
		ProductID:   other.ID,
		Quantity:    1,
		PromotionID: &promotion.ID,
	})
	if err != nil {
		t.Fatalf("matching promotion should attach: %v", err)
	}
}

func TestUpsertItemAttachesCoupon(t *testing.T) {
	db := newCartTestDB(t, "cart_coupon")
	_, product := seedCatalog(t, db, 10)
	coupon := models.Coupon{Code: "SAVE100", Amount: models.NewMoneyFromInt(100), IsActive: true}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	svc := newCartService(db)

	item, err := svc.UpsertItem(UpsertCartItemInput{
		UserID:     1,
		ProductID:  product.ID,
		Quantity:   1,
		CouponCode: "SAVE100",
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	var stored models.CartItem
	if err := db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if stored.CouponID == nil || *stored.CouponID != coupon.ID {
		t.Fatalf("cart line should reference the coupon, got %+v", stored.CouponID)
	}

	_, err = svc.UpsertItem(UpsertCartItemInput{
		UserID:     1,
		ProductID:  product.ID,
		Quantity:   1,
		CouponCode: "GHOST",
	})
	if !errors.Is(err, ErrCouponRejected) || err.Error() != "Coupon not found" {
		t.Fatalf("unknown coupon want rejection, got: %v", err)
	}

	if err := db.Model(&models.Coupon{}).Where("id = ?", coupon.ID).
		Update("is_used", true).Error; err != nil {
		t.Fatalf("mark used failed: %v", err)
	}
	_, err = svc.UpsertItem(UpsertCartItemInput{
		UserID:     1,
		ProductID:  product.ID,
		Quantity:   1,
		CouponCode: "SAVE100",
	})
	if !errors.Is(err, ErrCouponRejected) || err.Error() != "Coupon already used" {
		t.Fatalf("used coupon want rejection, got: %v", err)
	}
}

func TestListByUserDropsDeadProducts(t *testing.T) {
	db := newCartTestDB(t, "cart_list")
	brand, product := seedCatalog(t, db, 10)
	dead := models.Product{
		BrandID:        brand.ID,
		Name:           "Retired Voucher",
		Price:          models.NewMoneyFromInt(200),
		AvailableQty:   10,
		DisplayChannel: constants.ChannelAll,
		IsActive:       true,
	}
	if err := db.Create(&dead).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	svc := newCartService(db)

	if _, err := svc.UpsertItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if _, err := svc.UpsertItem(UpsertCartItemInput{UserID: 1, ProductID: dead.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", dead.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	details, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("list should drop dead products, want 1 got %d", len(details))
	}
	if details[0].ProductID != product.ID {
		t.Fatalf("surviving line want product %d got %d", product.ID, details[0].ProductID)
	}
	if !details[0].UnitPrice.Decimal.Equal(product.Price.Decimal) {
		t.Fatalf("unit price want %s got %s", product.Price.Decimal, details[0].UnitPrice.Decimal)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	db := newCartTestDB(t, "cart_remove")
	_, product := seedCatalog(t, db, 10)
	svc := newCartService(db)

	item, err := svc.UpsertItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := svc.RemoveItem(2, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("foreign line removal want ErrCartItemNotFound got: %v", err)
	}
	if err := svc.RemoveItem(1, item.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.RemoveItem(1, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("repeat removal want ErrCartItemNotFound got: %v", err)
	}

	if _, err := svc.UpsertItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	details, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("cart should be empty, got %d lines", len(details))
	}
}
