package main

import (
	"time"

	"github.com/dealbees/voucher-api/internal/config"
	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/logger"
	"github.com/dealbees/voucher-api/internal/models"
)

// Seeds demo data for local runs: brands (one with a monthly cap, one
// high value), a voucher denomination per brand, a promotion of each
// kind, a coupon and a buyer.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	// Brand 4 is the high-value brand the order config caps by default.
	brands := []models.Brand{
		{Name: "Croma", DisplayChannel: "all", IsActive: true},
		{Name: "Lifestyle", DisplayChannel: "website", IsActive: true},
		{Name: "BigBasket", DisplayChannel: "all", MonthlyCapEnabled: true, MonthlyCapAmount: models.NewMoneyFromInt(25000), IsActive: true},
		{Name: "Amazon", DisplayChannel: "all", IsActive: true},
	}
	for i := range brands {
		brand := &brands[i]
		var existing models.Brand
		if err := models.DB.Where("name = ?", brand.Name).First(&existing).Error; err == nil {
			brands[i] = existing
			stdLog.Printf("brand already exists: %s", brand.Name)
			continue
		}
		if err := models.DB.Create(brand).Error; err != nil {
			stdLog.Fatalf("failed to create brand %s: %v", brand.Name, err)
		}
		stdLog.Printf("created brand: %s (id=%d)", brand.Name, brand.ID)
	}

	products := []models.Product{
		{BrandID: brands[0].ID, Name: "Croma Gift Voucher 500", Price: models.NewMoneyFromInt(500), AvailableQty: 200, DisplayChannel: "all", IsActive: true, SortOrder: 1},
		{BrandID: brands[0].ID, Name: "Croma Gift Voucher 1000", Price: models.NewMoneyFromInt(1000), AvailableQty: 150, DisplayChannel: "all", IsActive: true, SortOrder: 2},
		{BrandID: brands[1].ID, Name: "Lifestyle Gift Voucher 250", Price: models.NewMoneyFromInt(250), AvailableQty: 300, DisplayChannel: "website", IsActive: true, SortOrder: 3},
		{BrandID: brands[2].ID, Name: "BigBasket Gift Voucher 1000", Price: models.NewMoneyFromInt(1000), AvailableQty: 100, DisplayChannel: "all", IsActive: true, SortOrder: 4},
		{BrandID: brands[3].ID, Name: "Amazon Gift Voucher 2000", Price: models.NewMoneyFromInt(2000), AvailableQty: 80, DisplayChannel: "all", IsActive: true, SortOrder: 5},
	}
	for i := range products {
		product := &products[i]
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err == nil {
			products[i] = existing
			stdLog.Printf("product already exists: %s", product.Name)
			continue
		}
		if err := models.DB.Create(product).Error; err != nil {
			stdLog.Fatalf("failed to create product %s: %v", product.Name, err)
		}
		stdLog.Printf("created product: %s (id=%d)", product.Name, product.ID)
	}

	now := time.Now()
	endOfQuarter := now.AddDate(0, 3, 0)
	promotions := []models.Promotion{
		{
			Code:         "CROMA10",
			Name:         "10% off Croma 500",
			OfferKind:    constants.OfferKindPercentOff,
			Value:        models.NewMoneyFromInt(10),
			ProductID:    products[0].ID,
			UsageLimit:   500,
			PerUserLimit: 5,
			EndsAt:       &endOfQuarter,
			IsActive:     true,
		},
		{
			Code:           "CROMACOMBO",
			Name:           "Croma 1000 combo with Lifestyle 250",
			OfferKind:      constants.OfferKindCombo,
			Value:          models.NewMoneyFromInt(5),
			ProductID:      products[1].ID,
			BonusProductID: &products[2].ID,
			BonusDiscount:  models.NewMoneyFromInt(20),
			UsageLimit:     200,
			PerUserLimit:   2,
			EndsAt:         &endOfQuarter,
			IsActive:       true,
		},
		{
			Code:         "BB50",
			Name:         "Flat 50 off BigBasket 1000",
			OfferKind:    constants.OfferKindAbsoluteOff,
			Value:        models.NewMoneyFromInt(50),
			ProductID:    products[3].ID,
			UsageLimit:   0,
			PerUserLimit: 3,
			EndsAt:       &endOfQuarter,
			IsActive:     true,
		},
	}
	for i := range promotions {
		promotion := &promotions[i]
		var existing models.Promotion
		if err := models.DB.Where("code = ?", promotion.Code).First(&existing).Error; err == nil {
			stdLog.Printf("promotion already exists: %s", promotion.Code)
			continue
		}
		if err := models.DB.Create(promotion).Error; err != nil {
			stdLog.Fatalf("failed to create promotion %s: %v", promotion.Code, err)
		}
		stdLog.Printf("created promotion: %s (id=%d)", promotion.Code, promotion.ID)
	}

	validTill := now.AddDate(0, 1, 0)
	coupon := models.Coupon{
		Code:          "WELCOME200",
		Amount:        models.NewMoneyFromInt(200),
		MinOrderValue: models.NewMoneyFromInt(500),
		ValidFrom:     &now,
		ValidTill:     &validTill,
		IsActive:      true,
		UsageLimit:    1,
		PerUserLimit:  1,
	}
	var existingCoupon models.Coupon
	if err := models.DB.Where("code = ?", coupon.Code).First(&existingCoupon).Error; err == nil {
		stdLog.Printf("coupon already exists: %s", coupon.Code)
	} else if err := models.DB.Create(&coupon).Error; err != nil {
		stdLog.Fatalf("failed to create coupon %s: %v", coupon.Code, err)
	} else {
		stdLog.Printf("created coupon: %s (id=%d)", coupon.Code, coupon.ID)
	}

	user := models.User{
		Email:  "demo@dealbees.io",
		Name:   "Demo Buyer",
		Mobile: "9876543210",
		Status: constants.UserStatusActive,
	}
	var existingUser models.User
	if err := models.DB.Where("email = ?", user.Email).First(&existingUser).Error; err == nil {
		stdLog.Printf("user already exists: %s", user.Email)
	} else if err := models.DB.Create(&user).Error; err != nil {
		stdLog.Fatalf("failed to create user %s: %v", user.Email, err)
	} else {
		stdLog.Printf("created user: %s (id=%d)", user.Email, user.ID)
	}

	stdLog.Printf("seed complete")
}
