package repository

import (
	"errors"

	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository is the promotion data access interface.
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	GetByCode(code string) (*models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	ListActiveByProduct(productID uint) ([]models.Promotion, error)
	CountUsage(promotionID uint) (int64, error)
	CountUsageByUser(promotionID, userID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormPromotionRepository
}

// GormPromotionRepository is the GORM implementation.
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates a promotion repository.
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) *GormPromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID fetches a promotion by id.
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Preload("BonusProduct").First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByCode fetches a promotion by code.
func (r *GormPromotionRepository) GetByCode(code string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Preload("BonusProduct").Where("code = ?", code).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// Create inserts a promotion.
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update saves a promotion.
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

// ListActiveByProduct lists enabled promotions scoped to a product.
func (r *GormPromotionRepository) ListActiveByProduct(productID uint) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := r.db.Preload("BonusProduct").
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("id asc").
		Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// CountUsage counts non-failed order lines that applied the promotion.
func (r *GormPromotionRepository) CountUsage(promotionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderLine{}).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("order_lines.promotion_id = ? AND order_lines.bonus = ? AND orders.status <> ?",
			promotionID, false, constants.OrderStatusFailed).
		Count(&count).Error
	return count, err
}

// CountUsageByUser counts the user's non-failed order lines that
// applied the promotion.
func (r *GormPromotionRepository) CountUsageByUser(promotionID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderLine{}).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("order_lines.promotion_id = ? AND order_lines.bonus = ? AND orders.user_id = ? AND orders.status <> ?",
			promotionID, false, userID, constants.OrderStatusFailed).
		Count(&count).Error
	return count, err
}
