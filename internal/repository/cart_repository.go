package repository

import (
	"errors"

	"github.com/dealbees/voucher-api/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface.
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	ListByIDsForUser(userID uint, ids []uint) ([]models.CartItem, error)
	GetByIDForUser(userID, id uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByIDForUser(userID, id uint) error
	ClearByUser(userID uint) error
	SumQuantityByProduct(userID uint, productID uint) (int, error)
	CountWithCouponForUser(couponID, userID uint, excludeIDs []uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser returns the user's cart, newest changes first.
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Product.Brand").Preload("Promotion").
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByIDsForUser fetches the named cart lines with product, brand and
// promotion attached. Lines are returned newest first; the caller is
// responsible for noticing missing ids.
func (r *GormCartRepository) ListByIDsForUser(userID uint, ids []uint) ([]models.CartItem, error) {
	if len(ids) == 0 {
		return []models.CartItem{}, nil
	}
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Product.Brand").Preload("Promotion").
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByIDForUser fetches one cart line owned by the user.
func (r *GormCartRepository) GetByIDForUser(userID, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").Preload("Product.Brand").
		Where("user_id = ? AND id = ?", userID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert adds a line, or refreshes quantity and attachments when the
// user already has the product in the cart.
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":        item.Quantity,
		"promotion_id":    item.PromotionID,
		"coupon_id":       item.CouponID,
		"recipient_name":  item.RecipientName,
		"recipient_email": item.RecipientEmail,
		"recipient_phone": item.RecipientPhone,
		"gift_message":    item.GiftMessage,
	}
	if err := r.db.Model(&existing).Updates(updates).Error; err != nil {
		return err
	}
	item.ID = existing.ID
	return nil
}

// DeleteByIDForUser removes one cart line owned by the user.
func (r *GormCartRepository) DeleteByIDForUser(userID, id uint) error {
	return r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.CartItem{}).Error
}

// ClearByUser empties the user's cart.
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// SumQuantityByProduct returns how many units of a product the user
// already has in the cart.
func (r *GormCartRepository) SumQuantityByProduct(userID uint, productID uint) (int, error) {
	var total int64
	err := r.db.Model(&models.CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("user_id = ? AND product_id = ?", userID, productID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// CountWithCouponForUser counts the user's cart lines holding the
// coupon, ignoring the lines being checked out right now.
func (r *GormCartRepository) CountWithCouponForUser(couponID, userID uint, excludeIDs []uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.CartItem{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	err := query.Count(&count).Error
	return count, err
}
