package repository

import (
	"errors"

	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/models"

	"gorm.io/gorm"
)

// CouponRepository is the coupon data access interface.
type CouponRepository interface {
	GetByID(id uint) (*models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	MarkUsed(id uint) (bool, error)
	CountOrders(couponID uint) (int64, error)
	CountOrdersByUser(couponID, userID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCouponRepository
}

// GormCouponRepository is the GORM implementation.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a coupon repository.
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCouponRepository) WithTx(tx *gorm.DB) *GormCouponRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRepository{db: tx}
}

// GetByID fetches a coupon by id.
func (r *GormCouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByCode fetches a coupon by code.
func (r *GormCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// Create inserts a coupon.
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return r.db.Create(coupon).Error
}

// Update saves a coupon.
func (r *GormCouponRepository) Update(coupon *models.Coupon) error {
	return r.db.Save(coupon).Error
}

// MarkUsed latches the single-use flag. Returns false when the coupon
// was already marked, so reconciliation can run more than once safely.
func (r *GormCouponRepository) MarkUsed(id uint) (bool, error) {
	result := r.db.Model(&models.Coupon{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountOrders counts non-failed orders that applied the coupon.
func (r *GormCouponRepository) CountOrders(couponID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("coupon_id = ? AND status <> ?", couponID, constants.OrderStatusFailed).
		Count(&count).Error
	return count, err
}

// CountOrdersByUser counts the user's non-failed orders that applied
// the coupon.
func (r *GormCouponRepository) CountOrdersByUser(couponID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("coupon_id = ? AND user_id = ? AND status <> ?", couponID, userID, constants.OrderStatusFailed).
		Count(&count).Error
	return count, err
}
