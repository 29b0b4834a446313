package repository

import (
	"errors"

	"github.com/dealbees/voucher-api/internal/models"

	"gorm.io/gorm"
)

// BrandRepository is the brand data access interface.
type BrandRepository interface {
	GetByID(id uint) (*models.Brand, error)
	ListActive() ([]models.Brand, error)
	Create(brand *models.Brand) error
	Update(brand *models.Brand) error
	WithTx(tx *gorm.DB) *GormBrandRepository
}

// GormBrandRepository is the GORM implementation.
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository creates a brand repository.
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormBrandRepository) WithTx(tx *gorm.DB) *GormBrandRepository {
	if tx == nil {
		return r
	}
	return &GormBrandRepository{db: tx}
}

// GetByID fetches a brand by id.
func (r *GormBrandRepository) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// ListActive lists enabled brands.
func (r *GormBrandRepository) ListActive() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Where("is_active = ?", true).Order("id asc").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// Create inserts a brand.
func (r *GormBrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// Update saves a brand.
func (r *GormBrandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}
