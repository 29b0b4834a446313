package repository

import (
	"github.com/dealbees/voucher-api/internal/models"

	"gorm.io/gorm"
)

// LedgerRepository is the ledger data access interface.
type LedgerRepository interface {
	CreateBatch(entries []models.LedgerEntry) error
	ListByOrder(orderID uint) ([]models.LedgerEntry, error)
	ListByUser(userID uint, page, pageSize int) ([]models.LedgerEntry, int64, error)
	UpdateStatusByOrder(orderID uint, source, status string) error
	WithTx(tx *gorm.DB) *GormLedgerRepository
}

// GormLedgerRepository is the GORM implementation.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a ledger repository.
func NewLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormLedgerRepository) WithTx(tx *gorm.DB) *GormLedgerRepository {
	if tx == nil {
		return r
	}
	return &GormLedgerRepository{db: tx}
}

// CreateBatch bulk-inserts ledger entries.
func (r *GormLedgerRepository) CreateBatch(entries []models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

// ListByOrder returns all money movements of an order.
func (r *GormLedgerRepository) ListByOrder(orderID uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByUser returns a page of the user's money movements.
func (r *GormLedgerRepository) ListByUser(userID uint, page, pageSize int) ([]models.LedgerEntry, int64, error) {
	query := r.db.Model(&models.LedgerEntry{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.LedgerEntry
	query = applyPagination(query, page, pageSize)
	if err := query.Order("id desc").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// UpdateStatusByOrder updates the status of an order's entries from one
// source.
func (r *GormLedgerRepository) UpdateStatusByOrder(orderID uint, source, status string) error {
	return r.db.Model(&models.LedgerEntry{}).
		Where("order_id = ? AND source = ?", orderID, source).
		Update("status", status).Error
}
