package repository

import (
	"errors"
	"time"

	"github.com/dealbees/voucher-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order) error
	Updates(id uint, updates map[string]interface{}) error
	CreateLines(lines []models.OrderLine) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id, userID uint) (*models.Order, error)
	GetByGUIDAndUser(guid string, userID uint) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string) error
	MonthlyBrandSpend(userID, brandID uint, monthStart time.Time, statuses []string) (models.Money, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create inserts an order header.
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Updates applies column updates to an order.
func (r *GormOrderRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// CreateLines bulk-inserts order lines.
func (r *GormOrderRepository) CreateLines(lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.Create(&lines).Error
}

// GetByID fetches an order with lines and ledger.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Lines").Preload("Ledger").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser fetches a user's order by id.
func (r *GormOrderRepository) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Lines").Preload("Ledger").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByGUIDAndUser fetches a user's order by public GUID.
func (r *GormOrderRepository) GetByGUIDAndUser(guid string, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Lines").Preload("Ledger").
		Where("guid = ? AND user_id = ?", guid, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser returns a page of the user's orders.
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.GUID != "" {
		query = query.Where("guid LIKE ?", "%"+filter.GUID+"%")
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Lines").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus updates the order status.
func (r *GormOrderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

// MonthlyBrandSpend sums the nominal value of the user's order lines
// for a brand across orders placed since monthStart in the given
// statuses. Bonus lines count like any other line.
func (r *GormOrderRepository) MonthlyBrandSpend(userID, brandID uint, monthStart time.Time, statuses []string) (models.Money, error) {
	var raw float64
	err := r.db.Model(&models.OrderLine{}).
		Select("COALESCE(SUM(order_lines.unit_price * order_lines.quantity), 0)").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.user_id = ? AND order_lines.brand_id = ?", userID, brandID).
		Where("orders.status IN ?", statuses).
		Where("orders.created_at >= ?", monthStart).
		Scan(&raw).Error
	if err != nil {
		return models.Money{}, err
	}
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(raw)), nil
}
