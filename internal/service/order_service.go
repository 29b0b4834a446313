package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dealbees/voucher-api/internal/config"
	"github.com/dealbees/voucher-api/internal/constants"
	"github.com/dealbees/voucher-api/internal/logger"
	"github.com/dealbees/voucher-api/internal/models"
	"github.com/dealbees/voucher-api/internal/queue"
	"github.com/dealbees/voucher-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService places orders from cart lines and answers order
// queries.
type OrderService struct {
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	promotionRepo repository.PromotionRepository
	ledgerRepo    repository.LedgerRepository
	couponService *CouponService
	queueClient   *queue.Client
	orderCfg      config.OrderConfig
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, promotionRepo repository.PromotionRepository, ledgerRepo repository.LedgerRepository, couponService *CouponService, queueClient *queue.Client, orderCfg config.OrderConfig) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		promotionRepo: promotionRepo,
		ledgerRepo:    ledgerRepo,
		couponService: couponService,
		queueClient:   queueClient,
		orderCfg:      orderCfg,
	}
}

// CreateOrderInput is the checkout request.
type CreateOrderInput struct {
	UserID         uint
	CartItemIDs    []uint
	DisplayChannel string
	CouponCode     string
	ClientIP       string
	UTMSource      string
	WhatsAppOptIn  bool
}

// CreateOrderResult is the checkout response.
type CreateOrderResult struct {
	OrderID         uint         `json:"order_id"`
	OrderGUID       string       `json:"order_guid"`
	TotalAmount     models.Money `json:"total_amount"`
	CashSpent       models.Money `json:"cash_spent"`
	CouponApplied   bool         `json:"coupon_applied"`
	CouponCode      string       `json:"coupon_code,omitempty"`
	CouponDiscount  models.Money `json:"coupon_discount"`
	VoucherQuantity int          `json:"voucher_quantity"`
}

// CreateOrder runs the whole checkout pipeline: validate the coupon
// against the preliminary total, normalize the cart lines, settle both
// discount sources, derive bonus lines, enforce brand caps, then
// persist everything in one transaction. Validation rejections carry
// their caller-visible message; everything else collapses to
// ErrOrderCreateFailed after the rollback.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*CreateOrderResult, error) {
	if input.UserID == 0 || len(input.CartItemIDs) == 0 {
		return nil, ErrInvalidOrderInput
	}
	channel := strings.ToLower(strings.TrimSpace(input.DisplayChannel))
	if channel == "" {
		channel = constants.ChannelAll
	}

	ids := uniqueIDs(input.CartItemIDs)
	items, err := s.cartRepo.ListByIDsForUser(input.UserID, ids)
	if err != nil {
		return nil, err
	}

	// The coupon is judged first, against the raw cart value. A line
	// that fails its own validation reports that only after the coupon
	// has passed.
	var coupon *models.Coupon
	couponBudget := decimal.Zero
	if strings.TrimSpace(input.CouponCode) != "" {
		coupon, err = s.couponService.Validate(input.CouponCode, input.UserID, preliminaryCartTotal(items), input.CartItemIDs)
		if err != nil {
			return nil, err
		}
		couponBudget = coupon.Amount.Decimal
	}

	lines, err := s.normalizeLines(input.UserID, items, ids, channel)
	if err != nil {
		return nil, err
	}

	allocated, totals := allocateDiscounts(lines, couponBudget)

	bonuses, err := s.deriveBonusLines(allocated, channel)
	if err != nil {
		return nil, s.failCreate(input.UserID, err)
	}
	for _, bonus := range bonuses {
		if bonus.FreeOffer {
			continue
		}
		nominal := bonus.Product.Price.Decimal.Mul(decimal.NewFromInt(int64(bonus.Quantity)))
		totals.NominalTotal = totals.NominalTotal.Add(nominal).Round(2)
		totals.PromotionTotal = totals.PromotionTotal.Add(bonus.PromotionDiscount).Round(2)
		totals.AmountDue = totals.AmountDue.Add(bonus.AmountDue).Round(2)
	}

	if err := s.enforceBrandCaps(input.UserID, allocated); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		UserID:         input.UserID,
		Status:         constants.OrderStatusInitiated,
		DisplayChannel: channel,
		NominalTotal:   models.NewMoneyFromDecimal(decimal.Zero),
		CouponTotal:    models.NewMoneyFromDecimal(decimal.Zero),
		PromotionTotal: models.NewMoneyFromDecimal(decimal.Zero),
		AmountDue:      models.NewMoneyFromDecimal(decimal.Zero),
		ClientIP:       strings.TrimSpace(input.ClientIP),
		UTMSource:      strings.TrimSpace(input.UTMSource),
		WhatsAppOptIn:  input.WhatsAppOptIn,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
	}

	var voucherQty int
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		ledgerRepo := s.ledgerRepo.WithTx(tx)

		if err := orderRepo.Create(order); err != nil {
			return err
		}

		guid := buildOrderGUID(order.ID, now)
		if err := orderRepo.Updates(order.ID, map[string]interface{}{"guid": guid}); err != nil {
			return err
		}
		order.GUID = guid

		orderLines := buildOrderLines(order, guid, allocated, bonuses, now)
		if err := orderRepo.CreateLines(orderLines); err != nil {
			return err
		}
		for _, line := range orderLines {
			voucherQty += line.Quantity
		}

		status := constants.OrderStatusInitiated
		if totals.AmountDue.IsZero() {
			status = constants.OrderStatusVerified
		}
		if err := orderRepo.Updates(order.ID, map[string]interface{}{
			"nominal_total":   models.NewMoneyFromDecimal(totals.NominalTotal),
			"coupon_total":    models.NewMoneyFromDecimal(totals.CouponTotal),
			"promotion_total": models.NewMoneyFromDecimal(totals.PromotionTotal),
			"amount_due":      models.NewMoneyFromDecimal(totals.AmountDue),
			"status":          status,
		}); err != nil {
			return err
		}
		order.Status = status

		entries := buildLedgerEntries(order, guid, coupon, totals, now)
		return ledgerRepo.CreateBatch(entries)
	})
	if err != nil {
		return nil, s.failCreate(input.UserID, err)
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_guid", order.GUID,
		"user_id", input.UserID,
		"amount_due", totals.AmountDue.StringFixed(2),
		"status", order.Status,
	)

	if coupon != nil && totals.AmountDue.IsZero() {
		s.scheduleCouponRedeem(order.ID, order.GUID)
	}

	result := &CreateOrderResult{
		OrderID:         order.ID,
		OrderGUID:       order.GUID,
		TotalAmount:     models.NewMoneyFromDecimal(totals.NominalTotal),
		CashSpent:       models.NewMoneyFromDecimal(totals.AmountDue),
		CouponApplied:   coupon != nil,
		CouponDiscount:  models.NewMoneyFromDecimal(totals.CouponTotal),
		VoucherQuantity: voucherQty,
	}
	if coupon != nil {
		result.CouponCode = coupon.Code
	}
	return result, nil
}

// failCreate logs the underlying cause, keeps validation rejections
// intact and collapses everything else.
func (s *OrderService) failCreate(userID uint, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}
	logger.Errorw("order_create_failed", "user_id", userID, "error", err)
	return ErrOrderCreateFailed
}

// scheduleCouponRedeem hands the redemption to the queue, falling back
// to an inline run when the queue is disabled or rejects the task. The
// task itself is idempotent, so both paths may fire.
func (s *OrderService) scheduleCouponRedeem(orderID uint, orderGUID string) {
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueCouponRedeem(queue.CouponRedeemPayload{OrderID: orderID})
		if err == nil {
			return
		}
		logger.Errorw("order_enqueue_coupon_redeem_failed",
			"order_id", orderID,
			"order_guid", orderGUID,
			"error", err,
		)
	}
	if err := s.couponService.Redeem(orderID); err != nil {
		logger.Errorw("order_inline_coupon_redeem_failed",
			"order_id", orderID,
			"order_guid", orderGUID,
			"error", err,
		)
	}
}

// buildOrderGUID derives the public order id from the row id and the
// creation instant.
func buildOrderGUID(orderID uint, now time.Time) string {
	return fmt.Sprintf("%s-%d-%d",
		constants.OrderGUIDPrefix,
		now.Unix()-constants.OrderGUIDEpochOffset+int64(orderID),
		now.Unix(),
	)
}

func buildOrderLines(order *models.Order, guid string, allocated []AllocatedLine, bonuses []BonusLine, now time.Time) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(allocated)+len(bonuses))
	counter := 0
	for _, line := range allocated {
		counter++
		cartItemID := line.CartItem.ID
		lines = append(lines, models.OrderLine{
			OrderID:           order.ID,
			GUID:              fmt.Sprintf("%s-%d", guid, counter),
			OrderGUID:         guid,
			CartItemID:        &cartItemID,
			BrandID:           line.Brand.ID,
			ProductID:         line.Product.ID,
			UnitPrice:         line.Product.Price,
			Quantity:          line.CartItem.Quantity,
			PromotionID:       line.CartItem.PromotionID,
			PromotionDiscount: models.NewMoneyFromDecimal(line.PromotionDiscount),
			CouponDiscount:    models.NewMoneyFromDecimal(line.CouponDiscount),
			AmountDue:         models.NewMoneyFromDecimal(line.AmountDue),
			RecipientName:     line.CartItem.RecipientName,
			RecipientEmail:    line.CartItem.RecipientEmail,
			RecipientPhone:    line.CartItem.RecipientPhone,
			GiftMessage:       line.CartItem.GiftMessage,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	for _, bonus := range bonuses {
		counter++
		lines = append(lines, models.OrderLine{
			OrderID:           order.ID,
			GUID:              fmt.Sprintf("%s-%d", guid, counter),
			OrderGUID:         guid,
			BrandID:           bonus.Brand.ID,
			ProductID:         bonus.Product.ID,
			UnitPrice:         bonus.Product.Price,
			Quantity:          bonus.Quantity,
			PromotionDiscount: models.NewMoneyFromDecimal(bonus.PromotionDiscount),
			CouponDiscount:    models.NewMoneyFromDecimal(decimal.Zero),
			AmountDue:         models.NewMoneyFromDecimal(bonus.AmountDue),
			Bonus:             true,
			FreeOffer:         bonus.FreeOffer,
			RecipientName:     bonus.Source.CartItem.RecipientName,
			RecipientEmail:    bonus.Source.CartItem.RecipientEmail,
			RecipientPhone:    bonus.Source.CartItem.RecipientPhone,
			GiftMessage:       bonus.Source.CartItem.GiftMessage,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return lines
}

func buildLedgerEntries(order *models.Order, guid string, coupon *models.Coupon, totals allocationTotals, now time.Time) []models.LedgerEntry {
	var entries []models.LedgerEntry
	if totals.AmountDue.GreaterThan(decimal.Zero) {
		entries = append(entries, models.LedgerEntry{
			UserID:    order.UserID,
			OrderID:   order.ID,
			GUID:      guid,
			Source:    constants.LedgerSourceGateway,
			Type:      constants.LedgerTypeDebit,
			Amount:    models.NewMoneyFromDecimal(totals.AmountDue),
			Status:    constants.LedgerStatusInitiated,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if coupon != nil && totals.CouponTotal.GreaterThan(decimal.Zero) {
		entries = append(entries, models.LedgerEntry{
			UserID:      order.UserID,
			OrderID:     order.ID,
			GUID:        guid + "-COUPON",
			Source:      constants.LedgerSourceCoupon,
			Type:        constants.LedgerTypeCredit,
			Amount:      models.NewMoneyFromDecimal(totals.CouponTotal),
			Status:      constants.LedgerStatusCompleted,
			Description: fmt.Sprintf("Coupon discount: %s", coupon.Code),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return entries
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// GetOrderByID returns the user's order by row id.
func (s *OrderService) GetOrderByID(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByGUID returns the user's order by public GUID.
func (s *OrderService) GetOrderByGUID(userID uint, guid string) (*models.Order, error) {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByGUIDAndUser(guid, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersInput filters the user's order history.
type ListOrdersInput struct {
	UserID      uint
	Page        int
	PageSize    int
	Status      string
	GUID        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ListOrders returns a page of the user's orders.
func (s *OrderService) ListOrders(input ListOrdersInput) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:        input.Page,
		PageSize:    input.PageSize,
		UserID:      input.UserID,
		Status:      input.Status,
		GUID:        input.GUID,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
	})
}
