package service

import (
	"strings"
	"time"

	"github.com/dealbees/voucher-api/internal/models"
	"github.com/dealbees/voucher-api/internal/repository"
)

// CartItemDetail is a cart line with its product resolved, for
// responses.
type CartItemDetail struct {
	ID             uint              `json:"id"`
	ProductID      uint              `json:"product_id"`
	Quantity       int               `json:"quantity"`
	UnitPrice      models.Money      `json:"unit_price"`
	PromotionID    *uint             `json:"promotion_id,omitempty"`
	RecipientName  string            `json:"recipient_name,omitempty"`
	RecipientEmail string            `json:"recipient_email,omitempty"`
	RecipientPhone string            `json:"recipient_phone,omitempty"`
	GiftMessage    string            `json:"gift_message,omitempty"`
	Product        *models.Product   `json:"product"`
	Promotion      *models.Promotion `json:"promotion,omitempty"`
}

// UpsertCartItemInput adds or refreshes a cart line.
type UpsertCartItemInput struct {
	UserID         uint
	ProductID      uint
	Quantity       int
	PromotionID    *uint
	CouponCode     string
	RecipientName  string
	RecipientEmail string
	RecipientPhone string
	GiftMessage    string
}

// CartService manages the per-user cart.
type CartService struct {
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	promotionRepo repository.PromotionRepository
	couponRepo    repository.CouponRepository
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, promotionRepo repository.PromotionRepository, couponRepo repository.CouponRepository) *CartService {
	return &CartService{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		promotionRepo: promotionRepo,
		couponRepo:    couponRepo,
	}
}

// ListByUser returns the user's cart. Lines whose product has gone
// missing or inactive are dropped from the response without failing.
func (s *CartService) ListByUser(userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidOrderInput
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || !product.IsActive {
			continue
		}
		details = append(details, CartItemDetail{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      product.Price,
			PromotionID:    item.PromotionID,
			RecipientName:  item.RecipientName,
			RecipientEmail: item.RecipientEmail,
			RecipientPhone: item.RecipientPhone,
			GiftMessage:    item.GiftMessage,
			Product:        product,
			Promotion:      item.Promotion,
		})
	}
	return details, nil
}

// UpsertItem adds a line or refreshes the quantity and attachments of
// an existing one. The product must be sellable and any attached
// promotion must apply to it.
func (s *CartService) UpsertItem(input UpsertCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidOrderInput
	}
	if input.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if product == nil || !product.IsActive ||
		(product.ExpiryDate != nil && now.After(*product.ExpiryDate)) {
		return nil, ErrProductNotAvailable
	}
	if product.AvailableQty < input.Quantity {
		return nil, ErrProductNotAvailable
	}

	if input.PromotionID != nil {
		promotion, err := s.promotionRepo.GetByID(*input.PromotionID)
		if err != nil {
			return nil, err
		}
		if promotion == nil || !promotionApplies(promotion, product.ID, now) {
			return nil, rejectPromotion("Promotion is not valid.")
		}
	}

	// The coupon attaches here by reference only; the full validation
	// ladder runs at checkout.
	var couponID *uint
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		coupon, err := s.couponRepo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if coupon == nil {
			return nil, rejectCoupon("Coupon not found")
		}
		if coupon.IsUsed {
			return nil, rejectCoupon("Coupon already used")
		}
		couponID = &coupon.ID
	}

	item := &models.CartItem{
		UserID:         input.UserID,
		ProductID:      input.ProductID,
		Quantity:       input.Quantity,
		PromotionID:    input.PromotionID,
		CouponID:       couponID,
		RecipientName:  input.RecipientName,
		RecipientEmail: input.RecipientEmail,
		RecipientPhone: input.RecipientPhone,
		GiftMessage:    input.GiftMessage,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes one of the user's cart lines.
func (s *CartService) RemoveItem(userID, itemID uint) error {
	if userID == 0 || itemID == 0 {
		return ErrInvalidOrderInput
	}
	item, err := s.cartRepo.GetByIDForUser(userID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteByIDForUser(userID, itemID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidOrderInput
	}
	return s.cartRepo.ClearByUser(userID)
}
