package public

import (
	"strconv"

	"github.com/dealbees/voucher-api/internal/http/response"
	"github.com/dealbees/voucher-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest adds or refreshes a cart line.
type CartItemRequest struct {
	ProductID      uint   `json:"product_id" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required"`
	PromotionID    *uint  `json:"promotion_id"`
	CouponCode     string `json:"coupon_code"`
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	RecipientPhone string `json:"recipient_phone"`
	GiftMessage    string `json:"gift_message"`
}

// GetCart returns the user's cart lines with products resolved.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}

	response.Success(c, items)
}

// UpsertCartItem adds a product to the cart or refreshes an existing
// line for the same product.
func (h *Handler) UpsertCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart request", err)
		return
	}

	item, err := h.CartService.UpsertItem(service.UpsertCartItemInput{
		UserID:         uid,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		PromotionID:    req.PromotionID,
		CouponCode:     req.CouponCode,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		RecipientPhone: req.RecipientPhone,
		GiftMessage:    req.GiftMessage,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}

	response.Success(c, item)
}

// DeleteCartItem removes one cart line.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}

	if err := h.CartService.RemoveItem(uid, uint(itemID)); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}

	response.Success(c, nil)
}

// ClearCart empties the user's cart.
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "failed to clear cart", err)
		return
	}

	response.Success(c, nil)
}
