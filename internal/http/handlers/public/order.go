package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/dealbees/voucher-api/internal/http/handlers/shared"
	"github.com/dealbees/voucher-api/internal/http/response"
	"github.com/dealbees/voucher-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest is the checkout request body.
type CreateOrderRequest struct {
	CartItemIDs    []uint `json:"cart_item_ids" binding:"required"`
	DisplayChannel string `json:"display_channel"`
	CouponCode     string `json:"coupon_code"`
	UTMSource      string `json:"utm_source"`
	WhatsAppOptIn  bool   `json:"whatsapp_opt_in"`
}

// CreateOrder places an order from the user's cart lines.
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid order request", err)
		return
	}

	result, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		UserID:         uid,
		CartItemIDs:    req.CartItemIDs,
		DisplayChannel: req.DisplayChannel,
		CouponCode:     strings.TrimSpace(req.CouponCode),
		ClientIP:       c.ClientIP(),
		UTMSource:      req.UTMSource,
		WhatsAppOptIn:  req.WhatsAppOptIn,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "order could not be created")
		return
	}

	response.Success(c, result)
}

// ListOrders returns a page of the user's order history.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	input := service.ListOrdersInput{
		UserID:   uid,
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		GUID:     c.Query("guid"),
	}
	if from := c.Query("created_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			input.CreatedFrom = &t
		}
	}
	if to := c.Query("created_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			input.CreatedTo = &t
		}
	}

	orders, total, err := h.OrderService.ListOrders(input)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}

	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetOrder returns one of the user's orders by numeric id.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrderByID(uid, uint(orderID))
	if err != nil {
		respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "failed to load order")
		return
	}

	response.Success(c, order)
}

// GetOrderByGUID returns one of the user's orders by its public guid.
func (h *Handler) GetOrderByGUID(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	guid := strings.TrimSpace(c.Param("guid"))
	if guid == "" {
		respondError(c, response.CodeBadRequest, "invalid order guid", nil)
		return
	}

	order, err := h.OrderService.GetOrderByGUID(uid, guid)
	if err != nil {
		respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "failed to load order")
		return
	}

	response.Success(c, order)
}
