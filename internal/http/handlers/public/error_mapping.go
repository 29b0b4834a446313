package public

import (
	"errors"

	"github.com/dealbees/voucher-api/internal/http/response"
	"github.com/dealbees/voucher-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a service sentinel onto an API error response.
type mappedHandlerError struct {
	target  error
	code    int
	message string
}

// verbatimErrorCategories are validation categories whose message is
// written by the service for the shopper and must reach them unchanged.
var verbatimErrorCategories = []error{
	service.ErrCouponRejected,
	service.ErrStockUnavailable,
	service.ErrPromotionInvalid,
	service.ErrPromotionQuotaExceeded,
	service.ErrBrandCapExceeded,
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderInput, code: response.CodeBadRequest, message: "invalid order request"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, message: "invalid quantity"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, message: "product not available"},
	{target: service.ErrCartItemNotFound, code: response.CodeBadRequest, message: "cart item not found"},
}

var orderQueryErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderInput, code: response.CodeBadRequest, message: "invalid order request"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, message: "order not found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, message: "invalid quantity"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, message: "product not available"},
	{target: service.ErrPromotionInvalid, code: response.CodeBadRequest, message: "Promotion is not valid."},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, message: "cart item not found"},
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMessage string) {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		for _, category := range verbatimErrorCategories {
			if errors.Is(validation.Category, category) {
				respondError(c, response.CodeBadRequest, validation.Message, nil)
				return
			}
		}
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.message, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMessage, err)
}
