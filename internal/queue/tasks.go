package queue

import (
	"encoding/json"

	"github.com/dealbees/voucher-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCouponRedeem marks a coupon used once its order settles.
	TaskCouponRedeem = constants.TaskCouponRedeem
)

// CouponRedeemPayload carries the order whose coupon should be marked
// used.
type CouponRedeemPayload struct {
	OrderID uint `json:"order_id"`
}

// NewCouponRedeemTask builds a coupon redemption task.
func NewCouponRedeemTask(payload CouponRedeemPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCouponRedeem, body), nil
}
