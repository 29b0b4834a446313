package worker

import (
	"context"
	"encoding/json"

	"github.com/dealbees/voucher-api/internal/logger"
	"github.com/dealbees/voucher-api/internal/provider"
	"github.com/dealbees/voucher-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires the task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCouponRedeem, c.handleCouponRedeem)
}

func (c *Consumer) handleCouponRedeem(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_coupon_redeem_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CouponRedeemPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_coupon_redeem_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_coupon_redeem_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.CouponService == nil {
		logger.Warnw("worker_coupon_redeem_skip_coupon_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.CouponService.Redeem(payload.OrderID); err != nil {
		logger.Warnw("worker_coupon_redeem_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
