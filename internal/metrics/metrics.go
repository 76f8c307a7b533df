package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics covers the checkout and webhook flows.
type PaymentMetrics struct {
	OrdersCreatedTotal    prometheus.Counter
	OrdersPaidTotal       prometheus.Counter
	OrdersPaidAmountTotal prometheus.Counter
	OrdersFailedTotal     prometheus.Counter

	SnapTokenFailuresTotal prometheus.Counter

	// Rejections by reason: invalid_payload, invalid_signature, order_not_found
	WebhookRejectedTotal  *prometheus.CounterVec
	WebhookDuplicateTotal prometheus.Counter
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		OrdersCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders created at checkout-token time",
		}),
		OrdersPaidTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orders_paid_total",
			Help: "Orders confirmed paid by the gateway webhook",
		}),
		OrdersPaidAmountTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orders_paid_amount_total",
			Help: "Total paid amount in IDR",
		}),
		OrdersFailedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "Orders moved to failed (gateway denial or token failure)",
		}),
		SnapTokenFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snap_token_failures_total",
			Help: "Snap token requests rejected by the gateway",
		}),
		WebhookRejectedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_rejected_total",
			Help: "Webhook notifications rejected before any state change",
		}, []string{"reason"}),
		WebhookDuplicateTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "webhook_duplicate_total",
			Help: "Webhook notifications acknowledged as already processed",
		}),
	}
}
