package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"carita-payment-api/internal/client"
	"carita-payment-api/internal/dto"
	"carita-payment-api/internal/metrics"
	"carita-payment-api/internal/model"
	"carita-payment-api/internal/repository"
	"carita-payment-api/internal/signature"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreateSnapToken(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, n *model.MidtransNotification) (*dto.WebhookResponse, error)
	ConfirmOrder(ctx context.Context, req *dto.ConfirmRequest) (*dto.ConfirmResponse, error)
	ListPaidOrders(ctx context.Context) ([]*model.Order, error)
}

type paymentServiceImpl struct {
	db               *gorm.DB
	midtransClient   client.MidtransClient
	serverKey        string
	clientKey        string
	orderRepo        repository.OrderRepository
	webhookEventRepo repository.WebhookEventRepository
	metrics          *metrics.PaymentMetrics
	logger           *slog.Logger
}

func NewPaymentService(
	db *gorm.DB,
	midtransClient client.MidtransClient,
	serverKey string,
	clientKey string,
	orderRepo repository.OrderRepository,
	webhookEventRepo repository.WebhookEventRepository,
	m *metrics.PaymentMetrics,
	logger *slog.Logger,
) PaymentService {
	return &paymentServiceImpl{
		db:               db,
		midtransClient:   midtransClient,
		serverKey:        serverKey,
		clientKey:        clientKey,
		orderRepo:        orderRepo,
		webhookEventRepo: webhookEventRepo,
		metrics:          m,
		logger:           logger,
	}
}

// newOrderID builds ids like CH-1756400000000-ab12cd34.
func newOrderID() string {
	return fmt.Sprintf("CH-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// normalizeCart validates the checkout cart and converts it into order line
// items. The storefront sends either id or productId depending on page.
func normalizeCart(cart []*dto.CartItem) ([]model.OrderItem, int64, error) {
	if len(cart) == 0 {
		return nil, 0, fmt.Errorf("%w: cart must be a non-empty array", ErrInvalidPayload)
	}

	items := make([]model.OrderItem, 0, len(cart))
	var calculatedTotal int64

	for _, item := range cart {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			id = strings.TrimSpace(item.ProductID)
		}
		name := strings.TrimSpace(item.Name)

		if id == "" || name == "" || item.Quantity <= 0 || item.Price <= 0 {
			return nil, 0, fmt.Errorf("%w: each cart item must include valid id, name, quantity, and price", ErrInvalidPayload)
		}

		subtotal := int64(item.Quantity) * item.Price
		calculatedTotal += subtotal

		items = append(items, model.OrderItem{
			ProductID: id,
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Subtotal:  subtotal,
		})
	}

	return items, calculatedTotal, nil
}

func customerSnapshot(c *dto.CustomerInfo) (name, email, phone string) {
	name, email, phone = "Customer", "customer@example.com", ""
	if c == nil {
		return
	}
	if c.FirstName != "" {
		name = c.FirstName
	} else if c.Name != "" {
		name = c.Name
	}
	if c.Email != "" {
		email = c.Email
	}
	phone = c.Phone
	return
}

func (s *paymentServiceImpl) CreateSnapToken(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	items, calculatedTotal, err := normalizeCart(req.Cart)
	if err != nil {
		return nil, err
	}

	if req.TotalPrice <= 0 {
		return nil, fmt.Errorf("%w: totalPrice must be a positive integer", ErrInvalidPayload)
	}
	if calculatedTotal != req.TotalPrice {
		return nil, fmt.Errorf("%w: totalPrice does not match cart calculation, expected %d", ErrInvalidPayload, calculatedTotal)
	}

	name, email, phone := customerSnapshot(req.Customer)

	order := &model.Order{
		OrderID:       newOrderID(),
		Status:        model.OrderStatusPending,
		TotalAmount:   req.TotalPrice,
		Currency:      "IDR",
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		Items:         items,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("store order in db: %w", err)
	}
	s.metrics.OrdersCreatedTotal.Inc()

	snapItems := make([]client.SnapItemDetail, len(items))
	for i, item := range items {
		snapItems[i] = client.SnapItemDetail{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		}
	}

	snapResp, err := s.midtransClient.CreateSnapToken(ctx, &client.SnapTransactionRequest{
		TransactionDetails: client.SnapTransactionDetails{
			OrderID:     order.OrderID,
			GrossAmount: order.TotalAmount,
		},
		ItemDetails: snapItems,
		CustomerDetails: client.SnapCustomerDetails{
			FirstName: name,
			Email:     email,
			Phone:     phone,
		},
	})
	if err != nil {
		// No Snap transaction exists for this order; do not leave it stuck pending.
		s.metrics.SnapTokenFailuresTotal.Inc()
		s.metrics.OrdersFailedTotal.Inc()
		s.logger.Error("snap token request failed", "order_id", order.OrderID, "error", err)

		if _, rbErr := s.orderRepo.Update(ctx, s.db, order.OrderID, map[string]interface{}{
			"status": model.OrderStatusFailed,
		}); rbErr != nil {
			s.logger.Error("failed to mark order failed after gateway error", "order_id", order.OrderID, "error", rbErr)
		}

		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	return &dto.CheckoutResponse{
		SnapToken: snapResp.Token,
		ClientKey: s.clientKey,
		OrderID:   order.OrderID,
	}, nil
}

// isPaidOutcome applies the gateway's success rule: settlement always pays,
// capture pays only when fraud screening accepted it.
func isPaidOutcome(transactionStatus, fraudStatus string) bool {
	return transactionStatus == model.TxStatusSettlement ||
		(transactionStatus == model.TxStatusCapture && fraudStatus == model.FraudStatusAccept)
}

// isFailedOutcome covers definitive denials. Anything else keeps the order
// pending so a later settlement can still land.
func isFailedOutcome(transactionStatus string) bool {
	switch transactionStatus {
	case model.TxStatusDeny, model.TxStatusCancel, model.TxStatusExpire, model.TxStatusFailure:
		return true
	}
	return false
}

func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, n *model.MidtransNotification) (*dto.WebhookResponse, error) {
	if n.OrderID == "" || n.StatusCode == "" || n.GrossAmount == "" || n.SignatureKey == "" || n.TransactionStatus == "" {
		s.metrics.WebhookRejectedTotal.WithLabelValues("invalid_payload").Inc()
		return nil, fmt.Errorf("%w: missing required webhook field", ErrInvalidPayload)
	}

	expected := signature.GenerateMidtransSignature(n.OrderID, n.StatusCode, n.GrossAmount, s.serverKey)
	if !signature.SafeCompare(expected, n.SignatureKey) {
		// Potential forgery or replay with a tampered body. Always logged.
		s.metrics.WebhookRejectedTotal.WithLabelValues("invalid_signature").Inc()
		s.logger.Warn("webhook signature mismatch",
			"order_id", n.OrderID,
			"transaction_status", n.TransactionStatus,
		)
		return nil, ErrInvalidSignature
	}

	order, err := s.orderRepo.FindByOrderID(ctx, n.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.WebhookRejectedTotal.WithLabelValues("order_not_found").Inc()
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	// The signed gross amount must match what the order was created with.
	amount, err := decimal.NewFromString(n.GrossAmount)
	if err != nil || !amount.Equal(decimal.NewFromInt(order.TotalAmount)) {
		s.metrics.WebhookRejectedTotal.WithLabelValues("invalid_payload").Inc()
		s.logger.Warn("webhook gross amount mismatch",
			"order_id", n.OrderID,
			"gross_amount", n.GrossAmount,
			"total_amount", order.TotalAmount,
		)
		return nil, fmt.Errorf("%w: gross_amount does not match order total", ErrInvalidPayload)
	}

	eventID := fmt.Sprintf("%s:%s:%s", n.OrderID, n.TransactionID, n.TransactionStatus)
	seen, err := s.webhookEventRepo.Exists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check webhook event: %w", err)
	}
	if seen {
		// Gateway retry of an already-applied delivery: acknowledge from
		// current state, keep paid_at untouched.
		s.metrics.WebhookDuplicateTotal.Inc()
		return &dto.WebhookResponse{
			Message:     "Webhook processed.",
			OrderID:     order.OrderID,
			Status:      order.Status,
			SentToAdmin: order.SentToAdmin,
		}, nil
	}

	var updated *model.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch {
		case isPaidOutcome(n.TransactionStatus, n.FraudStatus):
			updated, err = s.orderRepo.MarkPaid(ctx, tx, n.OrderID, n)
		case isFailedOutcome(n.TransactionStatus):
			updated, err = s.orderRepo.Update(ctx, tx, n.OrderID, map[string]interface{}{
				"status":             model.OrderStatusFailed,
				"transaction_id":     n.TransactionID,
				"transaction_status": n.TransactionStatus,
				"status_code":        n.StatusCode,
			})
		default:
			updated, err = s.orderRepo.Update(ctx, tx, n.OrderID, map[string]interface{}{
				"status":             model.OrderStatusPending,
				"transaction_id":     n.TransactionID,
				"transaction_status": n.TransactionStatus,
				"status_code":        n.StatusCode,
			})
		}
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		return s.webhookEventRepo.MarkProcessed(ctx, tx, eventID, n.TransactionStatus)
	})
	if err != nil {
		return nil, err
	}

	switch updated.Status {
	case model.OrderStatusPaid:
		s.metrics.OrdersPaidTotal.Inc()
		s.metrics.OrdersPaidAmountTotal.Add(float64(updated.TotalAmount))
		s.logger.Info("order paid",
			"order_id", updated.OrderID,
			"amount", updated.TotalAmount,
			"transaction_status", n.TransactionStatus,
		)
	case model.OrderStatusFailed:
		s.metrics.OrdersFailedTotal.Inc()
		s.logger.Info("order failed",
			"order_id", updated.OrderID,
			"transaction_status", n.TransactionStatus,
		)
	}

	return &dto.WebhookResponse{
		Message:     "Webhook processed.",
		OrderID:     updated.OrderID,
		Status:      updated.Status,
		SentToAdmin: updated.SentToAdmin,
	}, nil
}

// ConfirmOrder records the storefront's optimistic payment status after the
// Snap popup closes. It deliberately skips signature checks and never touches
// the authoritative status column; the webhook remains the source of truth.
func (s *paymentServiceImpl) ConfirmOrder(ctx context.Context, req *dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
	if req.OrderCode == "" {
		return nil, fmt.Errorf("%w: order_code is required", ErrInvalidPayload)
	}

	fields := map[string]interface{}{
		"client_reported_status": req.PaymentStatus,
	}
	if req.TransactionID != "" {
		fields["transaction_id"] = req.TransactionID
	}

	_, err := s.orderRepo.Update(ctx, s.db, req.OrderCode, fields)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("update order: %w", err)
	}
	// An unknown order_code still answers OK: the redirect flow must not break
	// when the browser lands here before the order exists on this side.

	return &dto.ConfirmResponse{
		Message:       "Order status received.",
		OrderCode:     req.OrderCode,
		PaymentStatus: req.PaymentStatus,
	}, nil
}

func (s *paymentServiceImpl) ListPaidOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.ListPaidForAdmin(ctx)
}
