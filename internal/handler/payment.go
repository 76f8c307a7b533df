package handler

import (
	"errors"
	"net/http"

	"carita-payment-api/internal/dto"
	"carita-payment-api/internal/model"
	"carita-payment-api/internal/repository"
	"carita-payment-api/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// httpError translates service failure classes into HTTP-status errors.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidPayload):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidSignature):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid signature.")
	case errors.Is(err, service.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Order not found.")
	case errors.Is(err, repository.ErrDuplicateOrder):
		return echo.NewHTTPError(http.StatusConflict, "Order already exists.")
	case errors.Is(err, service.ErrGatewayFailure):
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to create Midtrans transaction token.")
	}
	return err
}

func (h *PaymentHandler) CreateSnapToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.paymentService.CreateSnapToken(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	var n model.MidtransNotification
	if err := c.Bind(&n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid webhook payload.")
	}

	result, err := h.paymentService.HandleWebhook(ctx, &n)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) ConfirmOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.paymentService.ConfirmOrder(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) GetPaidOrdersForAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.paymentService.ListPaidOrders(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}
