package dto

type CartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	Price     int64  `json:"price"`
}

type CustomerInfo struct {
	FirstName string `json:"firstName"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type CheckoutRequest struct {
	Cart       []*CartItem   `json:"cart"`
	TotalPrice int64         `json:"totalPrice"`
	Customer   *CustomerInfo `json:"customer"`
}

type CheckoutResponse struct {
	SnapToken string `json:"snapToken"`
	ClientKey string `json:"clientKey"`
	OrderID   string `json:"orderId"`
}

type WebhookResponse struct {
	Message     string `json:"message"`
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	SentToAdmin bool   `json:"sentToAdmin"`
}

type ConfirmRequest struct {
	OrderCode     string `json:"order_code"`
	TransactionID string `json:"transaction_id"`
	PaymentStatus string `json:"payment_status"`
}

type ConfirmResponse struct {
	Message       string `json:"message"`
	OrderCode     string `json:"order_code"`
	PaymentStatus string `json:"payment_status"`
}
