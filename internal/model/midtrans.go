package model

// Midtrans transaction_status values the state machine cares about.
const (
	TxStatusCapture    = "capture"
	TxStatusSettlement = "settlement"
	TxStatusPending    = "pending"
	TxStatusDeny       = "deny"
	TxStatusCancel     = "cancel"
	TxStatusExpire     = "expire"
	TxStatusFailure    = "failure"

	FraudStatusAccept = "accept"
)

// MidtransNotification is the HTTP notification body Midtrans POSTs to the
// webhook endpoint. Only the fields the handler consumes are modeled; amounts
// stay string-typed because the signature covers their exact formatting.
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
}
