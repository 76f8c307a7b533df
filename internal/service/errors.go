package service

import "errors"

// Webhook and checkout failure classes. Handlers map these onto HTTP statuses;
// none of them leaves a partially updated order behind.
var (
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrOrderNotFound    = errors.New("order not found")
	ErrGatewayFailure   = errors.New("payment gateway request failed")
)
