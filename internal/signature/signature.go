// Package signature implements the Midtrans notification signature scheme.
//
// Midtrans signs every HTTP notification with
// sha512(order_id + status_code + gross_amount + server_key) and sends the
// digest in the signature_key field. The concatenation order and the absence
// of separators are dictated by the gateway.
package signature

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// GenerateMidtransSignature returns the expected signature for a notification
// as a 128-character lowercase hex string. Empty inputs are hashed as empty
// strings; presence validation is the caller's job.
func GenerateMidtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// SafeCompare reports whether left and right are equal without leaking timing
// information about the position of the first mismatch. The length check may
// short-circuit: digest length is public knowledge.
func SafeCompare(left, right string) bool {
	if len(left) != len(right) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(left), []byte(right)) == 1
}
