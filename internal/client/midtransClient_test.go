package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carita-payment-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSnapToken_Success(t *testing.T) {
	var gotAuth string
	var gotReq SnapTransactionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SnapTokenResponse{
			Token:       "snap-token-123",
			RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-123",
		})
	}))
	defer srv.Close()

	c := NewMidtransClient(&config.Midtrans{
		BaseApiURL: srv.URL,
		ServerKey:  "SB-Mid-server-key",
	})

	resp, err := c.CreateSnapToken(context.Background(), &SnapTransactionRequest{
		TransactionDetails: SnapTransactionDetails{OrderID: "CH-1-abc", GrossAmount: 50000},
		ItemDetails: []SnapItemDetail{
			{ID: "p1", Name: "NFT Kit", Price: 50000, Quantity: 1},
		},
		CustomerDetails: SnapCustomerDetails{FirstName: "Budi", Email: "budi@example.com"},
	})

	require.NoError(t, err)
	assert.Equal(t, "snap-token-123", resp.Token)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("SB-Mid-server-key:"))
	assert.Equal(t, wantAuth, gotAuth)
	assert.Equal(t, "CH-1-abc", gotReq.TransactionDetails.OrderID)
	assert.Equal(t, int64(50000), gotReq.TransactionDetails.GrossAmount)
}

func TestCreateSnapToken_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error_messages":["Access denied"]}`))
	}))
	defer srv.Close()

	c := NewMidtransClient(&config.Midtrans{BaseApiURL: srv.URL, ServerKey: "wrong"})

	_, err := c.CreateSnapToken(context.Background(), &SnapTransactionRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "midtrans error 401")
}

func TestCreateSnapToken_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewMidtransClient(&config.Midtrans{BaseApiURL: srv.URL, ServerKey: "k"})

	_, err := c.CreateSnapToken(context.Background(), &SnapTransactionRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing snap token")
}
