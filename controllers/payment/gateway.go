package paymentControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Gateway is the synchronous client for the external transaction
// processor. The charge result or failure is relayed verbatim; there
// is no retry or reconciliation here.
type Gateway struct {
	APIURL     string
	MerchantID string
	AuthKey    string
	TestMode   int
	Client     *http.Client
}

type chargeResponse struct {
	Transaction struct {
		ID     string `json:"id"`
		Amount string `json:"amount"`
		Status string `json:"status"`
	} `json:"transaction"`
	ClientToken string `json:"clientToken"`
	Error       *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChargeResult is what the order flow consumes: an opaque transaction
// id plus the processor's status string.
type ChargeResult struct {
	TransactionID string
	Amount        string
	Status        string
}

// NewGatewayFromEnv reads the processor configuration. Sandbox mode
// keeps the live endpoint but flags transactions as test.
func NewGatewayFromEnv() (*Gateway, error) {
	g := &Gateway{
		APIURL:     os.Getenv("PAYMENT_API_URL"),
		MerchantID: os.Getenv("PAYMENT_MERCHANT_ID"),
		AuthKey:    os.Getenv("PAYMENT_AUTH_KEY"),
		Client:     &http.Client{},
	}
	if mode := os.Getenv("PAYMENT_MODE"); mode == "sandbox" || mode == "dev" {
		g.TestMode = 1
	}
	if g.APIURL == "" || g.MerchantID == "" || g.AuthKey == "" {
		return nil, fmt.Errorf("payment gateway configuration missing")
	}
	return g, nil
}

func (g *Gateway) post(payload map[string]interface{}) (*chargeResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, g.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed chargeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("%s", parsed.Error.Message)
	}
	return &parsed, nil
}

// ClientToken asks the processor for a client token the checkout UI
// embeds before collecting a payment method.
func (g *Gateway) ClientToken() (string, error) {
	resp, err := g.post(map[string]interface{}{
		"method":   "token",
		"merchant": g.MerchantID,
		"authkey":  g.AuthKey,
		"test":     g.TestMode,
	})
	if err != nil {
		return "", err
	}
	if resp.ClientToken == "" {
		return "", fmt.Errorf("gateway returned empty client token")
	}
	return resp.ClientToken, nil
}

// Charge submits a sale for settlement and returns the processor's
// transaction id and status.
func (g *Gateway) Charge(amount, paymentMethodNonce string) (*ChargeResult, error) {
	resp, err := g.post(map[string]interface{}{
		"method":               "sale",
		"merchant":             g.MerchantID,
		"authkey":              g.AuthKey,
		"amount":               amount,
		"payment_method_nonce": paymentMethodNonce,
		"test":                 g.TestMode,
		"options": map[string]interface{}{
			"submit_for_settlement": true,
		},
	})
	if err != nil {
		return nil, err
	}
	if resp.Transaction.ID == "" {
		return nil, fmt.Errorf("gateway returned empty transaction id")
	}
	return &ChargeResult{
		TransactionID: resp.Transaction.ID,
		Amount:        resp.Transaction.Amount,
		Status:        resp.Transaction.Status,
	}, nil
}
