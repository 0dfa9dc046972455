package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.stripe.com/v1"

// Gateway is a client for the card-payment provider's REST API.
type Gateway struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewGateway creates a new payment gateway client. apiURL falls back to
// the production endpoint when empty.
func NewGateway(secretKey, apiURL string) *Gateway {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Gateway{
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateIntentParams describes a payment to start. Amount is in the
// provider's minor units (cents).
type CreateIntentParams struct {
	Amount          int64
	Currency        string
	PaymentMethodID string
	Metadata        map[string]string
}

// Intent is the provider's view of a started payment
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type gatewayError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreatePaymentIntent starts a payment and returns the client secret the
// frontend needs to confirm it.
func (g *Gateway) CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	if g.secretKey == "" {
		return nil, fmt.Errorf("payment gateway secret key not set")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.Amount, 10))
	form.Set("currency", params.Currency)
	form.Set("payment_method", params.PaymentMethodID)
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create intent request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("intent request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read intent response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr gatewayError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("payment gateway error (%d)", resp.StatusCode)
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("decode intent response: %w", err)
	}
	return &intent, nil
}
