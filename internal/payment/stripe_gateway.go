package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"

	"go.uber.org/zap"
)

const stripeBaseURL = "https://api.stripe.com"

type stripeGateway struct {
	apiKey        string
	webhookSecret string
	successURL    string
	cancelURL     string
	baseURL       string
	httpClient    *http.Client
}

// ----------------- Constructor -----------------

func NewStripeGateway(cfg *config.Config) Gateway {
	if cfg.StripeSecretKey == "" {
		logger.L().Warn("Stripe secret key is empty")
	}

	return &stripeGateway{
		apiKey:        cfg.StripeSecretKey,
		webhookSecret: cfg.StripeWebhookSecret,
		successURL:    cfg.CheckoutSuccessURL,
		cancelURL:     cfg.CheckoutCancelURL,
		baseURL:       stripeBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- CreateCheckoutSession -----------------

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, o *order.Order) (*CheckoutSession, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int64("order_id", o.ID),
		zap.Int64("amount_cents", o.TotalCents),
		zap.Int("item_count", len(o.Items)),
	)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("client_reference_id", strconv.FormatInt(o.ID, 10))
	form.Set("success_url", g.successURL)
	form.Set("cancel_url", g.cancelURL)

	for i, item := range o.Items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitPriceCents, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.ProductName)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Info("creating stripe checkout session")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("stripe request failed", zap.Error(err))
		return nil, &PaymentError{Reason: "provider unreachable", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, &PaymentError{Reason: "unreadable provider response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("stripe returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &PaymentError{Reason: stripeErrorMessage(bodyBytes)}
	}

	var res struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding stripe response", zap.Error(err))
		return nil, &PaymentError{Reason: "malformed provider response", Err: err}
	}

	log.Info("stripe checkout session created",
		zap.String("session_id", res.ID),
	)

	return &CheckoutSession{
		ID:      res.ID,
		URL:     res.URL,
		OrderID: o.ID,
	}, nil
}

func stripeErrorMessage(body []byte) string {
	var res struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &res); err == nil && res.Error.Message != "" {
		return res.Error.Message
	}
	return "provider rejected the session"
}

// ----------------- ParseWebhookRequest -----------------

type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ClientReferenceID string `json:"client_reference_id"`
		} `json:"object"`
	} `json:"data"`
}

func (g *stripeGateway) ParseWebhookRequest(r *http.Request) (*PaymentResult, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook body: %w", err)
	}
	defer r.Body.Close()

	var event stripeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}

	var outcome Outcome
	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		outcome = OutcomePaid
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		outcome = OutcomeFailed
	default:
		return nil, nil
	}

	orderID, err := strconv.ParseInt(event.Data.Object.ClientReferenceID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid order reference %q: %w", event.Data.Object.ClientReferenceID, err)
	}

	return &PaymentResult{
		OrderID: orderID,
		Outcome: outcome,
	}, nil
}

// ----------------- VerifySignature -----------------

// VerifySignature checks the Stripe-Signature header (t=...,v1=...) against
// an HMAC-SHA256 of "<timestamp>.<payload>". The body is restored so the
// webhook handler can parse it afterwards.
func (g *stripeGateway) VerifySignature(r *http.Request) error {
	if g.webhookSecret == "" {
		return nil // skip in dev
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read webhook body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	header := r.Header.Get("Stripe-Signature")
	if header == "" {
		return errors.New("missing webhook signature")
	}

	var timestamp, signature string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "v1":
			signature = v
		}
	}
	if timestamp == "" || signature == "" {
		return errors.New("malformed webhook signature")
	}

	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errors.New("invalid webhook signature")
	}

	return nil
}
