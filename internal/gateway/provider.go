// Package gateway builds signed payment requests for the supported online
// payment providers and verifies their callbacks.
package gateway

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSignature  = errors.New("gateway: invalid signature")
	ErrMalformedCallback = errors.New("gateway: malformed callback")
	ErrUnknownProvider   = errors.New("gateway: unrecognized provider")
	ErrInvalidConfig     = errors.New("gateway: provider not configured")
	ErrUnsupportedAmount = errors.New("gateway: amount must be a positive whole number")
)

// Outcome is the result of reconciling one callback. Each provider maps it to its own ack.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeAlreadyProcessed
	OutcomeInvalidSignature
	OutcomeNotFound
	OutcomeInvalidAmount
	OutcomeGatewayFailed
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeAlreadyProcessed:
		return "already_processed"
	case OutcomeInvalidSignature:
		return "invalid_signature"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidAmount:
		return "invalid_amount"
	case OutcomeGatewayFailed:
		return "gateway_failed"
	default:
		return "error"
	}
}

// PaymentParams is what a provider needs to sign a payment request.
type PaymentParams struct {
	OrderID   string
	Amount    decimal.Decimal
	OrderInfo string
	ReturnURL string // overrides the configured redirect when set
	ClientIP  string
	UserRef   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// PaymentRequest is a signed, ready-to-redirect payment order.
type PaymentRequest struct {
	Provider   string            `json:"provider"`
	OrderID    string            `json:"order_id"`
	PaymentURL string            `json:"payment_url"`
	Amount     decimal.Decimal   `json:"amount"`
	Metadata   map[string]string `json:"metadata"`
}

// RawCallback is an inbound provider notification as received over HTTP.
type RawCallback struct {
	Body  []byte
	Query url.Values
}

// CallbackData is a parsed provider notification.
type CallbackData struct {
	Provider             string
	OrderID              string
	Amount               decimal.Decimal
	GatewayTransactionID string
	Success              bool
	Signature            string
	Message              string
	RequestID            string
	Payload              []byte // normalized JSON of the received fields
}

// ReturnResult is the outcome shown to a user redirected back from the provider.
type ReturnResult struct {
	OrderID string
	Success bool
	Amount  decimal.Decimal
}

// Provider is one online payment gateway.
type Provider interface {
	// Method is the payment method stored on payments settled by this provider.
	Method() string
	BuildPayment(p PaymentParams) (*PaymentRequest, error)
	// ParseCallback verifies and decodes a notification. On ErrInvalidSignature the
	// returned data still carries whatever identifiers could be read.
	ParseCallback(raw RawCallback) (*CallbackData, error)
	Acknowledge(data *CallbackData, o Outcome) (int, interface{})
	MatchesCallback(fields map[string]interface{}) bool
	ParseReturn(q url.Values) ReturnResult
}

// Tag is the route name of a provider, e.g. "momo".
func Tag(p Provider) string {
	return strings.ToLower(p.Method())
}

// Fields flattens a raw callback into a field map: a JSON object body, else a
// form-encoded body, with query parameters merged in.
func Fields(raw RawCallback) map[string]interface{} {
	fields := make(map[string]interface{})
	body := strings.TrimSpace(string(raw.Body))
	if body != "" {
		if err := json.Unmarshal([]byte(body), &fields); err != nil {
			if form, err := url.ParseQuery(body); err == nil {
				for k, v := range form {
					if len(v) > 0 {
						fields[k] = v[0]
					}
				}
			}
		}
	}
	for k, v := range raw.Query {
		if _, exists := fields[k]; !exists && len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields
}

func hasAll(fields map[string]interface{}, keys ...string) bool {
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return false
		}
	}
	return true
}

// wholeAmount converts an amount to integer VND, rejecting fractions and non-positive values.
func wholeAmount(d decimal.Decimal) (int64, error) {
	if !d.IsPositive() || !d.Equal(d.Truncate(0)) {
		return 0, ErrUnsupportedAmount
	}
	return d.IntPart(), nil
}
