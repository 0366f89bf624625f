package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"motelhub/internal/model"

	"github.com/shopspring/decimal"
)

const (
	vnpVersion    = "2.1.0"
	vnpTimeLayout = "20060102150405"
)

// VNPay timestamps are always in Vietnam time.
var vnpLocation = time.FixedZone("ICT", 7*60*60)

// VNPayConfig holds the terminal credentials issued by VNPay.
type VNPayConfig struct {
	TmnCode       string
	HashSecret    string
	PayURL        string
	ReturnURL     string
	SkipSignature bool
}

type vnpayProvider struct {
	cfg VNPayConfig
}

// NewVNPay returns the VNPay provider (HMAC-SHA512 over the sorted query string).
func NewVNPay(cfg VNPayConfig) Provider {
	return &vnpayProvider{cfg: cfg}
}

func (p *vnpayProvider) Method() string { return model.MethodVNPay }

func (p *vnpayProvider) BuildPayment(params PaymentParams) (*PaymentRequest, error) {
	if p.cfg.TmnCode == "" || p.cfg.HashSecret == "" || p.cfg.PayURL == "" {
		return nil, fmt.Errorf("vnpay: %w", ErrInvalidConfig)
	}
	amount, err := wholeAmount(params.Amount)
	if err != nil {
		return nil, err
	}

	returnURL := p.cfg.ReturnURL
	if params.ReturnURL != "" {
		returnURL = params.ReturnURL
	}
	ip := params.ClientIP
	if ip == "" {
		ip = "127.0.0.1"
	}

	vnp := map[string]string{
		"vnp_Version":    vnpVersion,
		"vnp_Command":    "pay",
		"vnp_TmnCode":    p.cfg.TmnCode,
		"vnp_Amount":     strconv.FormatInt(amount*100, 10),
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     params.OrderID,
		"vnp_OrderInfo":  params.OrderInfo,
		"vnp_OrderType":  "billpayment",
		"vnp_Locale":     "vn",
		"vnp_ReturnUrl":  returnURL,
		"vnp_IpAddr":     ip,
		"vnp_CreateDate": params.CreatedAt.In(vnpLocation).Format(vnpTimeLayout),
	}
	if !params.ExpiresAt.IsZero() {
		vnp["vnp_ExpireDate"] = params.ExpiresAt.In(vnpLocation).Format(vnpTimeLayout)
	}

	query := sortedQuery(vnp)
	hash := hmacSHA512(p.cfg.HashSecret, query)

	return &PaymentRequest{
		Provider:   p.Method(),
		OrderID:    params.OrderID,
		PaymentURL: p.cfg.PayURL + "?" + query + "&vnp_SecureHash=" + hash,
		Amount:     params.Amount,
		Metadata: map[string]string{
			"vnp_CreateDate": vnp["vnp_CreateDate"],
			"vnp_ExpireDate": vnp["vnp_ExpireDate"],
		},
	}, nil
}

// vnpParams keeps the vnp_* fields of a notification as strings.
func vnpParams(fields map[string]interface{}) map[string]string {
	out := make(map[string]string)
	for k, v := range fields {
		if !strings.HasPrefix(k, "vnp_") {
			continue
		}
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

func (p *vnpayProvider) verify(vnp map[string]string) bool {
	if p.cfg.SkipSignature {
		return true
	}
	signed := make(map[string]string, len(vnp))
	for k, v := range vnp {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		signed[k] = v
	}
	return verifyHex(hmacSHA512(p.cfg.HashSecret, sortedQuery(signed)), vnp["vnp_SecureHash"])
}

// amountOf converts vnp_Amount (minor units) back to VND.
func amountOf(vnp map[string]string) decimal.Decimal {
	minor, err := decimal.NewFromString(vnp["vnp_Amount"])
	if err != nil {
		return decimal.Zero
	}
	return minor.Div(decimal.NewFromInt(100))
}

func succeeded(vnp map[string]string) bool {
	return vnp["vnp_ResponseCode"] == "00" && vnp["vnp_TransactionStatus"] == "00"
}

func (p *vnpayProvider) ParseCallback(raw RawCallback) (*CallbackData, error) {
	vnp := vnpParams(Fields(raw))
	if vnp["vnp_TxnRef"] == "" {
		return nil, fmt.Errorf("vnpay: %w: missing vnp_TxnRef", ErrMalformedCallback)
	}
	payload, _ := json.Marshal(vnp)

	data := &CallbackData{
		Provider:             p.Method(),
		OrderID:              vnp["vnp_TxnRef"],
		Amount:               amountOf(vnp),
		GatewayTransactionID: vnp["vnp_TransactionNo"],
		Success:              succeeded(vnp),
		Signature:            vnp["vnp_SecureHash"],
		Message:              vnp["vnp_ResponseCode"],
		Payload:              payload,
	}
	if !p.verify(vnp) {
		return data, ErrInvalidSignature
	}
	return data, nil
}

func (p *vnpayProvider) Acknowledge(_ *CallbackData, o Outcome) (int, interface{}) {
	code, message := "00", "Confirm Success"
	switch o {
	case OutcomeAlreadyProcessed:
		code, message = "02", "Order already confirmed"
	case OutcomeNotFound:
		code, message = "01", "Order not found"
	case OutcomeInvalidAmount:
		code, message = "04", "Invalid amount"
	case OutcomeInvalidSignature:
		code, message = "97", "Invalid signature"
	case OutcomeError:
		code, message = "99", "Unknown error"
	}
	// VNPay reads RspCode; the HTTP status is always 200
	return http.StatusOK, map[string]string{"RspCode": code, "Message": message}
}

func (p *vnpayProvider) MatchesCallback(fields map[string]interface{}) bool {
	return hasAll(fields, "vnp_TxnRef")
}

func (p *vnpayProvider) ParseReturn(q url.Values) ReturnResult {
	fields := make(map[string]interface{}, len(q))
	for k := range q {
		fields[k] = q.Get(k)
	}
	vnp := vnpParams(fields)
	return ReturnResult{
		OrderID: vnp["vnp_TxnRef"],
		Success: p.verify(vnp) && succeeded(vnp),
		Amount:  amountOf(vnp),
	}
}
