package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"motelhub/internal/model"

	"github.com/shopspring/decimal"
)

const momoRequestType = "captureWallet"

// MomoConfig holds the merchant credentials issued by MoMo.
type MomoConfig struct {
	PartnerCode   string
	AccessKey     string
	SecretKey     string
	Endpoint      string
	IPNURL        string
	RedirectURL   string
	SkipSignature bool
}

type momoProvider struct {
	cfg MomoConfig
	now func() time.Time
}

// NewMomo returns the MoMo wallet provider (HMAC-SHA256 signatures).
func NewMomo(cfg MomoConfig) Provider {
	return &momoProvider{cfg: cfg, now: time.Now}
}

// momoNotification is the IPN body; the return redirect carries the same fields as query params.
type momoNotification struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

func (p *momoProvider) Method() string { return model.MethodMomo }

func (p *momoProvider) BuildPayment(params PaymentParams) (*PaymentRequest, error) {
	if p.cfg.PartnerCode == "" || p.cfg.SecretKey == "" || p.cfg.Endpoint == "" {
		return nil, fmt.Errorf("momo: %w", ErrInvalidConfig)
	}
	amount, err := wholeAmount(params.Amount)
	if err != nil {
		return nil, err
	}

	redirect := p.cfg.RedirectURL
	if params.ReturnURL != "" {
		redirect = params.ReturnURL
	}
	requestID := params.OrderID
	extraData := ""

	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		p.cfg.AccessKey, amount, extraData, p.cfg.IPNURL, params.OrderID, params.OrderInfo,
		p.cfg.PartnerCode, redirect, requestID, momoRequestType,
	)
	signature := hmacSHA256(p.cfg.SecretKey, raw)

	q := url.Values{}
	q.Set("partnerCode", p.cfg.PartnerCode)
	q.Set("accessKey", p.cfg.AccessKey)
	q.Set("requestId", requestID)
	q.Set("amount", strconv.FormatInt(amount, 10))
	q.Set("orderId", params.OrderID)
	q.Set("orderInfo", params.OrderInfo)
	q.Set("redirectUrl", redirect)
	q.Set("ipnUrl", p.cfg.IPNURL)
	q.Set("extraData", extraData)
	q.Set("requestType", momoRequestType)
	q.Set("lang", "vi")
	q.Set("signature", signature)

	return &PaymentRequest{
		Provider:   p.Method(),
		OrderID:    params.OrderID,
		PaymentURL: p.cfg.Endpoint + "?" + q.Encode(),
		Amount:     params.Amount,
		Metadata: map[string]string{
			"requestId":   requestID,
			"requestType": momoRequestType,
			"signature":   signature,
		},
	}, nil
}

func (p *momoProvider) signNotification(n momoNotification) string {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		p.cfg.AccessKey, n.Amount, n.ExtraData, n.Message, n.OrderID, n.OrderInfo, n.OrderType,
		n.PartnerCode, n.PayType, n.RequestID, n.ResponseTime, n.ResultCode, n.TransID,
	)
	return hmacSHA256(p.cfg.SecretKey, raw)
}

func (p *momoProvider) ParseCallback(raw RawCallback) (*CallbackData, error) {
	var n momoNotification
	if err := json.Unmarshal(raw.Body, &n); err != nil {
		return nil, fmt.Errorf("momo: %w: %v", ErrMalformedCallback, err)
	}
	if n.OrderID == "" {
		return nil, fmt.Errorf("momo: %w: missing orderId", ErrMalformedCallback)
	}

	data := &CallbackData{
		Provider:             p.Method(),
		OrderID:              n.OrderID,
		RequestID:            n.RequestID,
		Amount:               decimal.NewFromInt(n.Amount),
		GatewayTransactionID: strconv.FormatInt(n.TransID, 10),
		Success:              n.ResultCode == 0,
		Signature:            n.Signature,
		Message:              n.Message,
		Payload:              raw.Body,
	}
	if !p.cfg.SkipSignature && !verifyHex(p.signNotification(n), n.Signature) {
		return data, ErrInvalidSignature
	}
	return data, nil
}

func (p *momoProvider) Acknowledge(data *CallbackData, o Outcome) (int, interface{}) {
	resultCode, message := 0, "Success"
	status := http.StatusOK
	switch o {
	case OutcomeAlreadyProcessed:
		message = "Order already confirmed"
	case OutcomeGatewayFailed:
		message = "Failure acknowledged"
	case OutcomeInvalidSignature:
		resultCode, message = 97, "Invalid signature"
	case OutcomeNotFound:
		resultCode, message = 42, "Order not found"
	case OutcomeInvalidAmount:
		resultCode, message = 22, "Invalid amount"
	case OutcomeError:
		resultCode, message = 99, "Unknown error"
		status = http.StatusInternalServerError
	}

	var orderID, requestID string
	if data != nil {
		orderID, requestID = data.OrderID, data.RequestID
	}
	return status, map[string]interface{}{
		"partnerCode":  p.cfg.PartnerCode,
		"orderId":      orderID,
		"requestId":    requestID,
		"resultCode":   resultCode,
		"message":      message,
		"responseTime": p.now().UnixMilli(),
	}
}

func (p *momoProvider) MatchesCallback(fields map[string]interface{}) bool {
	return hasAll(fields, "partnerCode", "resultCode")
}

func (p *momoProvider) ParseReturn(q url.Values) ReturnResult {
	n := momoNotification{
		PartnerCode: q.Get("partnerCode"),
		OrderID:     q.Get("orderId"),
		RequestID:   q.Get("requestId"),
		OrderInfo:   q.Get("orderInfo"),
		OrderType:   q.Get("orderType"),
		Message:     q.Get("message"),
		PayType:     q.Get("payType"),
		ExtraData:   q.Get("extraData"),
		Signature:   q.Get("signature"),
	}
	n.Amount, _ = strconv.ParseInt(q.Get("amount"), 10, 64)
	n.TransID, _ = strconv.ParseInt(q.Get("transId"), 10, 64)
	n.ResponseTime, _ = strconv.ParseInt(q.Get("responseTime"), 10, 64)
	resultCode, err := strconv.Atoi(q.Get("resultCode"))
	if err != nil {
		resultCode = -1
	}
	n.ResultCode = resultCode

	verified := p.cfg.SkipSignature || verifyHex(p.signNotification(n), n.Signature)
	return ReturnResult{
		OrderID: n.OrderID,
		Success: verified && n.ResultCode == 0,
		Amount:  decimal.NewFromInt(n.Amount),
	}
}
