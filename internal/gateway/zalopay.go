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

// zaloCallbackOrder is the callback type of a completed order.
const zaloCallbackOrder = 1

// ZaloPayConfig holds the app credentials issued by ZaloPay.
type ZaloPayConfig struct {
	AppID         string
	Key1          string // signs orders
	Key2          string // verifies callbacks
	Endpoint      string
	CallbackURL   string
	RedirectURL   string
	SkipSignature bool
}

type zalopayProvider struct {
	cfg ZaloPayConfig
}

// NewZaloPay returns the ZaloPay provider.
func NewZaloPay(cfg ZaloPayConfig) Provider {
	return &zalopayProvider{cfg: cfg}
}

type zaloCallback struct {
	Data string `json:"data"`
	Mac  string `json:"mac"`
	Type int    `json:"type"`
}

type zaloCallbackData struct {
	AppID      json.Number `json:"app_id"`
	AppTransID string      `json:"app_trans_id"`
	AppTime    int64       `json:"app_time"`
	AppUser    string      `json:"app_user"`
	Amount     int64       `json:"amount"`
	EmbedData  string      `json:"embed_data"`
	Item       string      `json:"item"`
	ZpTransID  json.Number `json:"zp_trans_id"`
	ServerTime int64       `json:"server_time"`
	Channel    int         `json:"channel"`
}

func (p *zalopayProvider) Method() string { return model.MethodZaloPay }

func (p *zalopayProvider) BuildPayment(params PaymentParams) (*PaymentRequest, error) {
	if p.cfg.AppID == "" || p.cfg.Key1 == "" || p.cfg.Endpoint == "" {
		return nil, fmt.Errorf("zalopay: %w", ErrInvalidConfig)
	}
	amount, err := wholeAmount(params.Amount)
	if err != nil {
		return nil, err
	}

	redirect := p.cfg.RedirectURL
	if params.ReturnURL != "" {
		redirect = params.ReturnURL
	}
	embed, err := json.Marshal(map[string]string{"redirecturl": redirect})
	if err != nil {
		return nil, err
	}
	appUser := params.UserRef
	if appUser == "" {
		appUser = "motelhub"
	}
	appTime := strconv.FormatInt(params.CreatedAt.UnixMilli(), 10)
	amountStr := strconv.FormatInt(amount, 10)
	item := "[]"

	mac := hmacSHA256(p.cfg.Key1, strings.Join([]string{
		p.cfg.AppID, params.OrderID, appUser, amountStr, appTime, string(embed), item,
	}, "|"))

	q := url.Values{}
	q.Set("app_id", p.cfg.AppID)
	q.Set("app_trans_id", params.OrderID)
	q.Set("app_user", appUser)
	q.Set("app_time", appTime)
	q.Set("amount", amountStr)
	q.Set("embed_data", string(embed))
	q.Set("item", item)
	q.Set("description", params.OrderInfo)
	q.Set("bank_code", "")
	q.Set("callback_url", p.cfg.CallbackURL)
	q.Set("mac", mac)

	meta := map[string]string{"app_time": appTime, "mac": mac}
	if !params.ExpiresAt.IsZero() {
		ttl := int64(params.ExpiresAt.Sub(params.CreatedAt) / time.Second)
		if ttl > 0 {
			q.Set("expire_duration_seconds", strconv.FormatInt(ttl, 10))
			meta["expire_duration_seconds"] = strconv.FormatInt(ttl, 10)
		}
	}

	return &PaymentRequest{
		Provider:   p.Method(),
		OrderID:    params.OrderID,
		PaymentURL: p.cfg.Endpoint + "?" + q.Encode(),
		Amount:     params.Amount,
		Metadata:   meta,
	}, nil
}

func (p *zalopayProvider) ParseCallback(raw RawCallback) (*CallbackData, error) {
	var cb zaloCallback
	if err := json.Unmarshal(raw.Body, &cb); err != nil {
		return nil, fmt.Errorf("zalopay: %w: %v", ErrMalformedCallback, err)
	}
	if cb.Data == "" {
		return nil, fmt.Errorf("zalopay: %w: missing data", ErrMalformedCallback)
	}

	var d zaloCallbackData
	if err := json.Unmarshal([]byte(cb.Data), &d); err != nil {
		return nil, fmt.Errorf("zalopay: %w: %v", ErrMalformedCallback, err)
	}

	data := &CallbackData{
		Provider:             p.Method(),
		OrderID:              d.AppTransID,
		Amount:               decimal.NewFromInt(d.Amount),
		GatewayTransactionID: d.ZpTransID.String(),
		Success:              cb.Type == zaloCallbackOrder,
		Signature:            cb.Mac,
		Payload:              raw.Body,
	}
	if !p.cfg.SkipSignature && !verifyHex(hmacSHA256(p.cfg.Key2, cb.Data), cb.Mac) {
		return data, ErrInvalidSignature
	}
	return data, nil
}

func (p *zalopayProvider) Acknowledge(_ *CallbackData, o Outcome) (int, interface{}) {
	code, message := 1, "success"
	switch o {
	case OutcomeAlreadyProcessed:
		code, message = 2, "duplicate"
	case OutcomeInvalidSignature:
		code, message = -1, "mac not equal"
	case OutcomeNotFound:
		code, message = -1, "order not found"
	case OutcomeInvalidAmount:
		code, message = -1, "invalid amount"
	case OutcomeError:
		// ZaloPay retries on return_code 0
		code, message = 0, "retry"
	}
	return http.StatusOK, map[string]interface{}{"return_code": code, "return_message": message}
}

func (p *zalopayProvider) MatchesCallback(fields map[string]interface{}) bool {
	return hasAll(fields, "data", "mac")
}

// ParseReturn verifies the redirect checksum:
// HMAC-SHA256(key2, appid|apptransid|pmcid|bankcode|amount|discountamount|status).
func (p *zalopayProvider) ParseReturn(q url.Values) ReturnResult {
	checksum := hmacSHA256(p.cfg.Key2, strings.Join([]string{
		q.Get("appid"), q.Get("apptransid"), q.Get("pmcid"), q.Get("bankcode"),
		q.Get("amount"), q.Get("discountamount"), q.Get("status"),
	}, "|"))
	verified := p.cfg.SkipSignature || verifyHex(checksum, q.Get("checksum"))

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		amount = decimal.Zero
	}
	return ReturnResult{
		OrderID: q.Get("apptransid"),
		Success: verified && q.Get("status") == "1",
		Amount:  amount,
	}
}
