package gateway

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testZaloPay() *zalopayProvider {
	return NewZaloPay(ZaloPayConfig{
		AppID:       "2553",
		Key1:        "key1secret",
		Key2:        "key2secret",
		Endpoint:    "https://sb-openapi.zalopay.vn/v2/create",
		CallbackURL: "https://api.example.com/api/payments/callback/zalopay",
		RedirectURL: "https://api.example.com/api/payments/return/zalopay",
	}).(*zalopayProvider)
}

func zaloCallbackBody(key2 string, data map[string]interface{}, cbType int) []byte {
	raw, _ := json.Marshal(data)
	body, _ := json.Marshal(map[string]interface{}{
		"data": string(raw),
		"mac":  hmacSHA256(key2, string(raw)),
		"type": cbType,
	})
	return body
}

func TestZaloPayBuildPaymentMac(t *testing.T) {
	p := testZaloPay()
	created := time.UnixMilli(1709251200000)
	req, err := p.BuildPayment(PaymentParams{
		OrderID:   "240301_1709251200000",
		Amount:    decimal.NewFromInt(300000),
		OrderInfo: "Invoice INV-2",
		UserRef:   "tenant-1",
		CreatedAt: created,
		ExpiresAt: created.Add(15 * time.Minute),
	})
	require.NoError(t, err)

	u, err := url.Parse(req.PaymentURL)
	require.NoError(t, err)
	q := u.Query()

	expected := hmacSHA256("key1secret", strings.Join([]string{
		"2553", "240301_1709251200000", "tenant-1", "300000", "1709251200000", q.Get("embed_data"), "[]",
	}, "|"))
	assert.Equal(t, expected, q.Get("mac"))
	assert.Equal(t, "900", q.Get("expire_duration_seconds"))
	assert.Contains(t, q.Get("embed_data"), "redirecturl")
}

func TestZaloPayParseCallback(t *testing.T) {
	p := testZaloPay()
	data := map[string]interface{}{
		"app_id":       2553,
		"app_trans_id": "240301_1",
		"app_time":     1709251200000,
		"app_user":     "tenant-1",
		"amount":       300000,
		"embed_data":   "{}",
		"item":         "[]",
		"zp_trans_id":  240301000000123,
		"server_time":  1709251260000,
	}

	cb, err := p.ParseCallback(RawCallback{Body: zaloCallbackBody("key2secret", data, 1)})
	require.NoError(t, err)
	assert.True(t, cb.Success)
	assert.Equal(t, "240301_1", cb.OrderID)
	assert.Equal(t, "240301000000123", cb.GatewayTransactionID)
	assert.True(t, decimal.NewFromInt(300000).Equal(cb.Amount))

	_, err = p.ParseCallback(RawCallback{Body: zaloCallbackBody("wrong", data, 1)})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	cb, err = p.ParseCallback(RawCallback{Body: zaloCallbackBody("key2secret", data, 2)})
	require.NoError(t, err)
	assert.False(t, cb.Success)
}

func TestZaloPayAcknowledge(t *testing.T) {
	p := testZaloPay()
	codes := map[Outcome]int{
		OutcomeSuccess:          1,
		OutcomeAlreadyProcessed: 2,
		OutcomeError:            0,
		OutcomeInvalidSignature: -1,
	}
	for o, code := range codes {
		_, body := p.Acknowledge(nil, o)
		assert.Equal(t, code, body.(map[string]interface{})["return_code"], o.String())
	}
}

func TestZaloPayParseReturn(t *testing.T) {
	p := testZaloPay()
	q := url.Values{}
	q.Set("appid", "2553")
	q.Set("apptransid", "240301_1")
	q.Set("pmcid", "38")
	q.Set("bankcode", "")
	q.Set("amount", "300000")
	q.Set("discountamount", "0")
	q.Set("status", "1")
	q.Set("checksum", hmacSHA256("key2secret", "2553|240301_1|38||300000|0|1"))

	res := p.ParseReturn(q)
	assert.True(t, res.Success)
	assert.Equal(t, "240301_1", res.OrderID)

	q.Set("status", "-49")
	assert.False(t, p.ParseReturn(q).Success)
}
