package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetAndDetect(t *testing.T) {
	r := NewRegistry(testMomo(), testVNPay(), testZaloPay())

	p, ok := r.Get("momo")
	require.True(t, ok)
	assert.Equal(t, "MOMO", p.Method())

	p, ok = r.Get("VNPAY")
	require.True(t, ok)
	assert.Equal(t, "VNPAY", p.Method())

	_, ok = r.Get("paypal")
	assert.False(t, ok)

	cases := []struct {
		name   string
		fields map[string]interface{}
		want   string
	}{
		{"momo shape", map[string]interface{}{"partnerCode": "X", "resultCode": 0.0, "orderId": "o"}, "MOMO"},
		{"vnpay shape", map[string]interface{}{"vnp_TxnRef": "o", "vnp_Amount": "100"}, "VNPAY"},
		{"zalopay shape", map[string]interface{}{"data": "{}", "mac": "m", "type": 1.0}, "ZALOPAY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := r.Detect(tc.fields)
			require.True(t, ok)
			assert.Equal(t, tc.want, p.Method())
		})
	}

	_, ok = r.Detect(map[string]interface{}{"foo": "bar"})
	assert.False(t, ok)

	// partnerCode alone is not a MoMo notification
	_, ok = r.Detect(map[string]interface{}{"partnerCode": "X"})
	assert.False(t, ok)

	assert.Equal(t, []string{"MOMO", "VNPAY", "ZALOPAY"}, r.Methods())
}

func TestFieldsMergesBodyAndQuery(t *testing.T) {
	f := Fields(RawCallback{Body: []byte(`{"data":"x"}`)})
	assert.Equal(t, "x", f["data"])

	f = Fields(RawCallback{Body: []byte("vnp_TxnRef=abc&vnp_Amount=100")})
	assert.Equal(t, "abc", f["vnp_TxnRef"])
}
