package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vnpayTestSecret = "testsecret"

func vnpayTestParams() map[string]string {
	return map[string]string{
		"vnp_Version":   "2.1.0",
		"vnp_Command":   "pay",
		"vnp_TmnCode":   "DEMO0001",
		"vnp_Amount":    "15000000",
		"vnp_CurrCode":  "VND",
		"vnp_TxnRef":    "abc-123",
		"vnp_OrderInfo": "Thanh toan don hang VS-1",
	}
}

func TestSignVNPayDeterministic(t *testing.T) {
	params := vnpayTestParams()
	first := SignVNPay(params, vnpayTestSecret)
	second := SignVNPay(params, vnpayTestSecret)
	assert.Equal(t, first, second)
	assert.Len(t, first, 128) // hex-encoded SHA512
}

func TestSignVNPayExcludesHashFields(t *testing.T) {
	params := vnpayTestParams()
	clean := SignVNPay(params, vnpayTestSecret)

	params["vnp_SecureHash"] = "whatever"
	params["vnp_SecureHashType"] = "HMACSHA512"
	assert.Equal(t, clean, SignVNPay(params, vnpayTestSecret))
}

func TestBuildVNPayURL(t *testing.T) {
	params := vnpayTestParams()
	u := BuildVNPayURL("https://sandbox.vnpayment.vn/paymentv2/vpcpay.html", params, vnpayTestSecret)

	require.True(t, strings.HasPrefix(u, "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?"))
	assert.Contains(t, u, "vnp_SecureHash="+SignVNPay(params, vnpayTestSecret))
	assert.Contains(t, u, "vnp_TxnRef=abc-123")

	// Keys appear sorted in the query string
	query := strings.SplitN(u, "?", 2)[1]
	assert.Less(t, strings.Index(query, "vnp_Amount"), strings.Index(query, "vnp_Version"))
}

func TestVerifyVNPaySignature(t *testing.T) {
	params := vnpayTestParams()
	params["vnp_ResponseCode"] = "00"
	params["vnp_SecureHash"] = SignVNPay(params, vnpayTestSecret)

	assert.True(t, VerifyVNPaySignature(params, vnpayTestSecret))

	t.Run("uppercase signature accepted", func(t *testing.T) {
		upper := map[string]string{}
		for k, v := range params {
			upper[k] = v
		}
		upper["vnp_SecureHash"] = strings.ToUpper(upper["vnp_SecureHash"])
		assert.True(t, VerifyVNPaySignature(upper, vnpayTestSecret))
	})

	t.Run("tampered amount rejected", func(t *testing.T) {
		tampered := map[string]string{}
		for k, v := range params {
			tampered[k] = v
		}
		tampered["vnp_Amount"] = "100"
		assert.False(t, VerifyVNPaySignature(tampered, vnpayTestSecret))
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		assert.False(t, VerifyVNPaySignature(params, "othersecret"))
	})

	t.Run("missing signature rejected", func(t *testing.T) {
		assert.False(t, VerifyVNPaySignature(vnpayTestParams(), vnpayTestSecret))
	})
}
