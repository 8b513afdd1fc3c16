package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	momoTestAccessKey = "accesskey"
	momoTestSecret    = "secretkey"
)

func TestNewMoMoCreateRequestSignsItself(t *testing.T) {
	req := NewMoMoCreateRequest(
		"PARTNER", momoTestAccessKey, momoTestSecret,
		"req-1", "VS-1", "Thanh toan don hang VS-1",
		"https://shop.example/return", "https://shop.example/ipn",
		150000,
	)

	assert.Equal(t, "captureWallet", req.RequestType)
	assert.Equal(t, "vi", req.Lang)
	assert.NotEmpty(t, req.Signature)
	assert.Equal(t, SignMoMoRequest(req, momoTestSecret), req.Signature)
}

func TestSignMoMoRequestSensitiveToFields(t *testing.T) {
	req := NewMoMoCreateRequest(
		"PARTNER", momoTestAccessKey, momoTestSecret,
		"req-1", "VS-1", "order info",
		"https://shop.example/return", "https://shop.example/ipn",
		150000,
	)
	original := req.Signature

	req.Amount = 999
	assert.NotEqual(t, original, SignMoMoRequest(req, momoTestSecret))
}

func momoTestIPN() MoMoIPNParams {
	return MoMoIPNParams{
		PartnerCode:  "PARTNER",
		OrderID:      "VS-1",
		RequestID:    "req-1",
		Amount:       150000,
		OrderInfo:    "Thanh toan don hang VS-1",
		OrderType:    "momo_wallet",
		TransID:      4088878653,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1712000000000,
	}
}

func TestVerifyMoMoIPN(t *testing.T) {
	params := momoTestIPN()
	params.Signature = SignMoMoIPN(&params, momoTestAccessKey, momoTestSecret)

	assert.True(t, VerifyMoMoIPN(&params, momoTestAccessKey, momoTestSecret))

	t.Run("tampered amount rejected", func(t *testing.T) {
		tampered := params
		tampered.Amount = 1
		assert.False(t, VerifyMoMoIPN(&tampered, momoTestAccessKey, momoTestSecret))
	})

	t.Run("tampered result code rejected", func(t *testing.T) {
		tampered := params
		tampered.ResultCode = 9000
		assert.False(t, VerifyMoMoIPN(&tampered, momoTestAccessKey, momoTestSecret))
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		assert.False(t, VerifyMoMoIPN(&params, momoTestAccessKey, "othersecret"))
	})

	t.Run("missing signature rejected", func(t *testing.T) {
		unsigned := momoTestIPN()
		assert.False(t, VerifyMoMoIPN(&unsigned, momoTestAccessKey, momoTestSecret))
	})
}
