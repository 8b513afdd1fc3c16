package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MoMo result codes
const (
	MoMoResultSuccess = 0

	momoRequestType = "captureWallet"
)

// MoMoCreateRequest is the outbound create-payment body
type MoMoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

// MoMoCreateResponse is the provider's create-payment reply
type MoMoCreateResponse struct {
	PartnerCode  string `json:"partnerCode"`
	RequestID    string `json:"requestId"`
	OrderID      string `json:"orderId"`
	Amount       int64  `json:"amount"`
	ResponseTime int64  `json:"responseTime"`
	Message      string `json:"message"`
	ResultCode   int    `json:"resultCode"`
	PayURL       string `json:"payUrl"`
	Deeplink     string `json:"deeplink"`
	QRCodeURL    string `json:"qrCodeUrl"`
}

// MoMoIPNParams is the inbound payment notification
type MoMoIPNParams struct {
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

func momoHMAC(raw, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignMoMoRequest computes the HMAC-SHA256 over the provider-specified
// fixed field order for create-payment requests
func SignMoMoRequest(req *MoMoCreateRequest, secret string) string {
	raw := fmt.Sprintf("accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		req.AccessKey, req.Amount, req.ExtraData, req.IPNURL, req.OrderID,
		req.OrderInfo, req.PartnerCode, req.RedirectURL, req.RequestID, req.RequestType)
	return momoHMAC(raw, secret)
}

// SignMoMoIPN computes the HMAC-SHA256 over the fixed field order MoMo
// uses for inbound notifications (distinct from the request order)
func SignMoMoIPN(p *MoMoIPNParams, accessKey, secret string) string {
	raw := fmt.Sprintf("accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		accessKey, p.Amount, p.ExtraData, p.Message, p.OrderID, p.OrderInfo,
		p.OrderType, p.PartnerCode, p.PayType, p.RequestID, p.ResponseTime,
		p.ResultCode, p.TransID)
	return momoHMAC(raw, secret)
}

// VerifyMoMoIPN recomputes the notification signature and compares it
// with the supplied one. A mismatch rejects the callback regardless of
// resultCode.
func VerifyMoMoIPN(p *MoMoIPNParams, accessKey, secret string) bool {
	if p.Signature == "" {
		return false
	}
	expected := SignMoMoIPN(p, accessKey, secret)
	return hmac.Equal([]byte(p.Signature), []byte(expected))
}

// NewMoMoCreateRequest builds and signs a create-payment request
func NewMoMoCreateRequest(partnerCode, accessKey, secret, requestID, orderID, orderInfo, redirectURL, ipnURL string, amount int64) *MoMoCreateRequest {
	req := &MoMoCreateRequest{
		PartnerCode: partnerCode,
		AccessKey:   accessKey,
		RequestID:   requestID,
		Amount:      amount,
		OrderID:     orderID,
		OrderInfo:   orderInfo,
		RedirectURL: redirectURL,
		IPNURL:      ipnURL,
		ExtraData:   "",
		RequestType: momoRequestType,
		Lang:        "vi",
	}
	req.Signature = SignMoMoRequest(req, secret)
	return req
}

// CreateMoMoPayment posts the signed request to the MoMo endpoint and
// returns the provider reply. MoMo ships no Go SDK, so this talks to
// the JSON API directly.
func CreateMoMoPayment(endpoint string, req *MoMoCreateRequest) (*MoMoCreateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode momo request: %v", err)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("momo request failed: %v", err)
	}
	defer resp.Body.Close()

	var out MoMoCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode momo response: %v", err)
	}
	return &out, nil
}
