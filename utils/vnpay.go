package utils

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// VNPay response codes
const (
	VNPayResponseSuccess = "00"
)

// vnpayHashData builds the canonical string VNPay signs: parameters
// sorted lexicographically by key, url-encoded, joined with & and =.
// The hash fields themselves are never part of the signed data.
func vnpayHashData(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params[k]))
	}
	return sb.String()
}

// SignVNPay computes the HMAC-SHA512 signature over the sorted,
// url-encoded parameter string
func SignVNPay(params map[string]string, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(vnpayHashData(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

// BuildVNPayURL assembles the redirect URL for an outbound payment,
// appending the computed vnp_SecureHash
func BuildVNPayURL(baseURL string, params map[string]string, secret string) string {
	signature := SignVNPay(params, secret)
	return baseURL + "?" + vnpayHashData(params) + "&vnp_SecureHash=" + signature
}

// VerifyVNPaySignature recomputes the HMAC over the returned parameters
// (minus the hash fields) and compares it with the supplied signature.
// Any mismatch rejects the callback regardless of the response code.
func VerifyVNPaySignature(params map[string]string, secret string) bool {
	supplied := params["vnp_SecureHash"]
	if supplied == "" {
		return false
	}
	expected := SignVNPay(params, secret)
	return hmac.Equal([]byte(strings.ToLower(supplied)), []byte(expected))
}
