package controllers

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

const vnpayDateLayout = "20060102150405"

// buildVNPayRedirect assembles the signed VNPay payment URL for an
// order. VNPay amounts are in VND multiplied by 100.
func buildVNPayRedirect(c *gin.Context, order *models.Order, payment *models.Payment) (string, error) {
	tmnCode := os.Getenv("VNPAY_TMN_CODE")
	secret := os.Getenv("VNPAY_HASH_SECRET")
	payURL := os.Getenv("VNPAY_PAY_URL")
	returnURL := os.Getenv("VNPAY_RETURN_URL")
	if tmnCode == "" || secret == "" || payURL == "" {
		return "", fmt.Errorf("vnpay is not configured")
	}

	now := time.Now()
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    tmnCode,
		"vnp_Amount":     fmt.Sprintf("%.0f", order.FinalTotal*100),
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     payment.TxnRef,
		"vnp_OrderInfo":  "Thanh toan don hang " + order.Code,
		"vnp_OrderType":  "other",
		"vnp_Locale":     "vn",
		"vnp_IpAddr":     c.ClientIP(),
		"vnp_CreateDate": now.Format(vnpayDateLayout),
		"vnp_ExpireDate": now.Add(15 * time.Minute).Format(vnpayDateLayout),
		"vnp_ReturnUrl":  returnURL,
	}

	return utils.BuildVNPayURL(payURL, params, secret), nil
}

func vnpayQueryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// VNPayReturn handles the browser redirect back from the VNPay gateway.
// The signature is verified before any state is touched.
func VNPayReturn(c *gin.Context) {
	utils.LogInfo("VNPayReturn called")

	params := vnpayQueryParams(c)
	secret := os.Getenv("VNPAY_HASH_SECRET")
	if !utils.VerifyVNPaySignature(params, secret) {
		utils.LogError("VNPay return signature mismatch for txn ref: %s", params["vnp_TxnRef"])
		utils.BadRequest(c, "Invalid payment signature", nil)
		return
	}

	txnRef := params["vnp_TxnRef"]
	success := params["vnp_ResponseCode"] == utils.VNPayResponseSuccess
	order, _, err := settlePayment(txnRef, params["vnp_TransactionNo"], success)
	if err != nil {
		utils.LogError("Failed to settle VNPay payment, txn ref: %s: %v", txnRef, err)
		utils.NotFound(c, "Payment not found")
		return
	}

	if !success {
		utils.LogInfo("VNPay payment failed for order %s, response code: %s", order.Code, params["vnp_ResponseCode"])
		utils.Success(c, "Payment was not completed", gin.H{
			"order_code":     order.Code,
			"payment_status": models.PaymentStatusFailed,
			"response_code":  params["vnp_ResponseCode"],
		})
		return
	}

	utils.LogInfo("VNPay payment completed for order %s", order.Code)
	utils.Success(c, "Payment completed successfully", gin.H{
		"order_code":     order.Code,
		"payment_status": models.PaymentStatusPaid,
		"final_total":    fmt.Sprintf("%.0f", order.FinalTotal),
	})
}

// VNPayIPN handles the server-to-server notification. VNPay expects the
// literal RspCode/Message body regardless of our envelope conventions.
func VNPayIPN(c *gin.Context) {
	utils.LogInfo("VNPayIPN called")

	params := vnpayQueryParams(c)
	secret := os.Getenv("VNPAY_HASH_SECRET")
	if !utils.VerifyVNPaySignature(params, secret) {
		utils.LogError("VNPay IPN signature mismatch for txn ref: %s", params["vnp_TxnRef"])
		c.JSON(200, gin.H{"RspCode": "97", "Message": "Invalid signature"})
		return
	}

	txnRef := params["vnp_TxnRef"]
	success := params["vnp_ResponseCode"] == utils.VNPayResponseSuccess
	_, settled, err := settlePayment(txnRef, params["vnp_TransactionNo"], success)
	if err != nil {
		utils.LogError("VNPay IPN for unknown txn ref: %s: %v", txnRef, err)
		c.JSON(200, gin.H{"RspCode": "01", "Message": "Order not found"})
		return
	}
	if !settled {
		c.JSON(200, gin.H{"RspCode": "02", "Message": "Order already confirmed"})
		return
	}

	c.JSON(200, gin.H{"RspCode": "00", "Message": "Confirm Success"})
}
