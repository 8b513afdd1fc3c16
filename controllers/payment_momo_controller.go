package controllers

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// createMoMoRedirect asks the MoMo wallet API for a payment URL. The
// order code doubles as the wallet-side order id; the payment TxnRef is
// the request id so retries get fresh ids.
func createMoMoRedirect(order *models.Order, payment *models.Payment) (string, error) {
	partnerCode := os.Getenv("MOMO_PARTNER_CODE")
	accessKey := os.Getenv("MOMO_ACCESS_KEY")
	secret := os.Getenv("MOMO_SECRET_KEY")
	endpoint := os.Getenv("MOMO_ENDPOINT")
	if partnerCode == "" || accessKey == "" || secret == "" || endpoint == "" {
		return "", fmt.Errorf("momo is not configured")
	}

	req := utils.NewMoMoCreateRequest(
		partnerCode,
		accessKey,
		secret,
		payment.TxnRef,
		order.Code,
		"Thanh toan don hang "+order.Code,
		os.Getenv("MOMO_REDIRECT_URL"),
		os.Getenv("MOMO_IPN_URL"),
		int64(order.FinalTotal),
	)

	resp, err := utils.CreateMoMoPayment(endpoint, req)
	if err != nil {
		return "", err
	}
	if resp.ResultCode != utils.MoMoResultSuccess {
		return "", fmt.Errorf("momo rejected the payment request: %s (code %d)", resp.Message, resp.ResultCode)
	}
	return resp.PayURL, nil
}

// MoMoIPN handles the wallet's server-to-server payment notification.
// MoMo acknowledges IPNs with HTTP 204.
func MoMoIPN(c *gin.Context) {
	utils.LogInfo("MoMoIPN called")

	var params utils.MoMoIPNParams
	if err := c.ShouldBindJSON(&params); err != nil {
		utils.LogError("Invalid MoMo IPN body: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	accessKey := os.Getenv("MOMO_ACCESS_KEY")
	secret := os.Getenv("MOMO_SECRET_KEY")
	if !utils.VerifyMoMoIPN(&params, accessKey, secret) {
		utils.LogError("MoMo IPN signature mismatch for order: %s", params.OrderID)
		utils.BadRequest(c, "Invalid payment signature", nil)
		return
	}

	success := params.ResultCode == utils.MoMoResultSuccess
	_, _, err := settlePayment(params.RequestID, strconv.FormatInt(params.TransID, 10), success)
	if err != nil {
		utils.LogError("MoMo IPN for unknown request id: %s: %v", params.RequestID, err)
		utils.NotFound(c, "Payment not found")
		return
	}

	utils.LogInfo("MoMo IPN processed for order %s, result code: %d", params.OrderID, params.ResultCode)
	c.Status(204)
}

// MoMoReturn handles the browser redirect back from the wallet. The
// redirect carries the same signed fields as the IPN, as query params.
func MoMoReturn(c *gin.Context) {
	utils.LogInfo("MoMoReturn called")

	amount, _ := strconv.ParseInt(c.Query("amount"), 10, 64)
	transID, _ := strconv.ParseInt(c.Query("transId"), 10, 64)
	resultCode, _ := strconv.Atoi(c.Query("resultCode"))
	responseTime, _ := strconv.ParseInt(c.Query("responseTime"), 10, 64)

	params := utils.MoMoIPNParams{
		PartnerCode:  c.Query("partnerCode"),
		OrderID:      c.Query("orderId"),
		RequestID:    c.Query("requestId"),
		Amount:       amount,
		OrderInfo:    c.Query("orderInfo"),
		OrderType:    c.Query("orderType"),
		TransID:      transID,
		ResultCode:   resultCode,
		Message:      c.Query("message"),
		PayType:      c.Query("payType"),
		ResponseTime: responseTime,
		ExtraData:    c.Query("extraData"),
		Signature:    c.Query("signature"),
	}

	accessKey := os.Getenv("MOMO_ACCESS_KEY")
	secret := os.Getenv("MOMO_SECRET_KEY")
	if !utils.VerifyMoMoIPN(&params, accessKey, secret) {
		utils.LogError("MoMo return signature mismatch for order: %s", params.OrderID)
		utils.BadRequest(c, "Invalid payment signature", nil)
		return
	}

	success := params.ResultCode == utils.MoMoResultSuccess
	order, _, err := settlePayment(params.RequestID, strconv.FormatInt(params.TransID, 10), success)
	if err != nil {
		utils.LogError("Failed to settle MoMo payment, request id: %s: %v", params.RequestID, err)
		utils.NotFound(c, "Payment not found")
		return
	}

	if !success {
		utils.Success(c, "Payment was not completed", gin.H{
			"order_code":     order.Code,
			"payment_status": models.PaymentStatusFailed,
			"result_code":    params.ResultCode,
		})
		return
	}

	utils.Success(c, "Payment completed successfully", gin.H{
		"order_code":     order.Code,
		"payment_status": models.PaymentStatusPaid,
		"final_total":    fmt.Sprintf("%.0f", order.FinalTotal),
	})
}
