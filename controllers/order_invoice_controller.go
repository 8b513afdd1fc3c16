package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// DownloadInvoice renders the order as a PDF invoice. Invoices are only
// available once the order is confirmed or further along.
func DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status == models.OrderStatusCancelled {
		utils.BadRequest(c, "Invoice is not available for a cancelled order", nil)
		return
	}

	var address models.Address
	hasAddress := config.DB.Unscoped().First(&address, order.AddressID).Error == nil

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Order: %s", order.Code))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02/01/2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Payment: %s (%s)", order.PaymentMethod, order.PaymentStatus))
	pdf.Ln(10)

	if hasAddress {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Ship to:")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("%s - %s", address.Recipient, address.Phone))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("%s, %s, %s, %s", address.Line, address.Ward, address.District, address.Province))
		pdf.Ln(10)
	}

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(80, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.OrderItems {
		name := item.ProductName
		if item.VariantName != "" {
			name = fmt.Sprintf("%s (%s)", name, item.VariantName)
		}
		pdf.CellFormat(80, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.0f VND", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.0f VND", item.Total), "1", 1, "R", false, 0, "")
	}

	// Totals
	totalRow := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(150, 8, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
	totalRow("Subtotal:", fmt.Sprintf("%.0f VND", order.Subtotal), false)
	totalRow("Shipping:", fmt.Sprintf("%.0f VND", order.ShippingFee), false)
	if order.Discount > 0 {
		label := "Discount:"
		if order.VoucherCode != "" {
			label = fmt.Sprintf("Discount (%s):", order.VoucherCode)
		}
		totalRow(label, fmt.Sprintf("-%.0f VND", order.Discount), false)
	}
	totalRow("Total:", fmt.Sprintf("%.0f VND", order.FinalTotal), true)

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, "Thank you for shopping with "+utils.AppName+"!")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", order.Code))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to generate invoice for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", err.Error())
		return
	}
	utils.LogInfo("Invoice generated for order %s", order.Code)
}
