package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"github.com/tealeg/xlsx"
)

// reportPeriod resolves the from/to query params. Defaults to the last
// 30 days.
func reportPeriod(c *gin.Context) (time.Time, time.Time, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, fmt.Errorf("from must be YYYY-MM-DD")
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, fmt.Errorf("to must be YYYY-MM-DD")
		}
		// Include the whole end day
		to = t.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return from, to, fmt.Errorf("to must be after from")
	}
	return from, to, nil
}

func reportOrders(from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := config.DB.Preload("OrderItems").
		Where("created_at >= ? AND created_at < ? AND status != ?", from, to, models.OrderStatusCancelled).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

// AdminSalesReport returns aggregate sales figures for a period
func AdminSalesReport(c *gin.Context) {
	utils.LogInfo("AdminSalesReport called")

	from, to, err := reportPeriod(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	orders, err := reportOrders(from, to)
	if err != nil {
		utils.LogError("Failed to fetch report orders: %v", err)
		utils.InternalServerError(c, "Failed to build report", err.Error())
		return
	}

	var revenue, discount float64
	var itemCount int
	for _, order := range orders {
		revenue += order.FinalTotal
		discount += order.Discount
		for _, item := range order.OrderItems {
			itemCount += item.Quantity
		}
	}

	utils.Success(c, "Sales report generated successfully", gin.H{
		"from":           from.Format("2006-01-02"),
		"to":             to.AddDate(0, 0, -1).Format("2006-01-02"),
		"order_count":    len(orders),
		"items_sold":     itemCount,
		"total_revenue":  fmt.Sprintf("%.0f", revenue),
		"total_discount": fmt.Sprintf("%.0f", discount),
	})
}

// AdminExportSalesReport writes the period's orders to an xlsx workbook
func AdminExportSalesReport(c *gin.Context) {
	utils.LogInfo("AdminExportSalesReport called")

	from, to, err := reportPeriod(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	orders, err := reportOrders(from, to)
	if err != nil {
		utils.LogError("Failed to fetch report orders: %v", err)
		utils.InternalServerError(c, "Failed to build report", err.Error())
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.InternalServerError(c, "Failed to build report", err.Error())
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Order Code", "Date", "Status", "Payment Method", "Payment Status", "Items", "Subtotal", "Shipping", "Discount", "Total"} {
		header.AddCell().SetString(title)
	}

	var revenue float64
	for _, order := range orders {
		itemCount := 0
		for _, item := range order.OrderItems {
			itemCount += item.Quantity
		}
		revenue += order.FinalTotal

		row := sheet.AddRow()
		row.AddCell().SetString(order.Code)
		row.AddCell().SetString(order.CreatedAt.Format("02/01/2006 15:04"))
		row.AddCell().SetString(order.Status)
		row.AddCell().SetString(order.PaymentMethod)
		row.AddCell().SetString(order.PaymentStatus)
		row.AddCell().SetInt(itemCount)
		row.AddCell().SetFloat(order.Subtotal)
		row.AddCell().SetFloat(order.ShippingFee)
		row.AddCell().SetFloat(order.Discount)
		row.AddCell().SetFloat(order.FinalTotal)
	}

	sheet.AddRow()
	totalRow := sheet.AddRow()
	totalRow.AddCell().SetString("Total revenue")
	for i := 0; i < 8; i++ {
		totalRow.AddCell()
	}
	totalRow.AddCell().SetFloat(revenue)

	filename := fmt.Sprintf("sales-report-%s-%s.xlsx",
		from.Format("20060102"), to.AddDate(0, 0, -1).Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write xlsx report: %v", err)
		utils.InternalServerError(c, "Failed to export report", err.Error())
		return
	}
	utils.LogInfo("Sales report exported: %s (%d orders)", filename, len(orders))
}
