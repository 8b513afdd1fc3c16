package controllers

import (
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settlePayment records the gateway outcome for a transaction reference.
// It is idempotent: a payment already settled is left untouched, so
// replayed provider callbacks cannot flip an order's state.
func settlePayment(txnRef, providerID string, success bool) (*models.Order, bool, error) {
	var order models.Order
	settled := false

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("txn_ref = ?", txnRef).First(&payment).Error; err != nil {
			return err
		}
		if payment.Status != models.PaymentStatusPending {
			return tx.First(&order, payment.OrderID).Error
		}

		status := models.PaymentStatusFailed
		if success {
			status = models.PaymentStatusPaid
		}
		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"status":      status,
			"provider_id": providerID,
		}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"payment_status": status}
		if success {
			updates["status"] = models.OrderStatusConfirmed
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", payment.OrderID).
			Updates(updates).Error; err != nil {
			return err
		}

		settled = true
		return tx.First(&order, payment.OrderID).Error
	})
	if err != nil {
		return nil, false, err
	}

	if settled && success {
		var user models.User
		if err := config.DB.First(&user, order.UserID).Error; err == nil {
			go func(email string, o models.Order) {
				if err := utils.SendOrderConfirmation(email, &o); err != nil {
					utils.LogError("Failed to send order confirmation for order ID: %d: %v", o.ID, err)
				}
			}(user.Email, order)
		}
	}

	return &order, settled, nil
}
