package utils

import (
	"errors"
	"math"
	"time"

	"github.com/minhtran-dev/vietshop/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Voucher rejection reasons surfaced verbatim to the caller
var (
	ErrVoucherNotFound      = errors.New("voucher not found")
	ErrVoucherInactive      = errors.New("voucher is not active")
	ErrVoucherNotStarted    = errors.New("voucher is not yet valid")
	ErrVoucherExpired       = errors.New("voucher has expired")
	ErrVoucherExhausted     = errors.New("voucher usage limit reached")
	ErrVoucherUserExhausted = errors.New("you have already used this voucher")
	ErrVoucherMinOrder      = errors.New("order subtotal is below the voucher minimum")
)

// VoucherDiscount computes the discount a voucher grants on a subtotal.
// Percent vouchers are capped at MaxDiscount; fixed vouchers never
// exceed the subtotal. The result is floored to a whole currency unit.
func VoucherDiscount(v *models.Voucher, subtotal float64) float64 {
	var discount float64
	if v.Type == models.VoucherTypePercent {
		discount = subtotal * v.Value / 100
		if v.MaxDiscount > 0 && discount > v.MaxDiscount {
			discount = v.MaxDiscount
		}
	} else {
		discount = v.Value
		if discount > subtotal {
			discount = subtotal
		}
	}
	return math.Floor(discount)
}

// CheckVoucherEligibility verifies a loaded voucher against the acting
// user and subtotal without touching usage counters
func CheckVoucherEligibility(tx *gorm.DB, v *models.Voucher, userID uint, subtotal float64) error {
	now := time.Now()
	if !v.Active {
		return ErrVoucherInactive
	}
	if now.Before(v.StartAt) {
		return ErrVoucherNotStarted
	}
	if now.After(v.EndAt) {
		return ErrVoucherExpired
	}
	if v.UsageLimit > 0 && v.UsedCount >= v.UsageLimit {
		return ErrVoucherExhausted
	}
	if v.PerUserLimit > 0 && userID != 0 {
		var used int64
		if err := tx.Model(&models.VoucherUsage{}).
			Where("voucher_id = ? AND user_id = ?", v.ID, userID).
			Count(&used).Error; err != nil {
			return err
		}
		if used >= int64(v.PerUserLimit) {
			return ErrVoucherUserExhausted
		}
	}
	if subtotal < v.MinOrderValue {
		return ErrVoucherMinOrder
	}
	return nil
}

// ValidateVoucher loads a voucher by code and checks eligibility.
// When forUpdate is set the voucher row is locked for the duration of
// the surrounding transaction so that validation and usage recording
// are atomic with order creation.
func ValidateVoucher(tx *gorm.DB, code string, userID uint, subtotal float64, forUpdate bool) (*models.Voucher, float64, error) {
	query := tx
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var voucher models.Voucher
	if err := query.Where("code = ?", code).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrVoucherNotFound
		}
		return nil, 0, err
	}

	if err := CheckVoucherEligibility(tx, &voucher, userID, subtotal); err != nil {
		return nil, 0, err
	}

	return &voucher, VoucherDiscount(&voucher, subtotal), nil
}

// RecordVoucherUsage writes the redemption row and bumps the global
// counter. Must run inside the same transaction that validated the
// voucher under a row lock.
func RecordVoucherUsage(tx *gorm.DB, voucher *models.Voucher, userID, orderID uint, amount float64) error {
	usage := models.VoucherUsage{
		VoucherID: voucher.ID,
		UserID:    userID,
		OrderID:   orderID,
		Amount:    amount,
		UsedAt:    time.Now(),
	}
	if err := tx.Create(&usage).Error; err != nil {
		return err
	}
	return tx.Model(&models.Voucher{}).Where("id = ?", voucher.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1)).Error
}
