package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/minhtran-dev/vietshop/models"
	"gopkg.in/gomail.v2"
)

func smtpDialer() *gomail.Dialer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
	)
}

// SendEmail sends a single HTML email via SMTP
func SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := smtpDialer().DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendOrderConfirmation mails the customer a summary after checkout
func SendOrderConfirmation(to string, order *models.Order) error {
	subject := fmt.Sprintf("VietShop - Xác nhận đơn hàng %s", order.Code)
	body := fmt.Sprintf(`
		<h2>Cảm ơn bạn đã đặt hàng tại VietShop!</h2>
		<p>Mã đơn hàng: <b>%s</b></p>
		<p>Tạm tính: %.0fđ</p>
		<p>Phí vận chuyển: %.0fđ</p>
		<p>Giảm giá: %.0fđ</p>
		<p>Tổng thanh toán: <b>%.0fđ</b></p>
		<p>Phương thức thanh toán: %s</p>
	`, order.Code, order.Subtotal, order.ShippingFee, order.Discount,
		order.FinalTotal, order.PaymentMethod)

	return SendEmail(to, subject, body)
}

// BroadcastNewsletter sends a marketing email to every recipient over a
// single SMTP connection. Per-recipient failures are logged and counted
// rather than aborting the whole broadcast.
func BroadcastNewsletter(recipients []string, subject, body string) (sent int, failed int) {
	d := smtpDialer()
	sender, err := d.Dial()
	if err != nil {
		LogError("Failed to connect to SMTP server: %v", err)
		return 0, len(recipients)
	}
	defer sender.Close()

	from := os.Getenv("SMTP_FROM")
	m := gomail.NewMessage()
	for _, to := range recipients {
		m.Reset()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", body)
		if err := gomail.Send(sender, m); err != nil {
			LogError("Failed to send newsletter to %s: %v", to, err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}
