package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// OrderEmailData dữ liệu cho template email đơn hàng
type OrderEmailData struct {
	OrderNumber   string
	CustomerName  string
	Items         []OrderEmailItem
	TotalAmount   string
	PaymentMethod string
	PaidAt        string
	CancelReason  string
	CancelledAt   string
}

type OrderEmailItem struct {
	Name      string
	Quantity  int
	LineTotal string
}

func newDialer() *gomail.Dialer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
}

func sendOrderEmail(to, subject, tmplPath string, data OrderEmailData) {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("Lỗi load template email: %v", err)
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		log.Printf("Lỗi render template email: %v", err)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "BabyBoo <shop@babyboo.vn>")
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	// Nhúng QR tra cứu đơn hàng
	qrBytes, err := GenerateQRCode(data.OrderNumber, 400)
	if err == nil {
		m.Embed("qr_order.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(qrBytes)
			return err
		}), gomail.SetHeader(map[string][]string{
			"Content-Type":        {"image/png"},
			"Content-ID":          {"<qr_order_code>"},
			"Content-Disposition": {"inline"},
		}))
	}

	if err := newDialer().DialAndSend(m); err != nil {
		log.Printf("Lỗi gửi email cho %s: %v", to, err)
	}
}

// SendOrderConfirmationEmail gửi email xác nhận đơn hàng (async)
func SendOrderConfirmationEmail(to string, data OrderEmailData) {
	go sendOrderEmail(to, fmt.Sprintf("Xác nhận đơn hàng - Mã đơn: %s", data.OrderNumber), "templates/order_confirmation.html", data)
}

// SendOrderCancelledEmail gửi email báo hủy đơn (async)
func SendOrderCancelledEmail(to string, data OrderEmailData) {
	go sendOrderEmail(to, fmt.Sprintf("Hủy đơn hàng - Mã đơn: %s", data.OrderNumber), "templates/order_cancelled.html", data)
}
