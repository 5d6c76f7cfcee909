package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendReturnReceived(toEmail, productName, orderNumber string) error
	SendRefundIssued(toEmail, orderNumber string, amount float64) error
	SendOrderCancelled(toEmail, orderNumber, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}
	return nil
}

func (s *emailService) SendReturnReceived(toEmail, productName, orderNumber string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Return Request Received</h2>
			<p>We received your return request for <b>%s</b> (order %s).</p>
			<p>Our team will review it shortly. You will be notified once it is processed.</p>
		</div>
	`, productName, orderNumber)
	return s.send(toEmail, "Return Request Received", body)
}

func (s *emailService) SendRefundIssued(toEmail, orderNumber string, amount float64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Refund Issued</h2>
			<p>A refund of <b>%.2f</b> for order %s has been issued.</p>
			<p>Depending on your payment provider it may take a few business days to appear.</p>
		</div>
	`, amount, orderNumber)
	return s.send(toEmail, "Your Refund Has Been Issued", body)
}

func (s *emailService) SendOrderCancelled(toEmail, orderNumber, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Order Cancelled</h2>
			<p>Your order %s has been cancelled.</p>
			<p>Reason: %s</p>
		</div>
	`, orderNumber, reason)
	return s.send(toEmail, "Order Cancelled", body)
}
