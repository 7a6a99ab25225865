package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

const (
	confirmationSubject = "Booking confirmed - %s"
	cancellationSubject = "Booking cancelled - %s"
)

type IEmailService interface {
	SendBookingConfirmation(toEmail, hotelName, referenceCode, checkIn, checkOut string) error
	SendBookingCancellation(toEmail, hotelName, referenceCode string, refundAmount float64, currency string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendBookingConfirmation(toEmail, hotelName, referenceCode, checkIn, checkOut string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf(confirmationSubject, referenceCode))

	bookingLink := fmt.Sprintf("%s/bookings/%s", s.clientURL, referenceCode)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your stay at %s is confirmed!</h2>
			<p>Reference code: <strong>%s</strong></p>
			<p>Check-in: %s<br>Check-out: %s</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">View booking</a>
			<p>We look forward to welcoming you.</p>
		</div>
	`, hotelName, referenceCode, checkIn, checkOut, bookingLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send confirmation to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Confirmation sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendBookingCancellation(toEmail, hotelName, referenceCode string, refundAmount float64, currency string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf(cancellationSubject, referenceCode))

	refundLine := "No refund is due for this booking."
	if refundAmount > 0 {
		refundLine = fmt.Sprintf("A refund of %.2f %s is being processed.", refundAmount, currency)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your booking at %s has been cancelled</h2>
			<p>Reference code: <strong>%s</strong></p>
			<p>%s</p>
			<p>If you didn't request this, please contact support.</p>
		</div>
	`, hotelName, referenceCode, refundLine)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send cancellation to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Cancellation sent to %s\n", toEmail)
	return nil
}
