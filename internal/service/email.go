package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"debtmates-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService creates a SendGrid-backed email sender. An empty API key
// disables sending; every Send call becomes a logged no-op so local
// development works without credentials.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	if s.apiKey == "" {
		logger.Debug("Email sending disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "Send", nil, "to", to)
	return nil
}

func (s *emailService) SendWelcome(ctx context.Context, email, username string) error {
	subject := "Welcome to DebtMates"
	plainText := fmt.Sprintf("Hi %s, your DebtMates account is ready.", username)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>Your DebtMates account is ready. Create a group and start splitting bills.</p>", username)
	return s.send(ctx, email, username, subject, plainText, htmlContent)
}

func (s *emailService) SendDebtRecorded(ctx context.Context, email, username, groupName string, amountOwed float64) error {
	subject := fmt.Sprintf("New debts recorded in %s", groupName)
	plainText := fmt.Sprintf("Hi %s, a new debt round was recorded in %s. You owe %.2f.", username, groupName, amountOwed)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>A new debt round was recorded in <strong>%s</strong>. You owe <strong>%.2f</strong>.</p>", username, groupName, amountOwed)
	return s.send(ctx, email, username, subject, plainText, htmlContent)
}

func (s *emailService) SendPaymentReminder(ctx context.Context, email, username, groupName string, monthNumber int32, amount float64) error {
	subject := fmt.Sprintf("Payment reminder for %s", groupName)
	plainText := fmt.Sprintf("Hi %s, your payment of %.2f for month %d in %s is still outstanding.", username, amount, monthNumber, groupName)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>Your payment of <strong>%.2f</strong> for month %d in <strong>%s</strong> is still outstanding. Please upload your payment slip.</p>", username, amount, monthNumber, groupName)
	return s.send(ctx, email, username, subject, plainText, htmlContent)
}

func (s *emailService) SendSlipSubmitted(ctx context.Context, email, username, groupName string, monthNumber int32) error {
	subject := fmt.Sprintf("Payment slip waiting in %s", groupName)
	plainText := fmt.Sprintf("Hi %s, a payment slip for month %d in %s is waiting for your verification.", username, monthNumber, groupName)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>A payment slip for month %d in <strong>%s</strong> is waiting for your verification.</p>", username, monthNumber, groupName)
	return s.send(ctx, email, username, subject, plainText, htmlContent)
}

func (s *emailService) SendPaymentVerified(ctx context.Context, email, username, groupName string, monthNumber int32) error {
	subject := fmt.Sprintf("Payment verified in %s", groupName)
	plainText := fmt.Sprintf("Hi %s, your payment for month %d in %s was verified.", username, monthNumber, groupName)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>Your payment for month %d in <strong>%s</strong> was verified.</p>", username, monthNumber, groupName)
	return s.send(ctx, email, username, subject, plainText, htmlContent)
}

func (s *emailService) SendDepositReminder(ctx context.Context, email, username, planName string, frequency string) error {
	subject := fmt.Sprintf("Time for your %s deposit", frequency)
	plainText := fmt.Sprintf("Hi %s, it's time for your %s deposit into %s.", username, frequency, planName)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>It's time for your %s deposit into <strong>%s</strong>.</p>", username, frequency, planName)
	return s.send(ctx, email, username, subject, plainText, htmlContent)
}

func (s *emailService) SendGoalReached(ctx context.Context, email, username, planName string, goalAmount float64) error {
	subject := fmt.Sprintf("%s reached its goal", planName)
	plainText := fmt.Sprintf("Hi %s, congratulations! %s reached its goal of %.2f.", username, planName, goalAmount)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>Congratulations! <strong>%s</strong> reached its goal of <strong>%.2f</strong>.</p>", username, planName, goalAmount)
	return s.send(ctx, email, username, subject, plainText, htmlContent)
}
