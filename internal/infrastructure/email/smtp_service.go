package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"legalblog-backend/pkg/logger"
)

type EmailService interface {
	SendVerificationEmail(ctx context.Context, data VerificationEmailData) error
	SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error
	SendStatusChangedEmail(ctx context.Context, data StatusChangedData) error
	SendEmail(ctx context.Context, req EmailRequest) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

// NewSMTPEmailService talks to a plain SMTP relay (MailHog in development).
func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	contentType := "text/plain; charset=UTF-8"
	if req.IsHTML {
		contentType = "text/html; charset=UTF-8"
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: %s\r\n\r\n%s",
		s.smtpFrom, strings.Join(req.To, ", "), req.Subject, contentType, req.Body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, req.To, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        req.To,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *smtpEmailService) SendVerificationEmail(ctx context.Context, data VerificationEmailData) error {
	body := fmt.Sprintf(`Hello,

Please follow this link to verify your account:
%s

The link is valid for %s.

If you did not register this account, please ignore this email.`, data.VerifyLink, data.ExpiresIn)

	return s.SendEmail(ctx, EmailRequest{
		To:      []string{data.Email},
		Subject: "Verify your Legal Blog account",
		Body:    body,
	})
}

func (s *smtpEmailService) SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error {
	body := fmt.Sprintf(`Hello,

Use the following token to reset your password:
%s

The token is valid for %s.

If you did not request a password reset, please ignore this email.`, data.Token, data.ExpiresIn)

	return s.SendEmail(ctx, EmailRequest{
		To:      []string{data.Email},
		Subject: "Reset your Legal Blog password",
		Body:    body,
	})
}

func (s *smtpEmailService) SendStatusChangedEmail(ctx context.Context, data StatusChangedData) error {
	var body string
	switch data.NewStatus {
	case "rejected":
		body = fmt.Sprintf(`Hello,

Your post %q was rejected during review.

Reason: %s

You can edit the post and submit it again.`, data.PostTitle, data.Reason)
	case "pending":
		body = fmt.Sprintf(`A post is waiting for review: %q.`, data.PostTitle)
	default:
		body = fmt.Sprintf(`Hello,

The status of your post %q changed to %q.`, data.PostTitle, data.NewStatus)
	}

	return s.SendEmail(ctx, EmailRequest{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("Post %q: %s", data.PostTitle, data.NewStatus),
		Body:    body,
	})
}
