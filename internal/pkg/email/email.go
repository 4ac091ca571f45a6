package email

import (
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"math/big"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendVerificationEmail(toEmail, toName, token string) error
	SendWelcomeEmail(toEmail, toName string) error
	SendPasswordResetEmail(toEmail, toName, token string) error
	SendInterviewInvitation(toEmail, toName, jobTitle, location string, scheduledAt time.Time) error
	SendGuardianReport(toEmail, studentName, period, content string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for the application
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// devMode reports whether SMTP credentials are missing. In that case emails
// are logged instead of sent so local development works without a mail server.
func (s *EmailServiceImpl) devMode() bool {
	return s.config.Username == "" || s.config.Password == ""
}

// verificationURL builds the link the recipient follows to confirm their
// address. The token travels as the final path segment.
func (s *EmailServiceImpl) verificationURL(token string) string {
	return fmt.Sprintf("%s/api/v1/auth/verify-email/%s", s.config.BaseURL, token)
}

// SendVerificationEmail sends an email with a verification link/token
func (s *EmailServiceImpl) SendVerificationEmail(toEmail, toName, token string) error {
	verificationURL := s.verificationURL(token)

	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Str("verificationURL", verificationURL).
			Msg("SMTP credentials not configured - verification email not sent. Use the token/URL above for testing.")
		return nil
	}

	subject := "Verify Your Email Address - InstraCore"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to InstraCore!</h2>
				<p>Hello %s,</p>
				<p>Thank you for registering with InstraCore. To complete your registration, please verify your email address by clicking the button below:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Verify Email</a>
				</div>

				<p>Alternatively, you can use this verification code: <strong>%s</strong></p>

				<p>This verification link and code will expire in 24 hours.</p>

				<p>If you did not register for an InstraCore account, please ignore this email.</p>

				<p>Best regards,<br>The InstraCore Team</p>
			</div>
		</body>
		</html>
	`, toName, verificationURL, token)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendWelcomeEmail sends a welcome email to a newly verified user
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName string) error {
	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("toName", toName).
			Msg("SMTP credentials not configured - welcome email not sent.")
		return nil
	}

	subject := "Welcome to InstraCore - Your Account is Active"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to InstraCore!</h2>
				<p>Hello %s,</p>
				<p>Your email has been verified and your account is now active. You can now log in to access all the features of InstraCore.</p>

				<p>Thank you for joining our community!</p>

				<p>Best regards,<br>The InstraCore Team</p>
			</div>
		</body>
		</html>
	`, toName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendPasswordResetEmail sends an email with a password reset link/token
func (s *EmailServiceImpl) SendPasswordResetEmail(toEmail, toName, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)

	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Str("resetURL", resetURL).
			Msg("SMTP credentials not configured - password reset email not sent. Use the token/URL above for testing.")
		return nil
	}

	subject := "Reset Your Password - InstraCore"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset Request</h2>
				<p>Hello %s,</p>
				<p>We received a request to reset your password. Click the button below to choose a new one:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
				</div>

				<p>This link will expire in 1 hour. If you did not request a password reset, you can safely ignore this email.</p>

				<p>Best regards,<br>The InstraCore Team</p>
			</div>
		</body>
		</html>
	`, toName, resetURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendInterviewInvitation notifies a candidate about a scheduled interview
func (s *EmailServiceImpl) SendInterviewInvitation(toEmail, toName, jobTitle, location string, scheduledAt time.Time) error {
	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("jobTitle", jobTitle).
			Time("scheduledAt", scheduledAt).
			Msg("SMTP credentials not configured - interview invitation not sent.")
		return nil
	}

	subject := fmt.Sprintf("Interview Invitation - %s", jobTitle)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Interview Invitation</h2>
				<p>Hello %s,</p>
				<p>We are pleased to invite you to an interview for the position of <strong>%s</strong>.</p>

				<p><strong>Date and time:</strong> %s<br>
				<strong>Location:</strong> %s</p>

				<p>Please reply to this email if you need to reschedule.</p>

				<p>Best regards,<br>The InstraCore Team</p>
			</div>
		</body>
		</html>
	`, toName, jobTitle, scheduledAt.Format("Monday, 2 January 2006 at 15:04"), location)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendGuardianReport emails a progress report to a student's guardian
func (s *EmailServiceImpl) SendGuardianReport(toEmail, studentName, period, content string) error {
	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("studentName", studentName).
			Str("period", period).
			Msg("SMTP credentials not configured - guardian report not sent.")
		return nil
	}

	subject := fmt.Sprintf("Progress Report for %s (%s)", studentName, period)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Progress Report - %s</h2>
				<p>Dear Guardian,</p>
				<p>Please find below the progress report for <strong>%s</strong> for the period %s:</p>

				<div style="background-color: #f5f5f5; padding: 16px; border-radius: 4px;">%s</div>

				<p>Best regards,<br>The InstraCore Team</p>
			</div>
		</body>
		</html>
	`, period, studentName, period, content)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		_, err = w.Write([]byte(message))
		if err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		err = w.Close()
		if err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// GenerateVerificationToken generates a random token for email verification
func GenerateVerificationToken() (string, error) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, 32)

	var err error
	for i := range result {
		var n *big.Int
		n, err = rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			// Fall back to a time-based pick but keep the error
			result[i] = chars[int(time.Now().UnixNano()%int64(len(chars)))]
		} else {
			result[i] = chars[n.Int64()]
		}
	}

	if err != nil {
		return string(result), fmt.Errorf("secure random generation partially failed: %w", err)
	}

	return string(result), nil
}
