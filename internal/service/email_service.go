package service

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service. Without a from address the
// service is disabled and every send is a logged no-op.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From: %s <%s>", fromName, fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail greets a newly created family and states the trial length
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, familyName string, trialDays int) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to RewardSprint!"
	name := html.EscapeString(familyName)
	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h1>Welcome, %s!</h1>
	<p>Your family account is ready. Add your children, set up tasks and start earning rewards together.</p>
	<p>Your free trial lasts <strong>%d days</strong>.</p>
	<p><a href="%s/login/parent">Open the parent dashboard</a></p>
</body>
</html>
`, name, trialDays, s.appBaseURL)

	textBody := fmt.Sprintf(`Welcome, %s!

Your family account is ready. Add your children, set up tasks and start earning rewards together.

Your free trial lasts %d days.

Open the parent dashboard: %s/login/parent
`, familyName, trialDays, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendRedemptionRequestEmail tells the parent a child is waiting on a reward
func (s *EmailService) SendRedemptionRequestEmail(ctx context.Context, toEmail string, notice RedemptionNotice) error {
	if s.debug {
		log.Printf("[DEBUG] SendRedemptionRequestEmail called: to=%s, child=%s, reward=%s", toEmail, notice.ChildName, notice.RewardName)
	}

	if !s.enabled {
		log.Printf("Skipping email send (service disabled): redemption request to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("%s wants to redeem %s", notice.ChildName, notice.RewardName)
	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h1>New reward request</h1>
	<p><strong>%s</strong> asked to redeem <strong>%s %s</strong> for %d points.</p>
	<p>Current balance: %d points.</p>
	<p><a href="%s/parent/dashboard">Approve or deny the request</a></p>
</body>
</html>
`, html.EscapeString(notice.ChildName), notice.RewardIcon, html.EscapeString(notice.RewardName),
		notice.PointsCost, notice.ChildPoints, s.appBaseURL)

	textBody := fmt.Sprintf(`%s asked to redeem %s for %d points.
Current balance: %d points.

Approve or deny the request: %s/parent/dashboard
`, notice.ChildName, notice.RewardName, notice.PointsCost, notice.ChildPoints, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
