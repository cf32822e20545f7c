package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"hanzidrill/internal/models"
)

// EmailService sends the daily review digest via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
}

// NewEmailService creates a new email service. With no from/to address
// configured the service is created disabled and every send is a no-op.
func NewEmailService(awsRegion, fromEmail, fromName, toEmail string) (*EmailService, error) {
	if fromEmail == "" || toEmail == "" {
		log.Println("Email digest disabled: SES_FROM_EMAIL or DIGEST_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email digest enabled: from=%s, to=%s, region=%s", fromEmail, toEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendReviewDigest emails the list of characters due today
func (s *EmailService) SendReviewDigest(ctx context.Context, today time.Time, due []models.Character) error {
	if !s.enabled {
		return nil
	}

	subject := fmt.Sprintf("%d characters due for review (%s)",
		len(due), today.Format("2006-01-02"))

	var body strings.Builder
	if len(due) == 0 {
		body.WriteString("No reviews due today.\n")
	} else {
		body.WriteString("Due today:\n\n")
		for _, c := range due {
			fmt.Fprintf(&body, "  %s", c.Glyph)
			if c.Pinyin != "" {
				fmt.Fprintf(&body, "  (%s)", c.Pinyin)
			}
			body.WriteString("\n")
		}
	}

	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{s.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body.String())},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send digest email: %w", err)
	}
	return nil
}
