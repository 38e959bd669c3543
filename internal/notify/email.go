package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends homework share links via Amazon SES. When no
// sender address is configured the service is a no-op.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	log.Printf("email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

func (s *EmailService) IsEnabled() bool { return s.enabled }

// SendShareLink emails a student the exam link for one homework. The
// link carries only the homework id and the student marker; timer,
// question limit and anti-cheat stay server-side.
func (s *EmailService) SendShareLink(ctx context.Context, toEmail, topic, homeworkID string) error {
	if !s.enabled {
		log.Printf("skipping email send (service disabled): share link to %s", toEmail)
		return nil
	}

	link := fmt.Sprintf("%s/homework/%s?student=true", s.appBaseURL, homeworkID)
	subject := fmt.Sprintf("Your English exercise: %s", topic)
	htmlBody := fmt.Sprintf(`<p>Hello,</p>
<p>Your teacher has shared an English exercise with you: <strong>%s</strong>.</p>
<p><a href="%s">Start the exercise</a></p>
<p>Good luck!</p>`, topic, link)
	textBody := fmt.Sprintf("Your teacher has shared an English exercise with you: %s\n\nStart it here: %s\n", topic, link)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send share link to %s: %w", toEmail, err)
	}
	return nil
}
