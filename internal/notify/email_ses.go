package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

// SESSender sends emails via AWS SES.
type SESSender struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	FromEmail string
	FromName  string
}

// NewSESSender creates a new AWS SES email sender.
func NewSESSender(client *sesv2.Client, cfg SESConfig, logger *logging.Logger) *SESSender {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "BrandMetro"
	}
	return &SESSender{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via AWS SES. Messages with attachments go out as raw
// MIME; plain messages use the simple content API.
func (s *SESSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: SES client not configured")
	}

	fromAddress := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
	}

	if len(msg.Attachments) > 0 {
		raw, err := buildRawMessage(fromAddress, msg)
		if err != nil {
			return fmt.Errorf("notify: build raw message: %w", err)
		}
		input.Content = &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		}
	} else {
		content := &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(msg.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{},
			},
		}
		if msg.Body != "" {
			content.Simple.Body.Text = &types.Content{
				Data:    aws.String(msg.Body),
				Charset: aws.String("UTF-8"),
			}
		}
		if msg.HTML != "" {
			content.Simple.Body.Html = &types.Content{
				Data:    aws.String(msg.HTML),
				Charset: aws.String("UTF-8"),
			}
		}
		input.Content = content
	}

	output, err := s.client.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("SES send failed", "error", err, "to", msg.To)
		return fmt.Errorf("notify: SES send failed: %w", err)
	}

	s.logger.Info("email sent via SES", "to", msg.To, "subject", msg.Subject, "message_id", aws.ToString(output.MessageId))
	return nil
}

// buildRawMessage assembles a multipart/mixed MIME message so attachments
// survive the SES v2 API, which only supports them via raw content.
func buildRawMessage(from string, msg EmailMessage) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", `text/plain; charset="UTF-8"`)
	part, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(msg.Body)); err != nil {
		return nil, err
	}

	for _, att := range msg.Attachments {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", att.ContentType)
		header.Set("Content-Transfer-Encoding", "base64")
		header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
		part, err := mw.CreatePart(header)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(base64.StdEncoding.EncodeToString(att.Data))); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure interface compliance
var _ EmailSender = (*SESSender)(nil)
