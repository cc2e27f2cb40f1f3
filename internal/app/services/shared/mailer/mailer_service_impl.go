package mailer

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/drivers/mailer"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/dto/requests"
	"booking-service/internal/pkg/exceptions"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/smtp"
	"net/textproto"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type mailerService struct {
	Client  *mailer.SMTPClient
	Limiter *rate.Limiter
	Log     *zap.Logger
	send    sendFunc
}

func NewMailerService(client *mailer.SMTPClient, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.MailerService {
	return newMailerService(client, internalConfig.Notification.EmailsPerSecond, logger, smtp.SendMail)
}

func newMailerService(client *mailer.SMTPClient, emailsPerSecond int, logger *zap.Logger, send sendFunc) *mailerService {
	limit := rate.Inf
	if emailsPerSecond > 0 {
		limit = rate.Limit(emailsPerSecond)
	}
	return &mailerService{
		Client:  client,
		Limiter: rate.NewLimiter(limit, 1),
		Log:     logger,
		send:    send,
	}
}

func (s *mailerService) SendEmail(ctx context.Context, payload *requests.EmailPayload) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("mailerService.SendEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Strings("to", payload.To),
		zap.Int("attachments", len(payload.Attachments)),
	)

	recipients := append(append(append([]string{}, payload.To...), payload.Cc...), payload.Bcc...)
	if len(recipients) == 0 {
		return exceptions.ErrSMTPSendEmail(fmt.Errorf("no recipients"), "")
	}

	from := payload.From
	if from == "" {
		from = s.Client.EmailSender
	}

	message, err := buildMessage(from, payload)
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, strings.Join(payload.To, ","))
	}

	if err := s.Limiter.Wait(ctx); err != nil {
		return exceptions.ErrSMTPSendEmail(err, strings.Join(payload.To, ","))
	}

	if err := s.send(s.Client.Address(), s.Client.Auth, from, recipients, message); err != nil {
		s.Log.Error("mailerService.SendEmail error sending email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings("to", payload.To),
			zap.Error(err),
		)
		return exceptions.ErrSMTPSendEmail(err, strings.Join(payload.To, ","))
	}

	s.Log.Info("mailerService.SendEmail succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Strings("to", payload.To),
	)
	return nil
}

// buildMessage renders payload as a multipart/mixed message with a quoted
// printable HTML body followed by base64 attachments.
func buildMessage(from string, payload *requests.EmailPayload) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {constvars.MIMETextHTMLCharsetUTF8},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, err
	}
	qp := quotedprintable.NewWriter(htmlPart)
	if _, err := qp.Write([]byte(payload.HTMLCode)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}

	for _, attachment := range payload.Attachments {
		contentType := attachment.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mime.FormatMediaType(contentType, map[string]string{"name": attachment.FileName})},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": attachment.FileName})},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(wrapBase64(attachment.Content)); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var message bytes.Buffer
	fmt.Fprintf(&message, "From: %s\r\n", from)
	fmt.Fprintf(&message, "To: %s\r\n", strings.Join(payload.To, ", "))
	if len(payload.Cc) > 0 {
		fmt.Fprintf(&message, "Cc: %s\r\n", strings.Join(payload.Cc, ", "))
	}
	fmt.Fprintf(&message, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", payload.Subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&message, "Content-Type: %s\r\n\r\n", mime.FormatMediaType(constvars.MIMEMultipartMixed, map[string]string{"boundary": writer.Boundary()}))
	message.Write(body.Bytes())

	return message.Bytes(), nil
}

func wrapBase64(content []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(content)
	var wrapped bytes.Buffer
	for len(encoded) > 76 {
		wrapped.WriteString(encoded[:76])
		wrapped.WriteString("\r\n")
		encoded = encoded[76:]
	}
	wrapped.WriteString(encoded)
	wrapped.WriteString("\r\n")
	return wrapped.Bytes()
}
