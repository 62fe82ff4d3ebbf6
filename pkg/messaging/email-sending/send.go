package emailsending

import (
	"log/slog"

	"github.com/Johnmontoya/library-backend/pkg/messaging/templates"
)

// SmtpSender is implemented by the smtp client pool.
type SmtpSender interface {
	SendMail(to []string, subject string, htmlContent string) error
}

type EmailSender struct {
	client              SmtpSender
	globalTemplateInfos map[string]string
}

func NewEmailSender(client SmtpSender, globalTemplateInfos map[string]string) *EmailSender {
	if globalTemplateInfos == nil {
		globalTemplateInfos = map[string]string{}
	}
	return &EmailSender{
		client:              client,
		globalTemplateInfos: globalTemplateInfos,
	}
}

func (s *EmailSender) SendTemplate(
	to []string,
	messageType string,
	payload map[string]string,
) error {
	template, err := templates.GetTemplate(messageType)
	if err != nil {
		slog.Error("failed to look up email template", slog.String("messageType", messageType), slog.String("error", err.Error()))
		return err
	}

	if payload == nil {
		payload = map[string]string{}
	}
	for k, v := range s.globalTemplateInfos {
		if _, ok := payload[k]; !ok {
			payload[k] = v
		}
	}

	content, err := templates.ResolveTemplate(messageType, template.TemplateDef, payload)
	if err != nil {
		slog.Error("failed to resolve email template", slog.String("messageType", messageType), slog.String("error", err.Error()))
		return err
	}

	err = s.client.SendMail(to, template.Subject, content)
	if err != nil {
		slog.Error("failed to send email", slog.String("messageType", messageType), slog.String("error", err.Error()))
		return err
	}
	return nil
}
