package templates

import (
	"fmt"

	messagingTypes "github.com/Johnmontoya/library-backend/pkg/messaging/types"
)

// Built-in message bodies. Payload keys: username, link, code.
var builtinTemplates = map[string]messagingTypes.EmailTemplate{
	messagingTypes.EMAIL_TYPE_REGISTRATION: {
		MessageType: messagingTypes.EMAIL_TYPE_REGISTRATION,
		Subject:     "Confirm your email address",
		TemplateDef: `<html><body>
<p>Hello {{.username}},</p>
<p>Thank you for registering. Please confirm your email address by following this link:</p>
<p><a href="{{.link}}">{{.link}}</a></p>
</body></html>`,
	},
	messagingTypes.EMAIL_TYPE_PASSWORD_RESET: {
		MessageType: messagingTypes.EMAIL_TYPE_PASSWORD_RESET,
		Subject:     "Reset your password",
		TemplateDef: `<html><body>
<p>Hello {{.username}},</p>
<p>A password reset was requested for your account. You can set a new password here:</p>
<p><a href="{{.link}}">{{.link}}</a></p>
<p>If you did not request this, you can ignore this message.</p>
</body></html>`,
	},
	messagingTypes.EMAIL_TYPE_PHONE_OTP: {
		MessageType: messagingTypes.EMAIL_TYPE_PHONE_OTP,
		Subject:     "Your verification code",
		TemplateDef: `<html><body>
<p>Hello {{.username}},</p>
<p>Your phone verification code is:</p>
<p><strong>{{.code}}</strong></p>
</body></html>`,
	},
	messagingTypes.EMAIL_TYPE_ACCOUNT_REACTIVATION: {
		MessageType: messagingTypes.EMAIL_TYPE_ACCOUNT_REACTIVATION,
		Subject:     "Reactivate your account",
		TemplateDef: `<html><body>
<p>Hello {{.username}},</p>
<p>You can reactivate your account by following this link:</p>
<p><a href="{{.link}}">{{.link}}</a></p>
</body></html>`,
	},
}

func GetTemplate(messageType string) (messagingTypes.EmailTemplate, error) {
	tmpl, ok := builtinTemplates[messageType]
	if !ok {
		return messagingTypes.EmailTemplate{}, fmt.Errorf("no template for message type %s", messageType)
	}
	return tmpl, nil
}
