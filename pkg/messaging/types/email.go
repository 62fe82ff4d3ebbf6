package types

// Message types the account lifecycle sends through the mail notifier.
const (
	EMAIL_TYPE_REGISTRATION         = "registration"
	EMAIL_TYPE_PASSWORD_RESET       = "password-reset"
	EMAIL_TYPE_PHONE_OTP            = "phone-otp"
	EMAIL_TYPE_ACCOUNT_REACTIVATION = "account-reactivation"
)

type EmailTemplate struct {
	MessageType string `yaml:"message_type"`
	Subject     string `yaml:"subject"`
	TemplateDef string `yaml:"template_def"`
}
