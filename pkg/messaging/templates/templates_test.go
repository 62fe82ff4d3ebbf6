package templates

import (
	"strings"
	"testing"

	messagingTypes "github.com/Johnmontoya/library-backend/pkg/messaging/types"
)

func TestGetTemplate(t *testing.T) {
	knownTypes := []string{
		messagingTypes.EMAIL_TYPE_REGISTRATION,
		messagingTypes.EMAIL_TYPE_PASSWORD_RESET,
		messagingTypes.EMAIL_TYPE_PHONE_OTP,
		messagingTypes.EMAIL_TYPE_ACCOUNT_REACTIVATION,
	}
	for _, messageType := range knownTypes {
		tmpl, err := GetTemplate(messageType)
		if err != nil {
			t.Errorf("unexpected error for %s: %v", messageType, err)
			continue
		}
		if tmpl.Subject == "" || tmpl.TemplateDef == "" {
			t.Errorf("incomplete template for %s", messageType)
		}
	}

	if _, err := GetTemplate("unknown-type"); err == nil {
		t.Error("expected error for unknown message type")
	}
}

func TestResolveTemplate(t *testing.T) {
	t.Run("empty template", func(t *testing.T) {
		if _, err := ResolveTemplate("test", " ", nil); err == nil {
			t.Error("expected error for empty template")
		}
	})

	t.Run("payload substitution", func(t *testing.T) {
		content, err := ResolveTemplate("test", "Hello {{.username}}", map[string]string{"username": "alice"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content != "Hello alice" {
			t.Errorf("unexpected content: %q", content)
		}
	})

	t.Run("broken template", func(t *testing.T) {
		if _, err := ResolveTemplate("test", "Hello {{.username", nil); err == nil {
			t.Error("expected error for broken template def")
		}
	})
}

func TestBuiltinTemplatesResolve(t *testing.T) {
	payload := map[string]string{
		"username": "alice",
		"link":     "https://example.com/confirm",
		"code":     "123456",
	}
	for messageType, tmpl := range builtinTemplates {
		content, err := ResolveTemplate(messageType, tmpl.TemplateDef, payload)
		if err != nil {
			t.Errorf("failed to resolve %s: %v", messageType, err)
			continue
		}
		if !strings.Contains(content, "alice") {
			t.Errorf("expected rendered content of %s to contain the username", messageType)
		}
	}
}
