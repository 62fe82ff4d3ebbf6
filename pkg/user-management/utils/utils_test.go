package utils

import "testing"

func TestSanitizeEmail(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Test@Example.com", "test@example.com"},
		{"  test@example.com \n", "test@example.com"},
		{"test@example.com", "test@example.com"},
	}

	for _, tc := range testCases {
		if got := SanitizeEmail(tc.input); got != tc.expected {
			t.Errorf("SanitizeEmail(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestCheckEmailFormat(t *testing.T) {
	valid := []string{
		"test@example.com",
		"first.last@sub.example.org",
		"name+tag@example.co.uk",
	}
	invalid := []string{
		"",
		"plainstring",
		"missing@tld",
		"@example.com",
		"two@@example.com",
	}

	for _, email := range valid {
		if !CheckEmailFormat(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if CheckEmailFormat(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestBlurEmailAddress(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"test@example.com", "t****@example.com"},
		{"", "****@**"},
		{"@example.com", "****@**"},
	}

	for _, tc := range testCases {
		if got := BlurEmailAddress(tc.input); got != tc.expected {
			t.Errorf("BlurEmailAddress(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestCheckPasswordFormat(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		if CheckPasswordFormat("aB1!") {
			t.Error("short password should be rejected")
		}
	})

	t.Run("too few character classes", func(t *testing.T) {
		if CheckPasswordFormat("onlylowercase") {
			t.Error("single class password should be rejected")
		}
		if CheckPasswordFormat("lowerUPPER") {
			t.Error("two class password should be rejected")
		}
	})

	t.Run("accepted passwords", func(t *testing.T) {
		for _, pw := range []string{"lowerUPPER123", "lower123!!", "UPPER123!!", "lowerUPPER!!"} {
			if !CheckPasswordFormat(pw) {
				t.Errorf("expected %q to be accepted", pw)
			}
		}
	})
}

func TestCheckUsernameFormat(t *testing.T) {
	valid := []string{"alice", "a.b-c_d", "User123"}
	invalid := []string{"", "ab", "user name", "user@name", string(make([]byte, 65))}

	for _, username := range valid {
		if !CheckUsernameFormat(username) {
			t.Errorf("expected %q to be valid", username)
		}
	}
	for _, username := range invalid {
		if CheckUsernameFormat(username) {
			t.Errorf("expected %q to be invalid", username)
		}
	}
}
