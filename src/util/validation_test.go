package util

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com"}
	invalid := []string{"", "plain", "a@b", "@example.com", "a b@c.com"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidateName(t *testing.T) {
	if !ValidateName("Ada") {
		t.Error("plain name should be valid")
	}
	if ValidateName("   ") {
		t.Error("whitespace-only name should be invalid")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Aa1!aaaa", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
	}

	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
