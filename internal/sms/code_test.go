package sms

import (
	"strconv"
	"testing"
)

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code := GenerateCode()
		if len(code) != 6 {
			t.Fatalf("GenerateCode() = %q, want 6 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("GenerateCode() = %q, not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("GenerateCode() = %d, out of range", n)
		}
	}
}

func TestOTPMessage(t *testing.T) {
	tests := []struct {
		name    string
		purpose string
		want    string
	}{
		{"registration", "registration", "Your Hire Me For registration code is: 123456. Valid for 60 minutes."},
		{"pin reset", "pin_reset", "Your Hire Me For PIN reset code is: 123456. Valid for 60 minutes."},
		{"unknown purpose falls back", "whatever", "Your Hire Me For registration code is: 123456. Valid for 60 minutes."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OTPMessage("123456", tt.purpose); got != tt.want {
				t.Errorf("OTPMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatInternational(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0821234567", "27821234567"},
		{"27821234567", "27821234567"},
		{"8210001111", "278210001111"},
	}
	for _, tt := range tests {
		if got := FormatInternational(tt.in); got != tt.want {
			t.Errorf("FormatInternational(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
