// Package sms delivers one-time codes through the BulkSMS gateway. Without
// configured credentials the client runs in development mode and logs the
// would-be message instead of sending it; that fallback is an operational
// mode of the service, not an error path.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const bulksmsURL = "https://api.bulksms.com/v1/messages"

// Client talks to the BulkSMS REST API with token basic auth.
type Client struct {
	TokenID     string
	TokenSecret string
	SenderID    string

	// BaseURL and HTTPClient are overridable for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a gateway client. Empty credentials select development
// mode.
func NewClient(tokenID, tokenSecret, senderID string) *Client {
	return &Client{
		TokenID:     tokenID,
		TokenSecret: tokenSecret,
		SenderID:    senderID,
		BaseURL:     bulksmsURL,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// DevMode reports whether the client logs messages instead of sending them.
func (c *Client) DevMode() bool {
	return c.TokenID == "" || c.TokenSecret == ""
}

// Send delivers a single message to a local 10-digit phone number.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if c.DevMode() {
		log.Info().
			Str("to", phone).
			Str("message", message).
			Msg("sms development mode: not sent")
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"to":   FormatInternational(phone),
		"body": message,
		"from": c.SenderID,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.TokenID, c.TokenSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("bulksms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("bulksms status %d", resp.StatusCode)
	}
	return nil
}

// SendOTP delivers the code with the message text matching its purpose.
func (c *Client) SendOTP(ctx context.Context, phone, code, purpose string) error {
	return c.Send(ctx, phone, OTPMessage(code, purpose))
}

// OTPMessage renders the SMS body for an OTP purpose. Unknown purposes fall
// back to the registration wording.
func OTPMessage(code, purpose string) string {
	if purpose == "pin_reset" {
		return fmt.Sprintf("Your Hire Me For PIN reset code is: %s. Valid for 60 minutes.", code)
	}
	return fmt.Sprintf("Your Hire Me For registration code is: %s. Valid for 60 minutes.", code)
}

// FormatInternational prefixes a local number with the South African
// country code expected by the gateway.
func FormatInternational(phone string) string {
	if strings.HasPrefix(phone, "27") {
		return phone
	}
	return "27" + strings.TrimPrefix(phone, "0")
}
