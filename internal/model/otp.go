package model

import "time"

// OTP purposes. Registration codes prove phone control before a worker row
// exists; pin_reset codes authorize replacing the PIN of an existing worker.
const (
	OtpPurposeRegistration = "registration"
	OtpPurposePinReset     = "pin_reset"
)

// OtpCode models a row in the `otp_codes` table. Multiple rows may exist per
// phone number; verification only considers the most recent unused,
// unexpired row with a matching code and purpose. Expiry is never enforced
// by a sweeper, only by the `expires_at > now` check at read time.
type OtpCode struct {
	ID          uint64    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"code"`
	Purpose     string    `json:"purpose"`
	ExpiresAt   time.Time `json:"expires_at"`
	Used        bool      `json:"used"`
	CreatedAt   time.Time `json:"created_at"`
}
