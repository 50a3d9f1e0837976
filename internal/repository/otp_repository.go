package repository

import (
	"context"
	"database/sql"
	"time"
)

// OtpRepo persists and consumes one-time codes in the 'otp_codes' table.
// Issuing never invalidates earlier unused codes for the same phone;
// verification only considers the most recent matching row.
type OtpRepo struct{ DB *sql.DB }

func NewOtpRepo(db *sql.DB) *OtpRepo { return &OtpRepo{DB: db} }

// Issue inserts a fresh code row with the given expiry.
func (r *OtpRepo) Issue(ctx context.Context, phone, code, purpose string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO otp_codes (phone_number, code, purpose, expires_at, used) VALUES (?,?,?,?,0)",
		phone, code, purpose, expiresAt)
	return err
}

// VerifyAndConsume looks up the newest unused, unexpired row matching phone,
// code and purpose and marks it used. The used flag flip is irreversible; a
// second call with the same code fails. Every failure mode returns
// ErrInvalidOTP so callers cannot tell wrong, expired, used and never-issued
// apart.
func (r *OtpRepo) VerifyAndConsume(ctx context.Context, phone, code, purpose string) error {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT id FROM otp_codes
		 WHERE phone_number=? AND code=? AND purpose=?
		 AND expires_at > UTC_TIMESTAMP() AND used=0
		 ORDER BY created_at DESC LIMIT 1`,
		phone, code, purpose).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrInvalidOTP
	}
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "UPDATE otp_codes SET used=1 WHERE id=?", id)
	return err
}
