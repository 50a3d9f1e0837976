package sms

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateCode returns a 6-digit numeric OTP drawn uniformly from
// [100000, 999999] using the crypto randomness source.
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken;
		// there is no useful recovery for an auth code.
		panic(err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10)
}
