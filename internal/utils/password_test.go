package utils

import "testing"

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("1234", 4) // minimum cost keeps the test fast
	if err != nil {
		t.Fatalf("HashSecret() error = %v", err)
	}
	if hash == "1234" {
		t.Fatal("HashSecret() returned the plaintext")
	}
	if !VerifySecret(hash, "1234") {
		t.Error("VerifySecret() rejected the correct secret")
	}
	if VerifySecret(hash, "4321") {
		t.Error("VerifySecret() accepted a wrong secret")
	}
	if VerifySecret("not-a-bcrypt-hash", "1234") {
		t.Error("VerifySecret() accepted a malformed hash")
	}
}
