// AngelaMos | 2026
// security_test.go

package core

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hash == "pw123456" {
		t.Fatal("hash must not equal the plaintext")
	}

	ok, err := VerifyPassword("pw123456", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password must verify")
	}

	ok, err = VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password must not verify")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Error("same password must hash differently each time")
	}
}

func TestVerifyPasswordTimingSafeNilHash(t *testing.T) {
	// Unknown usernames pass a nil hash; the check must fail closed
	// without erroring.
	ok, err := VerifyPasswordTimingSafe("pw123456", nil)
	if err != nil {
		t.Fatalf("VerifyPasswordTimingSafe: %v", err)
	}
	if ok {
		t.Error("nil stored hash must never verify")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if ok, _ := VerifyPassword("pw123456", "not-an-argon2-hash"); ok {
		t.Error("malformed hash must not verify")
	}
}

func TestTokenHashRoundTrip(t *testing.T) {
	hash := HashToken("some-refresh-token")

	if !CompareTokenHash("some-refresh-token", hash) {
		t.Error("matching token must compare equal")
	}
	if CompareTokenHash("other-token", hash) {
		t.Error("different token must not compare equal")
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	seen := make(map[string]struct{})

	for range 20 {
		code, err := GenerateVerificationCode()
		if err != nil {
			t.Fatalf("GenerateVerificationCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q length = %d, want 6", code, len(code))
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
		seen[code] = struct{}{}
	}

	if len(seen) < 2 {
		t.Error("codes should vary across generations")
	}
}
