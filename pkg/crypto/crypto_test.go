package crypto

import (
	"strconv"
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if !VerifyPassword(hash, "secret") {
		t.Fatal("expected password verification to succeed")
	}

	if VerifyPassword(hash, "incorrect") {
		t.Fatal("expected password verification to fail")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	second, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if first == second {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}

func TestGenerateOTPBounds(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("otp error: %v", err)
		}

		if len(otp) != OTPDigits {
			t.Fatalf("expected %d digits, got %q", OTPDigits, otp)
		}

		value, err := strconv.Atoi(otp)
		if err != nil {
			t.Fatalf("expected numeric code, got %q", otp)
		}
		if value < 100000 || value > 999999 {
			t.Fatalf("code %d out of range", value)
		}
	}
}
