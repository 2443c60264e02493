package security_test

import (
	"testing"

	"github.com/anupamtiwari/homecraft-backend/pkg/security"
)

func TestGenerateOTP(t *testing.T) {
	code, err := security.GenerateOTP(6)
	if err != nil {
		t.Fatalf("GenerateOTP returned error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("expected numeric code, got %q", code)
		}
	}

	if _, err := security.GenerateOTP(0); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := security.GenerateOTP(11); err == nil {
		t.Fatal("expected error for oversized length")
	}
}

func TestCompareOTP(t *testing.T) {
	if !security.CompareOTP("123456", "123456") {
		t.Fatal("expected matching codes to compare equal")
	}
	if security.CompareOTP("123456", "654321") {
		t.Fatal("expected mismatched codes to compare unequal")
	}
	if security.CompareOTP("", "123456") {
		t.Fatal("expected empty stored code to fail")
	}
	if security.CompareOTP("123456", " 123456 ") != true {
		t.Fatal("expected trimmed submission to match")
	}
}
