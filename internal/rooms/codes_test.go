package rooms

import (
	"regexp"
	"testing"
)

func TestGenerateCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{4}$`)

	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Errorf("GenerateCode() = %q, want 4-digit numeric string", code)
		}
	}
}

func TestGenerateCode_CoversLeadingZeros(t *testing.T) {
	// Uniform sampling over 0000-9999 must keep the fixed width.
	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != codeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), codeLength)
		}
		seen[code] = true
	}
	// 5000 draws over 10k codes should produce a wide spread.
	if len(seen) < 2000 {
		t.Errorf("only %d distinct codes in 5000 draws, sampling looks skewed", len(seen))
	}
}
