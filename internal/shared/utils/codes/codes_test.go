package codes

import (
	"strings"
	"testing"
)

func TestRandomUsesAlphabetOnly(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := Random(16)
		if err != nil {
			t.Fatalf("Random failed: %v", err)
		}
		if len(code) != 16 {
			t.Fatalf("expected 16 chars, got %d", len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("character %q outside alphabet in %q", r, code)
			}
		}
	}
}

func TestAlphabetExcludesAmbiguousCharacters(t *testing.T) {
	for _, r := range "IO01" {
		if strings.ContainsRune(Alphabet, r) {
			t.Errorf("ambiguous character %q present in alphabet", r)
		}
	}
}

func TestTicketCodeLength(t *testing.T) {
	code, err := TicketCode()
	if err != nil {
		t.Fatalf("TicketCode failed: %v", err)
	}
	if len(code) != 8 {
		t.Errorf("expected 8-character code, got %q", code)
	}
}

func TestOrderNumberFormat(t *testing.T) {
	number, err := OrderNumber()
	if err != nil {
		t.Fatalf("OrderNumber failed: %v", err)
	}

	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != "ORD" {
		t.Fatalf("unexpected order number shape: %q", number)
	}
	if len(parts[2]) != 4 {
		t.Errorf("expected 4-character suffix, got %q", parts[2])
	}
	if number != strings.ToUpper(number) {
		t.Errorf("order number must be uppercase: %q", number)
	}
}
