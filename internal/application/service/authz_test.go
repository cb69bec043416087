package service

import (
	"testing"

	"github.com/minimahotel/pos-api/internal/domain/entity"
)

func TestCanVoidDirectly(t *testing.T) {
	policy := NewVoidPolicy("1234")

	if !policy.CanVoidDirectly(entity.RoleManager) {
		t.Fatal("expected managers to void directly")
	}
	if policy.CanVoidDirectly(entity.RoleReceptionist) {
		t.Fatal("expected receptionists to need a code")
	}
	if policy.CanVoidDirectly("") {
		t.Fatal("expected an empty role to need a code")
	}
}

func TestVerifyManagerCode(t *testing.T) {
	policy := NewVoidPolicy("1234")

	if !policy.VerifyManagerCode("1234") {
		t.Fatal("expected the configured code to verify")
	}
	for _, candidate := range []string{"0000", "123", "12345", " 1234", "1234 ", ""} {
		if policy.VerifyManagerCode(candidate) {
			t.Fatalf("expected %q to be rejected", candidate)
		}
	}
}
