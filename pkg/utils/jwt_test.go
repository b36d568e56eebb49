package utils

import (
	"strings"
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("userId = %q, want user-123", claims.UserID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	SetSecret("secret-a")
	token, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	SetSecret("secret-b")
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with a different secret must not validate")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	SetSecret("test-secret")
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("garbage input must not validate")
	}
}

func TestNewWidgetID(t *testing.T) {
	a := NewWidgetID()
	b := NewWidgetID()

	if a == b {
		t.Errorf("ids must be unique, got %q twice", a)
	}
	if !strings.HasPrefix(a, "widget-") {
		t.Errorf("id %q missing widget- prefix", a)
	}
}
