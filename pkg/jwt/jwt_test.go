package jwt_test

import (
	"testing"

	"dealership-backend/pkg/jwt"

	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := jwt.GenerateToken(userID, "rui@example.com", "Rui", "OWNER")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := jwt.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "rui@example.com" || claims.Name != "Rui" || claims.Role != "OWNER" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "dealership-backend" {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := jwt.ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestValidateTokenRejectsTamperedToken(t *testing.T) {
	token, err := jwt.GenerateToken(uuid.New(), "rui@example.com", "Rui", "VIEWER")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := jwt.ValidateToken(tampered); err == nil {
		t.Fatal("expected an error for a tampered signature")
	}
}
