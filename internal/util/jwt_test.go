package util

import (
	"testing"
	"time"

	"studyhub_backend/internal/model"
)

func testUser() *model.User {
	user := &model.User{
		Name:  "Test User",
		Email: "test@studyhub.test",
		Role:  model.Student,
	}
	user.ID = 42
	return user
}

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret-0123456789abcdef0123456789"

	token, err := GenerateJWT(testUser(), secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateJWT returned an empty token")
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != model.Student {
		t.Errorf("Role = %q, want student", claims.Role)
	}
	if claims.Email != "test@studyhub.test" {
		t.Errorf("Email = %q, want test@studyhub.test", claims.Email)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), "correct-secret-0123456789abcdef01234", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	if _, err := ParseJWT(token, "wrong-secret-0123456789abcdef0123456"); err == nil {
		t.Error("ParseJWT accepted a token signed with a different secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	secret := "test-secret-0123456789abcdef0123456789"

	token, err := GenerateJWT(testUser(), secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	if _, err := ParseJWT(token, secret); err == nil {
		t.Error("ParseJWT accepted an expired token")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("not-a-token", "whatever"); err == nil {
		t.Error("ParseJWT accepted garbage input")
	}
}
