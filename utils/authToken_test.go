package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/o1egl/paseto"

	"github.com/Maheshkadam-Delxn/eye/models"
)

func testKey(b byte) []byte {
	key := make([]byte, SymmetricKeySize)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestNewTokenMakerKeySize(t *testing.T) {
	if _, err := NewTokenMaker([]byte("too short")); err == nil {
		t.Fatal("expected error for short key, got nil")
	}
	if _, err := NewTokenMaker(testKey('k')); err != nil {
		t.Fatalf("expected no error for 32-byte key, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	maker, err := NewTokenMaker(testKey('k'))
	if err != nil {
		t.Fatal(err)
	}

	user := &models.User{
		ID:    "b2f7c9d4-1e7a-4f3c-9a51-0c8e2d6b4a91",
		Name:  "Dr. Asha Rao",
		Email: "asha@clinic.test",
		Role:  models.RoleDoctor,
	}

	token, err := maker.Issue(user)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	claims, err := maker.Verify(token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != models.RoleDoctor {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleDoctor)
	}
	if claims.Name != user.Name {
		t.Errorf("Name = %q, want %q", claims.Name, user.Name)
	}

	wantExpiry := time.Now().Add(TokenExpiry)
	if claims.Expiry.Before(wantExpiry.Add(-time.Minute)) || claims.Expiry.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("Expiry = %v, want about %v", claims.Expiry, wantExpiry)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	maker, _ := NewTokenMaker(testKey('k'))
	token, err := maker.Issue(&models.User{ID: "u1", Email: "a@b.test", Role: models.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	// Flip a character in the payload.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	if _, err := maker.Verify(string(tampered)); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(tampered) = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	maker, _ := NewTokenMaker(testKey('k'))
	for _, token := range []string{"", "not-a-token", "v2.local.AAAA"} {
		if _, err := maker.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	maker, _ := NewTokenMaker(testKey('k'))
	other, _ := NewTokenMaker(testKey('x'))

	token, err := maker.Issue(&models.User{ID: "u1", Email: "a@b.test", Role: models.RoleDoctor})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify with wrong key = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	key := testKey('k')
	maker, _ := NewTokenMaker(key)

	// Encrypt claims with an expiry in the past directly, since Issue
	// always stamps a future expiry.
	claims := TokenClaims{
		UserID: "u1",
		Email:  "a@b.test",
		Role:   models.RoleAdmin,
		Expiry: time.Now().Add(-time.Hour),
	}
	token, err := paseto.NewV2().Encrypt(key, claims, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := maker.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(expired) = %v, want ErrInvalidToken", err)
	}
}
