package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// newTestPasswordService uses bcrypt's minimum cost so hashing takes
// milliseconds.
func newTestPasswordService() *PasswordService {
	return NewPasswordService(bcrypt.MinCost)
}

// =========================================================================
// HASHING
// =========================================================================

func TestHash_Format(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if strings.Contains(hash, "secret1") {
		t.Errorf("Hash() leaked the plaintext: %q", hash)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("stored value is not a bcrypt hash: %v", err)
	}
	if cost != bcrypt.MinCost {
		t.Errorf("embedded cost = %d, want %d", cost, bcrypt.MinCost)
	}
}

func TestHash_Salted(t *testing.T) {
	ps := newTestPasswordService()

	hash1, _ := ps.Hash("same-password")
	hash2, _ := ps.Hash("same-password")

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password")
	}
}

func TestHash_LengthLimitCountsBytes(t *testing.T) {
	ps := newTestPasswordService()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"72 ascii bytes", strings.Repeat("a", 72), false},
		{"73 ascii bytes", strings.Repeat("a", 73), true},
		{"24 three-byte runes", strings.Repeat("密", 24), false},
		{"25 three-byte runes", strings.Repeat("密", 25), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ps.Hash(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("Hash() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPasswordService_Cost(t *testing.T) {
	tests := []struct {
		given int
		want  int
	}{
		{bcrypt.MinCost, bcrypt.MinCost},
		{10, 10},
		{0, DefaultCost},
		{bcrypt.MaxCost + 1, DefaultCost},
	}

	for _, tt := range tests {
		if got := NewPasswordService(tt.given).cost; got != tt.want {
			t.Errorf("NewPasswordService(%d).cost = %d, want %d", tt.given, got, tt.want)
		}
	}
}

// =========================================================================
// VERIFYING
// =========================================================================

func TestVerify(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "correct-horse-battery-staple"); err != nil {
		t.Errorf("Verify() with the right password = %v, want nil", err)
	}
	for _, wrong := range []string{"", "Correct-horse-battery-staple", "correct-horse-battery-staple "} {
		if err := ps.Verify(hash, wrong); !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("Verify(%q) = %v, want ErrPasswordMismatch", wrong, err)
		}
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	ps := newTestPasswordService()

	err := ps.Verify("not-a-valid-bcrypt-hash", "password")
	if err == nil {
		t.Fatal("Verify() should fail for a malformed hash")
	}
	if errors.Is(err, ErrPasswordMismatch) {
		t.Error("a malformed hash should not look like a wrong password")
	}
}

func TestVerifyDummy_AlwaysFails(t *testing.T) {
	ps := newTestPasswordService()

	// Even the dummy's own plaintext is reported as a mismatch.
	if err := ps.VerifyDummy("healthtrack-dummy-password"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("VerifyDummy() error = %v, want ErrPasswordMismatch", err)
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	ps := newTestPasswordService()

	for _, password := range []string{"hello123", "p@$$w0rd!#%", "пароль-密码", "  padded  ", " "} {
		hash, err := ps.Hash(password)
		if err != nil {
			t.Fatalf("Hash(%q) error = %v", password, err)
		}
		if err := ps.Verify(hash, password); err != nil {
			t.Errorf("Verify() failed for %q: %v", password, err)
		}
	}
}
