package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatch is returned when a password does not match its digest.
	ErrMismatch = errors.New("password mismatch")
	// ErrInvalidDigest is returned when a stored digest is not valid bcrypt output.
	ErrInvalidDigest = errors.New("invalid password digest")
)

// HashPassword produces a salted bcrypt digest of the plaintext. The salt is
// regenerated on every call, so hashing the same input twice yields different
// digests.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// CheckPassword verifies the plaintext against a stored digest in constant
// time. It returns ErrMismatch on a wrong password and ErrInvalidDigest when
// the digest itself is unparseable.
func CheckPassword(plain, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%w: %v", ErrInvalidDigest, err)
	}
}
