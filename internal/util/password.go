package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PasswordHasher converts a password to its stored form and verifies a
// candidate against a stored value. The account store is hasher-agnostic;
// which scheme runs is picked by configuration.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// NewHasher returns the hasher for a configured scheme name. Unknown
// schemes fall back to PBKDF2.
func NewHasher(scheme string) PasswordHasher {
	if strings.EqualFold(scheme, "plain") {
		return PlainHasher{}
	}
	return PBKDF2Hasher{}
}

// PlainHasher stores the password verbatim. It reproduces the legacy
// behavior and exists for data compatibility; use PBKDF2Hasher for
// anything real.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	return password, nil
}

func (PlainHasher) Verify(password, stored string) bool {
	return password != "" && password == stored
}

// PBKDF2Hasher hashes with PBKDF2+SHA256 and stores "salt$hash".
type PBKDF2Hasher struct{}

func (PBKDF2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := pbkdf2.Key([]byte(password), salt, 100_000, 32, sha256.New)
	saltStr := base64.RawStdEncoding.EncodeToString(salt)
	hashStr := base64.RawStdEncoding.EncodeToString(hash)

	return saltStr + "$" + hashStr, nil
}

func (PBKDF2Hasher) Verify(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}

	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	hash := pbkdf2.Key([]byte(password), salt, 100_000, len(expectedHash), sha256.New)

	// constant time compare
	if len(hash) != len(expectedHash) {
		return false
	}
	var diff byte
	for i := range hash {
		diff |= hash[i] ^ expectedHash[i]
	}
	return diff == 0
}
