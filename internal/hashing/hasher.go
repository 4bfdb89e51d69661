// Package hashing provides one-way password hashing and verification
// with self-describing digests, so verification needs no side channel
// and the algorithm can be migrated without a schema change.
package hashing

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 600_000
	saltLen          = 16
	keyLen           = 32

	digestPrefix = "pbkdf2"
	digestHash   = "sha256"
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// Hasher is the password hashing contract consumed by the auth flows.
// Implementations must be safe for concurrent use.
type Hasher interface {
	// Hash produces a fresh salted digest of the password.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the stored digest.
	// It returns false for malformed or empty digests, never an error,
	// so callers cannot distinguish the failure cases.
	Verify(digest, password string) bool
}

// PBKDF2Hasher implements Hasher using PBKDF2-SHA256.
// Digests have the form pbkdf2:sha256:iterations:salt:hash with the
// salt and hash base64-encoded.
type PBKDF2Hasher struct{}

func NewPBKDF2Hasher() *PBKDF2Hasher {
	return &PBKDF2Hasher{}
}

func (h *PBKDF2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)

	digest := strings.Join([]string{
		digestPrefix,
		digestHash,
		strconv.Itoa(pbkdf2Iterations),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	}, ":")

	return digest, nil
}

// Verify recomputes the digest with the parameters embedded in the
// stored value and compares in constant time. A stored value that does
// not parse as a digest (legacy plaintext included) fails closed.
func (h *PBKDF2Hasher) Verify(digest, password string) bool {
	if digest == "" || password == "" {
		return false
	}

	parts := strings.Split(digest, ":")
	if len(parts) != 5 || parts[0] != digestPrefix || parts[1] != digestHash {
		return false
	}

	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(expected) == 0 {
		return false
	}

	computed := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(computed, expected) == 1
}
