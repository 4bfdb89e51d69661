// Package signingkey resolves the process-wide session signing key.
package signingkey

import (
	"errors"
	"log/slog"

	"github.com/gorilla/securecookie"
)

// MinLen is the minimum acceptable length of an externally supplied key.
const MinLen = 32

var (
	// ErrWeakKey means a key was configured but is too short to use.
	// This is a startup-fatal misconfiguration, not a fallback case.
	ErrWeakKey = errors.New("configured signing key is shorter than 32 bytes")

	// ErrEntropyUnavailable means the random fallback could not be generated.
	ErrEntropyUnavailable = errors.New("unable to generate a random signing key")
)

// Resolve returns the signing key for this process lifetime.
//
// A configured key wins when it is long enough; a short configured key is
// rejected rather than silently replaced. With no configured key a random
// 32-byte key is generated and a warning is logged: sessions signed under
// it will not survive a restart.
func Resolve(configured string, logger *slog.Logger) ([]byte, error) {
	if configured != "" {
		if len(configured) < MinLen {
			return nil, ErrWeakKey
		}
		return []byte(configured), nil
	}

	key := securecookie.GenerateRandomKey(MinLen)
	if key == nil {
		return nil, ErrEntropyUnavailable
	}

	logger.Warn("weak-or-missing-signing-key",
		"detail", "no signing key configured, generated a random key for this process",
		"consequence", "all sessions become invalid on restart")

	return key, nil
}
