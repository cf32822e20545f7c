package security

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PassphraseChecker verifies the single shared passphrase that gates the
// app. Not a hard security boundary, just a gate for a personal tool.
type PassphraseChecker struct {
	plain string
	hash  string
}

// NewPassphraseChecker builds a checker from config values. When a bcrypt
// hash is supplied it wins over the plain passphrase.
func NewPassphraseChecker(plain, hash string) *PassphraseChecker {
	return &PassphraseChecker{plain: plain, hash: hash}
}

// Enabled reports whether any passphrase is configured at all. With
// neither set, the gate is open.
func (p *PassphraseChecker) Enabled() bool {
	return p.plain != "" || p.hash != ""
}

// Check reports whether the entered passphrase matches
func (p *PassphraseChecker) Check(input string) bool {
	if p.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(input)) == nil
	}
	if p.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(p.plain), []byte(input)) == 1
}

// HashPassphrase produces a bcrypt hash suitable for PASSPHRASE_HASH
func HashPassphrase(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
