// Package password hashes and verifies user credentials. The stored format
// is "hex(sha256(password+salt)):salt". Bare digests without a salt suffix
// are an older format that is still accepted on verify.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Hash returns the stored representation of a password. When salt is empty
// a fresh random salt is generated.
func Hash(password, salt string) string {
	if password == "" {
		return ""
	}
	if salt == "" {
		salt = uuid.NewString()
	}
	return digest(password, salt) + ":" + salt
}

// Verify checks a password against a stored hash in either format.
func Verify(password, stored string) bool {
	if stored == "" {
		return false
	}

	want := stored
	salt := ""
	if i := strings.IndexByte(stored, ':'); i >= 0 {
		want = stored[:i]
		salt = stored[i+1:]
	}

	got := digest(password, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func digest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
