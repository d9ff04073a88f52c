// Package password provides one-way hashing and verification of user
// passwords backed by bcrypt. bcrypt salts every hash, so two calls with the
// same plaintext produce different verifiers, and its comparison runs in
// constant time over the derived key.
package password

import "golang.org/x/crypto/bcrypt"

// Hash derives a salted bcrypt verifier from a plaintext password.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain hashes to the stored verifier. A malformed
// verifier fails closed: the answer is false, never a panic or an error the
// caller could mistake for a system fault.
func Verify(plain, verifier string) bool {
	return bcrypt.CompareHashAndPassword([]byte(verifier), []byte(plain)) == nil
}
