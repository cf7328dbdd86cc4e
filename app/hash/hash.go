// Package hash wraps bcrypt for password storage. Digests are salted and
// self-describing, so verification needs no parameters beyond the digest
// itself.
package hash

import "golang.org/x/crypto/bcrypt"

func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
