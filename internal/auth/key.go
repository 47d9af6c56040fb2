package auth

import "golang.org/x/crypto/bcrypt"

// The admin key is kept as a bcrypt hash in memory; the plaintext from the
// environment is hashed once at startup.

func HashKey(k string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(k), bcrypt.DefaultCost)
	return string(b), err
}

func VerifyKey(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
