package util

import (
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost trades hash time for brute-force resistance; 12 keeps
// registration under ~300ms on current hardware.
const passwordHashCost = 12

// HashPassword derives a bcrypt hash for storage. The salt is embedded in
// the returned string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plain text password produced the
// stored hash.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
