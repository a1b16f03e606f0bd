package utils

import "golang.org/x/crypto/bcrypt"

// cost above the bcrypt default; hashing happens only on register/login
const bcryptCost = 12

// HashPassword returns the bcrypt hash stored in users.password_h.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	return string(b), err
}

// CheckPassword reports whether pw matches the stored hash.
func CheckPassword(hashed, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
