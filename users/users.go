package users

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `json:"id,omitempty"`    // Opaque unique identifier, the only field ever embedded in tokens
	Name         string    `json:"name,omitempty"`  // Display name
	Email        string    `json:"email,omitempty"` // Stored lower-cased; comparisons are case-insensitive
	PasswordHash string    `json:"-"`               // Hashed version of the user's password - never serialize
	RefreshToken string    `json:"-"`               // The single live refresh token; overwritten on every login
	IsAdmin      bool      `json:"isAdmin,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// NormalizeEmail lower-cases and trims an email so lookups and the unique
// constraint agree on a canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePasswordStrength checks if a password meets the registration policy:
// - At least 8 characters long
// - Contains at least one letter
// - Contains at least one digit
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasLetter bool
		hasDigit  bool
	)

	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		} else if unicode.IsDigit(char) {
			hasDigit = true
		}
	}

	if !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	return nil
}

// HashPassword produces a salted bcrypt hash. Two calls on the same plaintext
// yield different outputs.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
