package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

const (
	RoleUser     = "user"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

const (
	minPasswordLength = 8
	resetTokenBytes   = 20
	resetTokenTTL     = 30 * time.Minute
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type User struct {
	ID                  string     `json:"id" bson:"_id,omitempty"`
	Name                string     `json:"name" bson:"name"`
	Email               string     `json:"email" bson:"email"`
	Role                string     `json:"role" bson:"role"`
	Password            string     `json:"-" bson:"password"`
	CreatedAt           time.Time  `json:"createdAt" bson:"createdAt"`
	ResetPasswordToken  string     `json:"-" bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpire *time.Time `json:"-" bson:"resetPasswordExpire,omitempty"`
}

// ValidateRegistration checks the registration input. Only the public roles
// are accepted here; admin accounts are created through privileged flows.
func ValidateRegistration(name, email, password, role string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	switch role {
	case RoleUser, RoleEmployer:
		return nil
	default:
		return ErrInvalidRole
	}
}

// ValidEmail reports whether the address has a plausible mailbox shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// GenerateResetToken sets a hashed reset token and expiry on the user and
// returns the raw token for out-of-band delivery. Only the hash is ever
// persisted.
func (u *User) GenerateResetToken(now time.Time) (string, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	u.ResetPasswordToken = HashResetToken(token)
	expire := now.Add(resetTokenTTL)
	u.ResetPasswordExpire = &expire

	return token, nil
}

// HashResetToken produces the one-way form a raw reset token is stored and
// looked up by.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
