package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
)

const maxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email normalizado (minúsculo, sem espaços) e validado
type Email struct {
	value string
}

func NewEmail(email string) (Email, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if len(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: email}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) Equal(other Email) bool {
	return e.value == other.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}
